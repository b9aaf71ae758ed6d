// Package memory содержит in-memory реализации репозиториев, только для тестов.
//
// Используется в тестах usecase- и handler-слоёв вместо Postgres; cmd/server его не подключает.
// Транзакции откатываются по снимку, но не изолированы друг от друга; блокировок строк нет.
// Уникальность (имена, пары пользователь-курс) проверяется перебором, как это делают индексы БД.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"course-platform/internal/domain/chapter"
	"course-platform/internal/domain/course"
	"course-platform/internal/domain/enrollment"
	"course-platform/internal/domain/notification"
	"course-platform/internal/domain/user"
	repo "course-platform/internal/repository/interfaces"
)

// Store хранит все сущности в памяти под одним мьютексом.
type Store struct {
	mu sync.Mutex

	users         map[uuid.UUID]user.User
	verifications map[int64]user.EmailVerification
	verifSeq      int64
	categories    map[uuid.UUID]course.Category
	courses       map[uuid.UUID]course.Course
	courseCats    map[uuid.UUID]map[uuid.UUID]struct{}
	chapters      map[uuid.UUID]chapter.Chapter
	subchapters   map[uuid.UUID]chapter.SubChapter
	registrations map[uuid.UUID]enrollment.Registration
	feedbacks     map[uuid.UUID]enrollment.Feedback
	bans          map[uuid.UUID]enrollment.Ban
	jobs          map[uuid.UUID]notification.EmailJob
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{
		users:         map[uuid.UUID]user.User{},
		verifications: map[int64]user.EmailVerification{},
		categories:    map[uuid.UUID]course.Category{},
		courses:       map[uuid.UUID]course.Course{},
		courseCats:    map[uuid.UUID]map[uuid.UUID]struct{}{},
		chapters:      map[uuid.UUID]chapter.Chapter{},
		subchapters:   map[uuid.UUID]chapter.SubChapter{},
		registrations: map[uuid.UUID]enrollment.Registration{},
		feedbacks:     map[uuid.UUID]enrollment.Feedback{},
		bans:          map[uuid.UUID]enrollment.Ban{},
		jobs:          map[uuid.UUID]notification.EmailJob{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// snapshot копирует состояние для отката транзакции. Вызывается под мьютексом.
func (s *Store) snapshot() *Store {
	cats := make(map[uuid.UUID]map[uuid.UUID]struct{}, len(s.courseCats))
	for k, v := range s.courseCats {
		cats[k] = cloneMap(v)
	}
	return &Store{
		users:         cloneMap(s.users),
		verifications: cloneMap(s.verifications),
		verifSeq:      s.verifSeq,
		categories:    cloneMap(s.categories),
		courses:       cloneMap(s.courses),
		courseCats:    cats,
		chapters:      cloneMap(s.chapters),
		subchapters:   cloneMap(s.subchapters),
		registrations: cloneMap(s.registrations),
		feedbacks:     cloneMap(s.feedbacks),
		bans:          cloneMap(s.bans),
		jobs:          cloneMap(s.jobs),
	}
}

func (s *Store) restore(from *Store) {
	s.users = from.users
	s.verifications = from.verifications
	s.verifSeq = from.verifSeq
	s.categories = from.categories
	s.courses = from.courses
	s.courseCats = from.courseCats
	s.chapters = from.chapters
	s.subchapters = from.subchapters
	s.registrations = from.registrations
	s.feedbacks = from.feedbacks
	s.bans = from.bans
	s.jobs = from.jobs
}

// Transactor реализует repo.Transactor: при ошибке fn состояние хранилища откатывается.
type Transactor struct {
	s *Store
}

var _ repo.Transactor = (*Transactor)(nil)

type txKey struct{}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	t.s.mu.Lock()
	snap := t.s.snapshot()
	t.s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.s.mu.Lock()
		t.s.restore(snap)
		t.s.mu.Unlock()
		return err
	}
	return nil
}

// Repos объединяет репозитории, работающие с одним Store.
type Repos struct {
	Store         *Store
	Tx            *Transactor
	Users         *UserRepository
	Verifications *EmailVerificationRepository
	Categories    *CategoryRepository
	Courses       *CourseRepository
	Chapters      *ChapterRepository
	SubChapters   *SubChapterRepository
	Registrations *RegistrationRepository
	Feedbacks     *FeedbackRepository
	Bans          *BanRepository
	Jobs          *EmailJobRepository
}

// New создаёт хранилище и все репозитории.
func New() *Repos {
	s := NewStore()
	return &Repos{
		Store:         s,
		Tx:            &Transactor{s: s},
		Users:         &UserRepository{s: s},
		Verifications: &EmailVerificationRepository{s: s},
		Categories:    &CategoryRepository{s: s},
		Courses:       &CourseRepository{s: s},
		Chapters:      &ChapterRepository{s: s},
		SubChapters:   &SubChapterRepository{s: s},
		Registrations: &RegistrationRepository{s: s},
		Feedbacks:     &FeedbackRepository{s: s},
		Bans:          &BanRepository{s: s},
		Jobs:          &EmailJobRepository{s: s},
	}
}

// page возвращает срез items для страницы.
func page[T any](items []T, p repo.PageRequest) []T {
	p = p.Normalize()
	start := p.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
