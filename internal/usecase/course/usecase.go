package course

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domain "course-platform/internal/domain/course"
	repo "course-platform/internal/repository/interfaces"
	"course-platform/internal/storage"
	"course-platform/pkg/logger"
)

// Service описывает операции над курсами.
type Service interface {
	List(ctx context.Context) ([]*domain.Course, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Course, error)

	// Create создаёт курс, загружает картинку (если передана) и привязывает категории.
	Create(ctx context.Context, input Input) (*domain.Course, error)

	// Update обновляет курс целиком; набор категорий приводится к переданному.
	Update(ctx context.Context, id uuid.UUID, input Input) (*domain.Course, error)

	// Delete удаляет курс и его картинку.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListStartingInDays возвращает курсы, стартующие через каждое из days дней от today.
	ListStartingInDays(ctx context.Context, today time.Time, days []int) ([]*domain.Course, error)
}

// Image — картинка курса, полученная из multipart-формы.
type Image struct {
	Body        io.Reader
	Size        int64
	ContentType string
}

// Input — данные для создания и обновления курса.
type Input struct {
	Name         string
	Description  string
	CreatorID    uuid.UUID // учитывается только при создании
	StartDate    time.Time
	FinishDate   time.Time
	Language     string
	Requirements string
	CategoryIDs  []uuid.UUID
	Image        *Image
}

// Ограничения на поля курса.
const (
	MinNameLen        = 5
	MaxNameLen        = 255
	MinDescriptionLen = 5
	MaxDescriptionLen = 1000
)

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseExists     = errors.New("course with this name already exists")
	ErrCreatorNotFound  = errors.New("course creator not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidInput     = errors.New("invalid course input")
)

type service struct {
	courses    repo.CourseRepository
	categories repo.CategoryRepository
	users      repo.UserRepository
	tx         repo.Transactor
	storage    storage.ObjectStorage
	logger     logger.Logger
	now        func() time.Time
}

// NewService создаёт сервис курсов.
func NewService(
	courses repo.CourseRepository,
	categories repo.CategoryRepository,
	users repo.UserRepository,
	tx repo.Transactor,
	store storage.ObjectStorage,
	log logger.Logger,
) Service {
	return &service{
		courses:    courses,
		categories: categories,
		users:      users,
		tx:         tx,
		storage:    store,
		logger:     log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) List(ctx context.Context) ([]*domain.Course, error) {
	return s.courses.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	c, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *service) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Course, error) {
	return s.courses.ListByCreator(ctx, creatorID)
}

// validate проверяет поля курса. requireFuture — старт не раньше текущего момента.
func (s *service) validate(in *Input, requireFuture bool) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if n := utf8.RuneCountInString(in.Name); n < MinNameLen || n > MaxNameLen {
		return fmt.Errorf("%w: name must be %d..%d characters", ErrInvalidInput, MinNameLen, MaxNameLen)
	}
	if n := utf8.RuneCountInString(in.Description); n < MinDescriptionLen || n > MaxDescriptionLen {
		return fmt.Errorf("%w: description must be %d..%d characters", ErrInvalidInput, MinDescriptionLen, MaxDescriptionLen)
	}
	if in.StartDate.IsZero() || in.FinishDate.IsZero() {
		return fmt.Errorf("%w: start and finish dates are required", ErrInvalidInput)
	}
	if requireFuture && in.StartDate.Before(s.now()) {
		return fmt.Errorf("%w: start date must not be in the past", ErrInvalidInput)
	}
	if !in.FinishDate.After(in.StartDate) {
		return fmt.Errorf("%w: finish date must be after start date", ErrInvalidInput)
	}
	return nil
}

// ensureCategories проверяет, что все категории существуют. Возвращает уникальные идентификаторы.
func (s *service) ensureCategories(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return unique, nil
	}
	found, err := s.categories.ListByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(found) != len(unique) {
		return nil, ErrCategoryNotFound
	}
	return unique, nil
}

func (s *service) ensureFreeName(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.courses.GetByName(ctx, name)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return ErrCourseExists
	}
	return nil
}

func (s *service) Create(ctx context.Context, in Input) (*domain.Course, error) {
	if err := s.validate(&in, true); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, in.CreatorID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, err
	}
	if err := s.ensureFreeName(ctx, in.Name, uuid.Nil); err != nil {
		return nil, err
	}
	categoryIDs, err := s.ensureCategories(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	c := domain.NewCourse(in.Name, in.Description, in.CreatorID, in.StartDate, in.FinishDate, in.Language, in.Requirements)
	c.CategoryIDs = categoryIDs

	if in.Image != nil {
		url, err := s.upload(ctx, c.ImageKey(), in.Image)
		if err != nil {
			return nil, err
		}
		c.ImageURL = url
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.courses.Create(ctx, c)
	})
	if err != nil {
		if c.ImageURL != "" {
			s.removeImage(ctx, c)
		}
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, ErrCourseExists
		}
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return s.GetByID(ctx, c.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, in Input) (*domain.Course, error) {
	if err := s.validate(&in, false); err != nil {
		return nil, err
	}
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFreeName(ctx, in.Name, id); err != nil {
		return nil, err
	}
	categoryIDs, err := s.ensureCategories(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	c.Name = in.Name
	c.Description = in.Description
	c.StartDate = in.StartDate.UTC()
	c.FinishDate = in.FinishDate.UTC()
	c.Language = in.Language
	c.Requirements = in.Requirements

	if in.Image != nil {
		url, err := s.upload(ctx, c.ImageKey(), in.Image)
		if err != nil {
			return nil, err
		}
		c.ImageURL = url
	}

	toAdd, toRemove := domain.DiffCategories(c.CategoryIDs, categoryIDs)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.courses.Update(ctx, c); err != nil {
			return err
		}
		if len(toRemove) > 0 {
			if err := s.courses.RemoveCategories(ctx, c.ID, toRemove); err != nil {
				return err
			}
		}
		if len(toAdd) > 0 {
			return s.courses.AddCategories(ctx, c.ID, toAdd)
		}
		return nil
	})
	if errors.Is(err, repo.ErrAlreadyExists) {
		return nil, ErrCourseExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	return s.GetByID(ctx, c.ID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if c.ImageURL != "" {
		s.removeImage(ctx, c)
	}
	return nil
}

func (s *service) ListStartingInDays(ctx context.Context, today time.Time, days []int) ([]*domain.Course, error) {
	if len(days) == 0 {
		return nil, nil
	}
	base := domain.DateOf(today)
	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		dates = append(dates, base.AddDate(0, 0, d))
	}
	return s.courses.ListStartingOn(ctx, dates)
}

func (s *service) upload(ctx context.Context, key string, img *Image) (string, error) {
	url, err := s.storage.Upload(ctx, key, img.Body, img.Size, img.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload course image: %w", err)
	}
	return url, nil
}

// removeImage удаляет картинку курса. Ошибка только логируется.
func (s *service) removeImage(ctx context.Context, c *domain.Course) {
	if err := s.storage.Delete(ctx, c.ImageKey()); err != nil {
		s.logger.Warn("failed to delete course image", map[string]any{
			"course_id": c.ID.String(),
			"err":       err.Error(),
		})
	}
}
