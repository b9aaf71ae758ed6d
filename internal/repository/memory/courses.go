package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"course-platform/internal/domain/course"
	repo "course-platform/internal/repository/interfaces"
)

func nowUTC() time.Time { return time.Now().UTC() }

// CourseRepository реализует repo.CourseRepository в памяти.
type CourseRepository struct {
	s *Store
}

var _ repo.CourseRepository = (*CourseRepository)(nil)

// load собирает курс с категориями. Вызывается под мьютексом.
func (r *CourseRepository) load(c course.Course) *course.Course {
	c.CategoryIDs = nil
	c.Categories = nil
	for id := range r.s.courseCats[c.ID] {
		if cat, ok := r.s.categories[id]; ok {
			c.Categories = append(c.Categories, cat)
		}
	}
	sort.Slice(c.Categories, func(i, j int) bool { return c.Categories[i].Name < c.Categories[j].Name })
	for _, cat := range c.Categories {
		c.CategoryIDs = append(c.CategoryIDs, cat.ID)
	}
	return &c
}

func (r *CourseRepository) Create(_ context.Context, c *course.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(c) {
		return repo.ErrAlreadyExists
	}
	stored := *c
	stored.Categories = nil
	stored.CategoryIDs = nil
	r.s.courses[c.ID] = stored
	links := map[uuid.UUID]struct{}{}
	for _, id := range c.CategoryIDs {
		links[id] = struct{}{}
	}
	r.s.courseCats[c.ID] = links
	return nil
}

func (r *CourseRepository) GetByID(_ context.Context, id uuid.UUID) (*course.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return r.load(c), nil
}

func (r *CourseRepository) GetByName(_ context.Context, name string) (*course.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.courses {
		if c.Name == name {
			return r.load(c), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *CourseRepository) filter(match func(course.Course) bool) []*course.Course {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*course.Course
	for _, c := range r.s.courses {
		if match(c) {
			out = append(out, r.load(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (r *CourseRepository) List(_ context.Context) ([]*course.Course, error) {
	return r.filter(func(course.Course) bool { return true }), nil
}

func (r *CourseRepository) ListByCreator(_ context.Context, creatorID uuid.UUID) ([]*course.Course, error) {
	return r.filter(func(c course.Course) bool { return c.CreatorID == creatorID }), nil
}

func (r *CourseRepository) ListStartingOn(_ context.Context, dates []time.Time) ([]*course.Course, error) {
	days := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		days[course.DateOf(d)] = true
	}
	return r.filter(func(c course.Course) bool { return days[course.DateOf(c.StartDate)] }), nil
}

// LockForUpdate только проверяет существование курса.
func (r *CourseRepository) LockForUpdate(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courses[id]; !ok {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) nameTaken(c *course.Course) bool {
	for _, other := range r.s.courses {
		if other.ID != c.ID && other.Name == c.Name {
			return true
		}
	}
	return false
}

func (r *CourseRepository) Update(_ context.Context, c *course.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courses[c.ID]; !ok {
		return repo.ErrNotFound
	}
	if r.nameTaken(c) {
		return repo.ErrAlreadyExists
	}
	stored := *c
	stored.Categories = nil
	stored.CategoryIDs = nil
	r.s.courses[c.ID] = stored
	return nil
}

func (r *CourseRepository) AddCategories(_ context.Context, courseID uuid.UUID, ids []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	links := r.s.courseCats[courseID]
	if links == nil {
		links = map[uuid.UUID]struct{}{}
		r.s.courseCats[courseID] = links
	}
	for _, id := range ids {
		links[id] = struct{}{}
	}
	return nil
}

func (r *CourseRepository) RemoveCategories(_ context.Context, courseID uuid.UUID, ids []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		delete(r.s.courseCats[courseID], id)
	}
	return nil
}

// Delete удаляет курс и всё, что от него зависит (как каскады в БД).
func (r *CourseRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courses[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.courses, id)
	delete(r.s.courseCats, id)
	for chID, ch := range r.s.chapters {
		if ch.CourseID == id {
			delete(r.s.chapters, chID)
			for scID, sc := range r.s.subchapters {
				if sc.ChapterID == chID {
					delete(r.s.subchapters, scID)
				}
			}
		}
	}
	for k, v := range r.s.registrations {
		if v.CourseID == id {
			delete(r.s.registrations, k)
		}
	}
	for k, v := range r.s.feedbacks {
		if v.CourseID == id {
			delete(r.s.feedbacks, k)
		}
	}
	for k, v := range r.s.bans {
		if v.CourseID == id {
			delete(r.s.bans, k)
		}
	}
	return nil
}

// CategoryRepository реализует repo.CategoryRepository в памяти.
type CategoryRepository struct {
	s *Store
}

var _ repo.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) Create(_ context.Context, c *course.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(c) {
		return repo.ErrAlreadyExists
	}
	r.s.categories[c.ID] = *c
	return nil
}

// nameTaken сравнивает названия без учёта регистра, как уникальный индекс по LOWER(name).
func (r *CategoryRepository) nameTaken(c *course.Category) bool {
	for _, other := range r.s.categories {
		if other.ID != c.ID && strings.EqualFold(other.Name, c.Name) {
			return true
		}
	}
	return false
}

func (r *CategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*course.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &c, nil
}

func (r *CategoryRepository) GetByName(_ context.Context, name string) (*course.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if strings.EqualFold(c.Name, name) {
			cp := c
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *CategoryRepository) sorted(match func(course.Category) bool) []*course.Category {
	var out []*course.Category
	for _, c := range r.s.categories {
		if match(c) {
			cp := c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *CategoryRepository) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*course.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	return r.sorted(func(c course.Category) bool { return want[c.ID] }), nil
}

func (r *CategoryRepository) List(_ context.Context) ([]*course.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(course.Category) bool { return true }), nil
}

func (r *CategoryRepository) Update(_ context.Context, c *course.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return repo.ErrNotFound
	}
	if r.nameTaken(c) {
		return repo.ErrAlreadyExists
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.categories, id)
	return nil
}

func (r *CategoryRepository) CountCourses(_ context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, links := range r.s.courseCats {
		if _, ok := links[id]; ok {
			n++
		}
	}
	return n, nil
}
