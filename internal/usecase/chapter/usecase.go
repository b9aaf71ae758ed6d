package chapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	domain "course-platform/internal/domain/chapter"
	repo "course-platform/internal/repository/interfaces"
)

// Service описывает операции над главами курса.
// Номера глав внутри курса поддерживаются непрерывными (1..N) при создании и удалении.
type Service interface {
	List(ctx context.Context) ([]*domain.Chapter, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Chapter, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Chapter, error)

	// Create добавляет главу в конец курса.
	Create(ctx context.Context, input CreateInput) (*domain.Chapter, error)

	// Update меняет название и оценку времени. Номер не меняется.
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Chapter, error)

	// Delete удаляет главу и сдвигает номера следующих за ней глав.
	Delete(ctx context.Context, id uuid.UUID) error

	// Reorder присваивает numbers[i] главе ids[i]. Либо меняются все, либо ни одна.
	Reorder(ctx context.Context, ids []uuid.UUID, numbers []int) error
}

// CreateInput описывает новую главу.
type CreateInput struct {
	CourseID                     uuid.UUID
	Name                         string
	EstimatedLearningTimeMinutes int
}

// UpdateInput содержит изменяемые поля главы.
type UpdateInput struct {
	Name                         string
	EstimatedLearningTimeMinutes int
}

var (
	ErrChapterNotFound = errors.New("chapter not found")
	ErrChapterExists   = errors.New("chapter with this name already exists in the course")
	ErrCourseNotFound  = errors.New("course not found")
	ErrInvalidInput    = errors.New("invalid chapter input")
	ErrInvalidOrder    = errors.New("ids and numbers must have the same length")
)

type service struct {
	chapters repo.ChapterRepository
	courses  repo.CourseRepository
	tx       repo.Transactor
}

// NewService создаёт сервис глав.
func NewService(chapters repo.ChapterRepository, courses repo.CourseRepository, tx repo.Transactor) Service {
	return &service{chapters: chapters, courses: courses, tx: tx}
}

func (s *service) List(ctx context.Context) ([]*domain.Chapter, error) {
	return s.chapters.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Chapter, error) {
	ch, err := s.chapters.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, err
	}
	return ch, nil
}

func (s *service) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Chapter, error) {
	if err := s.ensureCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return s.chapters.ListByCourse(ctx, courseID)
}

func (s *service) ensureCourse(ctx context.Context, courseID uuid.UUID) error {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	return nil
}

// lockCourse блокирует курс до конца транзакции: создание и удаление глав одного курса
// выполняются по очереди, и расчёт следующего номера не гоняется с параллельной вставкой.
func (s *service) lockCourse(ctx context.Context, courseID uuid.UUID) error {
	if err := s.courses.LockForUpdate(ctx, courseID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	return nil
}

func validate(name string, minutes int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if minutes < 0 {
		return "", fmt.Errorf("%w: estimated learning time must not be negative", ErrInvalidInput)
	}
	return name, nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (*domain.Chapter, error) {
	name, err := validate(in.Name, in.EstimatedLearningTimeMinutes)
	if err != nil {
		return nil, err
	}

	ch := &domain.Chapter{
		ID:                           uuid.New(),
		CourseID:                     in.CourseID,
		Name:                         name,
		EstimatedLearningTimeMinutes: in.EstimatedLearningTimeMinutes,
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.lockCourse(ctx, in.CourseID); err != nil {
			return err
		}
		if err := s.ensureFreeName(ctx, in.CourseID, name, uuid.Nil); err != nil {
			return err
		}
		siblings, err := s.chapters.ListByCourse(ctx, in.CourseID)
		if err != nil {
			return err
		}
		ch.Number = domain.NextNumber(numbers(siblings))
		return s.chapters.Create(ctx, ch)
	})
	if errors.Is(err, repo.ErrAlreadyExists) {
		return nil, ErrChapterExists
	}
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Chapter, error) {
	name, err := validate(in.Name, in.EstimatedLearningTimeMinutes)
	if err != nil {
		return nil, err
	}
	ch, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFreeName(ctx, ch.CourseID, name, ch.ID); err != nil {
		return nil, err
	}

	ch.Name = name
	ch.EstimatedLearningTimeMinutes = in.EstimatedLearningTimeMinutes
	if err := s.chapters.Update(ctx, ch); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, ErrChapterExists
		}
		return nil, fmt.Errorf("failed to update chapter: %w", err)
	}
	return ch, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		ch, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.lockCourse(ctx, ch.CourseID); err != nil {
			return err
		}
		if err := s.chapters.Delete(ctx, ch.ID); err != nil {
			return fmt.Errorf("failed to delete chapter: %w", err)
		}

		siblings, err := s.chapters.ListByCourse(ctx, ch.CourseID)
		if err != nil {
			return err
		}
		for _, i := range domain.ShiftAfter(numbers(siblings), ch.Number) {
			if err := s.chapters.UpdateNumber(ctx, siblings[i].ID, siblings[i].Number-1); err != nil {
				return fmt.Errorf("failed to renumber chapter %s: %w", siblings[i].ID, err)
			}
		}
		return nil
	})
}

func (s *service) Reorder(ctx context.Context, ids []uuid.UUID, nums []int) error {
	plan, err := domain.PlanOrder(ids, nums)
	if err != nil {
		return ErrInvalidOrder
	}
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, a := range plan {
			if _, err := s.GetByID(ctx, a.ID); err != nil {
				return err
			}
		}
		for _, a := range plan {
			if err := s.chapters.UpdateNumber(ctx, a.ID, a.Number); err != nil {
				return fmt.Errorf("failed to set chapter number: %w", err)
			}
		}
		return nil
	})
}

func (s *service) ensureFreeName(ctx context.Context, courseID uuid.UUID, name string, self uuid.UUID) error {
	existing, err := s.chapters.GetByNameInCourse(ctx, courseID, name)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return ErrChapterExists
	}
	return nil
}

func numbers(chapters []*domain.Chapter) []int {
	out := make([]int, len(chapters))
	for i, ch := range chapters {
		out[i] = ch.Number
	}
	return out
}
