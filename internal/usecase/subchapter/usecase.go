package subchapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	domain "course-platform/internal/domain/chapter"
	repo "course-platform/internal/repository/interfaces"
)

// Service описывает операции над подглавами.
// Номера подглав внутри главы поддерживаются непрерывными (1..N) при создании и удалении.
type Service interface {
	List(ctx context.Context) ([]*domain.SubChapter, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SubChapter, error)
	ListByChapter(ctx context.Context, chapterID uuid.UUID) ([]*domain.SubChapter, error)
	Create(ctx context.Context, input CreateInput) (*domain.SubChapter, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.SubChapter, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, ids []uuid.UUID, numbers []int) error
}

// CreateInput описывает новую подглаву.
type CreateInput struct {
	ChapterID                    uuid.UUID
	Name                         string
	Content                      string
	EstimatedLearningTimeMinutes int
}

// UpdateInput содержит изменяемые поля подглавы.
type UpdateInput struct {
	Name                         string
	Content                      string
	EstimatedLearningTimeMinutes int
}

var (
	ErrSubChapterNotFound = errors.New("subchapter not found")
	ErrSubChapterExists   = errors.New("subchapter with this name already exists in the chapter")
	ErrChapterNotFound    = errors.New("chapter not found")
	ErrInvalidInput       = errors.New("invalid subchapter input")
	ErrInvalidOrder       = errors.New("ids and numbers must have the same length")
)

type service struct {
	subchapters repo.SubChapterRepository
	chapters    repo.ChapterRepository
	tx          repo.Transactor
}

// NewService создаёт сервис подглав.
func NewService(subchapters repo.SubChapterRepository, chapters repo.ChapterRepository, tx repo.Transactor) Service {
	return &service{subchapters: subchapters, chapters: chapters, tx: tx}
}

func (s *service) List(ctx context.Context) ([]*domain.SubChapter, error) {
	return s.subchapters.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.SubChapter, error) {
	sc, err := s.subchapters.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrSubChapterNotFound
		}
		return nil, err
	}
	return sc, nil
}

func (s *service) ListByChapter(ctx context.Context, chapterID uuid.UUID) ([]*domain.SubChapter, error) {
	if err := s.ensureChapter(ctx, chapterID); err != nil {
		return nil, err
	}
	return s.subchapters.ListByChapter(ctx, chapterID)
}

func (s *service) ensureChapter(ctx context.Context, chapterID uuid.UUID) error {
	if _, err := s.chapters.GetByID(ctx, chapterID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrChapterNotFound
		}
		return err
	}
	return nil
}

// lockChapter блокирует главу до конца транзакции, чтобы номера подглав выдавались по очереди.
func (s *service) lockChapter(ctx context.Context, chapterID uuid.UUID) error {
	if err := s.chapters.LockForUpdate(ctx, chapterID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrChapterNotFound
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

func (s *service) Create(ctx context.Context, in CreateInput) (*domain.SubChapter, error) {
	name, err := validate(in.Name, in.EstimatedLearningTimeMinutes)
	if err != nil {
		return nil, err
	}

	sc := &domain.SubChapter{
		ID:                           uuid.New(),
		ChapterID:                    in.ChapterID,
		Name:                         name,
		Content:                      in.Content,
		EstimatedLearningTimeMinutes: in.EstimatedLearningTimeMinutes,
	}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.lockChapter(ctx, in.ChapterID); err != nil {
			return err
		}
		if err := s.ensureFreeName(ctx, in.ChapterID, name, uuid.Nil); err != nil {
			return err
		}
		siblings, err := s.subchapters.ListByChapter(ctx, in.ChapterID)
		if err != nil {
			return err
		}
		sc.Number = domain.NextNumber(numbers(siblings))
		return s.subchapters.Create(ctx, sc)
	})
	if errors.Is(err, repo.ErrAlreadyExists) {
		return nil, ErrSubChapterExists
	}
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.SubChapter, error) {
	name, err := validate(in.Name, in.EstimatedLearningTimeMinutes)
	if err != nil {
		return nil, err
	}
	sc, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFreeName(ctx, sc.ChapterID, name, sc.ID); err != nil {
		return nil, err
	}

	sc.Name = name
	sc.Content = in.Content
	sc.EstimatedLearningTimeMinutes = in.EstimatedLearningTimeMinutes
	if err := s.subchapters.Update(ctx, sc); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, ErrSubChapterExists
		}
		return nil, fmt.Errorf("failed to update subchapter: %w", err)
	}
	return sc, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		sc, err := s.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.lockChapter(ctx, sc.ChapterID); err != nil {
			return err
		}
		if err := s.subchapters.Delete(ctx, sc.ID); err != nil {
			return fmt.Errorf("failed to delete subchapter: %w", err)
		}

		siblings, err := s.subchapters.ListByChapter(ctx, sc.ChapterID)
		if err != nil {
			return err
		}
		for _, i := range domain.ShiftAfter(numbers(siblings), sc.Number) {
			if err := s.subchapters.UpdateNumber(ctx, siblings[i].ID, siblings[i].Number-1); err != nil {
				return fmt.Errorf("failed to renumber subchapter %s: %w", siblings[i].ID, err)
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
			if err := s.subchapters.UpdateNumber(ctx, a.ID, a.Number); err != nil {
				return fmt.Errorf("failed to set subchapter number: %w", err)
			}
		}
		return nil
	})
}

func (s *service) ensureFreeName(ctx context.Context, chapterID uuid.UUID, name string, self uuid.UUID) error {
	existing, err := s.subchapters.GetByNameInChapter(ctx, chapterID, name)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return ErrSubChapterExists
	}
	return nil
}

func numbers(subchapters []*domain.SubChapter) []int {
	out := make([]int, len(subchapters))
	for i, sc := range subchapters {
		out[i] = sc.Number
	}
	return out
}
