package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	domain "course-platform/internal/domain/course"
	repo "course-platform/internal/repository/interfaces"
)

// Service описывает операции над категориями курсов.
type Service interface {
	List(ctx context.Context) ([]*domain.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*domain.Category, error)

	// Delete удаляет категорию, если к ней не привязан ни один курс.
	Delete(ctx context.Context, id uuid.UUID) error
}

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryExists     = errors.New("category already exists")
	ErrCategoryHasCourses = errors.New("category has courses")
	ErrInvalidName        = errors.New("category name is required")
)

type service struct {
	categories repo.CategoryRepository
}

// NewService создаёт сервис категорий.
func NewService(categories repo.CategoryRepository) Service {
	return &service{categories: categories}
}

func (s *service) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *service) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if err := s.ensureFreeName(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	c := domain.NewCategory(name)
	if err := s.categories.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFreeName(ctx, name, id); err != nil {
		return nil, err
	}

	c.Name = name
	if err := s.categories.Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.categories.CountCourses(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count category courses: %w", err)
	}
	if n > 0 {
		return ErrCategoryHasCourses
	}
	return s.categories.Delete(ctx, id)
}

// ensureFreeName проверяет, что имя не занято другой категорией (кроме self).
func (s *service) ensureFreeName(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.categories.GetByName(ctx, name)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return ErrCategoryExists
	}
	return nil
}
