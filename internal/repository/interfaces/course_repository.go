package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "course-platform/internal/domain/course"
)

// CourseRepository определяет контракт хранилища курсов.
type CourseRepository interface {
	// Create сохраняет курс вместе со связями на категории (CategoryIDs).
	Create(ctx context.Context, c *domain.Course) error

	// GetByID возвращает курс с категориями или ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)

	// GetByName возвращает курс с точно таким названием или ErrNotFound.
	GetByName(ctx context.Context, name string) (*domain.Course, error)

	// List возвращает все курсы, отсортированные по дате старта.
	List(ctx context.Context) ([]*domain.Course, error)

	// ListByCreator возвращает курсы автора.
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*domain.Course, error)

	// ListStartingOn возвращает курсы, дата старта которых (UTC) совпадает с одной из дат.
	ListStartingOn(ctx context.Context, dates []time.Time) ([]*domain.Course, error)

	// LockForUpdate блокирует строку курса до конца текущей транзакции или возвращает ErrNotFound.
	LockForUpdate(ctx context.Context, id uuid.UUID) error

	// Update обновляет поля курса (без категорий).
	Update(ctx context.Context, c *domain.Course) error

	// AddCategories добавляет связи курса с категориями.
	AddCategories(ctx context.Context, courseID uuid.UUID, categoryIDs []uuid.UUID) error

	// RemoveCategories удаляет связи курса с категориями.
	RemoveCategories(ctx context.Context, courseID uuid.UUID, categoryIDs []uuid.UUID) error

	// Delete удаляет курс (главы, записи, отзывы и блокировки удаляются каскадно).
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository определяет контракт хранилища категорий.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountCourses возвращает число курсов, привязанных к категории.
	CountCourses(ctx context.Context, id uuid.UUID) (int64, error)
}
