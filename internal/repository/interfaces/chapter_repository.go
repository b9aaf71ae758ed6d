package interfaces

import (
	"context"

	"github.com/google/uuid"

	domain "course-platform/internal/domain/chapter"
)

// ChapterRepository определяет контракт хранилища глав курса.
type ChapterRepository interface {
	Create(ctx context.Context, ch *domain.Chapter) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Chapter, error)

	// GetByNameInCourse ищет главу по названию в пределах курса.
	GetByNameInCourse(ctx context.Context, courseID uuid.UUID, name string) (*domain.Chapter, error)

	// LockForUpdate блокирует строку главы до конца текущей транзакции или возвращает ErrNotFound.
	LockForUpdate(ctx context.Context, id uuid.UUID) error

	// List возвращает все главы, упорядоченные по курсу и номеру.
	List(ctx context.Context) ([]*domain.Chapter, error)

	// ListByCourse возвращает главы курса, упорядоченные по номеру.
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Chapter, error)

	// Update обновляет название, оценку времени и номер главы.
	Update(ctx context.Context, ch *domain.Chapter) error

	// UpdateNumber меняет только номер главы.
	UpdateNumber(ctx context.Context, id uuid.UUID, number int) error

	// Delete удаляет главу (подглавы удаляются каскадно).
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubChapterRepository определяет контракт хранилища подглав.
type SubChapterRepository interface {
	Create(ctx context.Context, sc *domain.SubChapter) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SubChapter, error)

	// GetByNameInChapter ищет подглаву по названию в пределах главы.
	GetByNameInChapter(ctx context.Context, chapterID uuid.UUID, name string) (*domain.SubChapter, error)

	// List возвращает все подглавы, упорядоченные по главе и номеру.
	List(ctx context.Context) ([]*domain.SubChapter, error)

	// ListByChapter возвращает подглавы главы, упорядоченные по номеру.
	ListByChapter(ctx context.Context, chapterID uuid.UUID) ([]*domain.SubChapter, error)

	Update(ctx context.Context, sc *domain.SubChapter) error
	UpdateNumber(ctx context.Context, id uuid.UUID, number int) error
	Delete(ctx context.Context, id uuid.UUID) error
}
