package interfaces

import (
	"context"

	"github.com/google/uuid"

	domain "course-platform/internal/domain/enrollment"
)

// RegistrationRepository определяет контракт хранилища записей на курсы.
type RegistrationRepository interface {
	Create(ctx context.Context, r *domain.Registration) error

	// Get возвращает запись пользователя на курс или ErrNotFound.
	Get(ctx context.Context, userID, courseID uuid.UUID) (*domain.Registration, error)

	// Delete удаляет запись пользователя на курс. ErrNotFound, если её нет.
	Delete(ctx context.Context, userID, courseID uuid.UUID) error

	// ListByCourse возвращает все записи на курс.
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Registration, error)

	// ListByUser возвращает страницу записей пользователя (новые первыми) и общее количество.
	ListByUser(ctx context.Context, userID uuid.UUID, page PageRequest) ([]*domain.Registration, int64, error)
}

// FeedbackRepository определяет контракт хранилища отзывов.
type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)

	// GetByUserAndCourse возвращает отзыв пользователя о курсе или ErrNotFound.
	GetByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.Feedback, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Feedback, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Feedback, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BanRepository определяет контракт хранилища блокировок на курсах.
type BanRepository interface {
	Create(ctx context.Context, b *domain.Ban) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ban, error)

	// Get возвращает блокировку пользователя на курсе или ErrNotFound.
	Get(ctx context.Context, userID, courseID uuid.UUID) (*domain.Ban, error)

	List(ctx context.Context) ([]*domain.Ban, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Ban, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page PageRequest) ([]*domain.Ban, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
