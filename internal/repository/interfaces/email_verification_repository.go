package interfaces

import (
	"context"

	"github.com/google/uuid"

	domain "course-platform/internal/domain/user"
)

// EmailVerificationRepository определяет контракт для работы с токенами подтверждения email.
type EmailVerificationRepository interface {
	// Create создает новую запись с токеном подтверждения email.
	Create(ctx context.Context, v *domain.EmailVerification) error

	// GetByID возвращает запись по её идентификатору.
	GetByID(ctx context.Context, id int64) (*domain.EmailVerification, error)

	// GetLatestByUserID возвращает последнюю запись пользователя (в том числе истёкшую).
	// Возвращает (nil, ErrNotFound), если записей нет.
	GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*domain.EmailVerification, error)

	// IncrementAttempts увеличивает счетчик попыток для записи по её ID.
	IncrementAttempts(ctx context.Context, id int64) error

	// DeleteByUserID удаляет все записи токенов для указанного пользователя.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
