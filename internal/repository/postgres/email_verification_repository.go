package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "course-platform/internal/domain/user"
	repo "course-platform/internal/repository/interfaces"
)

// pgEmailVerification представляет ORM-модель для таблицы email_verifications.
type pgEmailVerification struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      string    `gorm:"column:user_id;type:uuid;not null"`
	TokenHash   string    `gorm:"column:token_hash;type:varchar(255);not null"`
	ExpiresAt   time.Time `gorm:"column:expires_at;not null"`
	Attempts    int       `gorm:"column:attempts;not null"`
	MaxAttempts int       `gorm:"column:max_attempts;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
}

func (pgEmailVerification) TableName() string {
	return "email_verifications"
}

func (m *pgEmailVerification) toDomain() (*domain.EmailVerification, error) {
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, err
	}

	return &domain.EmailVerification{
		ID:          m.ID,
		UserID:      userID,
		TokenHash:   m.TokenHash,
		ExpiresAt:   m.ExpiresAt,
		Attempts:    m.Attempts,
		MaxAttempts: m.MaxAttempts,
		CreatedAt:   m.CreatedAt,
	}, nil
}

func fromDomainEmailVerification(v *domain.EmailVerification) *pgEmailVerification {
	return &pgEmailVerification{
		ID:          v.ID,
		UserID:      v.UserID.String(),
		TokenHash:   v.TokenHash,
		ExpiresAt:   v.ExpiresAt,
		Attempts:    v.Attempts,
		MaxAttempts: v.MaxAttempts,
		CreatedAt:   v.CreatedAt,
	}
}

// EmailVerificationRepository реализует repo.EmailVerificationRepository на GORM/Postgres.
type EmailVerificationRepository struct {
	db *gorm.DB
}

// Убедимся на этапе компиляции, что структура реализует интерфейс.
var _ repo.EmailVerificationRepository = (*EmailVerificationRepository)(nil)

// NewEmailVerificationRepository создает новый репозиторий для токенов подтверждения email.
func NewEmailVerificationRepository(db *gorm.DB) *EmailVerificationRepository {
	return &EmailVerificationRepository{db: db}
}

// Create создает новую запись с токеном подтверждения email.
func (r *EmailVerificationRepository) Create(ctx context.Context, v *domain.EmailVerification) error {
	model := fromDomainEmailVerification(v)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	v.ID = model.ID
	return nil
}

// GetByID возвращает запись верификации по её ID.
func (r *EmailVerificationRepository) GetByID(ctx context.Context, id int64) (*domain.EmailVerification, error) {
	var model pgEmailVerification
	if err := conn(ctx, r.db).Where("id = ?", id).Take(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.toDomain()
}

// GetLatestByUserID возвращает последнюю запись пользователя, включая истёкшие.
// Срок действия проверяет usecase-слой, чтобы отличать истёкший токен от отсутствующего.
func (r *EmailVerificationRepository) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*domain.EmailVerification, error) {
	var model pgEmailVerification
	err := conn(ctx, r.db).
		Where("user_id = ?", userID.String()).
		Order("created_at DESC").
		Order("id DESC").
		Take(&model).Error
	if err != nil {
		return nil, notFound(err)
	}
	return model.toDomain()
}

// IncrementAttempts увеличивает счетчик попыток для записи по её ID.
func (r *EmailVerificationRepository) IncrementAttempts(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).
		Model(&pgEmailVerification{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1"))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// DeleteByUserID удаляет все записи токенов для указанного пользователя.
func (r *EmailVerificationRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return conn(ctx, r.db).
		Where("user_id = ?", userID.String()).
		Delete(&pgEmailVerification{}).Error
}
