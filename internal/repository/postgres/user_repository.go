package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "course-platform/internal/domain/user"
	repo "course-platform/internal/repository/interfaces"
)

// pgUser представляет собой ORM-модель для таблицы users.
// Она максимально близко отражает схему БД и маппится в доменную модель User.
type pgUser struct {
	ID              string     `gorm:"column:id;type:uuid;primaryKey"`
	Email           string     `gorm:"column:email;type:varchar(255);not null"`
	PasswordHash    string     `gorm:"column:password_hash;type:varchar(255);not null"`
	Username        string     `gorm:"column:username;type:varchar(255);not null"`
	PhoneNumber     string     `gorm:"column:phone_number;type:varchar(32)"`
	Role            string     `gorm:"column:role;type:varchar(64);not null"`
	IsEmailVerified bool       `gorm:"column:is_email_verified;not null;default:false"`
	CreatedAt       time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;not null"`
	DeletedAt       *time.Time `gorm:"column:deleted_at"`
}

func (pgUser) TableName() string {
	return "users"
}

// UserRepository реализует repo.UserRepository с использованием GORM и Postgres.
type UserRepository struct {
	db *gorm.DB
}

// Убедимся на этапе компиляции, что структура реализует интерфейс.
var _ repo.UserRepository = (*UserRepository)(nil)

// NewUserRepository создает новый репозиторий пользователей.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// toDomain маппит ORM-модель в доменную.
func (m *pgUser) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		ID:              id,
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		Username:        m.Username,
		PhoneNumber:     m.PhoneNumber,
		Role:            domain.Role(m.Role),
		IsEmailVerified: m.IsEmailVerified,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       m.DeletedAt,
	}, nil
}

// fromDomain маппит доменную модель в ORM-модель.
func fromDomain(u *domain.User) *pgUser {
	return &pgUser{
		ID:              u.ID.String(),
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		Username:        u.Username,
		PhoneNumber:     u.PhoneNumber,
		Role:            string(u.Role),
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
		DeletedAt:       u.DeletedAt,
	}
}

func usersToDomain(models []pgUser) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(models))
	for i := range models {
		u, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// mapUserConflict переводит нарушение уникальности в доменные ошибки.
func mapUserConflict(err error) error {
	if isUniqueViolation(err, "idx_users_email_unique") {
		return repo.ErrEmailExists
	}
	if isUniqueViolation(err, "idx_users_username_unique") {
		return repo.ErrUsernameExists
	}
	return err
}

// Create создает нового пользователя в БД.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := conn(ctx, r.db).Create(fromDomain(user)).Error; err != nil {
		return mapUserConflict(err)
	}
	return nil
}

// oneByCondition возвращает одну запись по условию с учётом soft delete.
func (r *UserRepository) oneByCondition(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var model pgUser
	err := conn(ctx, r.db).
		Where("deleted_at IS NULL").
		Where(query, args...).
		Take(&model).Error
	if err != nil {
		return nil, notFound(err)
	}
	return model.toDomain()
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.oneByCondition(ctx, "id = ?", id.String())
}

// GetByEmail возвращает пользователя по email (без учёта регистра).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.oneByCondition(ctx, "LOWER(email) = ?", strings.ToLower(email))
}

// GetByUsername возвращает пользователя по username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.oneByCondition(ctx, "username = ?", username)
}

// ListByIDs возвращает активных пользователей из списка.
func (r *UserRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []pgUser
	err := conn(ctx, r.db).
		Where("deleted_at IS NULL").
		Where("id IN ?", uuidStrings(ids)).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return usersToDomain(models)
}

// List возвращает страницу активных пользователей с поиском по email/username.
func (r *UserRepository) List(ctx context.Context, search string, page repo.PageRequest) ([]*domain.User, int64, error) {
	page = page.Normalize()

	q := conn(ctx, r.db).Model(&pgUser{}).Where("deleted_at IS NULL")
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(username) LIKE ?", like, like)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []pgUser
	err := q.Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	users, err := usersToDomain(models)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update обновляет данные пользователя.
// Не обновляет защищенные поля: id, created_at.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	model := fromDomain(user)

	// Используем выборочное обновление для защиты критичных полей
	updates := map[string]interface{}{
		"email":             model.Email,
		"username":          model.Username,
		"password_hash":     model.PasswordHash,
		"phone_number":      model.PhoneNumber,
		"role":              model.Role,
		"is_email_verified": model.IsEmailVerified,
		"updated_at":        time.Now().UTC(),
	}

	result := conn(ctx, r.db).
		Model(&pgUser{}).
		Where("id = ? AND deleted_at IS NULL", model.ID).
		Updates(updates)

	if result.Error != nil {
		return mapUserConflict(result.Error)
	}

	// Если ни одна строка не была обновлена — пользователя нет или он уже удалён
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	return nil
}

// SoftDelete помечает пользователя как удалённого.
// Синхронизировано с доменным методом MarkDeleted (также обновляет updated_at).
func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()

	result := conn(ctx, r.db).
		Model(&pgUser{}).
		Where("id = ? AND deleted_at IS NULL", id.String()).
		Updates(map[string]interface{}{
			"deleted_at": now,
			"updated_at": now,
		})

	if result.Error != nil {
		return result.Error
	}

	// Проверяем, была ли обновлена хотя бы одна запись
	if result.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	return nil
}
