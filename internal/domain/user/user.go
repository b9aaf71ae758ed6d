package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role описывает роль пользователя в системе.
// Конкретные имена ролей (например, "Admin" и "User") задаются конфигурацией.
type Role string

// User представляет доменную модель пользователя платформы курсов.
//
// Важно: эта модель описывает бизнес‑сущность и не зависит от деталей транспорта (HTTP)
// и конкретного представления в БД.
type User struct {
	ID           uuid.UUID // Уникальный идентификатор пользователя
	Email        string    // Email (уникальный логин)
	PasswordHash string    // Хэш пароля
	Username     string    // Никнейм (уникальный)
	PhoneNumber  string    // Телефон (опционально)
	Role         Role      // Роль

	IsEmailVerified bool // Подтверждён ли email пользователя

	CreatedAt time.Time  // Время создания
	UpdatedAt time.Time  // Время последнего обновления
	DeletedAt *time.Time // Для мягкого удаления (nil, если активен)
}

// NewUser — фабрика для создания нового пользователя на доменном уровне.
// Предполагается, что валидация входных данных и хеширование пароля
// выполняются на уровне usecase‑слоя до вызова этой функции.
func NewUser(
	email string,
	passwordHash string,
	username string,
	role Role,
) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Username:     username,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsDeleted возвращает true, если пользователь мягко удалён.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// MarkDeleted помечает пользователя как удалённого и обновляет время обновления.
func (u *User) MarkDeleted(at time.Time) {
	u.DeletedAt = &at
	u.UpdatedAt = at
}

// Touch обновляет время последнего изменения сущности.
func (u *User) Touch(at time.Time) {
	u.UpdatedAt = at
}

// HasRole сообщает, совпадает ли роль пользователя с указанной (без учёта регистра).
func (u *User) HasRole(role Role) bool {
	return strings.EqualFold(string(u.Role), string(role))
}

// EmailVerification представляет доменную модель токена подтверждения email.
type EmailVerification struct {
	ID          int64     // Идентификатор записи (соответствует BIGSERIAL в БД)
	UserID      uuid.UUID // Пользователь, для которого создан токен
	TokenHash   string    // Хэш одноразового токена подтверждения
	ExpiresAt   time.Time // Время истечения токена
	Attempts    int       // Количество неудачных попыток
	MaxAttempts int       // Максимально допустимое количество попыток
	CreatedAt   time.Time // Время создания записи
}

// IsExpired сообщает, истёк ли токен к моменту now.
func (v *EmailVerification) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
