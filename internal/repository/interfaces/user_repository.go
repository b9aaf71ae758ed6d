package interfaces

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domain "course-platform/internal/domain/user"
)

// ErrNotFound возвращается, когда сущность не найдена в хранилище.
var ErrNotFound = errors.New("entity not found")

// ErrAlreadyExists возвращается при нарушении уникального ограничения (имя категории или курса,
// пара пользователь-курс для записи, отзыва и бана, имя главы внутри курса).
var ErrAlreadyExists = errors.New("entity already exists")

// ErrEmailExists возвращается, когда пользователь с таким email уже существует.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists возвращается, когда пользователь с таким username уже существует.
var ErrUsernameExists = errors.New("username already exists")

// UserRepository определяет контракт для работы с пользователями на уровне хранилища.
//
// Интерфейс оперирует доменной моделью User и не раскрывает деталей реализации (GORM, SQL и т.п.).
type UserRepository interface {
	// Create создает нового пользователя.
	// Возвращает ErrEmailExists, если email уже используется.
	// Возвращает ErrUsernameExists, если username уже используется.
	Create(ctx context.Context, user *domain.User) error

	// GetByID возвращает пользователя по идентификатору.
	// Возвращает (nil, ErrNotFound), если пользователь не найден или мягко удалён.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail возвращает пользователя по email.
	// Возвращает (nil, ErrNotFound), если пользователь не найден или мягко удалён.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername возвращает пользователя по username.
	// Возвращает (nil, ErrNotFound), если пользователь не найден или мягко удалён.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListByIDs возвращает активных пользователей из списка идентификаторов.
	// Отсутствующие и удалённые пропускаются.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)

	// List возвращает страницу активных пользователей.
	// search (если не пуст) ищется по подстроке в email и username без учёта регистра.
	List(ctx context.Context, search string, page PageRequest) ([]*domain.User, int64, error)

	// Update обновляет данные пользователя.
	// Не обновляет защищенные поля: id, created_at.
	Update(ctx context.Context, user *domain.User) error

	// SoftDelete помечает пользователя как удалённого (soft delete).
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
