package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"course-platform/internal/domain/enrollment"
	domain "course-platform/internal/domain/user"
	repo "course-platform/internal/repository/interfaces"
	"course-platform/pkg/password"
	"course-platform/pkg/validation"
)

// Service описывает usecase-слой для работы с пользователем:
// профиль, административный список, мягкое удаление и запись на курсы.
type Service interface {
	// GetByID возвращает пользователя по идентификатору.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetProfile возвращает профиль текущего пользователя (по его ID).
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile меняет телефон и/или пароль текущего пользователя.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileUpdateInput) (*domain.User, error)

	// DeleteAccount мягко удаляет пользователя targetID от имени actor.
	// Обычный пользователь может удалить только себя, администратор не может удалить другого администратора.
	DeleteAccount(ctx context.Context, actor Actor, targetID uuid.UUID) error

	// ListUsers возвращает страницу активных пользователей с поиском по email/username.
	ListUsers(ctx context.Context, search string, page repo.PageRequest) ([]*domain.User, int64, error)

	// Enroll записывает пользователя на курс.
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (*enrollment.Registration, error)

	// Unregister снимает запись пользователя на курс.
	Unregister(ctx context.Context, userID, courseID uuid.UUID) error

	// ListRegistrations возвращает страницу записей пользователя на курсы.
	ListRegistrations(ctx context.Context, userID uuid.UUID, page repo.PageRequest) ([]*enrollment.Registration, int64, error)
}

// ProfileUpdateInput описывает допустимые изменения в профиле. Все поля опциональны.
// Для смены пароля нужны оба поля: OldPassword и NewPassword.
type ProfileUpdateInput struct {
	PhoneNumber *string
	OldPassword *string
	NewPassword *string
}

// Actor — пользователь, от имени которого выполняется операция.
type Actor struct {
	ID      uuid.UUID
	IsAdmin bool
}

// Ошибки бизнес-логики usecase-слоя.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidPassword     = errors.New("old password is incorrect")
	ErrWeakPassword        = errors.New("password is too weak")
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrUnauthorizedAccess  = errors.New("unauthorized access")
	ErrCannotDeleteAdmin   = errors.New("admin cannot delete another admin")
	ErrCourseNotFound      = errors.New("course not found")
	ErrBannedFromCourse    = errors.New("user is banned from this course")
	ErrAlreadyRegistered   = errors.New("user is already registered on this course")
	ErrCourseFinished      = errors.New("course has already finished")
	ErrRegistrationMissing = errors.New("user is not registered on this course")
)

type service struct {
	users         repo.UserRepository
	courses       repo.CourseRepository
	registrations repo.RegistrationRepository
	bans          repo.BanRepository
	tx            repo.Transactor
	adminRole     domain.Role
	now           func() time.Time
}

// NewService создаёт новый сервис пользователей.
func NewService(
	users repo.UserRepository,
	courses repo.CourseRepository,
	registrations repo.RegistrationRepository,
	bans repo.BanRepository,
	tx repo.Transactor,
	adminRole domain.Role,
) Service {
	return &service{
		users:         users,
		courses:       courses,
		registrations: registrations,
		bans:          bans,
		tx:            tx,
		adminRole:     adminRole,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// GetByID возвращает пользователя по ID.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetProfile возвращает профиль пользователя.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.GetByID(ctx, userID)
}

// UpdateProfile обновляет телефон и пароль пользователя.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileUpdateInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.PhoneNumber != nil {
		phone := strings.TrimSpace(*input.PhoneNumber)
		if phone != "" && !validation.IsPhone(phone) {
			return nil, ErrInvalidPhone
		}
		user.PhoneNumber = phone
	}

	if input.NewPassword != nil {
		if input.OldPassword == nil || password.Compare(user.PasswordHash, *input.OldPassword) != nil {
			return nil, ErrInvalidPassword
		}
		if !validation.IsStrongPassword(*input.NewPassword) {
			return nil, ErrWeakPassword
		}
		hashed, err := password.Hash(*input.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hashed
	}

	user.Touch(s.now())
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount выполняет мягкое удаление аккаунта.
func (s *service) DeleteAccount(ctx context.Context, actor Actor, targetID uuid.UUID) error {
	if !actor.IsAdmin && actor.ID != targetID {
		return ErrUnauthorizedAccess
	}
	target, err := s.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if actor.IsAdmin && actor.ID != targetID && target.HasRole(s.adminRole) {
		return ErrCannotDeleteAdmin
	}
	if err := s.users.SoftDelete(ctx, targetID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ListUsers возвращает страницу активных пользователей.
func (s *service) ListUsers(ctx context.Context, search string, page repo.PageRequest) ([]*domain.User, int64, error) {
	return s.users.List(ctx, strings.TrimSpace(search), page.Normalize())
}

// Enroll записывает пользователя на курс.
func (s *service) Enroll(ctx context.Context, userID, courseID uuid.UUID) (*enrollment.Registration, error) {
	reg := enrollment.NewRegistration(userID, courseID, s.now())
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.courses.GetByID(ctx, courseID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrCourseNotFound
			}
			return err
		}
		if _, err := s.bans.Get(ctx, userID, courseID); err == nil {
			return ErrBannedFromCourse
		} else if !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		if _, err := s.registrations.Get(ctx, userID, courseID); err == nil {
			return ErrAlreadyRegistered
		} else if !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		if c.IsFinished(s.now()) {
			return ErrCourseFinished
		}
		return s.registrations.Create(ctx, reg)
	})
	if errors.Is(err, repo.ErrAlreadyExists) {
		return nil, ErrAlreadyRegistered
	}
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// Unregister снимает запись пользователя на курс.
func (s *service) Unregister(ctx context.Context, userID, courseID uuid.UUID) error {
	if err := s.registrations.Delete(ctx, userID, courseID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRegistrationMissing
		}
		return err
	}
	return nil
}

// ListRegistrations возвращает страницу записей пользователя (новые первыми).
func (s *service) ListRegistrations(ctx context.Context, userID uuid.UUID, page repo.PageRequest) ([]*enrollment.Registration, int64, error) {
	return s.registrations.ListByUser(ctx, userID, page.Normalize())
}
