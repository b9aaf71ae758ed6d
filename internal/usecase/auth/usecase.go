package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "course-platform/internal/domain/user"
	repo "course-platform/internal/repository/interfaces"
	jwtsvc "course-platform/pkg/jwt"
	"course-platform/pkg/logger"
	"course-platform/pkg/password"
	"course-platform/pkg/verification"
)

// EmailSender описывает контракт для отправки письма со ссылкой подтверждения email.
type EmailSender interface {
	SendVerificationEmail(ctx context.Context, to, username, link string, expiresIn time.Duration, resend bool) error
}

// Service описывает usecase-слой, связанный с аутентификацией:
// регистрацию, подтверждение email и логин.
type Service interface {
	// Register регистрирует пользователя, создаёт токен подтверждения email, отправляет письмо
	// и возвращает пользователя с парой access/refresh токенов.
	Register(ctx context.Context, email, password, username string) (*domain.User, string, string, error)

	// Login выполняет вход по email/паролю.
	// Возвращает пользователя и пару access/refresh токенов.
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)

	// Refresh обновляет пару access/refresh токенов по действительному refresh-токену.
	Refresh(ctx context.Context, refreshToken string) (*domain.User, string, string, error)

	// VerifyEmail проверяет токен из ссылки и отмечает email подтверждённым.
	VerifyEmail(ctx context.Context, userID uuid.UUID, token string) (*domain.User, error)

	// ResendVerification выпускает новый токен и повторно отправляет письмо.
	// Для уже подтверждённого email ничего не делает.
	ResendVerification(ctx context.Context, email string) error
}

// Ошибки бизнес-логики usecase-слоя.
var (
	ErrUserNotFound                 = errors.New("user not found")
	ErrEmailAlreadyVerified         = errors.New("email already verified")
	ErrVerificationNotFound         = errors.New("verification token not found")
	ErrVerificationTokenInvalid     = errors.New("verification token invalid")
	ErrVerificationTokenExpired     = errors.New("verification token expired")
	ErrVerificationAttemptsExceeded = errors.New("verification attempts exceeded")
	ErrInvalidCredentials           = errors.New("invalid email or password")
	ErrInvalidRefreshToken          = errors.New("invalid refresh token")
)

// Config — параметры auth usecase.
type Config struct {
	UserRole        domain.Role   // Роль, назначаемая при регистрации
	VerificationTTL time.Duration // Время жизни токена подтверждения
	MaxAttempts     int           // Допустимое число неверных попыток
	PublicURL       string        // Публичный адрес API для ссылки в письме
}

type service struct {
	users       repo.UserRepository
	emailVerifs repo.EmailVerificationRepository
	tx          repo.Transactor
	jwt         jwtsvc.Service
	emailSender EmailSender
	cfg         Config
	logger      logger.Logger
	now         func() time.Time
}

// NewService создаёт новый auth usecase-сервис.
func NewService(
	users repo.UserRepository,
	emailVerifs repo.EmailVerificationRepository,
	tx repo.Transactor,
	jwt jwtsvc.Service,
	emailSender EmailSender,
	cfg Config,
	log logger.Logger,
) Service {
	return &service{
		users:       users,
		emailVerifs: emailVerifs,
		tx:          tx,
		jwt:         jwt,
		emailSender: emailSender,
		cfg:         cfg,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// VerificationLink строит ссылку подтверждения email, ведущую на API.
func VerificationLink(publicURL string, userID uuid.UUID, token string) string {
	q := url.Values{}
	q.Set("userId", userID.String())
	q.Set("token", token)
	return strings.TrimRight(publicURL, "/") + "/api/v1/users/verify-email?" + q.Encode()
}

// Register регистрирует нового пользователя и отправляет ссылку подтверждения email.
func (s *service) Register(ctx context.Context, email, rawPassword, username string) (*domain.User, string, string, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if email == "" || rawPassword == "" || username == "" {
		return nil, "", "", fmt.Errorf("email, password and username are required")
	}

	// Хешируем пароль на уровне usecase.
	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.NewUser(email, hashed, username, s.cfg.UserRole)

	var token string
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ensureUnique(ctx, email, username); err != nil {
			return err
		}
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
		token, err = s.issueVerification(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, "", "", err
	}

	s.sendVerification(ctx, user, token, false)

	access, refresh, err := s.tokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *service) ensureUnique(ctx context.Context, email, username string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return repo.ErrEmailExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return repo.ErrUsernameExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	return nil
}

// issueVerification удаляет прежние токены пользователя и создаёт новый. Возвращает сырой токен.
func (s *service) issueVerification(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := verification.GenerateToken(verification.DefaultTokenBytes)
	if err != nil {
		return "", err
	}
	tokenHash, err := password.Hash(token)
	if err != nil {
		return "", fmt.Errorf("failed to hash verification token: %w", err)
	}

	if err := s.emailVerifs.DeleteByUserID(ctx, userID); err != nil {
		return "", err
	}

	now := s.now()
	return token, s.emailVerifs.Create(ctx, &domain.EmailVerification{
		UserID:      userID,
		TokenHash:   tokenHash,
		ExpiresAt:   now.Add(s.cfg.VerificationTTL),
		MaxAttempts: s.cfg.MaxAttempts,
		CreatedAt:   now,
	})
}

// sendVerification отправляет письмо. Ошибка отправки не отменяет регистрацию: письмо можно запросить повторно.
func (s *service) sendVerification(ctx context.Context, user *domain.User, token string, resend bool) {
	link := VerificationLink(s.cfg.PublicURL, user.ID, token)
	if err := s.emailSender.SendVerificationEmail(ctx, user.Email, user.Username, link, s.cfg.VerificationTTL, resend); err != nil {
		s.logger.Error("failed to send verification email", map[string]any{
			"user_id": user.ID.String(),
			"email":   user.Email,
			"err":     err.Error(),
		})
	}
}

// Login выполняет вход по email/паролю.
func (s *service) Login(ctx context.Context, email, rawPassword string) (*domain.User, string, string, error) {
	if email == "" || rawPassword == "" {
		return nil, "", "", fmt.Errorf("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.tokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// Refresh обновляет пару access/refresh токенов по действительному refresh-токену.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*domain.User, string, string, error) {
	if refreshToken == "" {
		return nil, "", "", fmt.Errorf("refresh token is required")
	}

	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, "", "", ErrInvalidRefreshToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, "", "", ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", "", ErrInvalidRefreshToken
		}
		return nil, "", "", err
	}

	// Не выдаём новые токены для мягко удалённых пользователей.
	if user.IsDeleted() {
		return nil, "", "", ErrInvalidRefreshToken
	}

	access, refresh, err := s.tokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

// VerifyEmail подтверждает email по токену из ссылки.
func (s *service) VerifyEmail(ctx context.Context, userID uuid.UUID, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrVerificationTokenInvalid
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.IsEmailVerified {
		return user, ErrEmailAlreadyVerified
	}

	v, err := s.emailVerifs.GetLatestByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}

	result, err := verification.VerifyToken(ctx, v, token, s.now(), s.emailVerifs)
	if err != nil {
		return nil, err
	}
	switch result {
	case verification.Expired:
		return nil, ErrVerificationTokenExpired
	case verification.AttemptsExceeded:
		return nil, ErrVerificationAttemptsExceeded
	case verification.TokenInvalid:
		return nil, ErrVerificationTokenInvalid
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user.IsEmailVerified = true
		user.Touch(s.now())
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
		return s.emailVerifs.DeleteByUserID(ctx, user.ID)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ResendVerification выпускает новый токен подтверждения и отправляет письмо повторно.
func (s *service) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.IsEmailVerified {
		return nil
	}

	var token string
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		token, err = s.issueVerification(ctx, user.ID)
		return err
	})
	if err != nil {
		return err
	}

	link := VerificationLink(s.cfg.PublicURL, user.ID, token)
	if err := s.emailSender.SendVerificationEmail(ctx, user.Email, user.Username, link, s.cfg.VerificationTTL, true); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func (s *service) tokens(user *domain.User) (string, string, error) {
	access, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return "", "", err
	}
	refresh, _, err := s.jwt.GenerateRefreshToken(user)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
