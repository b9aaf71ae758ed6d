package verification

import (
	"context"
	"fmt"
	"time"

	domain "course-platform/internal/domain/user"
	repo "course-platform/internal/repository/interfaces"
	"course-platform/pkg/password"
)

// Result представляет результат проверки токена.
type Result int

const (
	Success Result = iota
	TokenInvalid
	AttemptsExceeded
	Expired
)

// String возвращает значение для параметра status в редиректе на фронтенд.
func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case TokenInvalid:
		return "invalid"
	case AttemptsExceeded:
		return "attempts_exceeded"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// VerifyToken проверяет токен подтверждения и учитывает неудачные попытки.
// Счётчик попыток перечитывается из БД после инкремента, чтобы параллельные запросы не обошли лимит.
func VerifyToken(
	ctx context.Context,
	v *domain.EmailVerification,
	token string,
	now time.Time,
	emailVerifs repo.EmailVerificationRepository,
) (Result, error) {
	if v.IsExpired(now) {
		return Expired, nil
	}
	if v.MaxAttempts > 0 && v.Attempts >= v.MaxAttempts {
		return AttemptsExceeded, nil
	}

	if err := password.Compare(v.TokenHash, token); err == nil {
		return Success, nil
	}

	if err := emailVerifs.IncrementAttempts(ctx, v.ID); err != nil {
		return 0, fmt.Errorf("failed to increment attempts: %w", err)
	}

	updated, err := emailVerifs.GetByID(ctx, v.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to get verification by ID: %w", err)
	}
	if updated.MaxAttempts > 0 && updated.Attempts >= updated.MaxAttempts {
		return AttemptsExceeded, nil
	}
	return TokenInvalid, nil
}
