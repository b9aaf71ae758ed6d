package ban

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domain "course-platform/internal/domain/enrollment"
	repo "course-platform/internal/repository/interfaces"
)

// Service описывает администрирование блокировок пользователей на курсах.
type Service interface {
	List(ctx context.Context) ([]*domain.Ban, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ban, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Ban, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page repo.PageRequest) ([]*domain.Ban, int64, error)

	// Ban блокирует пользователя на курсе и снимает его запись на этот курс.
	Ban(ctx context.Context, userID, courseID uuid.UUID, reason string) (*domain.Ban, error)

	// Unban снимает блокировку.
	Unban(ctx context.Context, id uuid.UUID) error
}

// Допустимая длина причины блокировки.
const (
	MinReasonLen = 5
	MaxReasonLen = 255
)

var (
	ErrBanNotFound    = errors.New("ban not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrCourseNotFound = errors.New("course not found")
	ErrAlreadyBanned  = errors.New("user is already banned on this course")
	ErrInvalidReason  = errors.New("ban reason must be 5..255 characters")
)

type service struct {
	bans          repo.BanRepository
	registrations repo.RegistrationRepository
	users         repo.UserRepository
	courses       repo.CourseRepository
	tx            repo.Transactor
	now           func() time.Time
}

// NewService создаёт сервис блокировок.
func NewService(
	bans repo.BanRepository,
	registrations repo.RegistrationRepository,
	users repo.UserRepository,
	courses repo.CourseRepository,
	tx repo.Transactor,
) Service {
	return &service{
		bans:          bans,
		registrations: registrations,
		users:         users,
		courses:       courses,
		tx:            tx,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) List(ctx context.Context) ([]*domain.Ban, error) {
	return s.bans.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ban, error) {
	b, err := s.bans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBanNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *service) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Ban, error) {
	return s.bans.ListByCourse(ctx, courseID)
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, page repo.PageRequest) ([]*domain.Ban, int64, error) {
	return s.bans.ListByUser(ctx, userID, page.Normalize())
}

func (s *service) Ban(ctx context.Context, userID, courseID uuid.UUID, reason string) (*domain.Ban, error) {
	reason = strings.TrimSpace(reason)
	if n := utf8.RuneCountInString(reason); n < MinReasonLen || n > MaxReasonLen {
		return nil, ErrInvalidReason
	}

	b := domain.NewBan(userID, courseID, reason, s.now())
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, userID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if _, err := s.courses.GetByID(ctx, courseID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrCourseNotFound
			}
			return err
		}
		if _, err := s.bans.Get(ctx, userID, courseID); err == nil {
			return ErrAlreadyBanned
		} else if !errors.Is(err, repo.ErrNotFound) {
			return err
		}

		if err := s.bans.Create(ctx, b); err != nil {
			if errors.Is(err, repo.ErrAlreadyExists) {
				return ErrAlreadyBanned
			}
			return fmt.Errorf("failed to create ban: %w", err)
		}
		if err := s.registrations.Delete(ctx, userID, courseID); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("failed to remove registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Unban(ctx context.Context, id uuid.UUID) error {
	if err := s.bans.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrBanNotFound
		}
		return err
	}
	return nil
}
