package feedback

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

// Service описывает операции над отзывами о курсах.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Feedback, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Feedback, error)

	// Create оставляет отзыв от имени пользователя, записанного на курс.
	Create(ctx context.Context, userID, courseID uuid.UUID, content string, rating int) (*domain.Feedback, error)

	// Delete удаляет отзыв. Удалить может автор или администратор.
	Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error
}

var (
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrNotRegistered    = errors.New("user is not registered on this course")
	ErrFeedbackExists   = errors.New("feedback already exists")
	ErrInvalidInput     = errors.New("invalid feedback input")
	ErrForbidden        = errors.New("only the author or an admin can delete feedback")
)

type service struct {
	feedbacks     repo.FeedbackRepository
	registrations repo.RegistrationRepository
	courses       repo.CourseRepository
	now           func() time.Time
}

// NewService создаёт сервис отзывов.
func NewService(feedbacks repo.FeedbackRepository, registrations repo.RegistrationRepository, courses repo.CourseRepository) Service {
	return &service{
		feedbacks:     feedbacks,
		registrations: registrations,
		courses:       courses,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	f, err := s.feedbacks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Feedback, error) {
	return s.feedbacks.ListByUser(ctx, userID)
}

func (s *service) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*domain.Feedback, error) {
	return s.feedbacks.ListByCourse(ctx, courseID)
}

func (s *service) Create(ctx context.Context, userID, courseID uuid.UUID, content string, rating int) (*domain.Feedback, error) {
	content = strings.TrimSpace(content)
	if n := utf8.RuneCountInString(content); n < domain.MinFeedbackChars || n > domain.MaxFeedbackChars {
		return nil, fmt.Errorf("%w: content must be %d..%d characters", ErrInvalidInput, domain.MinFeedbackChars, domain.MaxFeedbackChars)
	}
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, fmt.Errorf("%w: rating must be %d..%d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if _, err := s.registrations.Get(ctx, userID, courseID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}
	if _, err := s.feedbacks.GetByUserAndCourse(ctx, userID, courseID); err == nil {
		return nil, ErrFeedbackExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	f := domain.NewFeedback(userID, courseID, content, rating, s.now())
	if err := s.feedbacks.Create(ctx, f); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return nil, ErrFeedbackExists
		}
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return f, nil
}

func (s *service) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	f, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && f.UserID != actorID {
		return ErrForbidden
	}
	if err := s.feedbacks.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrFeedbackNotFound
		}
		return err
	}
	return nil
}
