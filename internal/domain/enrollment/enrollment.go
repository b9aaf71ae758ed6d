package enrollment

import (
	"time"

	"github.com/google/uuid"
)

// Registration — запись пользователя на курс.
type Registration struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CourseID     uuid.UUID
	RegisteredAt time.Time
}

// NewRegistration создаёт запись на курс на момент at.
func NewRegistration(userID, courseID uuid.UUID, at time.Time) *Registration {
	return &Registration{ID: uuid.New(), UserID: userID, CourseID: courseID, RegisteredAt: at.UTC()}
}

// Feedback описывает отзыв пользователя о курсе.
type Feedback struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CourseID  uuid.UUID
	Content   string
	Rating    int // 1..10
	CreatedAt time.Time
}

// Границы допустимых значений отзыва.
const (
	MinRating        = 1
	MaxRating        = 10
	MinFeedbackChars = 5
	MaxFeedbackChars = 300
)

// NewFeedback создаёт отзыв на момент at.
func NewFeedback(userID, courseID uuid.UUID, content string, rating int, at time.Time) *Feedback {
	return &Feedback{
		ID:        uuid.New(),
		UserID:    userID,
		CourseID:  courseID,
		Content:   content,
		Rating:    rating,
		CreatedAt: at.UTC(),
	}
}

// Ban запрещает пользователю записываться на курс.
type Ban struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	CourseID uuid.UUID
	Reason   string
	BannedAt time.Time
}

// NewBan создаёт блокировку на момент at.
func NewBan(userID, courseID uuid.UUID, reason string, at time.Time) *Ban {
	return &Ban{ID: uuid.New(), UserID: userID, CourseID: courseID, Reason: reason, BannedAt: at.UTC()}
}
