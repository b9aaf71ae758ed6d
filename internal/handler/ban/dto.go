package ban

import (
	"time"

	"course-platform/internal/domain/enrollment"
)

// BanRequest описывает тело запроса блокировки пользователя на курсе.
type BanRequest struct {
	UserID   string `json:"userId" binding:"required,uuid"`
	CourseID string `json:"courseId" binding:"required,uuid"`
	Reason   string `json:"reason" binding:"required,notblank,min=5,max=255"`
}

// BanResponse описывает блокировку.
type BanResponse struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	CourseID string    `json:"courseId"`
	Reason   string    `json:"reason"`
	BannedAt time.Time `json:"bannedAt"`
}

func toResponse(b *enrollment.Ban) BanResponse {
	return BanResponse{
		ID:       b.ID.String(),
		UserID:   b.UserID.String(),
		CourseID: b.CourseID.String(),
		Reason:   b.Reason,
		BannedAt: b.BannedAt,
	}
}

func toResponses(items []*enrollment.Ban) []BanResponse {
	out := make([]BanResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toResponse(item))
	}
	return out
}
