package feedback

import (
	"time"

	"course-platform/internal/domain/enrollment"
)

// CreateRequest описывает тело запроса создания отзыва.
type CreateRequest struct {
	CourseID string `json:"courseId" binding:"required,uuid"`
	Content  string `json:"content" binding:"required,notblank,min=5,max=300"`
	Rating   int    `json:"rating" binding:"required,min=1,max=10"`
}

// FeedbackResponse описывает отзыв о курсе.
type FeedbackResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CourseID  string    `json:"courseId"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(f *enrollment.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        f.ID.String(),
		UserID:    f.UserID.String(),
		CourseID:  f.CourseID.String(),
		Content:   f.Content,
		Rating:    f.Rating,
		CreatedAt: f.CreatedAt,
	}
}

func toResponses(items []*enrollment.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toResponse(item))
	}
	return out
}
