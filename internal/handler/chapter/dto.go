package chapter

import domain "course-platform/internal/domain/chapter"

// CreateRequest описывает тело запроса создания главы.
type CreateRequest struct {
	CourseID                     string `json:"courseId" binding:"required,uuid"`
	Name                         string `json:"name" binding:"required,notblank,min=5,max=255"`
	EstimatedLearningTimeMinutes int    `json:"estimatedLearningTimeMinutes" binding:"required,min=1"`
}

// UpdateRequest описывает тело запроса обновления главы. Номер главы не меняется.
type UpdateRequest struct {
	Name                         string `json:"name" binding:"required,notblank,min=5,max=255"`
	EstimatedLearningTimeMinutes int    `json:"estimatedLearningTimeMinutes" binding:"required,min=1"`
}

// OrderRequest описывает новые номера глав: ids[i] получает numbers[i].
type OrderRequest struct {
	IDs     []string `json:"ids" binding:"required,min=1,dive,uuid"`
	Numbers []int    `json:"numbers" binding:"required,min=1,dive,min=1"`
}

// ChapterResponse описывает главу курса.
type ChapterResponse struct {
	ID                           string `json:"id"`
	CourseID                     string `json:"courseId"`
	Name                         string `json:"name"`
	EstimatedLearningTimeMinutes int    `json:"estimatedLearningTimeMinutes"`
	Number                       int    `json:"number"`
}

func toResponse(ch *domain.Chapter) ChapterResponse {
	return ChapterResponse{
		ID:                           ch.ID.String(),
		CourseID:                     ch.CourseID.String(),
		Name:                         ch.Name,
		EstimatedLearningTimeMinutes: ch.EstimatedLearningTimeMinutes,
		Number:                       ch.Number,
	}
}

func toResponses(items []*domain.Chapter) []ChapterResponse {
	out := make([]ChapterResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toResponse(item))
	}
	return out
}
