package subchapter

import domain "course-platform/internal/domain/chapter"

// CreateRequest описывает тело запроса создания подглавы.
type CreateRequest struct {
	ChapterID                    string `json:"chapterId" binding:"required,uuid"`
	Name                         string `json:"name" binding:"required,notblank,min=5,max=255"`
	Content                      string `json:"content" binding:"required,notblank"`
	EstimatedLearningTimeMinutes int    `json:"estimatedLearningTimeMinutes" binding:"required,min=1"`
}

// UpdateRequest описывает тело запроса обновления подглавы.
type UpdateRequest struct {
	Name                         string `json:"name" binding:"required,notblank,min=5,max=255"`
	Content                      string `json:"content" binding:"required,notblank"`
	EstimatedLearningTimeMinutes int    `json:"estimatedLearningTimeMinutes" binding:"required,min=1"`
}

// OrderRequest описывает новые номера подглав внутри одной главы.
type OrderRequest struct {
	IDs     []string `json:"ids" binding:"required,min=1,dive,uuid"`
	Numbers []int    `json:"numbers" binding:"required,min=1,dive,min=1"`
}

// SubChapterResponse описывает подглаву.
type SubChapterResponse struct {
	ID                           string `json:"id"`
	ChapterID                    string `json:"chapterId"`
	Name                         string `json:"name"`
	Content                      string `json:"content"`
	EstimatedLearningTimeMinutes int    `json:"estimatedLearningTimeMinutes"`
	Number                       int    `json:"number"`
}

func toResponse(sc *domain.SubChapter) SubChapterResponse {
	return SubChapterResponse{
		ID:                           sc.ID.String(),
		ChapterID:                    sc.ChapterID.String(),
		Name:                         sc.Name,
		Content:                      sc.Content,
		EstimatedLearningTimeMinutes: sc.EstimatedLearningTimeMinutes,
		Number:                       sc.Number,
	}
}

func toResponses(items []*domain.SubChapter) []SubChapterResponse {
	out := make([]SubChapterResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toResponse(item))
	}
	return out
}
