package course

import (
	"time"

	domain "course-platform/internal/domain/course"
	categoryhandler "course-platform/internal/handler/category"
)

// MaxImageSize — максимальный размер картинки курса.
const MaxImageSize = 5 << 20

// CourseForm описывает multipart-форму создания и обновления курса.
// Картинка передаётся в поле image. Даты в формате RFC 3339.
type CourseForm struct {
	Name         string    `form:"name" binding:"required,notblank,min=5,max=255"`
	Description  string    `form:"description" binding:"required,notblank,min=5,max=1000"`
	CreatorID    string    `form:"creatorId" binding:"omitempty,uuid"`
	StartDate    time.Time `form:"startDate" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	FinishDate   time.Time `form:"finishDate" binding:"required,gtfield=StartDate" time_format:"2006-01-02T15:04:05Z07:00"`
	Language     string    `form:"language" binding:"omitempty,max=64"`
	Requirements string    `form:"requirements" binding:"omitempty,max=1000"`
	CategoryIDs  []string  `form:"categoryIds" binding:"omitempty,dive,uuid"`
}

// CourseResponse описывает курс.
type CourseResponse struct {
	ID           string                             `json:"id"`
	Name         string                             `json:"name"`
	ImageURL     string                             `json:"imageUrl"`
	Description  string                             `json:"description"`
	CreatorID    string                             `json:"creatorId"`
	StartDate    time.Time                          `json:"startDate"`
	FinishDate   time.Time                          `json:"finishDate"`
	Language     string                             `json:"language,omitempty"`
	Requirements string                             `json:"requirements,omitempty"`
	Categories   []categoryhandler.CategoryResponse `json:"categories"`
}

func toCourseResponse(c *domain.Course) CourseResponse {
	categories := make([]categoryhandler.CategoryResponse, 0, len(c.Categories))
	for i := range c.Categories {
		categories = append(categories, categoryhandler.ToResponse(&c.Categories[i]))
	}
	return CourseResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		ImageURL:     c.ImageURL,
		Description:  c.Description,
		CreatorID:    c.CreatorID.String(),
		StartDate:    c.StartDate,
		FinishDate:   c.FinishDate,
		Language:     c.Language,
		Requirements: c.Requirements,
		Categories:   categories,
	}
}
