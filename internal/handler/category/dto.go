package category

import domain "course-platform/internal/domain/course"

// CategoryRequest описывает тело запроса создания и переименования категории.
type CategoryRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
}

// CategoryResponse описывает категорию курсов.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToResponse маппит доменную категорию в DTO.
func ToResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID.String(), Name: c.Name}
}
