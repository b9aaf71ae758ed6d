package category

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"course-platform/internal/handler/request"
	"course-platform/internal/handler/response"
	categoryuc "course-platform/internal/usecase/category"
)

// Handler обрабатывает HTTP-запросы категорий курсов.
type Handler struct {
	categories categoryuc.Service
}

// NewHandler создаёт новый обработчик категорий.
func NewHandler(categories categoryuc.Service) *Handler {
	return &Handler{categories: categories}
}

// List возвращает все категории.
//
//	@Summary	Список категорий
//	@Tags		categories
//	@Produce	json
//	@Success	200	{array}	CategoryResponse
//	@Router		/categories [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.categories.List(c.Request.Context())
	if err != nil {
		writeError(c, "List", err)
		return
	}

	out := make([]CategoryResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ToResponse(item))
	}
	c.JSON(http.StatusOK, out)
}

// GetByID возвращает категорию по идентификатору.
//
//	@Summary	Категория по ID
//	@Tags		categories
//	@Produce	json
//	@Param		id	path		string	true	"ID категории"
//	@Success	200	{object}	CategoryResponse
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/categories/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, "GetByID", err)
		return
	}
	c.JSON(http.StatusOK, ToResponse(item))
}

// Create создаёт категорию.
//
//	@Summary	Создание категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		CategoryRequest	true	"Категория"
//	@Success	201		{object}	CategoryResponse
//	@Failure	409		{object}	response.ErrorBody
//	@Router		/categories [post]
func (h *Handler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, err)
		return
	}

	item, err := h.categories.Create(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, "Create", err)
		return
	}
	c.JSON(http.StatusCreated, ToResponse(item))
}

// Update переименовывает категорию.
//
//	@Summary	Переименование категории
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"ID категории"
//	@Param		body	body		CategoryRequest	true	"Категория"
//	@Success	200		{object}	CategoryResponse
//	@Failure	404		{object}	response.ErrorBody
//	@Failure	409		{object}	response.ErrorBody
//	@Router		/categories/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, err)
		return
	}

	item, err := h.categories.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		writeError(c, "Update", err)
		return
	}
	c.JSON(http.StatusOK, ToResponse(item))
}

// Delete удаляет категорию, если на неё не ссылается ни один курс.
//
//	@Summary	Удаление категории
//	@Tags		categories
//	@Security	BearerAuth
//	@Param		id	path	string	true	"ID категории"
//	@Success	204
//	@Failure	404	{object}	response.ErrorBody
//	@Failure	409	{object}	response.ErrorBody
//	@Router		/categories/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "Delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, categoryuc.ErrCategoryNotFound):
		response.Error(c, http.StatusNotFound, "category_not_found", "Категория не найдена", nil)
	case errors.Is(err, categoryuc.ErrCategoryExists):
		response.Error(c, http.StatusConflict, "category_already_exists", "Категория с таким названием уже существует", nil)
	case errors.Is(err, categoryuc.ErrCategoryHasCourses):
		response.Error(c, http.StatusConflict, "category_has_courses", "Категория используется курсами", nil)
	case errors.Is(err, categoryuc.ErrInvalidName):
		response.Error(c, http.StatusBadRequest, "invalid_request", "Название категории обязательно", nil)
	default:
		log.Printf("internal error in category %s: path=%s err=%v", op, c.Request.URL.Path, err)
		response.Internal(c)
	}
}
