package chapter

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"course-platform/internal/handler/request"
	"course-platform/internal/handler/response"
	chapteruc "course-platform/internal/usecase/chapter"
)

// Handler обрабатывает HTTP-запросы глав курса.
type Handler struct {
	chapters chapteruc.Service
}

// NewHandler создаёт новый обработчик глав.
func NewHandler(chapters chapteruc.Service) *Handler {
	return &Handler{chapters: chapters}
}

// List возвращает все главы.
//
//	@Summary	Список глав
//	@Tags		course-chapters
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	ChapterResponse
//	@Router		/course-chapters [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.chapters.List(c.Request.Context())
	if err != nil {
		writeError(c, "List", err)
		return
	}
	c.JSON(http.StatusOK, toResponses(items))
}

// ListByCourse возвращает главы курса по порядку.
//
//	@Summary	Главы курса
//	@Tags		course-chapters
//	@Produce	json
//	@Security	BearerAuth
//	@Param		courseId	path	string	true	"ID курса"
//	@Success	200			{array}	ChapterResponse
//	@Router		/course-chapters/by-course/{courseId} [get]
func (h *Handler) ListByCourse(c *gin.Context) {
	courseID, ok := request.UUIDParam(c, "courseId")
	if !ok {
		return
	}

	items, err := h.chapters.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		writeError(c, "ListByCourse", err)
		return
	}
	c.JSON(http.StatusOK, toResponses(items))
}

// GetByID возвращает главу по идентификатору.
//
//	@Summary	Глава по ID
//	@Tags		course-chapters
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID главы"
//	@Success	200	{object}	ChapterResponse
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/course-chapters/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.chapters.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, "GetByID", err)
		return
	}
	c.JSON(http.StatusOK, toResponse(item))
}

// Create добавляет главу в конец курса.
//
//	@Summary	Создание главы
//	@Tags		course-chapters
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		CreateRequest	true	"Глава"
//	@Success	201		{object}	ChapterResponse
//	@Failure	404		{object}	response.ErrorBody
//	@Failure	409		{object}	response.ErrorBody
//	@Router		/course-chapters [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, err)
		return
	}

	item, err := h.chapters.Create(c.Request.Context(), chapteruc.CreateInput{
		CourseID:                     uuid.MustParse(req.CourseID),
		Name:                         req.Name,
		EstimatedLearningTimeMinutes: req.EstimatedLearningTimeMinutes,
	})
	if err != nil {
		writeError(c, "Create", err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(item))
}

// Update меняет название и оценку времени главы.
//
//	@Summary	Обновление главы
//	@Tags		course-chapters
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"ID главы"
//	@Param		body	body		UpdateRequest	true	"Глава"
//	@Success	200		{object}	ChapterResponse
//	@Failure	404		{object}	response.ErrorBody
//	@Failure	409		{object}	response.ErrorBody
//	@Router		/course-chapters/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, err)
		return
	}

	item, err := h.chapters.Update(c.Request.Context(), id, chapteruc.UpdateInput{
		Name:                         req.Name,
		EstimatedLearningTimeMinutes: req.EstimatedLearningTimeMinutes,
	})
	if err != nil {
		writeError(c, "Update", err)
		return
	}
	c.JSON(http.StatusOK, toResponse(item))
}

// UpdateOrder задаёт главам новые номера.
//
//	@Summary	Изменение порядка глав
//	@Tags		course-chapters
//	@Accept		json
//	@Security	BearerAuth
//	@Param		body	body	OrderRequest	true	"Новые номера"
//	@Success	204
//	@Failure	400	{object}	response.ErrorBody
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/course-chapters/order [put]
func (h *Handler) UpdateOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, err)
		return
	}
	ids, err := request.ParseUUIDs(req.IDs)
	if err != nil {
		response.InvalidRequest(c, err)
		return
	}

	if err := h.chapters.Reorder(c.Request.Context(), ids, req.Numbers); err != nil {
		writeError(c, "UpdateOrder", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete удаляет главу и сдвигает номера следующих.
//
//	@Summary	Удаление главы
//	@Tags		course-chapters
//	@Security	BearerAuth
//	@Param		id	path	string	true	"ID главы"
//	@Success	204
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/course-chapters/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.chapters.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "Delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, chapteruc.ErrChapterNotFound):
		response.Error(c, http.StatusNotFound, "chapter_not_found", "Глава не найдена", nil)
	case errors.Is(err, chapteruc.ErrCourseNotFound):
		response.Error(c, http.StatusNotFound, "course_not_found", "Курс не найден", nil)
	case errors.Is(err, chapteruc.ErrChapterExists):
		response.Error(c, http.StatusConflict, "chapter_already_exists", "Глава с таким названием уже есть в курсе", nil)
	case errors.Is(err, chapteruc.ErrInvalidOrder):
		response.Error(c, http.StatusBadRequest, "invalid_order", "Количество ids и numbers должно совпадать", nil)
	case errors.Is(err, chapteruc.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	default:
		log.Printf("internal error in chapter %s: path=%s err=%v", op, c.Request.URL.Path, err)
		response.Internal(c)
	}
}
