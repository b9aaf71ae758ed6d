package subchapter

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"course-platform/internal/handler/request"
	"course-platform/internal/handler/response"
	subchapteruc "course-platform/internal/usecase/subchapter"
)

// Handler обрабатывает HTTP-запросы подглав.
type Handler struct {
	subchapters subchapteruc.Service
}

// NewHandler создаёт новый обработчик подглав.
func NewHandler(subchapters subchapteruc.Service) *Handler {
	return &Handler{subchapters: subchapters}
}

// List возвращает все подглавы.
//
//	@Summary	Список подглав
//	@Tags		course-subchapters
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	SubChapterResponse
//	@Router		/course-subchapters [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.subchapters.List(c.Request.Context())
	if err != nil {
		writeError(c, "List", err)
		return
	}
	c.JSON(http.StatusOK, toResponses(items))
}

// ListByChapter возвращает подглавы главы по порядку.
//
//	@Summary	Подглавы главы
//	@Tags		course-subchapters
//	@Produce	json
//	@Security	BearerAuth
//	@Param		chapterId	path	string	true	"ID главы"
//	@Success	200			{array}	SubChapterResponse
//	@Router		/course-subchapters/by-chapter/{chapterId} [get]
func (h *Handler) ListByChapter(c *gin.Context) {
	chapterID, ok := request.UUIDParam(c, "chapterId")
	if !ok {
		return
	}

	items, err := h.subchapters.ListByChapter(c.Request.Context(), chapterID)
	if err != nil {
		writeError(c, "ListByChapter", err)
		return
	}
	c.JSON(http.StatusOK, toResponses(items))
}

// GetByID возвращает подглаву по идентификатору.
//
//	@Summary	Подглава по ID
//	@Tags		course-subchapters
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID подглавы"
//	@Success	200	{object}	SubChapterResponse
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/course-subchapters/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.subchapters.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, "GetByID", err)
		return
	}
	c.JSON(http.StatusOK, toResponse(item))
}

// Create добавляет подглаву в конец главы.
//
//	@Summary	Создание подглавы
//	@Tags		course-subchapters
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		CreateRequest	true	"Подглава"
//	@Success	201		{object}	SubChapterResponse
//	@Failure	404		{object}	response.ErrorBody
//	@Failure	409		{object}	response.ErrorBody
//	@Router		/course-subchapters [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, err)
		return
	}

	item, err := h.subchapters.Create(c.Request.Context(), subchapteruc.CreateInput{
		ChapterID:                    uuid.MustParse(req.ChapterID),
		Name:                         req.Name,
		Content:                      req.Content,
		EstimatedLearningTimeMinutes: req.EstimatedLearningTimeMinutes,
	})
	if err != nil {
		writeError(c, "Create", err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(item))
}

// Update меняет название, содержимое и оценку времени подглавы.
//
//	@Summary	Обновление подглавы
//	@Tags		course-subchapters
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"ID подглавы"
//	@Param		body	body		UpdateRequest	true	"Подглава"
//	@Success	200		{object}	SubChapterResponse
//	@Failure	404		{object}	response.ErrorBody
//	@Failure	409		{object}	response.ErrorBody
//	@Router		/course-subchapters/{id} [put]
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

	item, err := h.subchapters.Update(c.Request.Context(), id, subchapteruc.UpdateInput{
		Name:                         req.Name,
		Content:                      req.Content,
		EstimatedLearningTimeMinutes: req.EstimatedLearningTimeMinutes,
	})
	if err != nil {
		writeError(c, "Update", err)
		return
	}
	c.JSON(http.StatusOK, toResponse(item))
}

// UpdateOrder задаёт подглавам новые номера.
//
//	@Summary	Изменение порядка подглав
//	@Tags		course-subchapters
//	@Accept		json
//	@Security	BearerAuth
//	@Param		body	body	OrderRequest	true	"Новые номера"
//	@Success	204
//	@Failure	400	{object}	response.ErrorBody
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/course-subchapters/order [put]
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

	if err := h.subchapters.Reorder(c.Request.Context(), ids, req.Numbers); err != nil {
		writeError(c, "UpdateOrder", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete удаляет подглаву и сдвигает номера следующих.
//
//	@Summary	Удаление подглавы
//	@Tags		course-subchapters
//	@Security	BearerAuth
//	@Param		id	path	string	true	"ID подглавы"
//	@Success	204
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/course-subchapters/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.subchapters.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "Delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, subchapteruc.ErrSubChapterNotFound):
		response.Error(c, http.StatusNotFound, "subchapter_not_found", "Подглава не найдена", nil)
	case errors.Is(err, subchapteruc.ErrChapterNotFound):
		response.Error(c, http.StatusNotFound, "chapter_not_found", "Глава не найдена", nil)
	case errors.Is(err, subchapteruc.ErrSubChapterExists):
		response.Error(c, http.StatusConflict, "subchapter_already_exists", "Подглава с таким названием уже есть в главе", nil)
	case errors.Is(err, subchapteruc.ErrInvalidOrder):
		response.Error(c, http.StatusBadRequest, "invalid_order", "Количество ids и numbers должно совпадать", nil)
	case errors.Is(err, subchapteruc.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	default:
		log.Printf("internal error in subchapter %s: path=%s err=%v", op, c.Request.URL.Path, err)
		response.Internal(c)
	}
}
