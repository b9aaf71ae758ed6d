package ban

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"course-platform/internal/handler/request"
	"course-platform/internal/handler/response"
	banuc "course-platform/internal/usecase/ban"
)

// Handler обрабатывает HTTP-запросы блокировок на курсах.
type Handler struct {
	bans banuc.Service
}

// NewHandler создаёт новый обработчик блокировок.
func NewHandler(bans banuc.Service) *Handler {
	return &Handler{bans: bans}
}

// List возвращает все блокировки.
//
//	@Summary	Список блокировок
//	@Tags		bans
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	BanResponse
//	@Router		/bans [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.bans.List(c.Request.Context())
	if err != nil {
		writeError(c, "List", err)
		return
	}
	c.JSON(http.StatusOK, toResponses(items))
}

// ListByUser возвращает страницу блокировок пользователя.
//
//	@Summary	Блокировки пользователя
//	@Tags		bans
//	@Produce	json
//	@Security	BearerAuth
//	@Param		userId		path		string	true	"ID пользователя"
//	@Param		page		query		int		false	"Номер страницы"
//	@Param		pageSize	query		int		false	"Размер страницы"
//	@Success	200			{object}	response.Paginated[BanResponse]
//	@Router		/bans/by-user/{userId} [get]
func (h *Handler) ListByUser(c *gin.Context) {
	userID, ok := request.UUIDParam(c, "userId")
	if !ok {
		return
	}

	page := request.Page(c)
	items, total, err := h.bans.ListByUser(c.Request.Context(), userID, page)
	if err != nil {
		writeError(c, "ListByUser", err)
		return
	}
	c.JSON(http.StatusOK, response.NewPaginated(toResponses(items), total, page.Page, page.PageSize))
}

// ListByCourse возвращает блокировки на курсе.
//
//	@Summary	Блокировки на курсе
//	@Tags		bans
//	@Produce	json
//	@Security	BearerAuth
//	@Param		courseId	path	string	true	"ID курса"
//	@Success	200			{array}	BanResponse
//	@Router		/bans/by-course/{courseId} [get]
func (h *Handler) ListByCourse(c *gin.Context) {
	courseID, ok := request.UUIDParam(c, "courseId")
	if !ok {
		return
	}

	items, err := h.bans.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		writeError(c, "ListByCourse", err)
		return
	}
	c.JSON(http.StatusOK, toResponses(items))
}

// GetByID возвращает блокировку по идентификатору.
//
//	@Summary	Блокировка по ID
//	@Tags		bans
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID блокировки"
//	@Success	200	{object}	BanResponse
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/bans/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.bans.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, "GetByID", err)
		return
	}
	c.JSON(http.StatusOK, toResponse(item))
}

// Create блокирует пользователя на курсе и снимает его запись на этот курс.
//
//	@Summary	Блокировка пользователя на курсе
//	@Tags		bans
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		BanRequest	true	"Блокировка"
//	@Success	201		{object}	BanResponse
//	@Failure	404		{object}	response.ErrorBody
//	@Failure	409		{object}	response.ErrorBody
//	@Router		/bans [post]
func (h *Handler) Create(c *gin.Context) {
	var req BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, err)
		return
	}

	item, err := h.bans.Ban(c.Request.Context(), uuid.MustParse(req.UserID), uuid.MustParse(req.CourseID), req.Reason)
	if err != nil {
		writeError(c, "Create", err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(item))
}

// Delete снимает блокировку.
//
//	@Summary	Снятие блокировки
//	@Tags		bans
//	@Security	BearerAuth
//	@Param		id	path	string	true	"ID блокировки"
//	@Success	204
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/bans/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.bans.Unban(c.Request.Context(), id); err != nil {
		writeError(c, "Delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, banuc.ErrBanNotFound):
		response.Error(c, http.StatusNotFound, "ban_not_found", "Блокировка не найдена", nil)
	case errors.Is(err, banuc.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "user_not_found", "Пользователь не найден", nil)
	case errors.Is(err, banuc.ErrCourseNotFound):
		response.Error(c, http.StatusNotFound, "course_not_found", "Курс не найден", nil)
	case errors.Is(err, banuc.ErrAlreadyBanned):
		response.Error(c, http.StatusConflict, "already_banned", "Пользователь уже заблокирован на курсе", nil)
	case errors.Is(err, banuc.ErrInvalidReason):
		response.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	default:
		log.Printf("internal error in ban %s: path=%s err=%v", op, c.Request.URL.Path, err)
		response.Internal(c)
	}
}
