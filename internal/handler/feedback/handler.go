package feedback

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"course-platform/internal/handler/middleware"
	"course-platform/internal/handler/request"
	"course-platform/internal/handler/response"
	feedbackuc "course-platform/internal/usecase/feedback"
)

// Handler обрабатывает HTTP-запросы отзывов.
type Handler struct {
	feedbacks feedbackuc.Service
	adminRole string
}

// NewHandler создаёт новый обработчик отзывов.
func NewHandler(feedbacks feedbackuc.Service, adminRole string) *Handler {
	return &Handler{feedbacks: feedbacks, adminRole: adminRole}
}

// Create оставляет отзыв текущего пользователя о курсе.
//
//	@Summary	Создание отзыва
//	@Tags		feedbacks
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		CreateRequest	true	"Отзыв"
//	@Success	201		{object}	FeedbackResponse
//	@Failure	404		{object}	response.ErrorBody
//	@Failure	409		{object}	response.ErrorBody
//	@Router		/feedbacks [post]
func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return
	}
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, err)
		return
	}

	item, err := h.feedbacks.Create(c.Request.Context(), userID, uuid.MustParse(req.CourseID), req.Content, req.Rating)
	if err != nil {
		writeError(c, "Create", err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(item))
}

// Delete удаляет отзыв. Доступно автору и администратору.
//
//	@Summary	Удаление отзыва
//	@Tags		feedbacks
//	@Security	BearerAuth
//	@Param		id	path	string	true	"ID отзыва"
//	@Success	204
//	@Failure	403	{object}	response.ErrorBody
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/feedbacks/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.feedbacks.Delete(c.Request.Context(), actorID, middleware.HasRole(c, h.adminRole), id); err != nil {
		writeError(c, "Delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetByID возвращает отзыв по идентификатору.
//
//	@Summary	Отзыв по ID
//	@Tags		feedbacks
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID отзыва"
//	@Success	200	{object}	FeedbackResponse
//	@Router		/feedbacks/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.feedbacks.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, "GetByID", err)
		return
	}
	c.JSON(http.StatusOK, toResponse(item))
}

// ListByUser возвращает отзывы пользователя.
//
//	@Summary	Отзывы пользователя
//	@Tags		feedbacks
//	@Produce	json
//	@Security	BearerAuth
//	@Param		userId	path	string	true	"ID пользователя"
//	@Success	200		{array}	FeedbackResponse
//	@Router		/feedbacks/by-user/{userId} [get]
func (h *Handler) ListByUser(c *gin.Context) {
	userID, ok := request.UUIDParam(c, "userId")
	if !ok {
		return
	}

	items, err := h.feedbacks.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, "ListByUser", err)
		return
	}
	c.JSON(http.StatusOK, toResponses(items))
}

// ListByCourse возвращает отзывы о курсе, новые первыми.
//
//	@Summary	Отзывы о курсе
//	@Tags		feedbacks
//	@Produce	json
//	@Security	BearerAuth
//	@Param		courseId	path	string	true	"ID курса"
//	@Success	200			{array}	FeedbackResponse
//	@Router		/feedbacks/by-course/{courseId} [get]
func (h *Handler) ListByCourse(c *gin.Context) {
	courseID, ok := request.UUIDParam(c, "courseId")
	if !ok {
		return
	}

	items, err := h.feedbacks.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		writeError(c, "ListByCourse", err)
		return
	}
	c.JSON(http.StatusOK, toResponses(items))
}

func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, feedbackuc.ErrFeedbackNotFound):
		response.Error(c, http.StatusNotFound, "feedback_not_found", "Отзыв не найден", nil)
	case errors.Is(err, feedbackuc.ErrCourseNotFound):
		response.Error(c, http.StatusNotFound, "course_not_found", "Курс не найден", nil)
	case errors.Is(err, feedbackuc.ErrNotRegistered):
		response.Error(c, http.StatusConflict, "not_registered", "Пользователь не записан на курс", nil)
	case errors.Is(err, feedbackuc.ErrFeedbackExists):
		response.Error(c, http.StatusConflict, "feedback_already_exists", "Отзыв о курсе уже оставлен", nil)
	case errors.Is(err, feedbackuc.ErrForbidden):
		response.Error(c, http.StatusForbidden, "forbidden", "Удалить отзыв может только автор или администратор", nil)
	case errors.Is(err, feedbackuc.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	default:
		log.Printf("internal error in feedback %s: path=%s err=%v", op, c.Request.URL.Path, err)
		response.Internal(c)
	}
}
