package course

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "course-platform/internal/domain/course"
	"course-platform/internal/handler/middleware"
	"course-platform/internal/handler/request"
	"course-platform/internal/handler/response"
	courseuc "course-platform/internal/usecase/course"
)

// Handler обрабатывает HTTP-запросы курсов.
type Handler struct {
	courses courseuc.Service
}

// NewHandler создаёт новый обработчик курсов.
func NewHandler(courses courseuc.Service) *Handler {
	return &Handler{courses: courses}
}

// List возвращает все курсы.
//
//	@Summary	Список курсов
//	@Tags		courses
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{array}	CourseResponse
//	@Router		/courses [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.courses.List(c.Request.Context())
	if err != nil {
		writeError(c, "List", err)
		return
	}
	c.JSON(http.StatusOK, toCourseResponses(items))
}

// GetByID возвращает курс по идентификатору.
//
//	@Summary	Курс по ID
//	@Tags		courses
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID курса"
//	@Success	200	{object}	CourseResponse
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/courses/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.courses.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, "GetByID", err)
		return
	}
	c.JSON(http.StatusOK, toCourseResponse(item))
}

// ListByCreator возвращает курсы, созданные пользователем.
//
//	@Summary	Курсы автора
//	@Tags		courses
//	@Produce	json
//	@Security	BearerAuth
//	@Param		userId	path	string	true	"ID автора"
//	@Success	200		{array}	CourseResponse
//	@Router		/courses/created-by/{userId} [get]
func (h *Handler) ListByCreator(c *gin.Context) {
	userID, ok := request.UUIDParam(c, "userId")
	if !ok {
		return
	}

	items, err := h.courses.ListByCreator(c.Request.Context(), userID)
	if err != nil {
		writeError(c, "ListByCreator", err)
		return
	}
	c.JSON(http.StatusOK, toCourseResponses(items))
}

// Create создаёт курс. Если creatorId не передан, автором становится текущий пользователь.
//
//	@Summary	Создание курса
//	@Tags		courses
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		name			formData	string		true	"Название"
//	@Param		description		formData	string		true	"Описание"
//	@Param		creatorId		formData	string		false	"ID автора"
//	@Param		startDate		formData	string		true	"Дата старта (RFC 3339)"
//	@Param		finishDate		formData	string		true	"Дата окончания (RFC 3339)"
//	@Param		categoryIds		formData	[]string	false	"ID категорий"
//	@Param		image			formData	file		false	"Картинка курса"
//	@Success	201				{object}	CourseResponse
//	@Failure	400				{object}	response.ErrorBody
//	@Failure	404				{object}	response.ErrorBody
//	@Failure	409				{object}	response.ErrorBody
//	@Router		/courses [post]
func (h *Handler) Create(c *gin.Context) {
	input, cleanup, ok := h.bindInput(c)
	if !ok {
		return
	}
	defer cleanup()

	if input.CreatorID == uuid.Nil {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			return
		}
		input.CreatorID = userID
	}

	item, err := h.courses.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, "Create", err)
		return
	}
	c.JSON(http.StatusCreated, toCourseResponse(item))
}

// Update обновляет курс; картинка заменяется, только если передана.
//
//	@Summary	Обновление курса
//	@Tags		courses
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id				path		string		true	"ID курса"
//	@Param		name			formData	string		true	"Название"
//	@Param		description		formData	string		true	"Описание"
//	@Param		startDate		formData	string		true	"Дата старта (RFC 3339)"
//	@Param		finishDate		formData	string		true	"Дата окончания (RFC 3339)"
//	@Param		categoryIds		formData	[]string	false	"ID категорий"
//	@Param		image			formData	file		false	"Картинка курса"
//	@Success	200				{object}	CourseResponse
//	@Failure	404				{object}	response.ErrorBody
//	@Failure	409				{object}	response.ErrorBody
//	@Router		/courses/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}
	input, cleanup, ok := h.bindInput(c)
	if !ok {
		return
	}
	defer cleanup()

	item, err := h.courses.Update(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, "Update", err)
		return
	}
	c.JSON(http.StatusOK, toCourseResponse(item))
}

// Delete удаляет курс вместе с главами, записями и картинкой.
//
//	@Summary	Удаление курса
//	@Tags		courses
//	@Security	BearerAuth
//	@Param		id	path	string	true	"ID курса"
//	@Success	204
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/courses/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.courses.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "Delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindInput разбирает multipart-форму курса. cleanup закрывает файл картинки.
func (h *Handler) bindInput(c *gin.Context) (courseuc.Input, func(), bool) {
	noop := func() {}

	var form CourseForm
	if err := c.ShouldBind(&form); err != nil {
		response.InvalidRequest(c, err)
		return courseuc.Input{}, noop, false
	}

	categoryIDs, err := request.ParseUUIDs(form.CategoryIDs)
	if err != nil {
		response.InvalidRequest(c, err)
		return courseuc.Input{}, noop, false
	}

	input := courseuc.Input{
		Name:         form.Name,
		Description:  form.Description,
		StartDate:    form.StartDate,
		FinishDate:   form.FinishDate,
		Language:     form.Language,
		Requirements: form.Requirements,
		CategoryIDs:  categoryIDs,
	}
	if form.CreatorID != "" {
		input.CreatorID = uuid.MustParse(form.CreatorID)
	}

	fh, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return input, noop, true
	case err != nil:
		response.InvalidRequest(c, err)
		return courseuc.Input{}, noop, false
	}

	if fh.Size > MaxImageSize {
		response.Error(c, http.StatusBadRequest, "image_too_large", "Картинка слишком большая", map[string]int64{"maxBytes": MaxImageSize})
		return courseuc.Input{}, noop, false
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error(c, http.StatusBadRequest, "invalid_image", "Файл должен быть изображением", nil)
		return courseuc.Input{}, noop, false
	}

	f, err := fh.Open()
	if err != nil {
		log.Printf("failed to open uploaded image: err=%v", err)
		response.Internal(c)
		return courseuc.Input{}, noop, false
	}
	input.Image = &courseuc.Image{Body: f, Size: fh.Size, ContentType: contentType}
	return input, func() { _ = f.Close() }, true
}

func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, courseuc.ErrCourseNotFound):
		response.Error(c, http.StatusNotFound, "course_not_found", "Курс не найден", nil)
	case errors.Is(err, courseuc.ErrCreatorNotFound):
		response.Error(c, http.StatusNotFound, "user_not_found", "Автор курса не найден", nil)
	case errors.Is(err, courseuc.ErrCategoryNotFound):
		response.Error(c, http.StatusNotFound, "category_not_found", "Категория не найдена", nil)
	case errors.Is(err, courseuc.ErrCourseExists):
		response.Error(c, http.StatusConflict, "course_already_exists", "Курс с таким названием уже существует", nil)
	case errors.Is(err, courseuc.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	default:
		log.Printf("internal error in course %s: path=%s err=%v", op, c.Request.URL.Path, err)
		response.Internal(c)
	}
}

func toCourseResponses(items []*domain.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toCourseResponse(item))
	}
	return out
}
