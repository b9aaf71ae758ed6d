package user

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"course-platform/internal/domain/enrollment"
	domain "course-platform/internal/domain/user"
	"course-platform/internal/handler/middleware"
	"course-platform/internal/handler/request"
	"course-platform/internal/handler/response"
	useruc "course-platform/internal/usecase/user"
)

// Handler обрабатывает HTTP-запросы, связанные с профилем пользователя и записями на курсы.
type Handler struct {
	users     useruc.Service
	adminRole string
}

// NewHandler создаёт новый UserHandler.
func NewHandler(users useruc.Service, adminRole string) *Handler {
	return &Handler{users: users, adminRole: adminRole}
}

// GetMe возвращает профиль текущего пользователя.
//
//	@Summary	Профиль текущего пользователя
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	ProfileResponse
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, "GetMe", err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateMe обновляет телефон и/или пароль текущего пользователя.
//
//	@Summary	Обновление профиля
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		ProfileUpdateRequest	true	"Изменяемые поля"
//	@Success	200		{object}	ProfileResponse
//	@Failure	400		{object}	response.ErrorBody
//	@Failure	401		{object}	response.ErrorBody
//	@Router		/users/me [put]
func (h *Handler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, err)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, useruc.ProfileUpdateInput{
		PhoneNumber: req.PhoneNumber,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.writeError(c, "UpdateMe", err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(user))
}

// List возвращает страницу пользователей с поиском по email и никнейму.
//
//	@Summary	Список пользователей
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		search		query		string	false	"Подстрока email или никнейма"
//	@Param		page		query		int		false	"Номер страницы"
//	@Param		pageSize	query		int		false	"Размер страницы"
//	@Success	200			{object}	response.Paginated[ProfileResponse]
//	@Router		/users [get]
func (h *Handler) List(c *gin.Context) {
	page := request.Page(c)

	users, total, err := h.users.ListUsers(c.Request.Context(), c.Query("search"), page)
	if err != nil {
		h.writeError(c, "List", err)
		return
	}

	items := make([]ProfileResponse, 0, len(users))
	for _, u := range users {
		items = append(items, toProfileResponse(u))
	}
	c.JSON(http.StatusOK, response.NewPaginated(items, total, page.Page, page.PageSize))
}

// GetByID возвращает пользователя по идентификатору.
//
//	@Summary	Пользователь по ID
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		userId	path		string	true	"ID пользователя"
//	@Success	200		{object}	ProfileResponse
//	@Failure	404		{object}	response.ErrorBody
//	@Router		/users/{userId} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := request.UUIDParam(c, "userId")
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "GetByID", err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(user))
}

// Delete мягко удаляет аккаунт. Обычный пользователь может удалить только себя.
//
//	@Summary	Удаление аккаунта
//	@Tags		users
//	@Security	BearerAuth
//	@Param		userId	path	string	true	"ID пользователя"
//	@Success	204
//	@Failure	401	{object}	response.ErrorBody
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/users/{userId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		return
	}
	targetID, ok := request.UUIDParam(c, "userId")
	if !ok {
		return
	}

	actor := useruc.Actor{ID: actorID, IsAdmin: middleware.HasRole(c, h.adminRole)}
	if err := h.users.DeleteAccount(c.Request.Context(), actor, targetID); err != nil {
		h.writeError(c, "Delete", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Enroll записывает текущего пользователя на курс.
//
//	@Summary	Запись на курс
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		courseId	path		string	true	"ID курса"
//	@Success	201			{object}	RegistrationResponse
//	@Failure	404			{object}	response.ErrorBody
//	@Failure	409			{object}	response.ErrorBody
//	@Router		/users/enroll/{courseId} [post]
func (h *Handler) Enroll(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return
	}
	courseID, ok := request.UUIDParam(c, "courseId")
	if !ok {
		return
	}

	reg, err := h.users.Enroll(c.Request.Context(), userID, courseID)
	if err != nil {
		h.writeError(c, "Enroll", err)
		return
	}

	c.JSON(http.StatusCreated, toRegistrationResponse(reg))
}

// Unregister снимает запись текущего пользователя на курс.
//
//	@Summary	Отмена записи на курс
//	@Tags		users
//	@Security	BearerAuth
//	@Param		courseId	path	string	true	"ID курса"
//	@Success	204
//	@Failure	404	{object}	response.ErrorBody
//	@Router		/users/unregister/{courseId} [delete]
func (h *Handler) Unregister(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return
	}
	courseID, ok := request.UUIDParam(c, "courseId")
	if !ok {
		return
	}

	if err := h.users.Unregister(c.Request.Context(), userID, courseID); err != nil {
		h.writeError(c, "Unregister", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListRegistrations возвращает страницу записей пользователя на курсы.
// Чужие записи доступны только администратору.
//
//	@Summary	Записи пользователя на курсы
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		userId		path		string	true	"ID пользователя"
//	@Param		page		query		int		false	"Номер страницы"
//	@Param		pageSize	query		int		false	"Размер страницы"
//	@Success	200			{object}	response.Paginated[RegistrationResponse]
//	@Failure	403			{object}	response.ErrorBody
//	@Router		/users/{userId}/registrations [get]
func (h *Handler) ListRegistrations(c *gin.Context) {
	actorID, ok := middleware.CurrentUserID(c)
	if !ok {
		return
	}
	userID, ok := request.UUIDParam(c, "userId")
	if !ok {
		return
	}
	if actorID != userID && !middleware.HasRole(c, h.adminRole) {
		response.Error(c, http.StatusForbidden, "forbidden", "Недостаточно прав для доступа к ресурсу", nil)
		return
	}

	page := request.Page(c)
	regs, total, err := h.users.ListRegistrations(c.Request.Context(), userID, page)
	if err != nil {
		h.writeError(c, "ListRegistrations", err)
		return
	}

	items := make([]RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		items = append(items, toRegistrationResponse(r))
	}
	c.JSON(http.StatusOK, response.NewPaginated(items, total, page.Page, page.PageSize))
}

// writeError маппит ошибки usecase-слоя в HTTP-ответы.
func (h *Handler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, useruc.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "user_not_found", "Пользователь не найден", nil)
	case errors.Is(err, useruc.ErrCourseNotFound):
		response.Error(c, http.StatusNotFound, "course_not_found", "Курс не найден", nil)
	case errors.Is(err, useruc.ErrRegistrationMissing):
		response.Error(c, http.StatusNotFound, "registration_not_found", "Пользователь не записан на курс", nil)
	case errors.Is(err, useruc.ErrInvalidPassword):
		response.Error(c, http.StatusUnauthorized, "invalid_password", "Неверный текущий пароль", nil)
	case errors.Is(err, useruc.ErrUnauthorizedAccess):
		response.Error(c, http.StatusUnauthorized, "unauthorized_access", "Нельзя удалить чужой аккаунт", nil)
	case errors.Is(err, useruc.ErrCannotDeleteAdmin):
		response.Error(c, http.StatusForbidden, "cannot_delete_admin", "Нельзя удалить другого администратора", nil)
	case errors.Is(err, useruc.ErrWeakPassword):
		response.Error(c, http.StatusBadRequest, "weak_password", "Пароль слишком простой", nil)
	case errors.Is(err, useruc.ErrInvalidPhone):
		response.Error(c, http.StatusBadRequest, "invalid_phone", "Некорректный номер телефона", nil)
	case errors.Is(err, useruc.ErrBannedFromCourse):
		response.Error(c, http.StatusConflict, "banned_from_course", "Пользователь заблокирован на курсе", nil)
	case errors.Is(err, useruc.ErrAlreadyRegistered):
		response.Error(c, http.StatusConflict, "already_registered", "Пользователь уже записан на курс", nil)
	case errors.Is(err, useruc.ErrCourseFinished):
		response.Error(c, http.StatusConflict, "course_finished", "Курс уже завершён", nil)
	default:
		log.Printf("internal error in %s: path=%s err=%v", op, c.Request.URL.Path, err)
		response.Internal(c)
	}
}

func toProfileResponse(u *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:              u.ID.String(),
		Email:           u.Email,
		Username:        u.Username,
		PhoneNumber:     u.PhoneNumber,
		Role:            string(u.Role),
		IsEmailVerified: u.IsEmailVerified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func toRegistrationResponse(r *enrollment.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:           r.ID.String(),
		UserID:       r.UserID.String(),
		CourseID:     r.CourseID.String(),
		RegisteredAt: r.RegisteredAt,
	}
}
