package auth

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "course-platform/internal/domain/user"
	"course-platform/internal/handler/response"
	repo "course-platform/internal/repository/interfaces"
	authuc "course-platform/internal/usecase/auth"
)

// Handler обрабатывает HTTP-запросы, связанные с аутентификацией.
type Handler struct {
	auth        authuc.Service
	verifiedURL string
}

// NewHandler создаёт новый AuthHandler. verifiedURL — страница фронтенда,
// на которую перенаправляется пользователь после перехода по ссылке из письма.
func NewHandler(auth authuc.Service, verifiedURL string) *Handler {
	return &Handler{
		auth:        auth,
		verifiedURL: verifiedURL,
	}
}

// Register обрабатывает регистрацию пользователя.
//
//	@Summary	Регистрация пользователя
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		RegisterRequest	true	"Данные регистрации"
//	@Success	201		{object}	LoginResponse
//	@Failure	400		{object}	response.ErrorBody
//	@Failure	409		{object}	response.ErrorBody
//	@Router		/users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, err)
		return
	}

	user, access, refresh, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrEmailExists):
			response.Error(c, http.StatusConflict, "email_already_exists", "Указанный email уже используется", nil)
		case errors.Is(err, repo.ErrUsernameExists):
			response.Error(c, http.StatusConflict, "username_already_exists", "Указанный никнейм уже используется", nil)
		default:
			log.Printf("internal error in Register: email=%s username=%s err=%v", req.Email, req.Username, err)
			response.Internal(c)
		}
		return
	}

	c.JSON(http.StatusCreated, toLoginResponse(user, access, refresh))
}

// Login обрабатывает вход пользователя по email/паролю.
//
//	@Summary	Вход по email и паролю
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		LoginRequest	true	"Учётные данные"
//	@Success	200		{object}	LoginResponse
//	@Failure	401		{object}	response.ErrorBody
//	@Router		/users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, err)
		return
	}

	user, access, refresh, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authuc.ErrInvalidCredentials) {
			// Не раскрываем, что именно неверно
			response.Error(c, http.StatusUnauthorized, "invalid_credentials", "Неверный email или пароль", nil)
			return
		}
		log.Printf("internal error in Login: email=%s err=%v", req.Email, err)
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, toLoginResponse(user, access, refresh))
}

// Refresh обрабатывает обновление пары токенов по refresh-токену.
//
//	@Summary	Обновление пары токенов
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		RefreshRequest	true	"Refresh-токен"
//	@Success	200		{object}	LoginResponse
//	@Failure	401		{object}	response.ErrorBody
//	@Router		/users/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, err)
		return
	}

	user, access, refresh, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, authuc.ErrInvalidRefreshToken) {
			response.Error(c, http.StatusUnauthorized, "invalid_refresh_token", "Недействительный refresh-токен", nil)
			return
		}
		log.Printf("internal error in Refresh: err=%v", err)
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, toLoginResponse(user, access, refresh))
}

// VerifyEmail подтверждает email по ссылке из письма и перенаправляет на фронтенд.
// Результат передаётся в query-параметре status.
//
//	@Summary	Подтверждение email по ссылке из письма
//	@Tags		users
//	@Param		userId	query	string	true	"Идентификатор пользователя"
//	@Param		token	query	string	true	"Токен подтверждения"
//	@Success	302
//	@Router		/users/verify-email [get]
func (h *Handler) VerifyEmail(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("userId"))
	if err != nil {
		h.redirectVerified(c, VerifyStatusInvalid)
		return
	}

	_, err = h.auth.VerifyEmail(c.Request.Context(), userID, c.Query("token"))
	switch {
	case err == nil:
		h.redirectVerified(c, VerifyStatusSuccess)
	case errors.Is(err, authuc.ErrEmailAlreadyVerified):
		h.redirectVerified(c, VerifyStatusAlreadyVerified)
	case errors.Is(err, authuc.ErrVerificationTokenExpired):
		h.redirectVerified(c, VerifyStatusExpired)
	case errors.Is(err, authuc.ErrVerificationAttemptsExceeded):
		h.redirectVerified(c, VerifyStatusAttemptsExceeded)
	case errors.Is(err, authuc.ErrVerificationTokenInvalid):
		h.redirectVerified(c, VerifyStatusInvalid)
	case errors.Is(err, authuc.ErrUserNotFound), errors.Is(err, authuc.ErrVerificationNotFound):
		h.redirectVerified(c, VerifyStatusNotFound)
	default:
		log.Printf("internal error in VerifyEmail: user_id=%s err=%v", userID, err)
		h.redirectVerified(c, VerifyStatusError)
	}
}

func (h *Handler) redirectVerified(c *gin.Context, status string) {
	target, err := url.Parse(h.verifiedURL)
	if err != nil {
		log.Printf("invalid frontend email verified url %q: %v", h.verifiedURL, err)
		response.Internal(c)
		return
	}
	q := target.Query()
	q.Set("status", status)
	target.RawQuery = q.Encode()
	c.Redirect(http.StatusFound, target.String())
}

// ResendVerification повторно отправляет письмо со ссылкой подтверждения.
//
//	@Summary	Повторная отправка письма подтверждения
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		body	body		ResendVerificationRequest	true	"Email"
//	@Success	200		{object}	MessageResponse
//	@Failure	404		{object}	response.ErrorBody
//	@Router		/users/resend-verification [post]
func (h *Handler) ResendVerification(c *gin.Context) {
	var req ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidRequest(c, err)
		return
	}

	if err := h.auth.ResendVerification(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, authuc.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "user_not_found", "Пользователь не найден", nil)
			return
		}
		log.Printf("internal error in ResendVerification: email=%s err=%v", req.Email, err)
		response.Internal(c)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Письмо для подтверждения email отправлено"})
}

func toLoginResponse(u *domain.User, access, refresh string) LoginResponse {
	return LoginResponse{
		UserID:          u.ID.String(),
		Email:           u.Email,
		Username:        u.Username,
		Role:            string(u.Role),
		IsEmailVerified: u.IsEmailVerified,
		Tokens: TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
		},
	}
}
