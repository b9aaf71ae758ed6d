package auth

// RegisterRequest описывает тело запроса регистрации пользователя.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,strongpassword"`
	Username string `json:"username" binding:"required,min=3,max=32"`
}

// LoginRequest описывает тело запроса логина.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenPair описывает пару access/refresh токенов.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResponse — ответ при успешной аутентификации/регистрации.
// Содержит пару токенов и базовую идентифицирующую информацию о пользователе.
type LoginResponse struct {
	UserID          string    `json:"userId"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	Role            string    `json:"role"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	Tokens          TokenPair `json:"tokens"`
}

// RefreshRequest описывает тело запроса обновления токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ResendVerificationRequest описывает тело запроса повторной отправки письма.
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// MessageResponse — ответ с текстовым сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}

// Статусы подтверждения email, передаваемые фронтенду в query-параметре status.
const (
	VerifyStatusSuccess          = "success"
	VerifyStatusAlreadyVerified  = "already_verified"
	VerifyStatusExpired          = "expired"
	VerifyStatusInvalid          = "invalid"
	VerifyStatusAttemptsExceeded = "attempts_exceeded"
	VerifyStatusNotFound         = "not_found"
	VerifyStatusError            = "error"
)
