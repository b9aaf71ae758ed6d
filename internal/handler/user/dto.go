package user

import "time"

// ProfileResponse описывает профиль текущего пользователя.
// Этот контракт используется в защищённых эндпоинтах (/api/v1/users/me и т.п.).
type ProfileResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	Role            string    `json:"role"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ProfileUpdateRequest описывает тело запроса обновления профиля.
// Для смены пароля нужно передать и oldPassword, и newPassword.
type ProfileUpdateRequest struct {
	PhoneNumber *string `json:"phoneNumber,omitempty" binding:"omitempty,max=32"`
	OldPassword *string `json:"oldPassword,omitempty" binding:"required_with=NewPassword"`
	NewPassword *string `json:"newPassword,omitempty" binding:"omitempty,strongpassword"`
}

// RegistrationResponse описывает запись пользователя на курс.
type RegistrationResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	CourseID     string    `json:"courseId"`
	RegisteredAt time.Time `json:"registeredAt"`
}
