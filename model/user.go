package model

type User struct {
	DTO
	Name     string `json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"default:ADMIN" json:"role"`
	Avatar   *string `json:"avatar,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Avatar          *string `json:"avatar"`
	CurrentPassword *string `json:"currentPassword"`
	NewPassword     *string `json:"newPassword" validate:"omitempty,min=6"`
}
