package model

import "time"

type PasswordResetToken struct {
	DTO
	Email      string     `gorm:"not null;index" json:"email"`
	Code       string     `gorm:"not null;size:6" json:"-"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	UsedAt     *time.Time `json:"usedAt,omitempty"`
	UserId     *uint      `json:"userId,omitempty"`
	CustomerId *uint      `json:"customerId,omitempty"`
}

type PasswordResetRequestInput struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetVerifyInput struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

type PasswordResetInput struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
