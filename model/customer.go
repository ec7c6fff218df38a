package model

type Customer struct {
	DTO
	Name     string  `json:"name"`
	Email    string  `gorm:"unique;not null" json:"email"`
	Password string  `gorm:"not null" json:"-"`
	Phone    *string `json:"phone,omitempty"` // formato (XX) 9XXXX-XXXX
	Avatar   *string `json:"avatar,omitempty"`
	Age      *int    `json:"age,omitempty"`
}

type RegisterCustomerInput struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone"`
	Age      *int    `json:"age" validate:"omitempty,gt=0"`
}

type UpdateCustomerProfileInput struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone"`
	Avatar          *string `json:"avatar"`
	CurrentPassword *string `json:"currentPassword"`
	NewPassword     *string `json:"newPassword" validate:"omitempty,min=6"`
}
