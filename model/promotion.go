package model

import "time"

type Promotion struct {
	DTO
	ProductId       uint      `gorm:"not null;index" json:"productId"`
	Product         *Product  `json:"product,omitempty"`
	Name            string    `gorm:"not null" json:"name"`
	DiscountPercent *float64  `json:"discountPercent,omitempty"`
	DiscountAmount  *float64  `json:"discountAmount,omitempty"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Active          bool      `gorm:"default:true" json:"active"`
}

type CreatePromotionInput struct {
	ProductId       uint      `json:"productId" validate:"required,gt=0"`
	Name            string    `json:"name" validate:"required"`
	DiscountPercent *float64  `json:"discountPercent" validate:"omitempty,gt=0,lte=100"`
	DiscountAmount  *float64  `json:"discountAmount" validate:"omitempty,gt=0"`
	StartDate       time.Time `json:"startDate" validate:"required"`
	EndDate         time.Time `json:"endDate" validate:"required"`
}

type UpdatePromotionInput struct {
	Name            *string    `json:"name"`
	DiscountPercent *float64   `json:"discountPercent" validate:"omitempty,gt=0,lte=100"`
	DiscountAmount  *float64   `json:"discountAmount" validate:"omitempty,gt=0"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	Active          *bool      `json:"active"`
}
