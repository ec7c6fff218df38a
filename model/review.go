package model

type Review struct {
	DTO
	ProductId     uint      `gorm:"not null;index" json:"productId"`
	Product       *Product  `json:"product,omitempty"`
	CustomerId    *uint     `json:"customerId,omitempty"`
	Customer      *Customer `json:"customer,omitempty"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       *string   `json:"comment,omitempty"`
	Verified      bool      `gorm:"default:false" json:"verified"`
}

type CreateReviewInput struct {
	ProductId     uint    `json:"productId" validate:"required,gt=0"`
	CustomerName  string  `json:"customerName" validate:"required"`
	CustomerEmail string  `json:"customerEmail" validate:"required,email"`
	Rating        int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment       *string `json:"comment"`
}

type UpdateReviewInput struct {
	Rating  *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment"`
}
