package model

type Notification struct {
	DTO
	UserId  uint    `gorm:"not null;index" json:"userId"`
	Type    string  `gorm:"not null" json:"type"` // NEW_ORDER, ORDER_UPDATE, PAYMENT_APPROVED, LOW_STOCK
	Title   string  `gorm:"not null" json:"title"`
	Message string  `json:"message"`
	Read    bool    `gorm:"default:false;index" json:"read"`
	Data    JSONMap `gorm:"type:jsonb" json:"data,omitempty"`
}
