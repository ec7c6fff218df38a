package model

import "time"

type Order struct {
	DTO
	OrderNumber   string        `gorm:"unique;size:20" json:"orderNumber"` // código público (ex: PED-A1B2C3)
	CustomerID    *uint         `json:"customerId,omitempty"`              // null para convidado
	Customer      *Customer     `json:"customer,omitempty"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail *string       `gorm:"index" json:"customerEmail,omitempty"`
	CustomerPhone *string       `json:"customerPhone,omitempty"`
	Items         OrderItemList `gorm:"type:jsonb" json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Shipping      float64       `json:"shipping"`
	Total         float64       `json:"total"` // total = subtotal + shipping (não recalculado no servidor)
	Status        string        `gorm:"default:PENDING;index" json:"status"`
	TrackingCode  *string       `json:"trackingCode,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
	ShippingAddr  JSONMap       `gorm:"column:shipping_address;type:jsonb" json:"shippingAddress,omitempty"`
	Payment       *Payment      `gorm:"foreignKey:OrderId" json:"payment,omitempty"`
}

type CreateOrderInput struct {
	CustomerName  string        `json:"customerName" validate:"required"`
	CustomerEmail *string       `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone *string       `json:"customerPhone"`
	Items         OrderItemList `json:"items" validate:"required,min=1,dive"`
	Subtotal      float64       `json:"subtotal" validate:"gte=0"`
	Shipping      float64       `json:"shipping" validate:"gte=0"`
	Total         float64       `json:"total" validate:"gte=0"`
	ShippingAddr  JSONMap       `json:"shippingAddress"`
}

type UpdateOrderInput struct {
	Status       *string `json:"status" validate:"omitempty,oneof=PENDING PAYMENT_PENDING PAID PROCESSING SHIPPED DELIVERED CANCELLED REFUNDED"`
	TrackingCode *string `json:"trackingCode"`
	Notes        *string `json:"notes"`
}

type OrderStatusCounts map[string]int64

type OrderStats struct {
	TotalOrders      int64          `json:"totalOrders"`
	PendingOrders    int64          `json:"pendingOrders"`
	ProcessingOrders int64          `json:"processingOrders"`
	ShippedOrders    int64          `json:"shippedOrders"`
	DeliveredOrders  int64          `json:"deliveredOrders"`
	CancelledOrders  int64          `json:"cancelledOrders"`
	TotalRevenue     float64        `json:"totalRevenue"`
	MonthRevenue     float64        `json:"monthRevenue"`
	RevenueGrowth    float64        `json:"revenueGrowth"`
	RecentOrders     []Order        `json:"recentOrders"`
	StatusCounts     map[string]int64 `json:"statusDistribution"`
}

type PurchaseHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderId       uint      `gorm:"not null;index:idx_purchase_order_product" json:"orderId"`
	ProductId     uint      `gorm:"not null;index:idx_purchase_order_product" json:"productId"`
	CustomerEmail string    `gorm:"not null;index" json:"customerEmail"`
	CustomerName  string    `json:"customerName"`
	ProductTitle  string    `json:"productTitle"`
	PricePaid     float64   `json:"pricePaid"`
	PurchasedAt   time.Time `gorm:"autoCreateTime" json:"purchasedAt"`
}
