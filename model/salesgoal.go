package model

type SalesGoal struct {
	DTO
	Month       int     `gorm:"not null;uniqueIndex:idx_goal_month_year" json:"month"`
	Year        int     `gorm:"not null;uniqueIndex:idx_goal_month_year" json:"year"`
	TargetValue float64 `gorm:"not null" json:"targetValue"`
	Description *string `json:"description,omitempty"`
}

type CreateSalesGoalInput struct {
	Month       int     `json:"month" validate:"required,gte=1,lte=12"`
	Year        int     `json:"year" validate:"required,gte=2020"`
	TargetValue float64 `json:"targetValue" validate:"required,gt=0"`
	Description *string `json:"description"`
}

type UpdateSalesGoalInput struct {
	TargetValue *float64 `json:"targetValue" validate:"omitempty,gt=0"`
	Description *string  `json:"description"`
}

type SalesGoalProgress struct {
	CurrentValue float64 `json:"currentValue"`
	TargetValue  float64 `json:"targetValue"`
	Percentage   float64 `json:"percentage"`
	Remaining    float64 `json:"remaining"`
	OrderCount   int64   `json:"orderCount"`
	Achieved     bool    `json:"achieved"`
}
