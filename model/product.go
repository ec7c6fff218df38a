package model

type Product struct {
	DTO
	Title        string  `gorm:"not null" json:"title"`
	Slug         string  `gorm:"index" json:"slug"`
	Description  *string `json:"description,omitempty"`
	Price        float64 `gorm:"not null" json:"price"`
	ComparePrice *float64 `json:"comparePrice,omitempty"`
	Stock        int     `gorm:"default:0" json:"stock"`
	Category     *string `json:"category,omitempty"`
	Tags         StringList `gorm:"type:jsonb" json:"tags"`
	Type         string  `gorm:"default:PHYSICAL" json:"type"` // PHYSICAL, DIGITAL
	Condition    string  `gorm:"default:NEW" json:"condition"`
	Featured     bool    `gorm:"default:false" json:"featured"`
	Active       bool    `gorm:"default:true" json:"active"`
	SKU          *string `gorm:"column:sku;uniqueIndex" json:"sku,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	Dimensions   JSONMap `gorm:"type:jsonb" json:"dimensions,omitempty"`

	Images       []ProductImage `gorm:"foreignKey:ProductId" json:"images,omitempty"`
	DigitalFiles []DigitalFile  `gorm:"foreignKey:ProductId" json:"digitalFiles,omitempty"`
	Promotions   []Promotion    `gorm:"foreignKey:ProductId" json:"promotions,omitempty"`
}

type ProductImage struct {
	DTO
	ProductId uint    `gorm:"not null;index" json:"productId"`
	Url       string  `gorm:"not null" json:"url"`
	Order     int     `gorm:"default:0" json:"order"`
	Alt       *string `json:"alt,omitempty"`
}

type DigitalFile struct {
	DTO
	ProductId     uint    `gorm:"not null;index" json:"productId"`
	Name          string  `gorm:"not null" json:"name"`
	Description   *string `json:"description,omitempty"`
	FileUrl       string  `gorm:"not null" json:"fileUrl"`
	FileSize      int64   `json:"fileSize"`
	FileType      string  `json:"fileType"`
	Active        bool    `gorm:"default:true" json:"active"`
	DownloadCount int     `gorm:"default:0" json:"downloadCount"`
}

type CreateProductInput struct {
	Title        string     `json:"title" validate:"required"`
	Description  *string    `json:"description"`
	Price        float64    `json:"price" validate:"required,gt=0"`
	ComparePrice *float64   `json:"comparePrice" validate:"omitempty,gt=0"`
	Stock        *int       `json:"stock" validate:"omitempty,gte=0"`
	Category     *string    `json:"category"`
	Tags         StringList `json:"tags"`
	Type         *string    `json:"type" validate:"omitempty,oneof=PHYSICAL DIGITAL"`
	Condition    *string    `json:"condition"`
	Featured     *bool      `json:"featured"`
	SKU          *string    `json:"sku"`
	Weight       *float64   `json:"weight" validate:"omitempty,gt=0"`
	Dimensions   JSONMap    `json:"dimensions"`
}

type UpdateProductInput struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Price        *float64   `json:"price" validate:"omitempty,gt=0"`
	ComparePrice *float64   `json:"comparePrice"`
	Stock        *int       `json:"stock" validate:"omitempty,gte=0"`
	Category     *string    `json:"category"`
	Tags         StringList `json:"tags"`
	Featured     *bool      `json:"featured"`
	Active       *bool      `json:"active"`
	SKU          *string    `json:"sku"`
	Weight       *float64   `json:"weight"`
	Dimensions   JSONMap    `json:"dimensions"`
}

type UpdateDigitalFileInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}
