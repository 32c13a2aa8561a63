package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryDoor      ProductCategory = "puerta"
	CategoryMolding   ProductCategory = "moldura"
	CategoryAccessory ProductCategory = "accesorio"
)

// ValidCategory reports whether c is one of the catalogue categories.
func ValidCategory(c ProductCategory) bool {
	switch c {
	case CategoryDoor, CategoryMolding, CategoryAccessory:
		return true
	}
	return false
}

type Product struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	SKU           string          `gorm:"size:40;uniqueIndex" json:"sku"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Category      ProductCategory `gorm:"type:varchar(30);index" json:"category"`
	Material      string          `gorm:"size:60" json:"material"` // MDF, pino, HDF...
	Sizes         StringList      `json:"sizes"`                   // 70x200, 80x200 (cm)
	Price         int64           `gorm:"not null" json:"price"`   // CLP, IVA no incluido
	StockQuantity int             `gorm:"default:0" json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
