package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLowStock   StockStatus = "low_stock"
	StockOutOfStock StockStatus = "out_of_stock"
	StockOnOrder    StockStatus = "on_order"
)

type Product struct {
	ID                   string                      `gorm:"primaryKey;size:36" json:"id"`
	Name                 string                      `gorm:"size:500;not null" json:"name"`
	SKU                  string                      `gorm:"size:100" json:"sku"`
	Price                int                         `gorm:"not null" json:"price"` // smallest currency unit
	Stock                StockStatus                 `gorm:"size:20;default:in_stock;not null" json:"stock"`
	ETA                  string                      `gorm:"size:100" json:"eta"`
	Description          string                      `gorm:"type:text" json:"description"`
	AvailableQuantity    int                         `gorm:"default:0;not null" json:"available_quantity"`
	MOQ                  int                         `gorm:"default:0;not null" json:"moq"` // 0 = no restriction
	ImageURL             string                      `gorm:"size:500" json:"image_url"`
	Brand                string                      `gorm:"size:255" json:"brand"`
	Category             string                      `gorm:"size:100" json:"category"`
	VisibleCustomerTypes datatypes.JSONSlice[string] `json:"visible_customer_types"` // empty = visible to all
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// VisibleTo reports whether the product should be shown to a customer of the
// given type. Products without an explicit visibility list are shown to everyone.
func (p *Product) VisibleTo(t CustomerType) bool {
	if len(p.VisibleCustomerTypes) == 0 {
		return true
	}
	for _, v := range p.VisibleCustomerTypes {
		if CustomerType(v) == t {
			return true
		}
	}
	return false
}
