package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentNotPaid       PaymentStatus = "not_paid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentPaid          PaymentStatus = "paid"
)

type DeliveryStatus string

const (
	DeliveryProcessing DeliveryStatus = "processing"
	DeliveryConfirmed  DeliveryStatus = "confirmed"
	DeliveryTransit    DeliveryStatus = "transit"
	DeliveryDelivered  DeliveryStatus = "delivered"
)

type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
}

type Order struct {
	ID             string                         `gorm:"primaryKey;size:36" json:"id"`
	OrderNumber    string                         `gorm:"size:50;unique;not null" json:"order_number"`
	CustomerID     string                         `gorm:"size:36;not null;index" json:"customer_id"`
	Customer       *Customer                      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Total          int                            `gorm:"not null" json:"total"`
	Status         OrderStatus                    `gorm:"size:20;default:pending;not null" json:"status"`
	PaymentStatus  PaymentStatus                  `gorm:"size:20;default:not_paid;not null" json:"payment_status"`
	DeliveryStatus DeliveryStatus                 `gorm:"size:20;default:processing;not null" json:"delivery_status"`
	DeliveryDate   *time.Time                     `json:"delivery_date"`
	Items          datatypes.JSONSlice[OrderItem] `gorm:"not null" json:"items"`
	Seen           bool                           `gorm:"default:true;not null" json:"seen"`
	AdminSeen      bool                           `gorm:"default:false;not null" json:"admin_seen"`
	CreatedAt      time.Time                      `json:"created_at"`
	UpdatedAt      time.Time                      `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrderComment struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	OrderID    string    `gorm:"size:36;not null;index" json:"order_id"`
	AuthorID   string    `gorm:"size:36;not null" json:"author_id"`
	AuthorRole Role      `gorm:"size:20;not null" json:"author_role"`
	AuthorName string    `gorm:"size:255" json:"author_name"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	IsInternal bool      `gorm:"default:false;not null" json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c *OrderComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
