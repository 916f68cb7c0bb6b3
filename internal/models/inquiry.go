package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InquiryStatus string

const (
	InquirySent          InquiryStatus = "sent"
	InquiryOfferReceived InquiryStatus = "offer_received"
	InquiryOrdered       InquiryStatus = "ordered"
	InquiryNoOffer       InquiryStatus = "no_offer"
	InquiryClosed        InquiryStatus = "closed"
)

type RequestedProduct struct {
	Category    string `json:"category,omitempty"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Image       string `json:"image,omitempty"` // base64 encoded
}

// Inquiry is a customer's request for a quote on products that are not
// (or not suitably) in the catalog. Admin answers it with one or more offers.
type Inquiry struct {
	ID                string                                `gorm:"primaryKey;size:36" json:"id"`
	CustomerID        string                                `gorm:"size:36;not null;index" json:"customer_id"`
	ProductsRequested datatypes.JSONSlice[RequestedProduct] `gorm:"not null" json:"products_requested"`
	Status            InquiryStatus                         `gorm:"size:50;default:sent;not null" json:"status"`
	Deadline          *time.Time                            `json:"deadline"`
	Seen              bool                                  `gorm:"default:false;not null" json:"seen"`
	CreatedAt         time.Time                             `json:"created_at"`
	UpdatedAt         time.Time                             `json:"updated_at"`
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

type Offer struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	InquiryID    string    `gorm:"size:36;not null;index" json:"inquiry_id"`
	ProductID    string    `gorm:"size:36" json:"product_id"` // optional catalog link
	ProductName  string    `gorm:"size:500;not null" json:"product_name"`
	Price        int       `gorm:"not null" json:"price"`
	Quantity     int       `gorm:"default:1;not null" json:"quantity"`
	DeliveryTime string    `gorm:"size:100" json:"delivery_time"`
	Comment      string    `gorm:"type:text" json:"comment"`
	Seen         bool      `gorm:"default:false;not null" json:"seen"`
	CreatedAt    time.Time `json:"created_at"`
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
