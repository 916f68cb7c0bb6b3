package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

type CustomerStatus string

const (
	StatusPending  CustomerStatus = "pending"
	StatusApproved CustomerStatus = "approved"
	StatusLimited  CustomerStatus = "limited"
	StatusPaused   CustomerStatus = "paused"
	StatusRejected CustomerStatus = "rejected"
)

func (s CustomerStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusLimited, StatusPaused, StatusRejected:
		return true
	}
	return false
}

// CustomerType determines the markup applied on top of the base catalog price.
// Resellers always see the wholesale price.
type CustomerType string

const (
	TypeReseller   CustomerType = "reseller"
	TypeCorporate  CustomerType = "corporate"
	TypeGovernment CustomerType = "government"
)

func (t CustomerType) Valid() bool {
	switch t {
	case TypeReseller, TypeCorporate, TypeGovernment:
		return true
	}
	return false
}

type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
}

type Customer struct {
	ID                 string                        `gorm:"primaryKey;size:36" json:"id"`
	CompanyName        string                        `gorm:"size:255;not null" json:"company_name"`
	TaxID              string                        `gorm:"size:50;unique;not null" json:"tax_id"`
	DeliveryAddress    string                        `gorm:"type:text;not null" json:"delivery_address"`
	BankName           string                        `gorm:"size:255" json:"bank_name"`
	BankAccount        string                        `gorm:"size:100" json:"bank_account"`
	RepresentativeName string                        `gorm:"size:255;not null" json:"representative_name"`
	Email              string                        `gorm:"size:255;unique;not null" json:"email"`
	Phone              string                        `gorm:"size:50" json:"phone"`
	Messenger          string                        `gorm:"size:20" json:"messenger"` // telegram, whatsapp, viber
	MessengerContact   string                        `gorm:"size:255" json:"messenger_contact"`
	PasswordHash       string                        `gorm:"size:255;not null" json:"-"`
	Role               Role                          `gorm:"size:20;default:customer;not null" json:"role"`
	Status             CustomerStatus                `gorm:"size:20;default:pending;not null" json:"status"`
	CustomerType       CustomerType                  `gorm:"size:50;default:reseller;not null" json:"customer_type"`
	Cart               datatypes.JSONSlice[CartItem] `json:"cart"`
	CreatedAt          time.Time                     `json:"created_at"`
	UpdatedAt          time.Time                     `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type PasswordResetToken struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	CustomerID string    `gorm:"size:36;not null;index" json:"customer_id"`
	Token      string    `gorm:"size:255;unique;not null" json:"-"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
	Used       bool      `gorm:"default:false;not null" json:"used"`
	CreatedAt  time.Time `json:"created_at"`
}

func (t *PasswordResetToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
