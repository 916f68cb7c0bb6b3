package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settings is a single-row table holding the tenant-wide merchandising levers.
// The markups are applied at read time by the pricing calculator, never baked
// into product rows.
type Settings struct {
	ID                         string    `gorm:"primaryKey;size:36" json:"id"`
	CorporateMarkupPercentage  int       `gorm:"default:10;not null" json:"corporate_markup_percentage"`
	GovernmentMarkupPercentage int       `gorm:"default:10;not null" json:"government_markup_percentage"`
	UpdatedAt                  time.Time `json:"updated_at"`
}

func (s *Settings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
