package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CoverageZone marks a postal code as serviceable for home pickup and the
// surcharge it carries.
type CoverageZone struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	PostalCode string    `gorm:"type:varchar(5);uniqueIndex;not null"`
	Name       string    `gorm:"not null"`
	PickupFee  float64   `gorm:"type:decimal(10,2);default:0.0"`
	IsActive   bool      `gorm:"default:true"`

	gorm.Model
}

func (z *CoverageZone) BeforeCreate(tx *gorm.DB) (err error) {
	z.ID = uuid.New()
	return
}
