package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a sneaker-cleaning service. Price is IVA-inclusive.
type Service struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name          string    `gorm:"not null"`
	Description   string
	Price         float64 `gorm:"type:decimal(10,2);not null"`
	EstimatedDays int     // turnaround in business days
	Category      string  `gorm:"default:'General'"`
	IsActive      bool    `gorm:"default:true"`

	OrderItems []OrderServiceItem `gorm:"foreignKey:ServiceID"`

	gorm.Model
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	s.ID = uuid.New()
	return
}
