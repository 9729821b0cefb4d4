package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactMessage struct {
	ID      uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name    string    `gorm:"not null"`
	Email   string    `gorm:"not null"`
	Phone   string
	Message string `gorm:"type:text;not null"`

	IsRead     bool `gorm:"default:false"`
	IsStarred  bool `gorm:"default:false"`
	IsArchived bool `gorm:"default:false"`

	gorm.Model
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) (err error) {
	m.ID = uuid.New()
	return
}
