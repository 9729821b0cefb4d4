package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID              uuid.UUID `gorm:"type:char(36);primaryKey"`
	CreatedByUserID *uuid.UUID `gorm:"type:char(36);index"` // nil for clients created from the public booking flow

	Name  string `gorm:"not null"`
	Phone string `gorm:"type:varchar(10);not null;uniqueIndex"`
	Email string `gorm:"index"`

	Street     string
	Colonia    string
	PostalCode string `gorm:"type:varchar(5)"`
	City       string

	LoyaltyPoints int     `gorm:"default:0"`
	TotalVisits   int     `gorm:"default:0"`
	TotalSpent    float64 `gorm:"type:decimal(10,2);default:0.0"`
	LastVisit     *time.Time
	Notes         string
	IsActive      bool `gorm:"default:true"`

	Orders []Order `gorm:"foreignKey:ClientID"`

	gorm.Model
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	c.ID = uuid.New()
	return
}
