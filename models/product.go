package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductCategory struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name        string    `gorm:"not null;uniqueIndex"`
	Description string

	Products []Product `gorm:"foreignKey:CategoryID"`

	gorm.Model
}

func (c *ProductCategory) BeforeCreate(tx *gorm.DB) (err error) {
	c.ID = uuid.New()
	return
}

// Product is a retail item (cleaners, laces, protectors). Price is IVA-inclusive.
type Product struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey"`
	CategoryID *uuid.UUID `gorm:"type:char(36);index"`

	Name        string `gorm:"not null"`
	Description string
	Price       float64 `gorm:"type:decimal(10,2);not null"`
	Stock       int     `gorm:"default:0"`
	MinStock    int     `gorm:"default:0"`
	IsActive    bool    `gorm:"default:true"`

	Category *ProductCategory `gorm:"foreignKey:CategoryID"`

	gorm.Model
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = uuid.New()
	return
}

// StockMovement records every stock change on a product, created on sale,
// manual adjustment or cancellation restore.
type StockMovement struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	ProductID     uuid.UUID `gorm:"type:char(36);not null;index"`
	Type          string    `gorm:"not null"` // "venta" | "ajuste_manual" | "restore_cancelacion"
	Quantity      int       `gorm:"not null"` // positive = entrada, negative = salida
	PreviousStock int       `gorm:"not null"`
	NewStock      int       `gorm:"not null"`
	Reference     string    // order reference or adjustment reason
	CreatedAt     time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (m *StockMovement) BeforeCreate(tx *gorm.DB) (err error) {
	m.ID = uuid.New()
	return
}
