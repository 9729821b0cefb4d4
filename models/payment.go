package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentMethodCash     = "efectivo"
	PaymentMethodCard     = "tarjeta"
	PaymentMethodTransfer = "transferencia"
)

// Payment is one payment against an order. Amount is independent of the
// order total; partial and multiple payments are allowed. For cash, Received
// holds what the client handed over and Change what was given back.
type Payment struct {
	ID               uuid.UUID `gorm:"type:char(36);primaryKey"`
	OrderID          uuid.UUID `gorm:"type:char(36);index;not null"`
	Method           string    `gorm:"type:varchar(20);not null"`
	Amount           float64   `gorm:"type:decimal(10,2);not null"`
	Received         float64   `gorm:"type:decimal(10,2);default:0.0"`
	Change           float64   `gorm:"type:decimal(10,2);default:0.0"`
	ReceivedByUserID uuid.UUID `gorm:"type:char(36)"`
	CreatedAt        time.Time
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = uuid.New()
	return
}
