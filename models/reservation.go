package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReservationStatusPending   = "pendiente"
	ReservationStatusConfirmed = "confirmada"
	ReservationStatusConverted = "convertida"
	ReservationStatusCancelled = "cancelada"
)

// Reservation is a pre-intake booking created from the public site. It
// becomes an Order once the shoes are physically received.
type Reservation struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Reference string    `gorm:"uniqueIndex;not null"`
	ClientID  uuid.UUID `gorm:"type:char(36);index;not null"`

	Status         string `gorm:"type:varchar(20);default:'pendiente'"`
	DeliveryMethod string `gorm:"type:varchar(20);default:'tienda'"`

	PickupStreet     string
	PickupPostalCode string  `gorm:"type:varchar(5)"`
	PickupFee        float64 `gorm:"type:decimal(10,2);default:0.0"`

	ScheduledDate time.Time `gorm:"not null"`
	TimeSlot      string    `gorm:"type:varchar(20);not null"`
	Notes         string

	// Set once the reservation has been converted into an order.
	OrderID *uuid.UUID `gorm:"type:char(36);index"`

	Client   *Client              `gorm:"foreignKey:ClientID"`
	Services []ReservationService `gorm:"foreignKey:ReservationID"`

	gorm.Model
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

type ReservationService struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	ReservationID uuid.UUID `gorm:"type:char(36);index;not null"`
	ServiceID     uuid.UUID `gorm:"type:char(36);index;not null"`
	ServiceName   string    `gorm:"not null"`
	Quantity      int       `gorm:"default:1"`
	UnitPrice     float64   `gorm:"type:decimal(10,2);not null"`

	ShoeBrand       string
	ShoeModel       string
	ShoeDescription string
}

func (s *ReservationService) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
