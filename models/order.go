package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses, in the usual lifecycle order.
const (
	OrderStatusReceived  = "recibido"
	OrderStatusInProcess = "en_proceso"
	OrderStatusReady     = "listo"
	OrderStatusDelivered = "entregado"
	OrderStatusCancelled = "cancelado"
)

const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

const (
	DeliveryStore  = "tienda"
	DeliveryPickup = "domicilio"
)

type Order struct {
	ID              uuid.UUID `gorm:"type:char(36);primaryKey"`
	Reference       string    `gorm:"uniqueIndex;not null"`
	ClientID        uuid.UUID `gorm:"type:char(36);index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:char(36);index;not null"`

	Status         string `gorm:"type:varchar(20);default:'recibido'"`
	DeliveryMethod string `gorm:"type:varchar(20);default:'tienda'"`

	PickupStreet     string
	PickupPostalCode string  `gorm:"type:varchar(5)"`
	PickupFee        float64 `gorm:"type:decimal(10,2);default:0.0"`

	Subtotal float64 `gorm:"type:decimal(10,2);not null"`
	IVA      float64 `gorm:"type:decimal(10,2);not null" json:"iva"`
	Total    float64 `gorm:"type:decimal(10,2);not null"`

	PaymentStatus string  `gorm:"type:varchar(20);default:'unpaid'"`
	PaidAmount    float64 `gorm:"type:decimal(10,2);default:0.0"`
	PaymentMethod string
	Notes         string

	// Set when the order was created by converting a reservation.
	ReservationID *uuid.UUID `gorm:"type:char(36);index"`

	Client        *Client            `gorm:"foreignKey:ClientID"`
	ServiceItems  []OrderServiceItem `gorm:"foreignKey:OrderID"`
	ProductItems  []OrderProductItem `gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusEntry `gorm:"foreignKey:OrderID"`
	Payments      []Payment          `gorm:"foreignKey:OrderID"`

	gorm.Model
}

// OrderServiceItem is a service line. Shoe-specific lines carry one pair per
// row; plain lines aggregate by quantity.
type OrderServiceItem struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	OrderID     uuid.UUID `gorm:"type:char(36);index;not null"`
	ServiceID   uuid.UUID `gorm:"type:char(36);index;not null"`
	ServiceName string    `gorm:"not null"`
	Quantity    int       `gorm:"default:1"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null"`
	TotalPrice  float64   `gorm:"type:decimal(10,2);not null"`

	ShoeBrand       string
	ShoeModel       string
	ShoeDescription string

	StorageBox      string `gorm:"type:varchar(20)"`
	StorageLocation string `gorm:"type:varchar(40);index"`
}

func (i *OrderServiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

type OrderProductItem struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	OrderID     uuid.UUID `gorm:"type:char(36);index;not null"`
	ProductID   uuid.UUID `gorm:"type:char(36);index;not null"`
	ProductName string    `gorm:"not null"`
	Quantity    int       `gorm:"default:1"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null"`
	TotalPrice  float64   `gorm:"type:decimal(10,2);not null"`
}

func (i *OrderProductItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

type OrderStatusEntry struct {
	ID              uuid.UUID `gorm:"type:char(36);primaryKey"`
	OrderID         uuid.UUID `gorm:"type:char(36);index;not null"`
	Status          string    `gorm:"type:varchar(20);not null"`
	Notes           string
	CreatedByUserID uuid.UUID `gorm:"type:char(36)"`
	CreatedAt       time.Time
}

func (e *OrderStatusEntry) BeforeCreate(tx *gorm.DB) (err error) {
	e.ID = uuid.New()
	return
}
