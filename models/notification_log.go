package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationBookingConfirmation = "booking_confirmation"
	NotificationReservationReminder = "reservation_reminder"
	NotificationOrderReady          = "order_ready"
)

type NotificationLog struct {
	ID           uuid.UUID  `gorm:"type:char(36);primaryKey"`
	Kind         string     `gorm:"type:varchar(30);not null"`
	ClientID     *uuid.UUID `gorm:"type:char(36);index"`
	Phone        string     `gorm:"type:varchar(15)"`
	Message      string     `gorm:"type:text"`
	Status       string     `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string     `gorm:"type:text"`
	SentAt       time.Time

	gorm.Model
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	n.ID = uuid.New()
	return
}
