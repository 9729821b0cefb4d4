// services/notifier.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"sneakcare-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type Notifier struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewNotifier(db *gorm.DB) *Notifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &Notifier{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler runs the daily jobs at 9 AM: reservation reminders for
// tomorrow's bookings and a low-stock sweep.
func (n *Notifier) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		n.SendReservationReminders()
		n.LogLowStock()
	})

	c.Start()
	log.Println("Notification scheduler started")
}

// Send delivers an SMS and records the attempt in notification_logs.
// Failures are logged, never propagated: notifications are best effort.
func (n *Notifier) Send(kind string, clientID *uuid.UUID, phone, message string) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo("+52" + phone)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(message)

	status := "sent"
	errorMsg := ""

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send %s to %s: %v", kind, phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("%s sent to %s, SID: %s", kind, phone, *resp.Sid)
	}

	entry := models.NotificationLog{
		Kind:         kind,
		ClientID:     clientID,
		Phone:        phone,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := n.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log notification for %s: %v", phone, err)
	}
}

func (n *Notifier) SendBookingConfirmation(r *models.Reservation, client *models.Client) {
	message := fmt.Sprintf(
		"Hola %s, tu reservación %s quedó registrada para el %s (%s). Consulta el estado con tu código en nuestro sitio.",
		client.Name, r.Reference, r.ScheduledDate.Format("02/01/2006"), r.TimeSlot)
	n.Send(models.NotificationBookingConfirmation, &client.ID, client.Phone, message)
}

func (n *Notifier) SendOrderReady(o *models.Order, client *models.Client) {
	message := fmt.Sprintf(
		"Hola %s, tu orden %s está lista para entrega.",
		client.Name, o.Reference)
	n.Send(models.NotificationOrderReady, &client.ID, client.Phone, message)
}

// SendReservationReminders notifies clients whose reservation is scheduled
// for tomorrow and still pending or confirmed.
func (n *Notifier) SendReservationReminders() {
	log.Println("Starting reservation reminder processing...")

	tomorrow := time.Now().AddDate(0, 0, 1)
	start := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	end := start.AddDate(0, 0, 1)

	var reservations []models.Reservation
	if err := n.db.Preload("Client").
		Where("scheduled_date >= ? AND scheduled_date < ? AND status IN ?",
			start, end, []string{models.ReservationStatusPending, models.ReservationStatusConfirmed}).
		Find(&reservations).Error; err != nil {
		log.Printf("Failed to fetch reservations for reminders: %v", err)
		return
	}

	for _, r := range reservations {
		if r.Client == nil {
			continue
		}
		message := fmt.Sprintf(
			"Hola %s, te recordamos tu reservación %s mañana (%s).",
			r.Client.Name, r.Reference, r.TimeSlot)
		n.Send(models.NotificationReservationReminder, &r.ClientID, r.Client.Phone, message)
	}

	log.Printf("Reservation reminder processing completed (%d reservations)", len(reservations))
}

// LogLowStock writes a warning for every product at or below its minimum.
func (n *Notifier) LogLowStock() {
	var products []models.Product
	if err := n.db.Where("is_active = ? AND stock <= min_stock", true).
		Find(&products).Error; err != nil {
		log.Printf("Failed to fetch low-stock products: %v", err)
		return
	}
	for _, p := range products {
		log.Printf("LOW STOCK: %s has %d units (minimum %d)", p.Name, p.Stock, p.MinStock)
	}
}
