// controllers/tracking.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"sneakcare-backend/models"
	"sneakcare-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TrackReference is the public tracking endpoint. It accepts both order
// (ORD-) and reservation (RSV-) references and exposes status without
// client PII beyond the first name.
func TrackReference(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reference := strings.ToUpper(strings.TrimSpace(c.Param("reference")))

		switch {
		case strings.HasPrefix(reference, "ORD-"):
			trackOrder(c, db, reference)
		case strings.HasPrefix(reference, "RSV-"):
			trackReservation(c, db, reference)
		default:
			utils.RespondWithError(c, http.StatusBadRequest, "Referencia no válida")
		}
	}
}

func firstName(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func trackOrder(c *gin.Context, db *gorm.DB, reference string) {
	var order models.Order
	if err := db.Preload("Client").Preload("ServiceItems").Preload("StatusHistory").
		Where("reference = ?", reference).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No encontramos esa referencia")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	type historyEntry struct {
		Status string `json:"status"`
		Date   string `json:"date"`
	}
	history := make([]historyEntry, 0, len(order.StatusHistory))
	for _, h := range order.StatusHistory {
		history = append(history, historyEntry{
			Status: h.Status,
			Date:   h.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	type lineEntry struct {
		Service  string `json:"service"`
		Quantity int    `json:"quantity"`
		Shoe     string `json:"shoe,omitempty"`
	}
	lines := make([]lineEntry, 0, len(order.ServiceItems))
	for _, item := range order.ServiceItems {
		shoe := strings.TrimSpace(item.ShoeBrand + " " + item.ShoeModel)
		lines = append(lines, lineEntry{
			Service:  item.ServiceName,
			Quantity: item.Quantity,
			Shoe:     shoe,
		})
	}

	clientName := ""
	if order.Client != nil {
		clientName = firstName(order.Client.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"type":          "orden",
		"reference":     order.Reference,
		"client":        clientName,
		"status":        order.Status,
		"paymentStatus": order.PaymentStatus,
		"total":         order.Total,
		"paidAmount":    order.PaidAmount,
		"services":      lines,
		"history":       history,
	})
}

func trackReservation(c *gin.Context, db *gorm.DB, reference string) {
	var reservation models.Reservation
	if err := db.Preload("Client").Preload("Services").
		Where("reference = ?", reference).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No encontramos esa referencia")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	type lineEntry struct {
		Service  string `json:"service"`
		Quantity int    `json:"quantity"`
	}
	lines := make([]lineEntry, 0, len(reservation.Services))
	for _, s := range reservation.Services {
		lines = append(lines, lineEntry{Service: s.ServiceName, Quantity: s.Quantity})
	}

	clientName := ""
	if reservation.Client != nil {
		clientName = firstName(reservation.Client.Name)
	}

	response := gin.H{
		"type":          "reservacion",
		"reference":     reservation.Reference,
		"client":        clientName,
		"status":        reservation.Status,
		"scheduledDate": reservation.ScheduledDate.Format("2006-01-02"),
		"timeSlot":      reservation.TimeSlot,
		"services":      lines,
	}

	// A converted reservation points the client at the order reference.
	if reservation.OrderID != nil {
		var order models.Order
		if err := db.Select("reference").First(&order, "id = ?", *reservation.OrderID).Error; err == nil {
			response["orderReference"] = order.Reference
		}
	}

	c.JSON(http.StatusOK, response)
}
