package controllers

import (
	"errors"
	"net/http"

	"sneakcare-backend/models"
	"sneakcare-backend/services"
	"sneakcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func GetReservations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Reservation{}).Preload("Client").Preload("Services")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var reservations []models.Reservation
		if err := query.Order("scheduled_date").Limit(200).Find(&reservations).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
			return
		}

		c.JSON(http.StatusOK, reservations)
	}
}

func GetReservation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reservationUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
			return
		}

		var reservation models.Reservation
		if err := db.Preload("Client").Preload("Services").
			First(&reservation, "id = ?", reservationUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		c.JSON(http.StatusOK, reservation)
	}
}

type UpdateReservationStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pendiente confirmada cancelada"`
}

func UpdateReservationStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reservationUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
			return
		}

		var input UpdateReservationStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var reservation models.Reservation
		if err := db.First(&reservation, "id = ?", reservationUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		if reservation.Status == models.ReservationStatusConverted {
			utils.RespondWithError(c, http.StatusConflict, "La reservación ya fue convertida en orden")
			return
		}

		if err := db.Model(&reservation).Update("status", input.Status).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reservation")
			return
		}

		reservation.Status = input.Status
		c.JSON(http.StatusOK, reservation)
	}
}

// ConvertReservationInput lets the admin add retail products and an initial
// payment at intake time.
type ConvertReservationInput struct {
	Products []services.CheckoutProductLine `json:"products"`
	Payment  *services.CheckoutPayment      `json:"payment"`
	Notes    string                         `json:"notes"`
}

// ConvertReservation turns a reservation into an order at physical intake:
// the reserved services become the cart and the checkout transaction runs
// as if the order had been built in the POS.
func ConvertReservation(db *gorm.DB, checkout *services.Checkout) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userId")
		if !exists {
			utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
			return
		}
		userUUID, err := uuid.Parse(userID.(string))
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
			return
		}

		reservationUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID format")
			return
		}

		var input ConvertReservationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var reservation models.Reservation
		if err := db.Preload("Services").First(&reservation, "id = ?", reservationUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		if reservation.Status == models.ReservationStatusConverted {
			utils.RespondWithError(c, http.StatusConflict, "La reservación ya fue convertida en orden")
			return
		}
		if reservation.Status == models.ReservationStatusCancelled {
			utils.RespondWithError(c, http.StatusConflict, "La reservación está cancelada")
			return
		}

		var serviceLines []services.CheckoutServiceLine
		for _, s := range reservation.Services {
			serviceLines = append(serviceLines, services.CheckoutServiceLine{
				ServiceID:       s.ServiceID,
				Quantity:        s.Quantity,
				ShoeBrand:       s.ShoeBrand,
				ShoeModel:       s.ShoeModel,
				ShoeDescription: s.ShoeDescription,
			})
		}

		order, err := checkout.CreateOrder(services.CheckoutInput{
			ClientID:         reservation.ClientID,
			CreatedByUserID:  userUUID,
			DeliveryMethod:   reservation.DeliveryMethod,
			PickupStreet:     reservation.PickupStreet,
			PickupPostalCode: reservation.PickupPostalCode,
			PickupFee:        reservation.PickupFee,
			Services:         serviceLines,
			Products:         input.Products,
			Payment:          input.Payment,
			Notes:            input.Notes,
			ReservationID:    &reservation.ID,
		})
		if err != nil {
			respondCheckoutError(c, err)
			return
		}

		broadcastNewOrder(order)

		c.JSON(http.StatusCreated, order)
	}
}
