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

type RegisterPaymentInput struct {
	Method   string  `json:"method" binding:"required,oneof=efectivo tarjeta transferencia"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Received float64 `json:"received" binding:"min=0"`
}

// RegisterPayment records a payment against an order and recomputes the
// paid amount and payment status in one transaction. The amount is
// independent of the order total; change is computed for cash, not enforced.
func RegisterPayment(db *gorm.DB) gin.HandlerFunc {
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

		orderUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
			return
		}

		var input RegisterPaymentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		var order models.Order
		if err := tx.First(&order, "id = ?", orderUUID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Order not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		if order.Status == models.OrderStatusCancelled {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusConflict, "No se puede pagar una orden cancelada")
			return
		}

		received := input.Received
		change := 0.0
		if input.Method == models.PaymentMethodCash {
			if received == 0 {
				received = input.Amount
			}
			change = services.CashChange(input.Amount, received)
		}

		payment := models.Payment{
			OrderID:          order.ID,
			Method:           input.Method,
			Amount:           input.Amount,
			Received:         received,
			Change:           change,
			ReceivedByUserID: userUUID,
		}
		if err := tx.Create(&payment).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to register payment")
			return
		}

		paid := order.PaidAmount + input.Amount
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"paid_amount":    paid,
			"payment_method": input.Method,
			"payment_status": services.PaymentStatusFor(paid, order.Total),
		}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
			return
		}

		tx.Commit()

		c.JSON(http.StatusCreated, payment)
	}
}

func GetOrderPayments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
			return
		}

		var payments []models.Payment
		if err := db.Where("order_id = ?", orderUUID).
			Order("created_at").Find(&payments).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
			return
		}

		c.JSON(http.StatusOK, payments)
	}
}
