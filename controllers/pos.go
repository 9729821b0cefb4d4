// controllers/pos.go
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

// POSCheckoutInput is the payload assembled by the admin point-of-sale.
type POSCheckoutInput struct {
	ClientID uuid.UUID `json:"clientId" binding:"required"`

	Services []services.CheckoutServiceLine `json:"services" binding:"required"`
	Products []services.CheckoutProductLine `json:"products"`

	DeliveryMethod   string `json:"deliveryMethod" binding:"omitempty,oneof=tienda domicilio"`
	PickupStreet     string `json:"pickupStreet"`
	PickupPostalCode string `json:"pickupPostalCode"`

	Payment *services.CheckoutPayment `json:"payment"`
	Notes   string                    `json:"notes"`
}

// POSCheckout validates the cart, resolves the pickup surcharge and runs the
// checkout transaction. The created order is broadcast on the admin feed.
func POSCheckout(db *gorm.DB, checkout *services.Checkout) gin.HandlerFunc {
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

		var input POSCheckoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		checkoutInput := services.CheckoutInput{
			ClientID:         input.ClientID,
			CreatedByUserID:  userUUID,
			DeliveryMethod:   input.DeliveryMethod,
			PickupStreet:     input.PickupStreet,
			PickupPostalCode: input.PickupPostalCode,
			Services:         input.Services,
			Products:         input.Products,
			Payment:          input.Payment,
			Notes:            input.Notes,
		}

		if input.DeliveryMethod == models.DeliveryPickup {
			if !utils.ValidatePostalCode(input.PickupPostalCode) {
				utils.RespondWithError(c, http.StatusBadRequest, "El código postal debe tener 5 dígitos")
				return
			}
			var zone models.CoverageZone
			if err := db.Where("postal_code = ? AND is_active = ?", input.PickupPostalCode, true).
				First(&zone).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					utils.RespondWithError(c, http.StatusBadRequest, "Zona no disponible para recolección")
				} else {
					utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				}
				return
			}
			checkoutInput.PickupFee = zone.PickupFee
		}

		order, err := checkout.CreateOrder(checkoutInput)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}

		broadcastNewOrder(order)

		c.JSON(http.StatusCreated, order)
	}
}

// respondCheckoutError maps checkout business errors onto flat client
// messages; anything unexpected stays a generic database error.
func respondCheckoutError(c *gin.Context, err error) {
	var stockErr *services.InsufficientStockError
	var svcErr *services.ServiceNotFoundError
	var prodErr *services.ProductNotFoundError

	switch {
	case errors.Is(err, services.ErrNoServices),
		errors.Is(err, services.ErrDuplicatePair):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrClientNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.As(err, &stockErr), errors.As(err, &svcErr), errors.As(err, &prodErr):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}
