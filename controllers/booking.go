// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"sneakcare-backend/models"
	"sneakcare-backend/services"
	"sneakcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingServiceInput struct {
	ServiceID       uuid.UUID `json:"serviceId"`
	Quantity        int       `json:"quantity"`
	ShoeBrand       string    `json:"shoeBrand"`
	ShoeModel       string    `json:"shoeModel"`
	ShoeDescription string    `json:"shoeDescription"`
}

// BookingInput is the payload the public booking wizard submits: personal
// info, services with shoe descriptions, delivery method and schedule.
type BookingInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`

	Services []BookingServiceInput `json:"services"`

	DeliveryMethod   string `json:"deliveryMethod"`
	PickupStreet     string `json:"pickupStreet"`
	PickupColonia    string `json:"pickupColonia"`
	PickupPostalCode string `json:"pickupPostalCode"`

	Date     string `json:"date"` // YYYY-MM-DD
	TimeSlot string `json:"timeSlot"`
	Notes    string `json:"notes"`
}

// FieldError is a field-specific validation message, matching the per-step
// inline errors the wizard shows.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validateBooking applies the wizard's per-step rules server-side. Returns
// the parsed date alongside any field errors.
func validateBooking(input BookingInput) (time.Time, []FieldError) {
	var errs []FieldError

	// Step 1: personal info
	if input.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "El nombre es requerido"})
	}
	if !utils.ValidatePhone(input.Phone) {
		errs = append(errs, FieldError{Field: "phone", Message: "El teléfono debe tener 10 dígitos"})
	}
	if !utils.ValidateEmail(input.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "El correo no es válido"})
	}

	// Step 2: services
	if len(input.Services) == 0 {
		errs = append(errs, FieldError{Field: "services", Message: "Agrega al menos un servicio"})
	}
	for _, s := range input.Services {
		if s.Quantity < 1 {
			errs = append(errs, FieldError{Field: "services", Message: "La cantidad debe ser al menos 1"})
			break
		}
	}

	// Step 3: delivery
	switch input.DeliveryMethod {
	case models.DeliveryStore:
	case models.DeliveryPickup:
		if input.PickupStreet == "" {
			errs = append(errs, FieldError{Field: "pickupStreet", Message: "La dirección es requerida"})
		}
		if !utils.ValidatePostalCode(input.PickupPostalCode) {
			errs = append(errs, FieldError{Field: "pickupPostalCode", Message: "El código postal debe tener 5 dígitos"})
		}
	default:
		errs = append(errs, FieldError{Field: "deliveryMethod", Message: "Selecciona un método de entrega"})
	}

	// Step 4: date and time
	var date time.Time
	if input.Date == "" {
		errs = append(errs, FieldError{Field: "date", Message: "La fecha es requerida"})
	} else {
		var err error
		date, err = time.Parse("2006-01-02", input.Date)
		if err != nil {
			errs = append(errs, FieldError{Field: "date", Message: "La fecha no es válida"})
		} else if date.Before(utils.BeginningOfDay(time.Now())) {
			errs = append(errs, FieldError{Field: "date", Message: "La fecha no puede ser en el pasado"})
		}
	}
	if input.TimeSlot == "" {
		errs = append(errs, FieldError{Field: "timeSlot", Message: "El horario es requerido"})
	}

	return date, errs
}

// CreateBooking handles the public booking submission: validates the wizard
// payload, finds or creates the client, resolves the pickup zone, and
// creates the reservation with its service lines in one transaction.
func CreateBooking(db *gorm.DB, notifier *services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		date, fieldErrors := validateBooking(input)
		if len(fieldErrors) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
			return
		}

		pickupFee := 0.0
		if input.DeliveryMethod == models.DeliveryPickup {
			var zone models.CoverageZone
			if err := db.Where("postal_code = ? AND is_active = ?", input.PickupPostalCode, true).
				First(&zone).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{{
						Field:   "pickupPostalCode",
						Message: "Por el momento no tenemos cobertura en tu zona",
					}}})
				} else {
					utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				}
				return
			}
			pickupFee = zone.PickupFee
		}

		phone := utils.StripNonDigits(input.Phone)

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		// Find or create the client by phone/email. Booking never overwrites
		// an existing client's data.
		var client models.Client
		err := tx.Where("phone = ? OR email = ?", phone, input.Email).First(&client).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			client = models.Client{
				Name:     input.Name,
				Phone:    phone,
				Email:    input.Email,
				IsActive: true,
			}
			if err := tx.Create(&client).Error; err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
				return
			}
		} else if err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}

		var reservationServices []models.ReservationService
		for _, line := range input.Services {
			var service models.Service
			if err := tx.Where("id = ? AND is_active = ?", line.ServiceID, true).
				First(&service).Error; err != nil {
				tx.Rollback()
				if errors.Is(err, gorm.ErrRecordNotFound) {
					utils.RespondWithError(c, http.StatusBadRequest,
						(&services.ServiceNotFoundError{ServiceID: line.ServiceID}).Error())
				} else {
					utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				}
				return
			}
			reservationServices = append(reservationServices, models.ReservationService{
				ID:              uuid.New(),
				ServiceID:       service.ID,
				ServiceName:     service.Name,
				Quantity:        line.Quantity,
				UnitPrice:       service.Price,
				ShoeBrand:       line.ShoeBrand,
				ShoeModel:       line.ShoeModel,
				ShoeDescription: line.ShoeDescription,
			})
		}

		reservation := models.Reservation{
			ID:               uuid.New(),
			Reference:        services.NewReservationReference(),
			ClientID:         client.ID,
			Status:           models.ReservationStatusPending,
			DeliveryMethod:   input.DeliveryMethod,
			PickupStreet:     input.PickupStreet,
			PickupPostalCode: input.PickupPostalCode,
			PickupFee:        pickupFee,
			ScheduledDate:    date,
			TimeSlot:         input.TimeSlot,
			Notes:            input.Notes,
			Services:         reservationServices,
		}

		if err := tx.Create(&reservation).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reservation")
			return
		}

		if err := tx.Commit().Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reservation")
			return
		}

		go notifier.SendBookingConfirmation(&reservation, &client)

		c.JSON(http.StatusCreated, gin.H{
			"reference":     reservation.Reference,
			"scheduledDate": reservation.ScheduledDate.Format("2006-01-02"),
			"timeSlot":      reservation.TimeSlot,
			"pickupFee":     reservation.PickupFee,
		})
	}
}

// CheckZone is the public postal-code serviceability lookup the wizard
// debounces against.
func CheckZone(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cp := c.Param("cp")
		if !utils.ValidatePostalCode(cp) {
			utils.RespondWithError(c, http.StatusBadRequest, "El código postal debe tener 5 dígitos")
			return
		}

		var zone models.CoverageZone
		if err := db.Where("postal_code = ? AND is_active = ?", cp, true).First(&zone).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"serviceable": false})
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"serviceable": true,
			"zone":        zone.Name,
			"pickupFee":   zone.PickupFee,
		})
	}
}
