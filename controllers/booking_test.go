package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sneakcare-backend/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() BookingInput {
	return BookingInput{
		Name:  "Juan Pérez",
		Phone: "5512345678",
		Email: "juan@example.com",
		Services: []BookingServiceInput{
			{ServiceID: uuid.New(), Quantity: 1, ShoeBrand: "Nike", ShoeModel: "Air Max 90"},
		},
		DeliveryMethod: "tienda",
		Date:           time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		TimeSlot:       "10:00-12:00",
	}
}

func fieldMessages(errs []FieldError, field string) []string {
	var msgs []string
	for _, e := range errs {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

func TestValidateBookingOK(t *testing.T) {
	date, errs := validateBooking(validInput())
	require.Empty(t, errs)
	assert.False(t, date.IsZero())
}

func TestValidateBookingRequiresService(t *testing.T) {
	input := validInput()
	input.Services = nil

	_, errs := validateBooking(input)
	assert.Contains(t, fieldMessages(errs, "services"), "Agrega al menos un servicio")
}

func TestValidateBookingPhone(t *testing.T) {
	input := validInput()
	input.Phone = "55123"

	_, errs := validateBooking(input)
	assert.Contains(t, fieldMessages(errs, "phone"), "El teléfono debe tener 10 dígitos")
}

func TestValidateBookingEmail(t *testing.T) {
	input := validInput()
	input.Email = "no-es-correo"

	_, errs := validateBooking(input)
	assert.NotEmpty(t, fieldMessages(errs, "email"))
}

func TestValidateBookingPickupNeedsAddress(t *testing.T) {
	input := validInput()
	input.DeliveryMethod = "domicilio"
	input.PickupStreet = ""
	input.PickupPostalCode = "123"

	_, errs := validateBooking(input)
	assert.NotEmpty(t, fieldMessages(errs, "pickupStreet"))
	assert.Contains(t, fieldMessages(errs, "pickupPostalCode"), "El código postal debe tener 5 dígitos")
}

func TestValidateBookingUnknownDeliveryMethod(t *testing.T) {
	input := validInput()
	input.DeliveryMethod = "drone"

	_, errs := validateBooking(input)
	assert.NotEmpty(t, fieldMessages(errs, "deliveryMethod"))
}

func TestValidateBookingPastDate(t *testing.T) {
	input := validInput()
	input.Date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	_, errs := validateBooking(input)
	assert.Contains(t, fieldMessages(errs, "date"), "La fecha no puede ser en el pasado")
}

func TestValidateBookingBadDateFormat(t *testing.T) {
	input := validInput()
	input.Date = "03/09/2026"

	_, errs := validateBooking(input)
	assert.Contains(t, fieldMessages(errs, "date"), "La fecha no es válida")
}

func TestValidateBookingMissingTimeSlot(t *testing.T) {
	input := validInput()
	input.TimeSlot = ""

	_, errs := validateBooking(input)
	assert.NotEmpty(t, fieldMessages(errs, "timeSlot"))
}

func TestValidateBookingZeroQuantity(t *testing.T) {
	input := validInput()
	input.Services[0].Quantity = 0

	_, errs := validateBooking(input)
	assert.Contains(t, fieldMessages(errs, "services"), "La cantidad debe ser al menos 1")
}

// A failed commit must answer 500 instead of confirming a reservation that
// was never persisted.
func TestCreateBookingCommitFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock := newMockDB(t)

	input := validInput()
	serviceID := input.Services[0].ServiceID
	clientID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `clients`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "email"}).
			AddRow(clientID.String(), "Juan Pérez", "5512345678", "juan@example.com"))
	mock.ExpectQuery("SELECT .* FROM `services`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "is_active"}).
			AddRow(serviceID.String(), "Limpieza premium", 200.0, true))
	mock.ExpectExec("INSERT INTO `reservations`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `reservation_services`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errors.New("driver: bad connection"))

	body, err := json.Marshal(input)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/booking", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	CreateBooking(db, services.NewNotifier(db))(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
