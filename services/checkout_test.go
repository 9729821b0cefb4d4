package services

import (
	"regexp"
	"testing"

	"sneakcare-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestNewOrderReferenceFormat(t *testing.T) {
	ref := NewOrderReference()
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{8}-[A-Z2-9]{6}$`), ref)
}

func TestNewReservationReferenceFormat(t *testing.T) {
	ref := NewReservationReference()
	assert.Regexp(t, regexp.MustCompile(`^RSV-\d{8}-[A-Z2-9]{6}$`), ref)
}

func TestReferencesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := NewOrderReference()
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}

func TestPaymentStatusFor(t *testing.T) {
	assert.Equal(t, models.PaymentStatusUnpaid, PaymentStatusFor(0, 300))
	assert.Equal(t, models.PaymentStatusPartial, PaymentStatusFor(100, 300))
	assert.Equal(t, models.PaymentStatusPaid, PaymentStatusFor(300, 300))
	assert.Equal(t, models.PaymentStatusPaid, PaymentStatusFor(500, 300))
	assert.Equal(t, models.PaymentStatusUnpaid, PaymentStatusFor(0, 0))
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{ProductName: "Crema protectora"}
	assert.Equal(t, "Stock insuficiente para Crema protectora", err.Error())
}

func TestMergeProductLines(t *testing.T) {
	crema, cepillo := uuid.New(), uuid.New()

	merged := mergeProductLines([]CheckoutProductLine{
		{ProductID: crema, Quantity: 1},
		{ProductID: cepillo, Quantity: 2},
		{ProductID: crema, Quantity: 2},
	})

	require.Len(t, merged, 2)
	assert.Equal(t, crema, merged[0].ProductID)
	assert.Equal(t, 3, merged[0].Quantity)
	assert.Equal(t, cepillo, merged[1].ProductID)
	assert.Equal(t, 2, merged[1].Quantity)
}

// Selling more units than are on the shelf must touch zero rows, roll the
// whole transaction back and surface the stock error: no order, no items, no
// movement rows.
func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	clientID := uuid.New()
	serviceID := uuid.New()
	productID := uuid.New()

	mock.ExpectQuery("SELECT .* FROM `clients`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}).
			AddRow(clientID.String(), "Juan Pérez", "5512345678"))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `services`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "is_active"}).
			AddRow(serviceID.String(), "Limpieza básica", 150.0, true))
	mock.ExpectQuery("SELECT .* FROM `products`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "is_active"}).
			AddRow(productID.String(), "Crema protectora", 50.0, 2, true))
	// quantity 3 against stock 2: the guarded UPDATE matches no row.
	mock.ExpectExec("UPDATE `products` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	checkout := NewCheckout(db)
	_, err := checkout.CreateOrder(CheckoutInput{
		ClientID:        clientID,
		CreatedByUserID: uuid.New(),
		Services:        []CheckoutServiceLine{{ServiceID: serviceID, Quantity: 1}},
		Products:        []CheckoutProductLine{{ProductID: productID, Quantity: 3}},
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Crema protectora", stockErr.ProductName)

	// Expectations end at ROLLBACK: any INSERT would have failed the mock.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderUnknownServiceRollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	clientID := uuid.New()
	serviceID := uuid.New()

	mock.ExpectQuery("SELECT .* FROM `clients`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone"}).
			AddRow(clientID.String(), "Juan Pérez", "5512345678"))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `services`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "is_active"}))
	mock.ExpectRollback()

	checkout := NewCheckout(db)
	_, err := checkout.CreateOrder(CheckoutInput{
		ClientID:        clientID,
		CreatedByUserID: uuid.New(),
		Services:        []CheckoutServiceLine{{ServiceID: serviceID, Quantity: 1}},
	})

	var svcErr *ServiceNotFoundError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, serviceID, svcErr.ServiceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
