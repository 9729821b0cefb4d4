// services/checkout.go
package services

import (
	"errors"
	"fmt"
	"time"

	"sneakcare-backend/models"
	"sneakcare-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Validation and business errors surfaced to the admin as flat strings.
var (
	ErrNoServices     = errors.New("Agrega al menos un servicio")
	ErrClientNotFound = errors.New("Cliente no encontrado")
)

type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return "Stock insuficiente para " + e.ProductName
}

type ServiceNotFoundError struct {
	ServiceID uuid.UUID
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("Servicio con ID %s no encontrado", e.ServiceID)
}

type ProductNotFoundError struct {
	ProductID uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Producto con ID %s no encontrado", e.ProductID)
}

// One loyalty point per $10 of order total.
const loyaltyPointsPerAmount = 10.0

type CheckoutServiceLine struct {
	ServiceID       uuid.UUID `json:"serviceId" binding:"required"`
	Quantity        int       `json:"quantity" binding:"min=1"`
	ShoeBrand       string    `json:"shoeBrand"`
	ShoeModel       string    `json:"shoeModel"`
	ShoeDescription string    `json:"shoeDescription"`
}

type CheckoutProductLine struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"min=1"`
}

type CheckoutPayment struct {
	Method   string  `json:"method" binding:"required,oneof=efectivo tarjeta transferencia"`
	Amount   float64 `json:"amount" binding:"min=0"`
	Received float64 `json:"received" binding:"min=0"`
}

type CheckoutInput struct {
	ClientID        uuid.UUID
	CreatedByUserID uuid.UUID

	DeliveryMethod   string
	PickupStreet     string
	PickupPostalCode string
	PickupFee        float64

	Services []CheckoutServiceLine
	Products []CheckoutProductLine
	Payment  *CheckoutPayment
	Notes    string

	ReservationID *uuid.UUID
}

// Checkout runs order creation as one database transaction: order row,
// service and product line items, guarded stock decrements, totals, status
// history, optional initial payment and client stats. Any failure rolls the
// whole sequence back.
type Checkout struct {
	db *gorm.DB
}

func NewCheckout(db *gorm.DB) *Checkout {
	return &Checkout{db: db}
}

func NewOrderReference() string {
	return "ORD-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6)
}

func NewReservationReference() string {
	return "RSV-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6)
}

// mergeProductLines coalesces repeated product ids into one line, so a
// payload carrying the same product twice yields a single detail row and a
// single stock decrement.
func mergeProductLines(lines []CheckoutProductLine) []CheckoutProductLine {
	merged := make([]CheckoutProductLine, 0, len(lines))
	index := make(map[uuid.UUID]int)
	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged
}

// PaymentStatusFor derives the order payment state from what has been paid
// so far. The paid amount may exceed the total; that still reads as paid.
func PaymentStatusFor(paid, total float64) string {
	switch {
	case paid >= total && total > 0:
		return models.PaymentStatusPaid
	case paid > 0:
		return models.PaymentStatusPartial
	default:
		return models.PaymentStatusUnpaid
	}
}

func (s *Checkout) CreateOrder(input CheckoutInput) (*models.Order, error) {
	if len(input.Services) == 0 {
		return nil, ErrNoServices
	}

	var client models.Client
	if err := s.db.First(&client, "id = ?", input.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	deliveryMethod := input.DeliveryMethod
	if deliveryMethod == "" {
		deliveryMethod = models.DeliveryStore
	}
	pickupFee := 0.0
	if deliveryMethod == models.DeliveryPickup {
		pickupFee = input.PickupFee
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Build the cart from the request lines so the merge and duplicate-pair
	// policy applies server-side too; prices always come from the database.
	cart := &Cart{}
	for _, line := range input.Services {
		var service models.Service
		if err := tx.Where("id = ? AND is_active = ?", line.ServiceID, true).
			First(&service).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ServiceNotFoundError{ServiceID: line.ServiceID}
			}
			return nil, err
		}
		if err := cart.AddService(CartLine{
			ItemID:          service.ID,
			Name:            service.Name,
			Quantity:        line.Quantity,
			UnitPrice:       service.Price,
			ShoeBrand:       line.ShoeBrand,
			ShoeModel:       line.ShoeModel,
			ShoeDescription: line.ShoeDescription,
		}); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	var serviceItems []models.OrderServiceItem
	for _, line := range cart.Lines {
		if line.Kind != CartLineService {
			continue
		}
		if line.HasShoeMetadata() {
			// One row per unit: each pair is tracked and stored individually.
			for i := 0; i < line.Quantity; i++ {
				serviceItems = append(serviceItems, models.OrderServiceItem{
					ID:              uuid.New(),
					ServiceID:       line.ItemID,
					ServiceName:     line.Name,
					Quantity:        1,
					UnitPrice:       line.UnitPrice,
					TotalPrice:      line.UnitPrice,
					ShoeBrand:       line.ShoeBrand,
					ShoeModel:       line.ShoeModel,
					ShoeDescription: line.ShoeDescription,
				})
			}
		} else {
			serviceItems = append(serviceItems, models.OrderServiceItem{
				ID:          uuid.New(),
				ServiceID:   line.ItemID,
				ServiceName: line.Name,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				TotalPrice:  line.UnitPrice * float64(line.Quantity),
			})
		}
	}

	var productItems []models.OrderProductItem
	var movements []models.StockMovement
	for _, line := range mergeProductLines(input.Products) {
		var product models.Product
		if err := tx.Where("id = ? AND is_active = ?", line.ProductID, true).
			First(&product).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ProductNotFoundError{ProductID: line.ProductID}
			}
			return nil, err
		}

		cart.AddProduct(product.ID, product.Name, line.Quantity, product.Price)

		// Guarded decrement. Zero rows affected means another sale won the
		// stock; the whole checkout aborts instead of going negative.
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", product.ID, line.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
		if res.Error != nil {
			tx.Rollback()
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			return nil, &InsufficientStockError{ProductName: product.Name}
		}

		productItems = append(productItems, models.OrderProductItem{
			ID:          uuid.New(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			TotalPrice:  product.Price * float64(line.Quantity),
		})
		movements = append(movements, models.StockMovement{
			ProductID:     product.ID,
			Type:          "venta",
			Quantity:      -line.Quantity,
			PreviousStock: product.Stock,
			NewStock:      product.Stock - line.Quantity,
		})
	}

	totals := SplitIVA(cart.Totals().Total + pickupFee)
	now := time.Now()

	order := models.Order{
		ID:               uuid.New(),
		Reference:        NewOrderReference(),
		ClientID:         client.ID,
		CreatedByUserID:  input.CreatedByUserID,
		Status:           models.OrderStatusReceived,
		DeliveryMethod:   deliveryMethod,
		PickupStreet:     input.PickupStreet,
		PickupPostalCode: input.PickupPostalCode,
		PickupFee:        pickupFee,
		Subtotal:         totals.Subtotal,
		IVA:              totals.IVA,
		Total:            totals.Total,
		PaymentStatus:    models.PaymentStatusUnpaid,
		Notes:            input.Notes,
		ReservationID:    input.ReservationID,
		ServiceItems:     serviceItems,
		ProductItems:     productItems,
	}

	if input.Payment != nil && input.Payment.Amount > 0 {
		change := 0.0
		received := input.Payment.Received
		if input.Payment.Method == models.PaymentMethodCash {
			if received == 0 {
				received = input.Payment.Amount
			}
			change = CashChange(input.Payment.Amount, received)
		}
		order.Payments = append(order.Payments, models.Payment{
			Method:           input.Payment.Method,
			Amount:           input.Payment.Amount,
			Received:         received,
			Change:           change,
			ReceivedByUserID: input.CreatedByUserID,
		})
		order.PaidAmount = input.Payment.Amount
		order.PaymentMethod = input.Payment.Method
		order.PaymentStatus = PaymentStatusFor(order.PaidAmount, order.Total)
	}

	order.StatusHistory = []models.OrderStatusEntry{{
		Status:          models.OrderStatusReceived,
		Notes:           "Orden creada",
		CreatedByUserID: input.CreatedByUserID,
	}}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for i := range movements {
		movements[i].Reference = order.Reference
		if err := tx.Create(&movements[i]).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	loyaltyEarned := int(order.Total / loyaltyPointsPerAmount)
	if err := tx.Model(&models.Client{}).Where("id = ?", client.ID).
		Updates(map[string]interface{}{
			"total_visits":   gorm.Expr("total_visits + ?", 1),
			"total_spent":    gorm.Expr("total_spent + ?", order.Total),
			"loyalty_points": gorm.Expr("loyalty_points + ?", loyaltyEarned),
			"last_visit":     now,
		}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if input.ReservationID != nil {
		if err := tx.Model(&models.Reservation{}).
			Where("id = ?", *input.ReservationID).
			Updates(map[string]interface{}{
				"status":   models.ReservationStatusConverted,
				"order_id": order.ID,
			}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("ServiceItems").Preload("ProductItems").
		Preload("Payments").Preload("StatusHistory").
		First(&order, "id = ?", order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
