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
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// Sort fields are whitelist-mapped to column names; anything else falls back
// to creation order. Identifiers are never interpolated from user input.
var orderSortFields = map[string]string{
	"date":      "created_at",
	"total":     "total",
	"status":    "status",
	"reference": "reference",
}

func orderSortClause(field, direction string) string {
	column, ok := orderSortFields[field]
	if !ok {
		column = "created_at"
	}
	if direction != "asc" {
		direction = "desc"
	}
	return column + " " + direction
}

func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Order{}).Preload("Client").Preload("ServiceItems")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		if paymentStatus := c.Query("paymentStatus"); paymentStatus != "" {
			query = query.Where("payment_status = ?", paymentStatus)
		}
		if search := c.Query("search"); search != "" {
			query = query.Where("reference LIKE ?", "%"+search+"%")
		}

		query = query.Order(orderSortClause(c.Query("sort"), c.Query("dir")))

		var orders []models.Order
		if err := query.Limit(200).Find(&orders).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
			return
		}

		var order models.Order
		if err := db.Preload("Client").Preload("ServiceItems").Preload("ProductItems").
			Preload("Payments").Preload("StatusHistory").
			First(&order, "id = ?", orderUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Order not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required,oneof=recibido en_proceso listo entregado cancelado"`
	Notes  string `json:"notes"`
}

// UpdateOrderStatus moves the order along its lifecycle and appends a
// status-history entry. Cancelling restores the product stock that the
// checkout decremented. Reaching "listo" notifies the client.
func UpdateOrderStatus(db *gorm.DB, notifier *services.Notifier) gin.HandlerFunc {
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

		var input UpdateOrderStatusInput
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
		if err := tx.Preload("Client").Preload("ProductItems").
			First(&order, "id = ?", orderUUID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Order not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		if order.Status == models.OrderStatusCancelled || order.Status == models.OrderStatusDelivered {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusConflict, "La orden ya fue cerrada")
			return
		}

		if input.Status == models.OrderStatusCancelled {
			for _, item := range order.ProductItems {
				var product models.Product
				if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
					tx.Rollback()
					utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
					return
				}
				if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
					UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					tx.Rollback()
					utils.RespondWithError(c, http.StatusInternalServerError, "Failed to restore stock")
					return
				}
				movement := models.StockMovement{
					ProductID:     item.ProductID,
					Type:          "restore_cancelacion",
					Quantity:      item.Quantity,
					PreviousStock: product.Stock,
					NewStock:      product.Stock + item.Quantity,
					Reference:     order.Reference,
				}
				if err := tx.Create(&movement).Error; err != nil {
					tx.Rollback()
					utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record stock movement")
					return
				}
			}
		}

		if err := tx.Model(&order).Update("status", input.Status).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
			return
		}

		entry := models.OrderStatusEntry{
			OrderID:         order.ID,
			Status:          input.Status,
			Notes:           input.Notes,
			CreatedByUserID: userUUID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record status history")
			return
		}

		tx.Commit()

		if input.Status == models.OrderStatusReady && order.Client != nil {
			go notifier.SendOrderReady(&order, order.Client)
		}

		order.Status = input.Status
		c.JSON(http.StatusOK, order)
	}
}

// GetOrderReceipt streams the order receipt as a PDF.
func GetOrderReceipt(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
			return
		}

		var order models.Order
		if err := db.Preload("Client").Preload("ServiceItems").Preload("ProductItems").
			Preload("Payments").First(&order, "id = ?", orderUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Order not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", "inline; filename="+order.Reference+".pdf")
		if err := services.WriteReceiptPDF(c.Writer, &order); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate receipt")
		}
	}
}

// ExportOrdersToExcel downloads orders in a date range as a spreadsheet.
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Order{}).Preload("Client")

		if from := c.Query("from"); from != "" {
			if t, err := time.Parse("2006-01-02", from); err == nil {
				query = query.Where("created_at >= ?", t)
			}
		}
		if to := c.Query("to"); to != "" {
			if t, err := time.Parse("2006-01-02", to); err == nil {
				query = query.Where("created_at < ?", t.AddDate(0, 0, 1))
			}
		}

		var orders []models.Order
		if err := query.Order("created_at").Find(&orders).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create Excel sheet")
			return
		}

		headers := []string{
			"Reference", "Client", "Status", "DeliveryMethod",
			"Subtotal", "IVA", "Total", "PaymentStatus", "PaidAmount", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.Reference)
			clientName := ""
			if o.Client != nil {
				clientName = o.Client.Name
			}
			row.AddCell().SetValue(clientName)
			row.AddCell().SetValue(o.Status)
			row.AddCell().SetValue(o.DeliveryMethod)
			row.AddCell().SetValue(o.Subtotal)
			row.AddCell().SetValue(o.IVA)
			row.AddCell().SetValue(o.Total)
			row.AddCell().SetValue(o.PaymentStatus)
			row.AddCell().SetValue(o.PaidAmount)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to write Excel file")
			return
		}
	}
}
