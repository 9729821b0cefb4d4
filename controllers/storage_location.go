// controllers/storage_location.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"sneakcare-backend/models"
	"sneakcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StorageAssignment struct {
	ItemID       uuid.UUID `json:"itemId" binding:"required"`
	BoxCode      string    `json:"boxCode" binding:"required"`
	LocationCode string    `json:"locationCode"` // empty = auto-generate
}

type AssignStorageInput struct {
	Assignments []StorageAssignment `json:"assignments" binding:"required,min=1"`
}

// duplicateLocationCode finds the first repeated non-empty code in a
// submission, comparing case-insensitively.
func duplicateLocationCode(assignments []StorageAssignment) (string, bool) {
	seen := make(map[string]bool)
	for _, a := range assignments {
		code := strings.ToUpper(strings.TrimSpace(a.LocationCode))
		if code == "" {
			continue
		}
		if seen[code] {
			return code, true
		}
		seen[code] = true
	}
	return "", false
}

// AssignStorageLocations maps each service line of an order to a physical
// storage box and location code. Codes may be provided or auto-generated;
// duplicates within the submission or against other open orders are
// rejected before anything is written.
func AssignStorageLocations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid order ID format")
			return
		}

		var input AssignStorageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		if code, dup := duplicateLocationCode(input.Assignments); dup {
			utils.RespondWithError(c, http.StatusBadRequest, "Código de ubicación duplicado: "+code)
			return
		}

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		var order models.Order
		if err := tx.Preload("ServiceItems").First(&order, "id = ?", orderUUID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Order not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		items := make(map[uuid.UUID]*models.OrderServiceItem)
		for i := range order.ServiceItems {
			items[order.ServiceItems[i].ID] = &order.ServiceItems[i]
		}

		for _, a := range input.Assignments {
			item, ok := items[a.ItemID]
			if !ok {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusBadRequest,
					fmt.Sprintf("El artículo %s no pertenece a la orden", a.ItemID))
				return
			}

			box := strings.ToUpper(strings.TrimSpace(a.BoxCode))
			code := strings.ToUpper(strings.TrimSpace(a.LocationCode))
			if code == "" {
				code = fmt.Sprintf("%s-%s-%s", box, order.Reference[len(order.Reference)-6:],
					utils.GenerateRandomString(3))
			}

			// A code still attached to another open order is in use.
			var count int64
			if err := tx.Model(&models.OrderServiceItem{}).
				Joins("JOIN orders ON orders.id = order_service_items.order_id").
				Where("order_service_items.storage_location = ? AND order_service_items.order_id <> ? AND orders.status NOT IN ?",
					code, order.ID, []string{models.OrderStatusDelivered, models.OrderStatusCancelled}).
				Count(&count).Error; err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
			if count > 0 {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusConflict, "La ubicación "+code+" ya está en uso")
				return
			}

			if err := tx.Model(&models.OrderServiceItem{}).Where("id = ?", item.ID).
				Updates(map[string]interface{}{
					"storage_box":      box,
					"storage_location": code,
				}).Error; err != nil {
				tx.Rollback()
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to assign storage location")
				return
			}
			item.StorageBox = box
			item.StorageLocation = code
		}

		tx.Commit()

		c.JSON(http.StatusOK, order.ServiceItems)
	}
}

// GetStorageBoxes lists boxes currently holding items of open orders, with
// their occupied locations.
func GetStorageBoxes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		type boxRow struct {
			StorageBox string `json:"box"`
			Count      int    `json:"count"`
		}

		var boxes []boxRow
		if err := db.Model(&models.OrderServiceItem{}).
			Select("storage_box, COUNT(*) as count").
			Joins("JOIN orders ON orders.id = order_service_items.order_id").
			Where("storage_box <> '' AND orders.status NOT IN ?",
				[]string{models.OrderStatusDelivered, models.OrderStatusCancelled}).
			Group("storage_box").
			Order("storage_box").
			Scan(&boxes).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve storage boxes")
			return
		}

		c.JSON(http.StatusOK, boxes)
	}
}
