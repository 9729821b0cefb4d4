// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"sneakcare-backend/models"
	"sneakcare-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardOverview struct {
	TodayOrders         int            `json:"todayOrders"`
	TodayRevenue        float64        `json:"todayRevenue"`
	OrdersInProcess     int            `json:"ordersInProcess"`
	OrdersReady         int            `json:"ordersReady"`
	PendingReservations int            `json:"pendingReservations"`
	TodayReservations   int            `json:"todayReservations"`
	UnreadMessages      int            `json:"unreadMessages"`
	LowStockProducts    int            `json:"lowStockProducts"`
	RecentOrders        []models.Order `json:"recentOrders"`
}

// GetDashboardOverview returns the counters the admin home screen shows.
func GetDashboardOverview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var overview DashboardOverview

		dayStart := utils.BeginningOfDay(time.Now())
		dayEnd := dayStart.AddDate(0, 0, 1)

		var todayOrders int64
		if err := db.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
			Count(&todayOrders).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
			return
		}
		overview.TodayOrders = int(todayOrders)

		if err := db.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ? AND status <> ?", dayStart, dayEnd, models.OrderStatusCancelled).
			Select("COALESCE(SUM(total), 0)").
			Scan(&overview.TodayRevenue).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
			return
		}

		var inProcess, ready int64
		db.Model(&models.Order{}).Where("status = ?", models.OrderStatusInProcess).Count(&inProcess)
		db.Model(&models.Order{}).Where("status = ?", models.OrderStatusReady).Count(&ready)
		overview.OrdersInProcess = int(inProcess)
		overview.OrdersReady = int(ready)

		var pendingReservations int64
		db.Model(&models.Reservation{}).
			Where("status IN ?", []string{models.ReservationStatusPending, models.ReservationStatusConfirmed}).
			Count(&pendingReservations)
		overview.PendingReservations = int(pendingReservations)

		var todayReservations int64
		db.Model(&models.Reservation{}).
			Where("scheduled_date >= ? AND scheduled_date < ? AND status <> ?",
				dayStart, dayEnd, models.ReservationStatusCancelled).
			Count(&todayReservations)
		overview.TodayReservations = int(todayReservations)

		var unread int64
		db.Model(&models.ContactMessage{}).
			Where("is_read = ? AND is_archived = ?", false, false).
			Count(&unread)
		overview.UnreadMessages = int(unread)

		var lowStock int64
		db.Model(&models.Product{}).
			Where("is_active = ? AND stock <= min_stock", true).
			Count(&lowStock)
		overview.LowStockProducts = int(lowStock)

		if err := db.Preload("Client").
			Order("created_at DESC").
			Limit(5).
			Find(&overview.RecentOrders).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load recent orders")
			return
		}

		c.JSON(http.StatusOK, overview)
	}
}
