// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"sneakcare-backend/models"
	"sneakcare-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportController handles all reporting functions
type ReportController struct {
	DB *gorm.DB
}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64          `json:"currentMonthRevenue"`
	MonthGrowth           float64          `json:"monthGrowth"`
	CurrentQuarterRevenue float64          `json:"currentQuarterRevenue"`
	QuarterGrowth         float64          `json:"quarterGrowth"`
	CurrentYearRevenue    float64          `json:"currentYearRevenue"`
	YearGrowth            float64          `json:"yearGrowth"`
	TopServices           []ServiceSummary `json:"topServices"`
	TopClients            []ClientSummary  `json:"topClients"`
	QuickStats            QuickStatistics  `json:"quickStats"`
}

type ServiceSummary struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type ClientSummary struct {
	Name   string  `json:"name"`
	Visits int     `json:"visits"`
	Spent  float64 `json:"spent"`
}

type QuickStatistics struct {
	TotalClients     int     `json:"totalClients"`
	TotalOrders      int     `json:"totalOrders"`
	AvgMonthlyOrders float64 `json:"avgMonthlyOrders"`
	AvgOrderValue    float64 `json:"avgOrderValue"`
	LowStockProducts int     `json:"lowStockProducts"`
}

// GetReportAnalytics returns the complete analytics summary
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	currentMonthRevenue, err := rc.getRevenue(firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}

	lastMonthRevenue, err := rc.getRevenue(
		firstOfMonth.AddDate(0, -1, 0),
		lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	currentQuarterRevenue, err := rc.getRevenue(quarterStart(now), quarterEnd(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}

	lastQuarterRevenue, err := rc.getRevenue(
		quarterStart(now).AddDate(0, -3, 0),
		quarterEnd(now).AddDate(0, -3, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	currentYearRevenue, err := rc.getRevenue(
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}

	lastYearRevenue, err := rc.getRevenue(
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear-1, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	topServices, err := rc.getTopServices(firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top services")
		return
	}

	topClients, err := rc.getTopClients(firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top clients")
		return
	}

	quickStats, err := rc.getQuickStatistics()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           growthPercentage(currentMonthRevenue, lastMonthRevenue),
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         growthPercentage(currentQuarterRevenue, lastQuarterRevenue),
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            growthPercentage(currentYearRevenue, lastYearRevenue),
		TopServices:           topServices,
		TopClients:            topClients,
		QuickStats:            quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

func (rc *ReportController) getRevenue(start, end time.Time) (float64, error) {
	var total float64
	err := rc.DB.Model(&models.Order{}).
		Where("created_at BETWEEN ? AND ? AND status <> ?", start, end, models.OrderStatusCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}

func quarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func quarterEnd(date time.Time) time.Time {
	return quarterStart(date).AddDate(0, 3, -1)
}

func growthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

func (rc *ReportController) getTopServices(start, end time.Time, limit int) ([]ServiceSummary, error) {
	var services []ServiceSummary

	err := rc.DB.Table("order_service_items").
		Select("order_service_items.service_name as name, SUM(order_service_items.quantity) as count, SUM(order_service_items.total_price) as revenue").
		Joins("JOIN orders ON orders.id = order_service_items.order_id").
		Where("orders.created_at BETWEEN ? AND ? AND orders.status <> ? AND orders.deleted_at IS NULL",
			start, end, models.OrderStatusCancelled).
		Group("order_service_items.service_name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&services).Error

	return services, err
}

func (rc *ReportController) getTopClients(start, end time.Time, limit int) ([]ClientSummary, error) {
	var clients []ClientSummary

	err := rc.DB.Table("orders").
		Select("clients.name, COUNT(orders.id) as visits, SUM(orders.total) as spent").
		Joins("JOIN clients ON clients.id = orders.client_id").
		Where("orders.created_at BETWEEN ? AND ? AND orders.status <> ? AND orders.deleted_at IS NULL AND clients.deleted_at IS NULL",
			start, end, models.OrderStatusCancelled).
		Group("clients.name").
		Order("spent DESC").
		Limit(limit).
		Scan(&clients).Error

	return clients, err
}

func (rc *ReportController) getQuickStatistics() (QuickStatistics, error) {
	var stats QuickStatistics

	var totalClients int64
	if err := rc.DB.Model(&models.Client{}).Count(&totalClients).Error; err != nil {
		return stats, err
	}
	stats.TotalClients = int(totalClients)

	var totalOrders int64
	if err := rc.DB.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return stats, err
	}
	stats.TotalOrders = int(totalOrders)

	var avgOrders float64
	err := rc.DB.Raw(`
		SELECT COALESCE(AVG(monthly), 0) FROM (
			SELECT COUNT(*) as monthly
			FROM orders
			WHERE deleted_at IS NULL
			GROUP BY DATE_FORMAT(created_at, '%Y-%m')
		) monthly_orders
	`).Scan(&avgOrders).Error
	if err != nil {
		return stats, err
	}
	stats.AvgMonthlyOrders = avgOrders

	var totalRevenue float64
	if err := rc.DB.Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return stats, err
	}
	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = totalRevenue / float64(stats.TotalOrders)
	}

	var lowStock int64
	if err := rc.DB.Model(&models.Product{}).
		Where("is_active = ? AND stock <= min_stock", true).
		Count(&lowStock).Error; err != nil {
		return stats, err
	}
	stats.LowStockProducts = int(lowStock)

	return stats, nil
}
