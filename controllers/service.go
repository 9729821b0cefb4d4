package controllers

import (
	"errors"
	"net/http"

	"sneakcare-backend/models"
	"sneakcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateServiceInput struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	EstimatedDays int     `json:"estimatedDays" binding:"min=0"`
	Category      string  `json:"category"`
}

type UpdateServiceInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" binding:"omitempty,gt=0"`
	EstimatedDays *int     `json:"estimatedDays" binding:"omitempty,min=0"`
	Category      *string  `json:"category"`
	IsActive      *bool    `json:"isActive"`
}

func CreateService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateServiceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		service := models.Service{
			Name:          input.Name,
			Description:   input.Description,
			Price:         input.Price,
			EstimatedDays: input.EstimatedDays,
			IsActive:      true,
		}
		if input.Category != "" {
			service.Category = input.Category
		}

		if err := db.Create(&service).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
			return
		}

		c.JSON(http.StatusCreated, service)
	}
}

func GetServices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Service{})
		if c.Query("active") == "true" {
			query = query.Where("is_active = ?", true)
		}

		var services []models.Service
		if err := query.Order("category, name").Find(&services).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
			return
		}

		c.JSON(http.StatusOK, services)
	}
}

func GetService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		serviceUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
			return
		}

		var service models.Service
		if err := db.First(&service, "id = ?", serviceUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Service not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		c.JSON(http.StatusOK, service)
	}
}

func UpdateService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		serviceUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
			return
		}

		var input UpdateServiceInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var service models.Service
		if err := db.First(&service, "id = ?", serviceUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Service not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		if input.Name != nil {
			service.Name = *input.Name
		}
		if input.Description != nil {
			service.Description = *input.Description
		}
		if input.Price != nil {
			service.Price = *input.Price
		}
		if input.EstimatedDays != nil {
			service.EstimatedDays = *input.EstimatedDays
		}
		if input.Category != nil {
			service.Category = *input.Category
		}
		if input.IsActive != nil {
			service.IsActive = *input.IsActive
		}

		if err := db.Save(&service).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
			return
		}

		c.JSON(http.StatusOK, service)
	}
}

func DeleteService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		serviceUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
			return
		}

		result := db.Delete(&models.Service{}, "id = ?", serviceUUID)
		if result.Error != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
			return
		}
		if result.RowsAffected == 0 {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
	}
}
