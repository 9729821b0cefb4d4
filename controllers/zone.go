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

type ZoneInput struct {
	PostalCode string  `json:"postalCode" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	PickupFee  float64 `json:"pickupFee" binding:"min=0"`
}

func CreateZone(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ZoneInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		if !utils.ValidatePostalCode(input.PostalCode) {
			utils.RespondWithError(c, http.StatusBadRequest, "El código postal debe tener 5 dígitos")
			return
		}

		var existing models.CoverageZone
		if err := db.Where("postal_code = ?", input.PostalCode).First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Ya existe una zona con este código postal")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}

		zone := models.CoverageZone{
			PostalCode: input.PostalCode,
			Name:       input.Name,
			PickupFee:  input.PickupFee,
			IsActive:   true,
		}
		if err := db.Create(&zone).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create zone")
			return
		}

		c.JSON(http.StatusCreated, zone)
	}
}

func GetZones(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var zones []models.CoverageZone
		if err := db.Order("postal_code").Find(&zones).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve zones")
			return
		}
		c.JSON(http.StatusOK, zones)
	}
}

type UpdateZoneInput struct {
	Name      *string  `json:"name"`
	PickupFee *float64 `json:"pickupFee" binding:"omitempty,min=0"`
	IsActive  *bool    `json:"isActive"`
}

func UpdateZone(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		zoneUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid zone ID format")
			return
		}

		var input UpdateZoneInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var zone models.CoverageZone
		if err := db.First(&zone, "id = ?", zoneUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Zone not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		if input.Name != nil {
			zone.Name = *input.Name
		}
		if input.PickupFee != nil {
			zone.PickupFee = *input.PickupFee
		}
		if input.IsActive != nil {
			zone.IsActive = *input.IsActive
		}

		if err := db.Save(&zone).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update zone")
			return
		}

		c.JSON(http.StatusOK, zone)
	}
}

func DeleteZone(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		zoneUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid zone ID format")
			return
		}

		result := db.Delete(&models.CoverageZone{}, "id = ?", zoneUUID)
		if result.Error != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete zone")
			return
		}
		if result.RowsAffected == 0 {
			utils.RespondWithError(c, http.StatusNotFound, "Zone not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Zone deleted successfully"})
	}
}
