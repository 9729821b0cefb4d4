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

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name       string  `json:"name" binding:"required"`
	Phone      string  `json:"phone" binding:"required"`
	Email      *string `json:"email"`
	Street     string  `json:"street"`
	Colonia    string  `json:"colonia"`
	PostalCode string  `json:"postalCode"`
	City       string  `json:"city"`
	Notes      string  `json:"notes"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	Street     *string `json:"street"`
	Colonia    *string `json:"colonia"`
	PostalCode *string `json:"postalCode"`
	City       *string `json:"city"`
	Notes      *string `json:"notes"`
	IsActive   *bool   `json:"isActive"`
}

func CreateClient(db *gorm.DB) gin.HandlerFunc {
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

		var input CreateClientInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		if !utils.ValidatePhone(input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "El teléfono debe tener 10 dígitos")
			return
		}
		phone := utils.StripNonDigits(input.Phone)

		if input.PostalCode != "" && !utils.ValidatePostalCode(input.PostalCode) {
			utils.RespondWithError(c, http.StatusBadRequest, "El código postal debe tener 5 dígitos")
			return
		}

		var existingClient models.Client
		if err := db.Where("phone = ?", phone).First(&existingClient).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Ya existe un cliente con este teléfono")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}

		client := models.Client{
			CreatedByUserID: &userUUID,
			Name:            input.Name,
			Phone:           phone,
			Street:          input.Street,
			Colonia:         input.Colonia,
			PostalCode:      input.PostalCode,
			City:            input.City,
			Notes:           input.Notes,
			IsActive:        true,
		}
		if input.Email != nil {
			client.Email = *input.Email
		}

		if err := db.Create(&client).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
			return
		}

		c.JSON(http.StatusCreated, client)
	}
}

// GetClients lists clients, optionally filtered by a search term matched
// against name, phone and email.
func GetClients(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Client{})

		if search := c.Query("search"); search != "" {
			like := "%" + search + "%"
			query = query.Where("name LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like)
		}

		var clients []models.Client
		if err := query.Order("name").Find(&clients).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
			return
		}

		c.JSON(http.StatusOK, clients)
	}
}

func GetClient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
			return
		}

		var client models.Client
		if err := db.Preload("Orders").First(&client, "id = ?", clientUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Client not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		c.JSON(http.StatusOK, client)
	}
}

func UpdateClient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
			return
		}

		var input UpdateClientInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var client models.Client
		if err := db.First(&client, "id = ?", clientUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Client not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		if input.Name != nil {
			client.Name = *input.Name
		}
		if input.Phone != nil {
			if !utils.ValidatePhone(*input.Phone) {
				utils.RespondWithError(c, http.StatusBadRequest, "El teléfono debe tener 10 dígitos")
				return
			}
			phone := utils.StripNonDigits(*input.Phone)

			if client.Phone != phone {
				var existingClient models.Client
				if err := db.Where("phone = ?", phone).First(&existingClient).Error; err == nil {
					utils.RespondWithError(c, http.StatusConflict, "Ya existe otro cliente con este teléfono")
					return
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
					return
				}
			}
			client.Phone = phone
		}
		if input.Email != nil {
			client.Email = *input.Email
		}
		if input.Street != nil {
			client.Street = *input.Street
		}
		if input.Colonia != nil {
			client.Colonia = *input.Colonia
		}
		if input.PostalCode != nil {
			if *input.PostalCode != "" && !utils.ValidatePostalCode(*input.PostalCode) {
				utils.RespondWithError(c, http.StatusBadRequest, "El código postal debe tener 5 dígitos")
				return
			}
			client.PostalCode = *input.PostalCode
		}
		if input.City != nil {
			client.City = *input.City
		}
		if input.Notes != nil {
			client.Notes = *input.Notes
		}
		if input.IsActive != nil {
			client.IsActive = *input.IsActive
		}

		if err := db.Save(&client).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
			return
		}

		c.JSON(http.StatusOK, client)
	}
}

func DeleteClient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
			return
		}

		result := db.Delete(&models.Client{}, "id = ?", clientUUID)
		if result.Error != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
			return
		}
		if result.RowsAffected == 0 {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
	}
}
