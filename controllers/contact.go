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

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

// CreateContactMessage is the public contact-form endpoint.
func CreateContactMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ContactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "El teléfono debe tener 10 dígitos")
			return
		}

		message := models.ContactMessage{
			Name:    input.Name,
			Email:   input.Email,
			Phone:   utils.StripNonDigits(input.Phone),
			Message: input.Message,
		}
		if err := db.Create(&message).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save message")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Mensaje enviado"})
	}
}

var messageSortFields = map[string]string{
	"date": "created_at",
	"name": "name",
}

// GetContactMessages lists inbox messages. Filters: read, starred, archived;
// sort is whitelist-validated.
func GetContactMessages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.ContactMessage{})

		switch c.Query("filter") {
		case "unread":
			query = query.Where("is_read = ? AND is_archived = ?", false, false)
		case "starred":
			query = query.Where("is_starred = ? AND is_archived = ?", true, false)
		case "archived":
			query = query.Where("is_archived = ?", true)
		default:
			query = query.Where("is_archived = ?", false)
		}

		column, ok := messageSortFields[c.Query("sort")]
		if !ok {
			column = "created_at"
		}
		direction := "desc"
		if c.Query("dir") == "asc" {
			direction = "asc"
		}

		var messages []models.ContactMessage
		if err := query.Order(column + " " + direction).Limit(200).Find(&messages).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve messages")
			return
		}

		c.JSON(http.StatusOK, messages)
	}
}

type MessageFlagsInput struct {
	IsRead     *bool `json:"isRead"`
	IsStarred  *bool `json:"isStarred"`
	IsArchived *bool `json:"isArchived"`
}

func UpdateContactMessageFlags(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		messageUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid message ID format")
			return
		}

		var input MessageFlagsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var message models.ContactMessage
		if err := db.First(&message, "id = ?", messageUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Message not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		if input.IsRead != nil {
			message.IsRead = *input.IsRead
		}
		if input.IsStarred != nil {
			message.IsStarred = *input.IsStarred
		}
		if input.IsArchived != nil {
			message.IsArchived = *input.IsArchived
		}

		if err := db.Save(&message).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update message")
			return
		}

		c.JSON(http.StatusOK, message)
	}
}

func DeleteContactMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		messageUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid message ID format")
			return
		}

		result := db.Delete(&models.ContactMessage{}, "id = ?", messageUUID)
		if result.Error != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete message")
			return
		}
		if result.RowsAffected == 0 {
			utils.RespondWithError(c, http.StatusNotFound, "Message not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	}
}

// GetContactMessageStats returns the inbox counters.
func GetContactMessageStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		type counts struct {
			Total    int64 `json:"total"`
			Unread   int64 `json:"unread"`
			Starred  int64 `json:"starred"`
			Archived int64 `json:"archived"`
		}
		var stats counts

		base := func() *gorm.DB { return db.Model(&models.ContactMessage{}) }
		if err := base().Count(&stats.Total).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stats")
			return
		}
		if err := base().Where("is_read = ? AND is_archived = ?", false, false).
			Count(&stats.Unread).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stats")
			return
		}
		// Starred mirrors the starred list filter: archived messages drop out.
		if err := base().Where("is_starred = ? AND is_archived = ?", true, false).
			Count(&stats.Starred).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stats")
			return
		}
		if err := base().Where("is_archived = ?", true).
			Count(&stats.Archived).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stats")
			return
		}

		c.JSON(http.StatusOK, stats)
	}
}
