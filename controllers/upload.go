// controllers/upload.go
package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"sneakcare-backend/models"
	"sneakcare-backend/services"
	"sneakcare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxUploadSize = 10 << 20 // 10 MB

var allowedEntityTypes = map[string]bool{
	models.MediaEntityOrder:       true,
	models.MediaEntityReservation: true,
	models.MediaEntityClient:      true,
}

var allowedCategories = map[string]bool{
	models.MediaCategoryID:     true,
	models.MediaCategoryBefore: true,
	models.MediaCategoryAfter:  true,
}

// UploadMedia receives a multipart file plus entity type/id/category, stores
// the object (and a thumbnail for images) and records the MediaFile row.
func UploadMedia(db *gorm.DB, store *services.MediaStorage) gin.HandlerFunc {
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

		entityType := c.PostForm("entityType")
		if !allowedEntityTypes[entityType] {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid entity type")
			return
		}
		entityID, err := uuid.Parse(c.PostForm("entityId"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid entity ID format")
			return
		}
		category := c.PostForm("category")
		if !allowedCategories[category] {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid category")
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "File is required")
			return
		}
		if fileHeader.Size > maxUploadSize {
			utils.RespondWithError(c, http.StatusBadRequest, "File exceeds the 10 MB limit")
			return
		}

		src, err := fileHeader.Open()
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read file")
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read file")
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		key := fmt.Sprintf("%s/%s/%s/%s%s", entityType, entityID, category, uuid.New(), ext)

		url, err := store.Upload(key, data, contentType)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store file")
			return
		}

		media := models.MediaFile{
			EntityType:       entityType,
			EntityID:         entityID,
			Category:         category,
			FileName:         fileHeader.Filename,
			Bucket:           store.Bucket(),
			ObjectKey:        key,
			URL:              url,
			ContentType:      contentType,
			Size:             fileHeader.Size,
			UploadedByUserID: userUUID,
		}

		// Images get a thumbnail; anything that fails to decode is stored
		// without one.
		if strings.HasPrefix(contentType, "image/") {
			if thumb, err := services.MakeThumbnail(data); err == nil {
				thumbKey := strings.TrimSuffix(key, ext) + "_thumb.jpg"
				if thumbURL, err := store.Upload(thumbKey, thumb, "image/jpeg"); err == nil {
					media.ThumbKey = thumbKey
					media.ThumbURL = thumbURL
				}
			}
		}

		if err := db.Create(&media).Error; err != nil {
			store.Delete(media.ObjectKey)
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save file record")
			return
		}

		c.JSON(http.StatusCreated, media)
	}
}

// GetEntityMedia lists the files attached to an entity.
func GetEntityMedia(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityType := c.Param("entityType")
		if !allowedEntityTypes[entityType] {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid entity type")
			return
		}
		entityID, err := uuid.Parse(c.Param("entityId"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid entity ID format")
			return
		}

		var files []models.MediaFile
		if err := db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
			Order("created_at").Find(&files).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve files")
			return
		}

		c.JSON(http.StatusOK, files)
	}
}

// DeleteMedia removes the stored objects and the row.
func DeleteMedia(db *gorm.DB, store *services.MediaStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid media ID format")
			return
		}

		var media models.MediaFile
		if err := db.First(&media, "id = ?", mediaUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "File not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		keys := []string{media.ObjectKey}
		if media.ThumbKey != "" {
			keys = append(keys, media.ThumbKey)
		}
		if err := store.Delete(keys...); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete stored file")
			return
		}

		if err := db.Delete(&media).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete file record")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
	}
}
