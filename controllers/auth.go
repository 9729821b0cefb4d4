// controllers/auth.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"sneakcare-backend/models"
	"sneakcare-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=owner employee"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var existingUser models.User
		result := db.Where("email = ?", input.Email).First(&existingUser)
		if result.Error == nil {
			utils.RespondWithError(c, http.StatusConflict, "Email already registered")
			return
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}

		role := input.Role
		if role == "" {
			role = "employee"
		}

		newUser := models.User{
			Email:    input.Email,
			Phone:    input.Phone,
			Name:     input.Name,
			Password: input.Password, // Hashed in BeforeCreate hook
			Role:     role,
			IsActive: true,
		}

		if err := db.Create(&newUser).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
			return
		}

		token, err := utils.GenerateToken(newUser.ID.String(), newUser.Role)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Registration successful",
			"token":   token,
			"user": gin.H{
				"id":    newUser.ID,
				"email": newUser.Email,
				"name":  newUser.Name,
				"role":  newUser.Role,
			},
		})
	}
}

func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
			return
		}

		email := strings.TrimSpace(input.Email)

		var user models.User
		if err := db.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		if !utils.CheckPasswordHash(input.Password, user.Password) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := utils.GenerateToken(user.ID.String(), user.Role)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}

		now := time.Now()
		db.Model(&user).Update("last_login", &now)

		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":    user.ID,
				"email": user.Email,
				"name":  user.Name,
				"role":  user.Role,
			},
		})
	}
}

func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userId")
		if !exists {
			utils.RespondWithError(c, http.StatusInternalServerError, "User ID not found in context")
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user": gin.H{
				"id":    user.ID,
				"email": user.Email,
				"name":  user.Name,
				"role":  user.Role,
			},
		})
	}
}
