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

type CreateProductInput struct {
	CategoryID  *uuid.UUID `json:"categoryId"`
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Price       float64    `json:"price" binding:"required,gt=0"`
	Stock       int        `json:"stock" binding:"min=0"`
	MinStock    int        `json:"minStock" binding:"min=0"`
}

type UpdateProductInput struct {
	CategoryID  *uuid.UUID `json:"categoryId"`
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price" binding:"omitempty,gt=0"`
	MinStock    *int       `json:"minStock" binding:"omitempty,min=0"`
	IsActive    *bool      `json:"isActive"`
}

// AdjustStockInput is a signed manual stock correction.
type AdjustStockInput struct {
	Quantity int    `json:"quantity" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		if input.CategoryID != nil {
			var category models.ProductCategory
			if err := db.First(&category, "id = ?", *input.CategoryID).Error; err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Category not found")
				return
			}
		}

		product := models.Product{
			CategoryID:  input.CategoryID,
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Stock:       input.Stock,
			MinStock:    input.MinStock,
			IsActive:    true,
		}

		if err := db.Create(&product).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{}).Preload("Category")
		if c.Query("active") == "true" {
			query = query.Where("is_active = ?", true)
		}
		if c.Query("lowStock") == "true" {
			query = query.Where("stock <= min_stock")
		}

		var products []models.Product
		if err := query.Order("name").Find(&products).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
			return
		}

		var product models.Product
		if err := db.Preload("Category").First(&product, "id = ?", productUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Product not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", productUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Product not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		if input.CategoryID != nil {
			var category models.ProductCategory
			if err := db.First(&category, "id = ?", *input.CategoryID).Error; err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, "Category not found")
				return
			}
			product.CategoryID = input.CategoryID
		}
		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.MinStock != nil {
			product.MinStock = *input.MinStock
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}

		if err := db.Save(&product).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

// AdjustStock applies a manual correction and records the movement. Negative
// adjustments are guarded the same way sales are: stock never goes below
// zero, and a zero-rows update means there was not enough stock.
func AdjustStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
			return
		}

		var input AdjustStockInput
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

		var product models.Product
		if err := tx.First(&product, "id = ?", productUUID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Product not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		query := tx.Model(&models.Product{}).Where("id = ?", product.ID)
		if input.Quantity < 0 {
			query = query.Where("stock >= ?", -input.Quantity)
		}
		res := query.UpdateColumn("stock", gorm.Expr("stock + ?", input.Quantity))
		if res.Error != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to adjust stock")
			return
		}
		if res.RowsAffected == 0 {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusConflict, "Stock insuficiente para "+product.Name)
			return
		}

		movement := models.StockMovement{
			ProductID:     product.ID,
			Type:          "ajuste_manual",
			Quantity:      input.Quantity,
			PreviousStock: product.Stock,
			NewStock:      product.Stock + input.Quantity,
			Reference:     input.Reason,
		}
		if err := tx.Create(&movement).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record stock movement")
			return
		}

		tx.Commit()

		product.Stock += input.Quantity
		c.JSON(http.StatusOK, product)
	}
}

func GetStockMovements(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
			return
		}

		var movements []models.StockMovement
		if err := db.Where("product_id = ?", productUUID).
			Order("created_at DESC").Limit(100).
			Find(&movements).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stock movements")
			return
		}

		c.JSON(http.StatusOK, movements)
	}
}

func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productUUID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid product ID format")
			return
		}

		result := db.Delete(&models.Product{}, "id = ?", productUUID)
		if result.Error != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
			return
		}
		if result.RowsAffected == 0 {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func CreateProductCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		category := models.ProductCategory{
			Name:        input.Name,
			Description: input.Description,
		}
		if err := db.Create(&category).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create category")
			return
		}

		c.JSON(http.StatusCreated, category)
	}
}

func GetProductCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.ProductCategory
		if err := db.Order("name").Find(&categories).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve categories")
			return
		}

		c.JSON(http.StatusOK, categories)
	}
}
