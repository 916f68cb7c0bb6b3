package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/internal/pricing"
	"github.com/yavrumyan/B2BPortal/pkg/database"
)

type ProductHandler struct{}

// productView is a product plus the price the current customer actually pays.
type productView struct {
	models.Product
	DisplayPrice int `json:"display_price"`
}

// ListProducts is public: unauthenticated callers see the full catalog at base
// prices, signed-in customers see only products visible to their type with
// tier pricing applied, admins see everything at base prices.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var products []models.Product
	if err := database.DB.Order("created_at desc").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get products"})
		return
	}

	// Anonymous callers and admins price at the base (reseller) tier.
	customerType := models.TypeReseller
	filter := false
	if id := c.GetString("customerID"); id != "" && !isAdminRole(c) {
		var customer models.Customer
		if err := database.DB.First(&customer, "id = ?", id).Error; err == nil {
			customerType = customer.CustomerType
			filter = true
		}
	}

	settings, err := loadSettings(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings"})
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		if filter && !p.VisibleTo(customerType) {
			continue
		}
		views = append(views, productView{
			Product: p,
			DisplayPrice: pricing.CalculatePrice(p.Price, customerType,
				settings.CorporateMarkupPercentage, settings.GovernmentMarkupPercentage),
		})
	}

	c.JSON(http.StatusOK, views)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	var product models.Product
	if err := database.DB.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

type ProductRequest struct {
	Name                 string             `json:"name" binding:"required"`
	SKU                  string             `json:"sku"`
	Price                int                `json:"price" binding:"required,gt=0"`
	Stock                models.StockStatus `json:"stock"`
	ETA                  string             `json:"eta"`
	Description          string             `json:"description"`
	AvailableQuantity    int                `json:"available_quantity"`
	MOQ                  int                `json:"moq"`
	ImageURL             string             `json:"image_url"`
	Brand                string             `json:"brand"`
	Category             string             `json:"category"`
	VisibleCustomerTypes []string           `json:"visible_customer_types"`
}

func (r *ProductRequest) toModel() models.Product {
	stock := r.Stock
	if stock == "" {
		stock = models.StockInStock
	}
	return models.Product{
		Name:                 r.Name,
		SKU:                  r.SKU,
		Price:                r.Price,
		Stock:                stock,
		ETA:                  r.ETA,
		Description:          r.Description,
		AvailableQuantity:    r.AvailableQuantity,
		MOQ:                  r.MOQ,
		ImageURL:             r.ImageURL,
		Brand:                r.Brand,
		Category:             r.Category,
		VisibleCustomerTypes: datatypes.JSONSlice[string](r.VisibleCustomerTypes),
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := req.toModel()
	if err := database.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

type UpdateProductRequest struct {
	Name                 *string             `json:"name"`
	SKU                  *string             `json:"sku"`
	Price                *int                `json:"price"`
	Stock                *models.StockStatus `json:"stock"`
	ETA                  *string             `json:"eta"`
	Description          *string             `json:"description"`
	AvailableQuantity    *int                `json:"available_quantity"`
	MOQ                  *int                `json:"moq"`
	ImageURL             *string             `json:"image_url"`
	Brand                *string             `json:"brand"`
	Category             *string             `json:"category"`
	VisibleCustomerTypes *[]string           `json:"visible_customer_types"`
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := database.DB.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
			return
		}
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.ETA != nil {
		updates["eta"] = *req.ETA
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.AvailableQuantity != nil {
		updates["available_quantity"] = *req.AvailableQuantity
	}
	if req.MOQ != nil {
		updates["moq"] = *req.MOQ
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.VisibleCustomerTypes != nil {
		updates["visible_customer_types"] = datatypes.JSONSlice[string](*req.VisibleCustomerTypes)
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
	}

	database.DB.First(&product, "id = ?", product.ID)
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	result := database.DB.Delete(&models.Product{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

type BulkImportRequest struct {
	Products []ProductRequest `json:"products" binding:"required,min=1,dive"`
}

// BulkImport replaces the whole catalog with the uploaded products.
func (h *ProductHandler) BulkImport(c *gin.Context) {
	var req BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import products"})
		return
	}

	if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import products"})
		return
	}

	imported := make([]models.Product, 0, len(req.Products))
	for _, pr := range req.Products {
		product := pr.toModel()
		if err := tx.Create(&product).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import products"})
			return
		}
		imported = append(imported, product)
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Successfully imported %d products (catalog replaced)", len(imported)),
		"count":    len(imported),
		"products": imported,
	})
}
