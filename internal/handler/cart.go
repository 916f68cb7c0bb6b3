package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/pkg/database"
)

// The cart lives on the customer row itself, so it follows the account across
// devices.
type CartHandler struct{}

func (h *CartHandler) GetCart(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}
	cart := customer.Cart
	if cart == nil {
		cart = datatypes.JSONSlice[models.CartItem]{}
	}
	c.JSON(http.StatusOK, cart)
}

type UpdateCartRequest struct {
	Cart []models.CartItem `json:"cart" binding:"required"`
}

func (h *CartHandler) UpdateCart(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Model(&customer).
		Update("cart", datatypes.JSONSlice[models.CartItem](req.Cart)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	if err := database.DB.Model(&customer).
		Update("cart", datatypes.JSONSlice[models.CartItem]{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
