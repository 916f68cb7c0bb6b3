package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/pkg/database"
)

// currentCustomer loads the authenticated customer from the id the auth
// middleware put into the context. Aborts with 401/404 on failure.
func currentCustomer(c *gin.Context) (models.Customer, bool) {
	id := c.GetString("customerID")
	if id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return models.Customer{}, false
	}

	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load customer"})
		}
		return models.Customer{}, false
	}
	return customer, true
}

func isAdminRole(c *gin.Context) bool {
	return c.GetString("role") == string(models.RoleAdmin)
}
