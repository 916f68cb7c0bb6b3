package handler

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/yavrumyan/B2BPortal/config"
	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/internal/pdf"
	"github.com/yavrumyan/B2BPortal/pkg/database"
)

type DocumentHandler struct{}

var filenameSafe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

func sendPDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *DocumentHandler) OrderInvoice(c *gin.Context) {
	requester, ok := currentCustomer(c)
	if !ok {
		return
	}

	var order models.Order
	if err := database.DB.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if requester.Role != models.RoleAdmin && order.CustomerID != requester.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var owner models.Customer
	if err := database.DB.First(&owner, "id = ?", order.CustomerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	data, err := pdf.Invoice(order, owner, config.AppConfig.Defaults.CompanyName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}
	sendPDF(c, fmt.Sprintf("invoice-%s.pdf", order.OrderNumber), data)
}

func (h *DocumentHandler) PriceList(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}
	h.priceListFor(c, customer)
}

// PriceListForCustomer lets an admin download the catalog priced for any
// customer tier.
func (h *DocumentHandler) PriceListForCustomer(c *gin.Context) {
	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	h.priceListFor(c, customer)
}

func (h *DocumentHandler) priceListFor(c *gin.Context, customer models.Customer) {
	var products []models.Product
	if err := database.DB.Order("category asc, name asc").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate price list PDF"})
		return
	}
	settings, err := loadSettings(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate price list PDF"})
		return
	}

	data, err := pdf.PriceList(customer, products, settings, config.AppConfig.Defaults.CompanyName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate price list PDF"})
		return
	}

	name := filenameSafe.ReplaceAllString(customer.CompanyName, "_")
	sendPDF(c, fmt.Sprintf("price-list-%s.pdf", name), data)
}
