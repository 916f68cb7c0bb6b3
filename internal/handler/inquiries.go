package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yavrumyan/B2BPortal/internal/email"
	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/pkg/database"
)

type InquiryHandler struct {
	Mail *email.Service
}

type RequestedProductRequest struct {
	Category    string `json:"category"`
	Description string `json:"description" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Image       string `json:"image"`
}

type CreateInquiryRequest struct {
	ProductsRequested []RequestedProductRequest `json:"products_requested" binding:"required,min=1,dive"`
	Deadline          *time.Time                `json:"deadline"`
}

func (h *InquiryHandler) CreateInquiry(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	var req CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requested := make([]models.RequestedProduct, 0, len(req.ProductsRequested))
	for _, p := range req.ProductsRequested {
		requested = append(requested, models.RequestedProduct{
			Category:    p.Category,
			Description: p.Description,
			Quantity:    p.Quantity,
			Image:       p.Image,
		})
	}

	inquiry := models.Inquiry{
		CustomerID:        customer.ID,
		ProductsRequested: datatypes.JSONSlice[models.RequestedProduct](requested),
		Status:            models.InquirySent,
		Deadline:          req.Deadline,
		Seen:              false,
	}
	if err := database.DB.Create(&inquiry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inquiry"})
		return
	}

	go h.Mail.AdminNewInquiry(customer)

	c.JSON(http.StatusCreated, inquiry)
}

type inquiryView struct {
	models.Inquiry
	Offers []models.Offer `json:"offers"`
}

func (h *InquiryHandler) ListInquiries(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	query := database.DB.Order("created_at desc")
	if customer.Role != models.RoleAdmin {
		query = query.Where("customer_id = ?", customer.ID)
	}

	var inquiries []models.Inquiry
	if err := query.Find(&inquiries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get inquiries"})
		return
	}

	views := make([]inquiryView, 0, len(inquiries))
	for _, inquiry := range inquiries {
		var offers []models.Offer
		if err := database.DB.Where("inquiry_id = ?", inquiry.ID).
			Order("created_at asc").Find(&offers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get inquiries"})
			return
		}
		views = append(views, inquiryView{Inquiry: inquiry, Offers: offers})
	}

	c.JSON(http.StatusOK, views)
}

func (h *InquiryHandler) GetInquiry(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	var inquiry models.Inquiry
	if err := database.DB.First(&inquiry, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
		return
	}
	if customer.Role != models.RoleAdmin && inquiry.CustomerID != customer.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var offers []models.Offer
	if err := database.DB.Where("inquiry_id = ?", inquiry.ID).
		Order("created_at asc").Find(&offers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get inquiry"})
		return
	}

	c.JSON(http.StatusOK, inquiryView{Inquiry: inquiry, Offers: offers})
}

type UpdateInquiryStatusRequest struct {
	Status models.InquiryStatus `json:"status" binding:"required,oneof=sent offer_received ordered no_offer closed"`
}

func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	var req UpdateInquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inquiry, ok := h.loadInquiry(c)
	if !ok {
		return
	}
	if err := database.DB.Model(&inquiry).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inquiry status"})
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

// Reject closes the inquiry without an offer.
func (h *InquiryHandler) Reject(c *gin.Context) {
	inquiry, ok := h.loadInquiry(c)
	if !ok {
		return
	}
	if err := database.DB.Model(&inquiry).Update("status", models.InquiryNoOffer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject inquiry"})
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

func (h *InquiryHandler) MarkSeen(c *gin.Context) {
	inquiry, ok := h.loadInquiry(c)
	if !ok {
		return
	}
	if err := database.DB.Model(&inquiry).Update("seen", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark inquiry as seen"})
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

// DeleteInquiry removes the inquiry together with its offers.
func (h *InquiryHandler) DeleteInquiry(c *gin.Context) {
	inquiry, ok := h.loadInquiry(c)
	if !ok {
		return
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inquiry"})
		return
	}
	if err := tx.Delete(&models.Offer{}, "inquiry_id = ?", inquiry.ID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inquiry"})
		return
	}
	if err := tx.Delete(&inquiry).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inquiry"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inquiry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inquiry deleted"})
}

func (h *InquiryHandler) loadInquiry(c *gin.Context) (models.Inquiry, bool) {
	var inquiry models.Inquiry
	if err := database.DB.First(&inquiry, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get inquiry"})
		}
		return models.Inquiry{}, false
	}
	return inquiry, true
}

type OfferHandler struct {
	Mail *email.Service
}

type CreateOfferRequest struct {
	InquiryID    string `json:"inquiry_id" binding:"required"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name" binding:"required"`
	Price        int    `json:"price" binding:"required,gt=0"`
	Quantity     int    `json:"quantity"`
	DeliveryTime string `json:"delivery_time"`
	Comment      string `json:"comment"`
}

// CreateOffer answers an inquiry. The inquiry flips from sent to
// offer_received and is marked unseen so the customer notices it.
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var inquiry models.Inquiry
	if err := database.DB.First(&inquiry, "id = ?", req.InquiryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inquiry not found"})
		return
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	offer := models.Offer{
		InquiryID:    req.InquiryID,
		ProductID:    req.ProductID,
		ProductName:  req.ProductName,
		Price:        req.Price,
		Quantity:     quantity,
		DeliveryTime: req.DeliveryTime,
		Comment:      req.Comment,
		Seen:         false,
	}
	if err := database.DB.Create(&offer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create offer"})
		return
	}

	updates := map[string]interface{}{"seen": false}
	if inquiry.Status == models.InquirySent {
		updates["status"] = models.InquiryOfferReceived
	}
	database.DB.Model(&inquiry).Updates(updates)

	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", inquiry.CustomerID).Error; err == nil {
		go h.Mail.NewOffer(customer, inquiry.ID)
	}

	c.JSON(http.StatusCreated, offer)
}

func (h *OfferHandler) ListByInquiry(c *gin.Context) {
	var offers []models.Offer
	if err := database.DB.Where("inquiry_id = ?", c.Param("inquiryId")).
		Order("created_at asc").Find(&offers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get offers"})
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *OfferHandler) MarkSeen(c *gin.Context) {
	var offer models.Offer
	if err := database.DB.First(&offer, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		return
	}
	if err := database.DB.Model(&offer).Update("seen", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark offer as seen"})
		return
	}
	c.JSON(http.StatusOK, offer)
}

// UnreadCount answers how many unseen offers the customer has across all of
// their inquiries, for the navigation badge.
func (h *OfferHandler) UnreadCount(c *gin.Context) {
	customerID := c.GetString("customerID")

	var count int64
	err := database.DB.Model(&models.Offer{}).
		Joins("JOIN inquiries ON inquiries.id = offers.inquiry_id").
		Where("inquiries.customer_id = ? AND offers.seen = ?", customerID, false).
		Count(&count).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get unread count"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
