package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yavrumyan/B2BPortal/internal/billing"
	"github.com/yavrumyan/B2BPortal/internal/email"
	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/pkg/database"
)

// offerItemPrefix marks cart items that came from an accepted offer rather
// than the product catalog. They bypass stock checks entirely.
const offerItemPrefix = "offer-"

type OrderHandler struct {
	Mail *email.Service
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	query := database.DB.Order("created_at desc")
	if customer.Role != models.RoleAdmin {
		query = query.Where("customer_id = ?", customer.ID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	var order models.Order
	if err := database.DB.Preload("Customer").First(&order, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if customer.Role != models.RoleAdmin && order.CustomerID != customer.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	customerName := "Unknown"
	if order.Customer != nil {
		customerName = order.Customer.CompanyName
	}
	order.Customer = nil

	c.JSON(http.StatusOK, gin.H{
		"order":        order,
		"customerName": customerName,
	})
}

type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Name      string `json:"name"`
	Price     int    `json:"price" binding:"required,gt=0"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Total int                `json:"total" binding:"required,gt=0"`
}

// CreateOrder places an order for the signed-in customer. Items referencing
// `offer-<id>` product ids skip stock validation and flip the offer's inquiry
// to ordered; catalog items must have sufficient stock, which is deducted on
// success.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	switch customer.Status {
	case models.StatusPending:
		c.JSON(http.StatusForbidden, gin.H{"error": "Your registration is awaiting admin approval"})
		return
	case models.StatusRejected:
		c.JSON(http.StatusForbidden, gin.H{"error": "Your registration has been rejected"})
		return
	case models.StatusPaused:
		c.JSON(http.StatusForbidden, gin.H{"error": "Your account is temporarily paused due to overdue payments"})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if strings.HasPrefix(item.ProductID, offerItemPrefix) {
			name := item.Name
			if name == "" {
				name = "Custom Offer Item"
			}
			items = append(items, models.OrderItem{
				ProductID: item.ProductID,
				Name:      name,
				Price:     item.Price,
				Quantity:  item.Quantity,
			})
			continue
		}

		var product models.Product
		if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Product %s not found", item.ProductID)})
			return
		}
		if product.AvailableQuantity < item.Quantity {
			tx.Rollback()
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d",
					product.Name, product.AvailableQuantity, item.Quantity),
			})
			return
		}
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	// The sequence number comes from a plain count query, so two orders placed
	// in the same instant can race to the same label. The unique constraint on
	// order_number catches that; the caller simply retries. The order's real
	// identifier is its uuid primary key.
	now := time.Now()
	sameDayCount, err := billing.CountOrdersToday(tx, now)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	order := models.Order{
		OrderNumber:    billing.OrderNumber(now, sameDayCount, req.Total),
		CustomerID:     customer.ID,
		Total:          req.Total,
		Status:         models.OrderPending,
		PaymentStatus:  models.PaymentNotPaid,
		DeliveryStatus: models.DeliveryProcessing,
		Items:          datatypes.JSONSlice[models.OrderItem](items),
		Seen:           true,
		AdminSeen:      false,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Order number collision, please retry"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	for _, item := range items {
		if strings.HasPrefix(item.ProductID, offerItemPrefix) {
			offerID := strings.TrimPrefix(item.ProductID, offerItemPrefix)
			var offer models.Offer
			if err := tx.First(&offer, "id = ?", offerID).Error; err == nil {
				tx.Model(&models.Inquiry{}).Where("id = ?", offer.InquiryID).
					Update("status", models.InquiryOrdered)
			}
			continue
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
			Update("available_quantity", gorm.Expr("available_quantity - ?", item.Quantity)).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	go h.Mail.OrderConfirmation(customer, order)
	go h.Mail.AdminNewOrder(customer, order)

	c.JSON(http.StatusCreated, order)
}

// loadOrder fetches an order by the :id path param, answering 404 on miss.
func loadOrder(c *gin.Context) (models.Order, bool) {
	var order models.Order
	if err := database.DB.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order"})
		}
		return models.Order{}, false
	}
	return order, true
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, ok := loadOrder(c)
	if !ok {
		return
	}

	if err := database.DB.Model(&order).Updates(map[string]interface{}{
		"status": req.Status,
		"seen":   false,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus models.PaymentStatus `json:"payment_status" binding:"required,oneof=not_paid partially_paid paid"`
}

// UpdatePaymentStatus also re-runs the debt classifier for the order's
// customer, since a payment can lift (or cause) a pause.
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, ok := loadOrder(c)
	if !ok {
		return
	}

	if err := database.DB.Model(&order).Updates(map[string]interface{}{
		"payment_status": req.PaymentStatus,
		"seen":           false,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
		return
	}

	customer, err := billing.RefreshCustomerStatus(database.DB, order.CustomerID)
	if err == nil {
		go h.Mail.OrderStatusChanged(customer, order, "payment")
	}

	c.JSON(http.StatusOK, order)
}

type UpdateDeliveryStatusRequest struct {
	DeliveryStatus models.DeliveryStatus `json:"delivery_status" binding:"required,oneof=processing confirmed transit delivered"`
}

func (h *OrderHandler) UpdateDeliveryStatus(c *gin.Context) {
	var req UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, ok := loadOrder(c)
	if !ok {
		return
	}

	if err := database.DB.Model(&order).Updates(map[string]interface{}{
		"delivery_status": req.DeliveryStatus,
		"seen":            false,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery status"})
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", order.CustomerID).Error; err == nil {
		go h.Mail.OrderStatusChanged(customer, order, "delivery")
	}

	c.JSON(http.StatusOK, order)
}

type UpdateDeliveryDateRequest struct {
	DeliveryDate *time.Time `json:"delivery_date"`
}

func (h *OrderHandler) UpdateDeliveryDate(c *gin.Context) {
	var req UpdateDeliveryDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, ok := loadOrder(c)
	if !ok {
		return
	}

	if err := database.DB.Model(&order).Update("delivery_date", req.DeliveryDate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update delivery date"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type UpdateOrderItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateItems replaces the order's line items and recomputes its total.
func (h *OrderHandler) UpdateItems(c *gin.Context) {
	var req UpdateOrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, ok := loadOrder(c)
	if !ok {
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	total := 0
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
		total += item.Price * item.Quantity
	}

	if err := database.DB.Model(&order).Updates(map[string]interface{}{
		"items": datatypes.JSONSlice[models.OrderItem](items),
		"total": total,
		"seen":  false,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order items"})
		return
	}

	database.DB.First(&order, "id = ?", order.ID)
	c.JSON(http.StatusOK, order)
}

// MarkSeen flags the order as read: adminSeen for admins, seen for the owner.
func (h *OrderHandler) MarkSeen(c *gin.Context) {
	order, ok := loadOrder(c)
	if !ok {
		return
	}

	column := "seen"
	if isAdminRole(c) {
		column = "admin_seen"
	} else if order.CustomerID != c.GetString("customerID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	if err := database.DB.Model(&order).Update(column, true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark order as seen"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	result := database.DB.Delete(&models.Order{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	database.DB.Delete(&models.OrderComment{}, "order_id = ?", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

func (h *OrderHandler) ListComments(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	order, loaded := loadOrder(c)
	if !loaded {
		return
	}
	if customer.Role != models.RoleAdmin && order.CustomerID != customer.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	query := database.DB.Where("order_id = ?", order.ID).Order("created_at asc")
	if customer.Role != models.RoleAdmin {
		query = query.Where("is_internal = ?", false)
	}

	var comments []models.OrderComment
	if err := query.Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

type AddCommentRequest struct {
	Message    string `json:"message" binding:"required"`
	IsInternal bool   `json:"is_internal"`
}

func (h *OrderHandler) AddComment(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	order, loaded := loadOrder(c)
	if !loaded {
		return
	}
	if customer.Role != models.RoleAdmin && order.CustomerID != customer.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	authorName := customer.CompanyName
	isInternal := false
	if customer.Role == models.RoleAdmin {
		authorName = "Manager"
		isInternal = req.IsInternal
	}

	comment := models.OrderComment{
		OrderID:    order.ID,
		AuthorID:   customer.ID,
		AuthorRole: customer.Role,
		AuthorName: authorName,
		Message:    message,
		IsInternal: isInternal,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}
	c.JSON(http.StatusCreated, comment)
}
