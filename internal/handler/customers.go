package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yavrumyan/B2BPortal/internal/billing"
	"github.com/yavrumyan/B2BPortal/internal/email"
	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/pkg/database"
)

type CustomerHandler struct {
	Mail *email.Service
}

type customerView struct {
	models.Customer
	TotalOrders   int `json:"total_orders"`
	TotalAmount   int `json:"total_amount"`
	OverdueAmount int `json:"overdue_amount"`
}

// ListCustomers re-runs the debt classifier for every customer before
// answering, so the admin dashboard always shows current pause/limit states.
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := database.DB.Order("created_at desc").Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	views := make([]customerView, 0, len(customers))
	for _, customer := range customers {
		refreshed, err := billing.RefreshCustomerStatus(database.DB, customer.ID)
		if err != nil {
			refreshed = customer
		}
		stats, err := billing.CustomerStats(database.DB, customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}
		views = append(views, customerView{
			Customer:      refreshed,
			TotalOrders:   stats.OrderCount,
			TotalAmount:   stats.TotalOrderAmount,
			OverdueAmount: stats.OverdueAmount,
		})
	}

	c.JSON(http.StatusOK, views)
}

type UpdateCustomerRequest struct {
	CompanyName        *string                `json:"company_name"`
	DeliveryAddress    *string                `json:"delivery_address"`
	BankName           *string                `json:"bank_name"`
	BankAccount        *string                `json:"bank_account"`
	RepresentativeName *string                `json:"representative_name"`
	Phone              *string                `json:"phone"`
	Messenger          *string                `json:"messenger"`
	MessengerContact   *string                `json:"messenger_contact"`
	Role               *models.Role           `json:"role"`
	Status             *models.CustomerStatus `json:"status"`
	CustomerType       *models.CustomerType   `json:"customer_type"`
}

// UpdateCustomer lets a customer edit their own profile and an admin edit
// anyone's. Email, id and password never change through this route; role,
// status and customerType only change when an admin sends them.
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	requester, ok := currentCustomer(c)
	if !ok {
		return
	}

	targetID := c.Param("id")
	admin := requester.Role == models.RoleAdmin
	if !admin && requester.ID != targetID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var target models.Customer
	if err := database.DB.First(&target, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.CompanyName != nil {
		updates["company_name"] = *req.CompanyName
	}
	if req.DeliveryAddress != nil {
		updates["delivery_address"] = *req.DeliveryAddress
	}
	if req.BankName != nil {
		updates["bank_name"] = *req.BankName
	}
	if req.BankAccount != nil {
		updates["bank_account"] = *req.BankAccount
	}
	if req.RepresentativeName != nil {
		updates["representative_name"] = *req.RepresentativeName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Messenger != nil {
		updates["messenger"] = *req.Messenger
	}
	if req.MessengerContact != nil {
		updates["messenger_contact"] = *req.MessengerContact
	}

	statusChanged := false
	if admin {
		if req.Role != nil {
			if *req.Role != models.RoleAdmin && *req.Role != models.RoleCustomer {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
				return
			}
			updates["role"] = *req.Role
		}
		if req.Status != nil {
			if !req.Status.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be pending, approved, limited, paused, or rejected"})
				return
			}
			updates["status"] = *req.Status
			statusChanged = true
		}
		if req.CustomerType != nil {
			if !req.CustomerType.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer type. Must be reseller, corporate, or government"})
				return
			}
			updates["customer_type"] = *req.CustomerType
		}
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := database.DB.Model(&target).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}
	database.DB.First(&target, "id = ?", targetID)

	if statusChanged && target.Role != models.RoleAdmin {
		switch *req.Status {
		case models.StatusApproved:
			go h.Mail.RegistrationApproved(target)
		case models.StatusRejected:
			go h.Mail.RegistrationRejected(target)
		}
	}

	c.JSON(http.StatusOK, target)
}

// DeleteCustomer removes the account together with its orders, comments and
// reset tokens.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")

	var target models.Customer
	if err := database.DB.First(&target, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	var orderIDs []string
	tx.Model(&models.Order{}).Where("customer_id = ?", id).Pluck("id", &orderIDs)
	if len(orderIDs) > 0 {
		if err := tx.Delete(&models.OrderComment{}, "order_id IN ?", orderIDs).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
			return
		}
	}
	if err := tx.Delete(&models.Order{}, "customer_id = ?", id).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}
	if err := tx.Delete(&models.PasswordResetToken{}, "customer_id = ?", id).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}
	if err := tx.Delete(&target).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted"})
}

// CustomerStats answers order aggregates for the dashboard; customers can
// only query their own.
func (h *CustomerHandler) CustomerStats(c *gin.Context) {
	targetID := c.Param("id")
	if !isAdminRole(c) && targetID != c.GetString("customerID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	stats, err := billing.CustomerStats(database.DB, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get customer stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
