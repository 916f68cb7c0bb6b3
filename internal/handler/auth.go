package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yavrumyan/B2BPortal/internal/email"
	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/internal/utils"
	"github.com/yavrumyan/B2BPortal/pkg/database"
)

type AuthHandler struct {
	Mail *email.Service
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var customer models.Customer
	if err := database.DB.Where("email = ?", req.Email).First(&customer).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, customer.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// Pending and rejected accounts cannot sign in
	if customer.Status == models.StatusPending {
		c.JSON(http.StatusForbidden, gin.H{"error": "Your registration is awaiting admin approval"})
		return
	}
	if customer.Status == models.StatusRejected {
		c.JSON(http.StatusForbidden, gin.H{"error": "Your registration has been rejected"})
		return
	}

	token, err := utils.GenerateToken(customer.ID, string(customer.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"customer": customer,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, customer)
}

type RegistrationRequest struct {
	CompanyName        string `json:"company_name" binding:"required"`
	TaxID              string `json:"tax_id" binding:"required"`
	DeliveryAddress    string `json:"delivery_address" binding:"required"`
	BankName           string `json:"bank_name" binding:"required"`
	BankAccount        string `json:"bank_account" binding:"required"`
	RepresentativeName string `json:"representative_name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Phone              string `json:"phone" binding:"required"`
	Messenger          string `json:"messenger" binding:"required"`
	MessengerContact   string `json:"messenger_contact" binding:"required"`
	Password           string `json:"password" binding:"required,min=6"`
}

// Register creates a customer in pending status; an admin approves or rejects
// it from the dashboard.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	customer := models.Customer{
		CompanyName:        req.CompanyName,
		TaxID:              req.TaxID,
		DeliveryAddress:    req.DeliveryAddress,
		BankName:           req.BankName,
		BankAccount:        req.BankAccount,
		RepresentativeName: req.RepresentativeName,
		Email:              req.Email,
		Phone:              req.Phone,
		Messenger:          req.Messenger,
		MessengerContact:   req.MessengerContact,
		PasswordHash:       hashedPassword,
		Role:               models.RoleCustomer,
		Status:             models.StatusPending,
		CustomerType:       models.TypeReseller,
		Cart:               nil,
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A company with this email or tax ID is already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	go h.Mail.AdminNewRegistration(customer)

	c.JSON(http.StatusCreated, customer)
}

type RecoverPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RecoverPassword always answers with the same neutral message so the endpoint
// cannot be used to probe which emails are registered.
func (h *AuthHandler) RecoverPassword(c *gin.Context) {
	var req RecoverPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var customer models.Customer
	if err := database.DB.Where("email = ?", req.Email).First(&customer).Error; err == nil {
		token, tokenErr := utils.RandomToken()
		if tokenErr == nil {
			reset := models.PasswordResetToken{
				CustomerID: customer.ID,
				Token:      token,
				ExpiresAt:  time.Now().Add(time.Hour),
			}
			if err := database.DB.Create(&reset).Error; err == nil {
				go h.Mail.PasswordReset(customer.Email, token)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "If an account with this email exists, password recovery instructions have been sent to it"})
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reset models.PasswordResetToken
	err := database.DB.
		Where("token = ? AND used = ? AND expires_at > ?", req.Token, false, time.Now()).
		First(&reset).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password reset link is invalid or has expired"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := database.DB.Model(&models.Customer{}).Where("id = ?", reset.CustomerID).
		Update("password_hash", hashedPassword).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	database.DB.Model(&reset).Update("used", true)

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
