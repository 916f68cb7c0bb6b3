package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/pkg/database"
)

func TestRegisterCreatesPendingReseller(t *testing.T) {
	setupTest(t)
	r := testRouter()

	w := doRequest(t, r, http.MethodPost, "/api/registrations", "", gin.H{
		"company_name":        "New Trade LLC",
		"tax_id":              "01234567",
		"delivery_address":    "2 Side St",
		"bank_name":           "Armbank",
		"bank_account":        "1234567890",
		"representative_name": "Sam Lee",
		"email":               "newtrade@example.com",
		"phone":               "+37411111111",
		"messenger":           "telegram",
		"messenger_contact":   "@newtrade",
		"password":            "secret123",
	})
	requireStatus(t, w, http.StatusCreated)

	var created models.Customer
	require.NoError(t, database.DB.Where("email = ?", "newtrade@example.com").First(&created).Error)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, models.TypeReseller, created.CustomerType)
	assert.Equal(t, models.RoleCustomer, created.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTest(t)
	r := testRouter()

	body := gin.H{
		"company_name":        "New Trade LLC",
		"tax_id":              "01234567",
		"delivery_address":    "2 Side St",
		"bank_name":           "Armbank",
		"bank_account":        "1234567890",
		"representative_name": "Sam Lee",
		"email":               "dup@example.com",
		"phone":               "+37411111111",
		"messenger":           "telegram",
		"messenger_contact":   "@newtrade",
		"password":            "secret123",
	}
	requireStatus(t, doRequest(t, r, http.MethodPost, "/api/registrations", "", body), http.StatusCreated)

	body["tax_id"] = "76543210"
	requireStatus(t, doRequest(t, r, http.MethodPost, "/api/registrations", "", body), http.StatusBadRequest)
}

func TestLoginBlocksPendingAndRejected(t *testing.T) {
	setupTest(t)
	r := testRouter()

	pending, _ := seedCustomer(t, models.RoleCustomer, models.StatusPending, models.TypeReseller)
	rejected, _ := seedCustomer(t, models.RoleCustomer, models.StatusRejected, models.TypeReseller)

	w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": pending.Email, "password": "secret123"})
	requireStatus(t, w, http.StatusForbidden)

	w = doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": rejected.Email, "password": "secret123"})
	requireStatus(t, w, http.StatusForbidden)
}

func TestLoginApproved(t *testing.T) {
	setupTest(t)
	r := testRouter()

	customer, _ := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeCorporate)

	w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": customer.Email, "password": "secret123"})
	requireStatus(t, w, http.StatusOK)

	var resp struct {
		Token    string          `json:"token"`
		Customer models.Customer `json:"customer"`
	}
	decodeBody(t, w, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, customer.ID, resp.Customer.ID)

	w = doRequest(t, r, http.MethodGet, "/api/auth/me", resp.Token, nil)
	requireStatus(t, w, http.StatusOK)
}

func TestLoginWrongPassword(t *testing.T) {
	setupTest(t)
	r := testRouter()

	customer, _ := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeReseller)

	w := doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": customer.Email, "password": "wrong"})
	requireStatus(t, w, http.StatusUnauthorized)
}

func TestRecoverPasswordIsNeutral(t *testing.T) {
	setupTest(t)
	r := testRouter()

	customer, _ := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeReseller)

	known := doRequest(t, r, http.MethodPost, "/api/auth/recover-password", "", gin.H{"email": customer.Email})
	unknown := doRequest(t, r, http.MethodPost, "/api/auth/recover-password", "", gin.H{"email": "nobody@example.com"})

	requireStatus(t, known, http.StatusOK)
	requireStatus(t, unknown, http.StatusOK)
	assert.Equal(t, known.Body.String(), unknown.Body.String())

	var count int64
	database.DB.Model(&models.PasswordResetToken{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestResetPassword(t *testing.T) {
	setupTest(t)
	r := testRouter()

	customer, _ := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeReseller)
	requireStatus(t, doRequest(t, r, http.MethodPost, "/api/auth/recover-password", "", gin.H{"email": customer.Email}), http.StatusOK)

	var reset models.PasswordResetToken
	require.NoError(t, database.DB.Where("customer_id = ?", customer.ID).First(&reset).Error)

	w := doRequest(t, r, http.MethodPost, "/api/auth/reset-password", "", gin.H{"token": reset.Token, "password": "newsecret"})
	requireStatus(t, w, http.StatusOK)

	// New password works, token is single-use
	requireStatus(t, doRequest(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": customer.Email, "password": "newsecret"}), http.StatusOK)
	requireStatus(t, doRequest(t, r, http.MethodPost, "/api/auth/reset-password", "", gin.H{"token": reset.Token, "password": "another1"}), http.StatusBadRequest)
}
