package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yavrumyan/B2BPortal/config"
	"github.com/yavrumyan/B2BPortal/internal/email"
	"github.com/yavrumyan/B2BPortal/internal/middleware"
	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/internal/utils"
	"github.com/yavrumyan/B2BPortal/pkg/database"
)

// setupTest points the global DB at a fresh in-memory database and installs a
// minimal config so token generation works.
func setupTest(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{
		Server: config.ServerConfig{
			JWTSecret:          "test-secret",
			JWTExpirationHours: 1,
		},
		Defaults: config.DefaultsConfig{CompanyName: "Test Trading LLC"},
	}
	database.DB = database.OpenTest(t)
}

// testMail returns an email service with no SMTP host, so every send is a
// logged no-op.
func testMail() *email.Service {
	return email.NewService(config.SMTPConfig{}, "", zap.NewNop().Sugar())
}

func testRouter() *gin.Engine {
	mail := testMail()
	r := gin.New()

	authHandler := &AuthHandler{Mail: mail}
	r.POST("/api/auth/login", authHandler.Login)
	r.GET("/api/auth/me", middleware.AuthMiddleware(), authHandler.Me)
	r.POST("/api/auth/recover-password", authHandler.RecoverPassword)
	r.POST("/api/auth/reset-password", authHandler.ResetPassword)
	r.POST("/api/registrations", authHandler.Register)

	productHandler := &ProductHandler{}
	r.GET("/api/products", middleware.OptionalAuth(), productHandler.ListProducts)
	r.GET("/api/products/:id", middleware.OptionalAuth(), productHandler.GetProduct)
	r.POST("/api/products", middleware.AuthMiddleware("admin"), productHandler.CreateProduct)
	r.PATCH("/api/products/:id", middleware.AuthMiddleware("admin"), productHandler.UpdateProduct)
	r.DELETE("/api/products/:id", middleware.AuthMiddleware("admin"), productHandler.DeleteProduct)
	r.POST("/api/products/bulk-import", middleware.AuthMiddleware("admin"), productHandler.BulkImport)

	orderHandler := &OrderHandler{Mail: mail}
	r.GET("/api/orders", middleware.AuthMiddleware(), orderHandler.ListOrders)
	r.POST("/api/orders", middleware.AuthMiddleware(), orderHandler.CreateOrder)
	r.GET("/api/orders/:id", middleware.AuthMiddleware(), orderHandler.GetOrder)
	r.PATCH("/api/orders/:id/seen", middleware.AuthMiddleware(), orderHandler.MarkSeen)
	r.GET("/api/orders/:id/comments", middleware.AuthMiddleware(), orderHandler.ListComments)
	r.POST("/api/orders/:id/comments", middleware.AuthMiddleware(), orderHandler.AddComment)
	r.PATCH("/api/orders/:id/status", middleware.AuthMiddleware("admin"), orderHandler.UpdateStatus)
	r.PATCH("/api/orders/:id/payment-status", middleware.AuthMiddleware("admin"), orderHandler.UpdatePaymentStatus)
	r.PATCH("/api/orders/:id/delivery-status", middleware.AuthMiddleware("admin"), orderHandler.UpdateDeliveryStatus)
	r.PATCH("/api/orders/:id/items", middleware.AuthMiddleware("admin"), orderHandler.UpdateItems)
	r.DELETE("/api/orders/:id", middleware.AuthMiddleware("admin"), orderHandler.DeleteOrder)

	customerHandler := &CustomerHandler{Mail: mail}
	r.GET("/api/customers", middleware.AuthMiddleware("admin"), customerHandler.ListCustomers)
	r.PATCH("/api/customers/:id", middleware.AuthMiddleware(), customerHandler.UpdateCustomer)
	r.DELETE("/api/customers/:id", middleware.AuthMiddleware("admin"), customerHandler.DeleteCustomer)
	r.GET("/api/customers/:id/stats", middleware.AuthMiddleware(), customerHandler.CustomerStats)

	cartHandler := &CartHandler{}
	r.GET("/api/cart", middleware.AuthMiddleware(), cartHandler.GetCart)
	r.POST("/api/cart", middleware.AuthMiddleware(), cartHandler.UpdateCart)
	r.DELETE("/api/cart", middleware.AuthMiddleware(), cartHandler.ClearCart)

	settingsHandler := &SettingsHandler{}
	r.GET("/api/settings", settingsHandler.GetSettings)
	r.PATCH("/api/settings", middleware.AuthMiddleware("admin"), settingsHandler.UpdateSettings)

	inquiryHandler := &InquiryHandler{Mail: mail}
	r.POST("/api/inquiries", middleware.AuthMiddleware(), inquiryHandler.CreateInquiry)
	r.GET("/api/inquiries", middleware.AuthMiddleware(), inquiryHandler.ListInquiries)
	r.GET("/api/inquiries/:id", middleware.AuthMiddleware(), inquiryHandler.GetInquiry)
	r.PATCH("/api/inquiries/:id/reject", middleware.AuthMiddleware("admin"), inquiryHandler.Reject)
	r.PATCH("/api/inquiries/:id/seen", middleware.AuthMiddleware(), inquiryHandler.MarkSeen)
	r.DELETE("/api/inquiries/:id", middleware.AuthMiddleware("admin"), inquiryHandler.DeleteInquiry)

	offerHandler := &OfferHandler{Mail: mail}
	r.POST("/api/offers", middleware.AuthMiddleware("admin"), offerHandler.CreateOffer)
	r.GET("/api/offers/inquiry/:inquiryId", middleware.AuthMiddleware(), offerHandler.ListByInquiry)
	r.PATCH("/api/offers/:id/seen", middleware.AuthMiddleware(), offerHandler.MarkSeen)
	r.GET("/api/offers/unread-count", middleware.AuthMiddleware(), offerHandler.UnreadCount)

	analyticsHandler := &AnalyticsHandler{}
	r.GET("/api/analytics", middleware.AuthMiddleware("admin"), analyticsHandler.Dashboard)

	return r
}

// seedCustomer inserts a customer with password "secret123" and returns it
// with a valid token.
func seedCustomer(t *testing.T, role models.Role, status models.CustomerStatus, customerType models.CustomerType) (models.Customer, string) {
	t.Helper()

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	customer := models.Customer{
		CompanyName:        "Acme " + string(role) + " " + string(customerType),
		TaxID:              randomHex(t)[:16],
		DeliveryAddress:    "1 Main St",
		RepresentativeName: "Alex Doe",
		Email:              randomHex(t)[:12] + "@example.com",
		Phone:              "+37400000000",
		PasswordHash:       hash,
		Role:               role,
		Status:             status,
		CustomerType:       customerType,
	}
	require.NoError(t, database.DB.Create(&customer).Error)

	token, err := utils.GenerateToken(customer.ID, string(customer.Role))
	require.NoError(t, err)
	return customer, token
}

func seedProduct(t *testing.T, name string, price, quantity int, visibleTo ...string) models.Product {
	t.Helper()
	product := models.Product{
		Name:                 name,
		Price:                price,
		Stock:                models.StockInStock,
		AvailableQuantity:    quantity,
		VisibleCustomerTypes: visibleTo,
	}
	require.NoError(t, database.DB.Create(&product).Error)
	return product
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}

func randomHex(t *testing.T) string {
	t.Helper()
	s, err := utils.RandomToken()
	require.NoError(t, err)
	return s
}
