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

func TestListProductsVisibilityAndPricing(t *testing.T) {
	setupTest(t)
	r := testRouter()

	seedProduct(t, "Everyone", 450000, 10)
	seedProduct(t, "Corporate only", 100000, 5, "corporate")

	_, resellerToken := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeReseller)
	_, corporateToken := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeCorporate)
	_, adminToken := seedCustomer(t, models.RoleAdmin, models.StatusApproved, models.TypeReseller)

	var views []productView

	// Reseller: restricted product hidden, base price unchanged
	w := doRequest(t, r, http.MethodGet, "/api/products", resellerToken, nil)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &views)
	require.Len(t, views, 1)
	assert.Equal(t, "Everyone", views[0].Name)
	assert.Equal(t, 450000, views[0].DisplayPrice)

	// Corporate: both visible, default 10% markup rounded up to 100
	w = doRequest(t, r, http.MethodGet, "/api/products", corporateToken, nil)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &views)
	require.Len(t, views, 2)
	for _, v := range views {
		switch v.Name {
		case "Everyone":
			assert.Equal(t, 495000, v.DisplayPrice)
		case "Corporate only":
			assert.Equal(t, 110000, v.DisplayPrice)
		}
	}

	// Admin sees everything at base prices
	w = doRequest(t, r, http.MethodGet, "/api/products", adminToken, nil)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &views)
	assert.Len(t, views, 2)

	// Anonymous callers get the unfiltered catalog
	w = doRequest(t, r, http.MethodGet, "/api/products", "", nil)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &views)
	assert.Len(t, views, 2)
}

func TestProductCRUDRequiresAdmin(t *testing.T) {
	setupTest(t)
	r := testRouter()

	_, custToken := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeReseller)
	_, adminToken := seedCustomer(t, models.RoleAdmin, models.StatusApproved, models.TypeReseller)

	body := gin.H{"name": "Switch 24p", "price": 120000, "available_quantity": 4}
	requireStatus(t, doRequest(t, r, http.MethodPost, "/api/products", custToken, body), http.StatusForbidden)

	w := doRequest(t, r, http.MethodPost, "/api/products", adminToken, body)
	requireStatus(t, w, http.StatusCreated)

	var product models.Product
	decodeBody(t, w, &product)
	assert.Equal(t, models.StockInStock, product.Stock)

	w = doRequest(t, r, http.MethodPatch, "/api/products/"+product.ID, adminToken, gin.H{"price": 130000, "stock": "low_stock"})
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &product)
	assert.Equal(t, 130000, product.Price)
	assert.Equal(t, models.StockLowStock, product.Stock)

	requireStatus(t, doRequest(t, r, http.MethodDelete, "/api/products/"+product.ID, adminToken, nil), http.StatusOK)
	requireStatus(t, doRequest(t, r, http.MethodDelete, "/api/products/"+product.ID, adminToken, nil), http.StatusNotFound)
}

func TestBulkImportReplacesCatalog(t *testing.T) {
	setupTest(t)
	r := testRouter()

	_, adminToken := seedCustomer(t, models.RoleAdmin, models.StatusApproved, models.TypeReseller)
	seedProduct(t, "Old product", 1000, 1)

	w := doRequest(t, r, http.MethodPost, "/api/products/bulk-import", adminToken, gin.H{
		"products": []gin.H{
			{"name": "New A", "price": 2000},
			{"name": "New B", "price": 3000, "visible_customer_types": []string{"government"}},
		},
	})
	requireStatus(t, w, http.StatusOK)

	var count int64
	database.DB.Model(&models.Product{}).Count(&count)
	assert.EqualValues(t, 2, count)

	var old models.Product
	err := database.DB.Where("name = ?", "Old product").First(&old).Error
	assert.Error(t, err)
}

func TestBulkImportRejectsEmpty(t *testing.T) {
	setupTest(t)
	r := testRouter()

	_, adminToken := seedCustomer(t, models.RoleAdmin, models.StatusApproved, models.TypeReseller)
	seedProduct(t, "Keeper", 1000, 1)

	requireStatus(t, doRequest(t, r, http.MethodPost, "/api/products/bulk-import", adminToken,
		gin.H{"products": []gin.H{}}), http.StatusBadRequest)

	// Failed import leaves the catalog untouched
	var count int64
	database.DB.Model(&models.Product{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
