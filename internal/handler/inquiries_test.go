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

func TestCreateInquiryValidation(t *testing.T) {
	setupTest(t)
	r := testRouter()

	_, token := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeReseller)

	requireStatus(t, doRequest(t, r, http.MethodPost, "/api/inquiries", token,
		gin.H{"products_requested": []gin.H{}}), http.StatusBadRequest)

	requireStatus(t, doRequest(t, r, http.MethodPost, "/api/inquiries", token,
		gin.H{"products_requested": []gin.H{{"description": "Thermal printer", "quantity": 0}}}), http.StatusBadRequest)

	w := doRequest(t, r, http.MethodPost, "/api/inquiries", token,
		gin.H{"products_requested": []gin.H{{"description": "Thermal printer", "quantity": 3, "category": "printers"}}})
	requireStatus(t, w, http.StatusCreated)

	var inquiry models.Inquiry
	decodeBody(t, w, &inquiry)
	assert.Equal(t, models.InquirySent, inquiry.Status)
	assert.False(t, inquiry.Seen)
}

func TestInquiryListScoping(t *testing.T) {
	setupTest(t)
	r := testRouter()

	first, firstToken := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeReseller)
	second, secondToken := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeReseller)
	_, adminToken := seedCustomer(t, models.RoleAdmin, models.StatusApproved, models.TypeReseller)

	for _, customerID := range []string{first.ID, second.ID} {
		inquiry := models.Inquiry{
			CustomerID:        customerID,
			ProductsRequested: []models.RequestedProduct{{Description: "Bulk cable", Quantity: 100}},
		}
		require.NoError(t, database.DB.Create(&inquiry).Error)
	}

	var views []inquiryView
	w := doRequest(t, r, http.MethodGet, "/api/inquiries", firstToken, nil)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &views)
	require.Len(t, views, 1)
	assert.Equal(t, first.ID, views[0].CustomerID)

	w = doRequest(t, r, http.MethodGet, "/api/inquiries", adminToken, nil)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &views)
	assert.Len(t, views, 2)

	// A customer cannot read someone else's inquiry
	var foreign models.Inquiry
	require.NoError(t, database.DB.Where("customer_id = ?", first.ID).First(&foreign).Error)
	requireStatus(t, doRequest(t, r, http.MethodGet, "/api/inquiries/"+foreign.ID, secondToken, nil), http.StatusForbidden)
}

func TestOfferFlowFlipsInquiryStatus(t *testing.T) {
	setupTest(t)
	r := testRouter()

	customer, custToken := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeReseller)
	_, adminToken := seedCustomer(t, models.RoleAdmin, models.StatusApproved, models.TypeReseller)

	inquiry := models.Inquiry{
		CustomerID:        customer.ID,
		ProductsRequested: []models.RequestedProduct{{Description: "POS terminal", Quantity: 5}},
		Seen:              true,
	}
	require.NoError(t, database.DB.Create(&inquiry).Error)
	require.NoError(t, database.DB.Model(&inquiry).Update("seen", true).Error)

	w := doRequest(t, r, http.MethodPost, "/api/offers", adminToken, gin.H{
		"inquiry_id":    inquiry.ID,
		"product_name":  "POS terminal V5",
		"price":         95000,
		"quantity":      5,
		"delivery_time": "2 weeks",
	})
	requireStatus(t, w, http.StatusCreated)

	var after models.Inquiry
	require.NoError(t, database.DB.First(&after, "id = ?", inquiry.ID).Error)
	assert.Equal(t, models.InquiryOfferReceived, after.Status)
	assert.False(t, after.Seen)

	// Unread badge counts the new offer, marking it seen clears it
	var offer models.Offer
	require.NoError(t, database.DB.Where("inquiry_id = ?", inquiry.ID).First(&offer).Error)

	var countResp struct {
		Count int64 `json:"count"`
	}
	w = doRequest(t, r, http.MethodGet, "/api/offers/unread-count", custToken, nil)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &countResp)
	assert.EqualValues(t, 1, countResp.Count)

	requireStatus(t, doRequest(t, r, http.MethodPatch, "/api/offers/"+offer.ID+"/seen", custToken, nil), http.StatusOK)

	w = doRequest(t, r, http.MethodGet, "/api/offers/unread-count", custToken, nil)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &countResp)
	assert.EqualValues(t, 0, countResp.Count)
}

func TestRejectInquiry(t *testing.T) {
	setupTest(t)
	r := testRouter()

	customer, _ := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeReseller)
	_, adminToken := seedCustomer(t, models.RoleAdmin, models.StatusApproved, models.TypeReseller)

	inquiry := models.Inquiry{
		CustomerID:        customer.ID,
		ProductsRequested: []models.RequestedProduct{{Description: "Obscure part", Quantity: 1}},
	}
	require.NoError(t, database.DB.Create(&inquiry).Error)

	requireStatus(t, doRequest(t, r, http.MethodPatch, "/api/inquiries/"+inquiry.ID+"/reject", adminToken, nil), http.StatusOK)

	var after models.Inquiry
	require.NoError(t, database.DB.First(&after, "id = ?", inquiry.ID).Error)
	assert.Equal(t, models.InquiryNoOffer, after.Status)
}

func TestDeleteInquiryCascadesOffers(t *testing.T) {
	setupTest(t)
	r := testRouter()

	customer, _ := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeReseller)
	_, adminToken := seedCustomer(t, models.RoleAdmin, models.StatusApproved, models.TypeReseller)

	inquiry := models.Inquiry{
		CustomerID:        customer.ID,
		ProductsRequested: []models.RequestedProduct{{Description: "Rack", Quantity: 2}},
	}
	require.NoError(t, database.DB.Create(&inquiry).Error)
	offer := models.Offer{InquiryID: inquiry.ID, ProductName: "Rack 42U", Price: 250000}
	require.NoError(t, database.DB.Create(&offer).Error)

	requireStatus(t, doRequest(t, r, http.MethodDelete, "/api/inquiries/"+inquiry.ID, adminToken, nil), http.StatusOK)

	var offers int64
	database.DB.Model(&models.Offer{}).Where("inquiry_id = ?", inquiry.ID).Count(&offers)
	assert.EqualValues(t, 0, offers)
}
