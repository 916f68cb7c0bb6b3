package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yavrumyan/B2BPortal/internal/models"
)

func TestGetSettingsLazyCreates(t *testing.T) {
	setupTest(t)
	r := testRouter()

	w := doRequest(t, r, http.MethodGet, "/api/settings", "", nil)
	requireStatus(t, w, http.StatusOK)

	var settings models.Settings
	decodeBody(t, w, &settings)
	assert.Equal(t, 10, settings.CorporateMarkupPercentage)
	assert.Equal(t, 10, settings.GovernmentMarkupPercentage)
}

func TestUpdateSettingsValidation(t *testing.T) {
	setupTest(t)
	r := testRouter()

	_, adminToken := seedCustomer(t, models.RoleAdmin, models.StatusApproved, models.TypeReseller)

	for _, bad := range []int{-1, 101} {
		requireStatus(t, doRequest(t, r, http.MethodPatch, "/api/settings", adminToken,
			gin.H{"corporate_markup_percentage": bad}), http.StatusBadRequest)
		requireStatus(t, doRequest(t, r, http.MethodPatch, "/api/settings", adminToken,
			gin.H{"government_markup_percentage": bad}), http.StatusBadRequest)
	}

	w := doRequest(t, r, http.MethodPatch, "/api/settings", adminToken,
		gin.H{"corporate_markup_percentage": 0, "government_markup_percentage": 25})
	requireStatus(t, w, http.StatusOK)

	var settings models.Settings
	decodeBody(t, w, &settings)
	assert.Equal(t, 0, settings.CorporateMarkupPercentage)
	assert.Equal(t, 25, settings.GovernmentMarkupPercentage)
}

func TestUpdateSettingsRequiresAdmin(t *testing.T) {
	setupTest(t)
	r := testRouter()

	_, custToken := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeReseller)
	requireStatus(t, doRequest(t, r, http.MethodPatch, "/api/settings", custToken,
		gin.H{"corporate_markup_percentage": 15}), http.StatusForbidden)
}
