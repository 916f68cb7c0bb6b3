package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/pkg/database"
)

func TestAnalyticsDashboard(t *testing.T) {
	setupTest(t)
	r := testRouter()

	reseller, _ := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeReseller)
	corporate, _ := seedCustomer(t, models.RoleCustomer, models.StatusApproved, models.TypeCorporate)
	_, adminToken := seedCustomer(t, models.RoleAdmin, models.StatusApproved, models.TypeReseller)

	seed := []struct {
		customerID string
		total      int
		age        time.Duration
		payment    models.PaymentStatus
	}{
		{reseller.ID, 100000, time.Hour, models.PaymentNotPaid},
		{corporate.ID, 200000, time.Hour, models.PaymentPaid},
		{reseller.ID, 400000, 10 * 24 * time.Hour, models.PaymentNotPaid},
		{corporate.ID, 600000, 10 * 24 * time.Hour, models.PaymentPartiallyPaid},
	}
	for i, s := range seed {
		order := models.Order{
			OrderNumber:   time.Now().Format("020106") + "-" + string(rune('1'+i)) + "-x",
			CustomerID:    s.customerID,
			Total:         s.total,
			PaymentStatus: s.payment,
			Items:         []models.OrderItem{{ProductID: "p1", Name: "Cable", Price: s.total, Quantity: 1}},
		}
		require.NoError(t, database.DB.Create(&order).Error)
		require.NoError(t, database.DB.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("created_at", time.Now().Add(-s.age)).Error)
	}

	w := doRequest(t, r, http.MethodGet, "/api/analytics", adminToken, nil)
	requireStatus(t, w, http.StatusOK)

	var resp struct {
		TotalOrders    int             `json:"totalOrders"`
		TotalCustomers int             `json:"totalCustomers"`
		OverdueTotal   int             `json:"overdueTotal"`
		DailyOrders    []dailyPoint    `json:"dailyOrders"`
		RevenueByType  []typeRevenue   `json:"revenueByType"`
		TopCustomers   []customerRevenue `json:"topCustomers"`
	}
	decodeBody(t, w, &resp)

	assert.Equal(t, 4, resp.TotalOrders)
	assert.Equal(t, 2, resp.TotalCustomers) // admin excluded
	// overdue: 400000 not paid in full, plus half of the partially paid 600000
	assert.Equal(t, 700000, resp.OverdueTotal)
	assert.Len(t, resp.DailyOrders, 30)

	byType := map[string]int{}
	for _, tr := range resp.RevenueByType {
		byType[tr.Type] = tr.Value
	}
	assert.Equal(t, 500000, byType["reseller"])
	assert.Equal(t, 800000, byType["corporate"])
	assert.Equal(t, 0, byType["government"])

	require.NotEmpty(t, resp.TopCustomers)
	assert.Equal(t, corporate.ID, resp.TopCustomers[0].ID)
}
