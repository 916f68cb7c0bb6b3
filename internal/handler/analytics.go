package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yavrumyan/B2BPortal/internal/billing"
	"github.com/yavrumyan/B2BPortal/internal/models"
	"github.com/yavrumyan/B2BPortal/pkg/database"
)

type AnalyticsHandler struct{}

type dailyPoint struct {
	Date    string `json:"date"`
	Orders  int    `json:"orders"`
	Revenue int    `json:"revenue"`
}

type typeRevenue struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

type customerRevenue struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Revenue int    `json:"revenue"`
}

type productRevenue struct {
	Name    string `json:"name"`
	Revenue int    `json:"revenue"`
}

// Dashboard aggregates the admin dashboard numbers in one pass over all
// orders. Unlike the debt classifier, the overdue total here credits a
// partially paid order with half its total, so the dashboard shows remaining
// exposure rather than the classifier's worst-case figure.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	var orders []models.Order
	if err := database.DB.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics"})
		return
	}
	var customers []models.Customer
	if err := database.DB.Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics"})
		return
	}

	customerByID := make(map[string]models.Customer, len(customers))
	nonAdminCount := 0
	for _, cust := range customers {
		customerByID[cust.ID] = cust
		if cust.Role != models.RoleAdmin {
			nonAdminCount++
		}
	}

	now := time.Now()
	startOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfLastMonth := startOfThisMonth.AddDate(0, -1, 0)

	revenueThisMonth, revenueLastMonth := 0, 0
	for _, o := range orders {
		switch {
		case !o.CreatedAt.Before(startOfThisMonth):
			revenueThisMonth += o.Total
		case !o.CreatedAt.Before(startOfLastMonth):
			revenueLastMonth += o.Total
		}
	}

	// Last 30 days, oldest first.
	daily := make([]dailyPoint, 30)
	dayIndex := make(map[string]int, 30)
	for i := 0; i < 30; i++ {
		key := now.AddDate(0, 0, i-29).Format("2006-01-02")
		daily[i] = dailyPoint{Date: key}
		dayIndex[key] = i
	}
	for _, o := range orders {
		if i, ok := dayIndex[o.CreatedAt.Format("2006-01-02")]; ok {
			daily[i].Orders++
			daily[i].Revenue += o.Total
		}
	}

	byType := map[models.CustomerType]int{
		models.TypeReseller:   0,
		models.TypeCorporate:  0,
		models.TypeGovernment: 0,
	}
	custRevenue := make(map[string]int)
	prodRevenue := make(map[string]*productRevenue)
	for _, o := range orders {
		if cust, ok := customerByID[o.CustomerID]; ok {
			byType[cust.CustomerType] += o.Total
		}
		custRevenue[o.CustomerID] += o.Total
		for _, item := range o.Items {
			key := item.ProductID
			if key == "" {
				key = item.Name
			}
			if entry, ok := prodRevenue[key]; ok {
				entry.Revenue += item.Price * item.Quantity
			} else {
				prodRevenue[key] = &productRevenue{Name: item.Name, Revenue: item.Price * item.Quantity}
			}
		}
	}

	revenueByType := []typeRevenue{
		{Type: string(models.TypeReseller), Value: byType[models.TypeReseller]},
		{Type: string(models.TypeCorporate), Value: byType[models.TypeCorporate]},
		{Type: string(models.TypeGovernment), Value: byType[models.TypeGovernment]},
	}

	topCustomers := make([]customerRevenue, 0, len(custRevenue))
	for id, revenue := range custRevenue {
		name := id
		if cust, ok := customerByID[id]; ok {
			name = cust.CompanyName
		}
		topCustomers = append(topCustomers, customerRevenue{ID: id, Name: name, Revenue: revenue})
	}
	sort.Slice(topCustomers, func(i, j int) bool { return topCustomers[i].Revenue > topCustomers[j].Revenue })
	if len(topCustomers) > 5 {
		topCustomers = topCustomers[:5]
	}

	topProducts := make([]productRevenue, 0, len(prodRevenue))
	for _, entry := range prodRevenue {
		topProducts = append(topProducts, *entry)
	}
	sort.Slice(topProducts, func(i, j int) bool { return topProducts[i].Revenue > topProducts[j].Revenue })
	if len(topProducts) > 5 {
		topProducts = topProducts[:5]
	}

	overdueCutoff := now.Add(-billing.OverdueAfter)
	overdueTotal := 0
	for _, o := range orders {
		if o.PaymentStatus == models.PaymentPaid || !o.CreatedAt.Before(overdueCutoff) {
			continue
		}
		if o.PaymentStatus == models.PaymentPartiallyPaid {
			overdueTotal += o.Total - o.Total/2
		} else {
			overdueTotal += o.Total
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"revenueThisMonth": revenueThisMonth,
		"revenueLastMonth": revenueLastMonth,
		"totalOrders":      len(orders),
		"totalCustomers":   nonAdminCount,
		"overdueTotal":     overdueTotal,
		"dailyOrders":      daily,
		"revenueByType":    revenueByType,
		"topCustomers":     topCustomers,
		"topProducts":      topProducts,
	})
}
