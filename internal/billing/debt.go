package billing

import (
	"time"

	"gorm.io/gorm"

	"github.com/yavrumyan/B2BPortal/internal/models"
)

// OverdueAfter is how long an order may stay unpaid before its full total
// counts as overdue exposure.
const OverdueAfter = 7 * 24 * time.Hour

// PauseRatio is the overdue share of total order value at which an account is
// paused; anything overdue below it only limits the account.
const PauseRatio = 0.5

// OrderStats is the per-customer aggregate shown in the admin customer list.
type OrderStats struct {
	OrderCount       int `json:"order_count"`
	TotalOrderAmount int `json:"total_order_amount"`
	OverdueAmount    int `json:"overdue_amount"`
}

// Stats aggregates a customer's order history. An order is overdue when it is
// older than OverdueAfter and not fully paid; a partially paid order counts its
// whole total, not the unpaid remainder.
func Stats(orders []models.Order, now time.Time) OrderStats {
	cutoff := now.Add(-OverdueAfter)
	s := OrderStats{OrderCount: len(orders)}
	for _, o := range orders {
		s.TotalOrderAmount += o.Total
		if o.CreatedAt.Before(cutoff) && o.PaymentStatus != models.PaymentPaid {
			s.OverdueAmount += o.Total
		}
	}
	return s
}

// ClassifyDebtStatus maps a customer's order history to an account status.
//
// Pending, rejected and admin accounts are exempt: only an explicit admin
// action moves them, the classifier never reclassifies them. For everyone else
// the overdue share of total order value decides: >= PauseRatio pauses the
// account, anything above zero limits it, a clean history (or no orders at all)
// approves it.
func ClassifyDebtStatus(status models.CustomerStatus, role models.Role, orders []models.Order, now time.Time) models.CustomerStatus {
	if status == models.StatusPending || status == models.StatusRejected || role == models.RoleAdmin {
		return status
	}

	stats := Stats(orders, now)
	if stats.TotalOrderAmount == 0 {
		return models.StatusApproved
	}

	ratio := float64(stats.OverdueAmount) / float64(stats.TotalOrderAmount)
	switch {
	case ratio >= PauseRatio:
		return models.StatusPaused
	case stats.OverdueAmount > 0:
		return models.StatusLimited
	default:
		return models.StatusApproved
	}
}

// RefreshCustomerStatus recomputes the debt-based status for one customer and
// persists it only when it actually changed, so repeated calls with no new
// orders are write-free. Returns the customer with the current status.
func RefreshCustomerStatus(db *gorm.DB, customerID string) (models.Customer, error) {
	var customer models.Customer
	if err := db.First(&customer, "id = ?", customerID).Error; err != nil {
		return models.Customer{}, err
	}

	var orders []models.Order
	if err := db.Where("customer_id = ?", customerID).Find(&orders).Error; err != nil {
		return models.Customer{}, err
	}

	newStatus := ClassifyDebtStatus(customer.Status, customer.Role, orders, time.Now())
	if newStatus != customer.Status {
		if err := db.Model(&customer).Update("status", newStatus).Error; err != nil {
			return models.Customer{}, err
		}
		customer.Status = newStatus
	}
	return customer, nil
}

// CustomerStats loads a customer's orders and aggregates them.
func CustomerStats(db *gorm.DB, customerID string) (OrderStats, error) {
	var orders []models.Order
	if err := db.Where("customer_id = ?", customerID).Find(&orders).Error; err != nil {
		return OrderStats{}, err
	}
	return Stats(orders, time.Now()), nil
}

// CountOrdersToday counts orders persisted with createdAt inside today's
// [startOfDay, nextDay) window. Evaluated before the new order row is inserted.
func CountOrdersToday(db *gorm.DB, now time.Time) (int64, error) {
	start := StartOfDay(now)
	end := start.Add(24 * time.Hour)

	var count int64
	err := db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}
