// Package billing holds the order numbering scheme and the debt-based account
// status classifier.
package billing

import (
	"fmt"
	"time"
)

// OrderNumber builds the human-readable display label for a new order:
// DDMMYY-<position among today's orders>-<total>, e.g. "150125-3-450000".
//
// sameDayCount is the number of orders already persisted today, counted before
// the new row is inserted (see CountOrdersToday). Two concurrent placements can
// read the same count and collide; the unique constraint on orders.order_number
// is the backstop, and the caller surfaces that as a retryable conflict. The
// label is display-only, the primary key stays an opaque UUID.
func OrderNumber(now time.Time, sameDayCount int64, total int) string {
	return fmt.Sprintf("%s-%d-%d", now.Format("020106"), sameDayCount+1, total)
}

// StartOfDay returns midnight of now's calendar day in now's location.
func StartOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
