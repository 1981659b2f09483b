package inventory

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/erazemk/zaloga/internal/model"
)

const day = 24 * time.Hour

// ExpiryAlerts returns the items that expire within the expiry window,
// including already expired ones, soonest first. Ties keep item order.
func (s *Store) ExpiryAlerts() []model.ExpiryAlert {
	now := s.now()

	var alerts []model.ExpiryAlert
	for _, item := range s.items {
		expiresAt, ok := item.ExpiresAt()
		if !ok {
			continue
		}
		daysLeft := daysUntil(now, expiresAt)
		if daysLeft > model.ExpiryWindowDays {
			continue
		}
		alerts = append(alerts, model.ExpiryAlert{
			Item:     item,
			DaysLeft: daysLeft,
			Status:   model.StatusForDaysLeft(daysLeft),
		})
	}

	slices.SortStableFunc(alerts, func(a, b model.ExpiryAlert) int {
		return cmp.Compare(a.DaysLeft, b.DaysLeft)
	})
	return alerts
}

// LowStockAlerts returns the items at or below their low-stock threshold,
// in item order.
func (s *Store) LowStockAlerts() []model.Item {
	var result []model.Item
	for _, item := range s.items {
		if item.IsLowStock() {
			result = append(result, item)
		}
	}
	return result
}

// daysUntil rounds the time remaining until t up to whole days.
func daysUntil(now, t time.Time) int {
	return int(math.Ceil(float64(t.Sub(now)) / float64(day)))
}
