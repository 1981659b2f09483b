package model

// AlertStatus buckets an expiry alert by urgency.
type AlertStatus string

// Alert statuses.
const (
	AlertCritical AlertStatus = "critical"
	AlertWarning  AlertStatus = "warning"
	AlertNormal   AlertStatus = "normal"
)

// Expiry window thresholds, in days.
const (
	ExpiryWindowDays   = 60
	ExpiryWarningDays  = 30
	ExpiryCriticalDays = 10
)

// ExpiryAlert pairs an item with the days left until it expires.
// DaysLeft is negative for items that have already expired.
type ExpiryAlert struct {
	Item     Item        `json:"item"`
	DaysLeft int         `json:"daysLeft"`
	Status   AlertStatus `json:"status"`
}

// StatusForDaysLeft returns the alert status for the given number of days left.
func StatusForDaysLeft(daysLeft int) AlertStatus {
	switch {
	case daysLeft <= ExpiryCriticalDays:
		return AlertCritical
	case daysLeft <= ExpiryWarningDays:
		return AlertWarning
	default:
		return AlertNormal
	}
}
