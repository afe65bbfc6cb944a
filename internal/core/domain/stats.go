package domain

// MonthlySignups is one bucket of the registrations-per-month aggregation.
// The _id key mirrors the aggregation group key consumed by the dashboard.
type MonthlySignups struct {
	Month int   `json:"_id" bson:"_id"`
	Total int64 `json:"total" bson:"total"`
}
