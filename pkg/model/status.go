package model

// Status is the lifecycle state of a reservation. The literals are
// persisted and exposed over the API, so they must not change.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s permits no further transitions.
// Only PENDING reservations can still change.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusRejected || s == StatusCancelled
}

// Blocking reports whether a reservation in this status occupies its
// date range. REJECTED and CANCELLED reservations never block a date.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// DateStatus classifies a single calendar day for one cabin. Derived on
// demand, never stored.
type DateStatus string

const (
	DatePast      DateStatus = "past"
	DateConfirmed DateStatus = "confirmed"
	DatePending   DateStatus = "pending"
	DateSelected  DateStatus = "selected"
	DateAvailable DateStatus = "available"
)
