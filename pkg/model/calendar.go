package model

// CalendarDay is one day of a cabin's availability calendar as shown to
// guests. Derived on demand from the cabin's reservations.
type CalendarDay struct {
	Date       string     `json:"date"`
	Status     DateStatus `json:"status"`
	Selectable bool       `json:"selectable"`
}

// AvailabilityResult answers a range availability check.
type AvailabilityResult struct {
	CabinID   string `json:"cabin_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}
