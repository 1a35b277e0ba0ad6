// Package availability derives per-day calendar state and range conflict
// checks from a cabin's reservations. Nothing here touches storage; the
// caller supplies the reservation set and this package classifies it.
package availability

import (
	"time"

	"refugio/pkg/calendar"
	"refugio/pkg/model"
)

// Selection is a guest's tentative date range, before submission. A zero
// Selection means nothing is selected.
type Selection struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether no range is selected.
func (s Selection) IsZero() bool {
	return s.Start.IsZero() && s.End.IsZero()
}

// Contains reports whether day falls inside the selection.
func (s Selection) Contains(day time.Time) bool {
	if s.IsZero() {
		return false
	}
	return calendar.Within(day, s.Start, s.End)
}

// RangeOverlaps reports whether the inclusive ranges [aStart, aEnd] and
// [bStart, bEnd] share at least one day.
func RangeOverlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// ClassifyDay determines the display state of one calendar day for one
// cabin. Precedence, highest first: past, confirmed, pending, selected,
// available. A day both reserved and selected reports its reservation
// state, so guests see conflicts inside their own tentative range.
func ClassifyDay(day time.Time, cabinID string, reservations []model.Reservation, sel Selection, today time.Time) model.DateStatus {
	if day.Before(today) {
		return model.DatePast
	}

	pending := false
	for _, r := range reservations {
		if r.CabinID != cabinID {
			continue
		}
		if !calendar.Within(day, r.StartDate, r.EndDate) {
			continue
		}
		switch r.Status {
		case model.StatusConfirmed:
			return model.DateConfirmed
		case model.StatusPending:
			pending = true
		}
	}
	if pending {
		return model.DatePending
	}

	if sel.Contains(day) {
		return model.DateSelected
	}

	return model.DateAvailable
}

// IsSelectable reports whether a guest may pick day as part of a new
// range: exactly the days that classify as available. Past, reserved,
// and already-selected days are not selectable; today itself is, the
// tomorrow rule applies only at submission.
func IsSelectable(day time.Time, cabinID string, reservations []model.Reservation, sel Selection, today time.Time) bool {
	return ClassifyDay(day, cabinID, reservations, sel, today) == model.DateAvailable
}

// HasConflict reports whether [start, end] overlaps any blocking
// (PENDING or CONFIRMED) reservation of the cabin. REJECTED and
// CANCELLED reservations never conflict.
func HasConflict(start, end time.Time, cabinID string, reservations []model.Reservation) bool {
	for _, r := range reservations {
		if r.CabinID != cabinID {
			continue
		}
		if !r.Status.Blocking() {
			continue
		}
		if RangeOverlaps(start, end, r.StartDate, r.EndDate) {
			return true
		}
	}
	return false
}
