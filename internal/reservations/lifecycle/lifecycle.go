// Package lifecycle enforces the reservation state machine. Every
// reservation starts PENDING; an admin moves it to exactly one of
// CONFIRMED, REJECTED, or CANCELLED, and terminal states never change.
package lifecycle

import (
	"refugio/pkg/errors"
	"refugio/pkg/model"
)

// CanTransition reports whether a reservation may move from one status
// to another. Self-transitions are rejected like any other.
func CanTransition(from, to model.Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from.Terminal() {
		return false
	}
	return from == model.StatusPending && to != model.StatusPending
}

// Transition validates and applies a status change, returning the
// updated copy. The input reservation is not modified.
func Transition(r model.Reservation, to model.Status) (model.Reservation, error) {
	if !to.Valid() {
		return model.Reservation{}, errors.InvalidInput("status must be one of PENDING, CONFIRMED, REJECTED, CANCELLED")
	}
	if !CanTransition(r.Status, to) {
		return model.Reservation{}, errors.InvalidTransition(string(r.Status), string(to))
	}
	r.Status = to
	return r, nil
}
