package model

import "time"

// Reservation is a guest's booking of a cabin over an inclusive date
// range. StartDate and EndDate are calendar days (midnight UTC); both
// bounds count as occupied. TotalPrice is fixed at creation and never
// recomputed when the cabin's rate changes.
type Reservation struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CabinID         string    `json:"cabin_id" bson:"cabin_id" validate:"required,mongodb"`
	StartDate       time.Time `json:"start_date" bson:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date" bson:"end_date" validate:"required"`
	GuestName       string    `json:"guest_name" bson:"guest_name" validate:"required,min=2,max=100"`
	GuestEmail      string    `json:"guest_email" bson:"guest_email" validate:"required,email"`
	GuestPhone      string    `json:"guest_phone" bson:"guest_phone" validate:"required,min=7,max=20"`
	NumberOfGuests  int       `json:"number_of_guests" bson:"number_of_guests" validate:"required,min=1"`
	SpecialRequests string    `json:"special_requests,omitempty" bson:"special_requests" validate:"omitempty,max=1000"`
	TotalPrice      float64   `json:"total_price" bson:"total_price" validate:"omitempty,gte=0"`
	Status          Status    `json:"status" bson:"status" validate:"required,oneof=PENDING CONFIRMED REJECTED CANCELLED"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty" bson:"updated_at" validate:"omitempty"`
}

// BookingRequest is the guest-facing submission before it becomes a
// persisted reservation. Dates arrive as strings so that the documented
// parse-fallback behavior applies to client input.
type BookingRequest struct {
	CabinID         string `json:"cabin_id"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	GuestName       string `json:"guest_name"`
	GuestEmail      string `json:"guest_email"`
	GuestPhone      string `json:"guest_phone"`
	NumberOfGuests  int    `json:"number_of_guests"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// StatusUpdate is the admin-facing payload for a lifecycle transition.
type StatusUpdate struct {
	Status Status `json:"status"`
}
