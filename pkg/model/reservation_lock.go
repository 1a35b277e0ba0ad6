package model

import "time"

// ReservationLock is an advisory lock document keyed by the booking slot
// coordinates. The unique _id makes concurrent inserts for the same slot
// fail with a duplicate key error; ExpiresAt backs a TTL index so a
// crashed holder cannot block the slot forever.
type ReservationLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}
