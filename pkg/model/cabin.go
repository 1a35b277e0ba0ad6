package model

import "time"

// Cabin is a rentable unit from the catalog. It is immutable during a
// booking evaluation; the catalog service owns its mutations.
type Cabin struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description string    `json:"description,omitempty" bson:"description" validate:"omitempty,max=500"`
	Capacity    int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=20"`
	Price       float64   `json:"price" bson:"price" validate:"required,gt=0"`
	Amenities   []string  `json:"amenities,omitempty" bson:"amenities" validate:"omitempty,max=20,dive,required"`
	Image       string    `json:"image,omitempty" bson:"image" validate:"omitempty,max=200"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" bson:"updated_at" validate:"omitempty"`
}
