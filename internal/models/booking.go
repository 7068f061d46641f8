package models

import "time"

const (
	BookingStatusAccepted  = "accepted"
	BookingStatusCompleted = "completed"
)

// Booking lifecycle is owned by the mobile client; this backend only seeds
// demo bookings and carries their ids inside notification payloads.
type Booking struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	ServiceID  string    `bson:"serviceId" json:"serviceId"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	SeekerID   string    `bson:"seekerId" json:"seekerId"`
	Amount     float64   `bson:"amount" json:"amount"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt  time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
