package models

import "time"

const (
	ServiceStatusPending  = "pending"
	ServiceStatusApproved = "approved"
	ServiceStatusRejected = "rejected"
)

type Service struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	ProviderID  string    `bson:"providerId" json:"providerId"`
	Title       string    `bson:"title" json:"title"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	Price       float64   `bson:"price,omitempty" json:"price,omitempty"`
	District    string    `bson:"district,omitempty" json:"district,omitempty"`
	City        string    `bson:"city,omitempty" json:"city,omitempty"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Status      string    `bson:"status,omitempty" json:"status" validate:"omitempty,oneof=pending approved rejected"`
	CreatedAt   time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
