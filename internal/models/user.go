package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleProvider = "provider"
	RoleSeeker   = "seeker"
)

// RecipientAllAdmins is the broadcast sentinel the mobile client writes into
// Notification.RecipientID to address every admin at once.
const RecipientAllAdmins = "__admins__"

type User struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Role          string    `bson:"role" json:"role" validate:"omitempty,oneof=admin provider seeker"`
	Name          string    `bson:"name,omitempty" json:"name,omitempty"`
	Contact       string    `bson:"contact,omitempty" json:"contact,omitempty"`
	District      string    `bson:"district,omitempty" json:"district,omitempty"`
	City          string    `bson:"city,omitempty" json:"city,omitempty"`
	Skills        []string  `bson:"skills,omitempty" json:"skills,omitempty"`
	Bio           string    `bson:"bio,omitempty" json:"bio,omitempty"`
	FCMToken      string    `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	AverageRating float64   `bson:"averageRating,omitempty" json:"averageRating,omitempty"`
	ReviewCount   int64     `bson:"reviewCount,omitempty" json:"reviewCount,omitempty"`
	UpdatedAt     time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
