package models

import (
	"math"
	"strconv"
	"time"
)

// Review documents are written by the mobile client, so the rating field is
// kept untyped and parsed defensively before it ever reaches the aggregate.
type Review struct {
	ID         string      `bson:"_id,omitempty" json:"id"`
	BookingID  string      `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	ServiceID  string      `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	ProviderID string      `bson:"providerId" json:"providerId"`
	ReviewerID string      `bson:"reviewerId,omitempty" json:"reviewerId,omitempty"`
	Rating     interface{} `bson:"rating" json:"rating"`
	Comment    string      `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt  time.Time   `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// ParseRating coerces a raw rating value to a finite float64.
func ParseRating(v interface{}) (float64, bool) {
	var r float64
	switch n := v.(type) {
	case float64:
		r = n
	case float32:
		r = float64(n)
	case int:
		r = float64(n)
	case int32:
		r = float64(n)
	case int64:
		r = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		r = parsed
	default:
		return 0, false
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}
