package models

import "time"

const (
	NotificationTypeGeneral    = "general"
	NotificationTypeModeration = "service_moderation"
	NotificationTypeSystem     = "system"

	SystemSender = "system"
)

type Notification struct {
	ID          string                 `bson:"_id,omitempty" json:"id"`
	RecipientID string                 `bson:"recipientId" json:"recipientId"`
	SenderID    string                 `bson:"senderId,omitempty" json:"senderId,omitempty"`
	Title       string                 `bson:"title" json:"title"`
	Body        string                 `bson:"body" json:"body"`
	Type        string                 `bson:"type,omitempty" json:"type,omitempty"`
	Data        map[string]interface{} `bson:"data,omitempty" json:"data,omitempty"`
	IsRead      bool                   `bson:"isRead" json:"isRead"`
	CreatedAt   time.Time              `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
