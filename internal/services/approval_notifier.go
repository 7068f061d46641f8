package services

import (
	"context"
	"fmt"

	"lanka-connect/backend/internal/models"

	"github.com/rs/zerolog/log"
)

type NotificationCreator interface {
	Create(ctx context.Context, notif *models.Notification) error
}

// Deduper remembers event keys so a redelivered trigger event can be
// recognized. Best effort: a Deduper failure never blocks the notification.
type Deduper interface {
	FirstSeen(ctx context.Context, key string) (bool, error)
}

// ApprovalNotifier creates a provider-facing notification when a service
// transitions into the approved state. Edge-triggered: repeated writes that
// leave the status at approved do not refire.
type ApprovalNotifier struct {
	notifications NotificationCreator
	dedup         Deduper
}

func NewApprovalNotifier(notifications NotificationCreator, dedup Deduper) *ApprovalNotifier {
	return &ApprovalNotifier{notifications: notifications, dedup: dedup}
}

func (n *ApprovalNotifier) HandleServiceUpdated(ctx context.Context, before, after *models.Service) error {
	if before == nil || after == nil {
		return nil
	}
	if before.Status == models.ServiceStatusApproved || after.Status != models.ServiceStatusApproved {
		return nil
	}

	if after.ProviderID == "" {
		log.Warn().Str("serviceId", after.ID).
			Msg("skipping service approval notification: missing providerId")
		return nil
	}

	if n.dedup != nil {
		first, err := n.dedup.FirstSeen(ctx, "approval_notified:"+after.ID)
		if err != nil {
			log.Warn().Err(err).Str("serviceId", after.ID).
				Msg("approval dedup check failed, notifying anyway")
		} else if !first {
			log.Info().Str("serviceId", after.ID).
				Msg("approval notification already sent, skipping redelivery")
			return nil
		}
	}

	notif := &models.Notification{
		RecipientID: after.ProviderID,
		SenderID:    models.SystemSender,
		Title:       "Service approved",
		Body:        "Your service has been approved by admin.",
		Type:        models.NotificationTypeModeration,
		Data: map[string]interface{}{
			"serviceId": after.ID,
			"status":    models.ServiceStatusApproved,
		},
		IsRead: false,
	}
	if err := n.notifications.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create approval notification for service %s: %w", after.ID, err)
	}

	log.Info().Str("serviceId", after.ID).Str("providerId", after.ProviderID).
		Msg("created approval notification")
	return nil
}
