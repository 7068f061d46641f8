package services

import (
	"context"
	"errors"

	"lanka-connect/backend/internal/models"

	"github.com/rs/zerolog/log"
)

const defaultPushTitle = "Lanka Connect"

type RecipientStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	AdminFCMTokens(ctx context.Context) ([]string, error)
}

type PushDispatcher interface {
	SendOne(ctx context.Context, token string, payload models.PushPayload) error
	SendMulticast(ctx context.Context, tokens []string, payload models.PushPayload) (successCount, failureCount int, err error)
}

// PushRelay resolves a freshly created notification to zero, one or many
// device tokens and hands it to the push dispatcher. Delivery is best
// effort: the notification document already persists, so dispatcher
// failures are logged and swallowed, never retried here.
type PushRelay struct {
	users      RecipientStore
	dispatcher PushDispatcher
}

func NewPushRelay(users RecipientStore, dispatcher PushDispatcher) *PushRelay {
	return &PushRelay{users: users, dispatcher: dispatcher}
}

func (r *PushRelay) HandleNotificationCreated(ctx context.Context, notif *models.Notification) error {
	if notif == nil {
		return nil
	}

	title := notif.Title
	if title == "" {
		title = defaultPushTitle
	}
	notifType := notif.Type
	if notifType == "" {
		notifType = models.NotificationTypeGeneral
	}
	payload := models.PushPayload{
		Title: title,
		Body:  notif.Body,
		Data: map[string]string{
			"notificationId": notif.ID,
			"type":           notifType,
		},
	}

	switch notif.RecipientID {
	case models.RecipientAllAdmins:
		return r.broadcastToAdmins(ctx, notif.ID, payload)
	case "":
		log.Warn().Str("notificationId", notif.ID).
			Msg("notification has no recipient, skipping push")
		return nil
	default:
		return r.pushToRecipient(ctx, notif.ID, notif.RecipientID, payload)
	}
}

func (r *PushRelay) broadcastToAdmins(ctx context.Context, notificationID string, payload models.PushPayload) error {
	tokens, err := r.users.AdminFCMTokens(ctx)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		log.Info().Str("notificationId", notificationID).
			Msg("no admin tokens registered, skipping push")
		return nil
	}

	success, failure, err := r.dispatcher.SendMulticast(ctx, tokens, payload)
	if err != nil {
		log.Error().Err(err).Str("notificationId", notificationID).
			Msg("failed to send admin push")
		return nil
	}
	log.Info().Int("successCount", success).Int("failureCount", failure).
		Str("notificationId", notificationID).
		Msg("sent admin push notifications")
	return nil
}

func (r *PushRelay) pushToRecipient(ctx context.Context, notificationID, recipientID string, payload models.PushPayload) error {
	user, err := r.users.FindByID(ctx, recipientID)
	if errors.Is(err, models.ErrNotFound) {
		log.Info().Str("recipientId", recipientID).
			Msg("recipient not found, skipping push")
		return nil
	}
	if err != nil {
		return err
	}
	if user.FCMToken == "" {
		log.Info().Str("recipientId", recipientID).
			Msg("no FCM token for recipient, skipping push")
		return nil
	}

	if err := r.dispatcher.SendOne(ctx, user.FCMToken, payload); err != nil {
		log.Error().Err(err).
			Str("notificationId", notificationID).
			Str("recipientId", recipientID).
			Msg("failed to send push notification")
		return nil
	}
	log.Info().Str("notificationId", notificationID).Str("recipientId", recipientID).
		Msg("push notification sent")
	return nil
}
