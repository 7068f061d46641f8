package push

import (
	"context"
	"fmt"

	"lanka-connect/backend/internal/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// AndroidChannelID is the device notification channel the mobile client
// registers on install.
const AndroidChannelID = "lanka_connect_notifications"

type FCMClient struct {
	App       *firebase.App
	Messaging *messaging.Client
}

// NewFCMClient creates a new Firebase Cloud Messaging client.
// The serviceAccountPath parameter should be the path to a Firebase service
// account credentials JSON file.
func NewFCMClient(ctx context.Context, serviceAccountPath string) (*FCMClient, error) {
	opt := option.WithCredentialsFile(serviceAccountPath)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init messaging client: %w", err)
	}

	return &FCMClient{App: app, Messaging: client}, nil
}

// SendOne delivers a push to a single device token with high priority, the
// app's notification channel, a badge increment and the default sound.
func (f *FCMClient) SendOne(ctx context.Context, token string, payload models.PushPayload) error {
	badge := 1
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: AndroidChannelID,
				Priority:  messaging.PriorityHigh,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Badge: &badge,
					Sound: "default",
				},
			},
		},
	}
	_, err := f.Messaging.Send(ctx, msg)
	return err
}

// SendMulticast delivers one push to a set of device tokens.
func (f *FCMClient) SendMulticast(ctx context.Context, tokens []string, payload models.PushPayload) (int, int, error) {
	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}
	resp, err := f.Messaging.SendEachForMulticast(ctx, msg)
	if err != nil {
		return 0, 0, err
	}
	return resp.SuccessCount, resp.FailureCount, nil
}
