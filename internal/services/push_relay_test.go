package services

import (
	"context"
	"reflect"
	"testing"

	"lanka-connect/backend/internal/models"
)

func TestPushRelay_SingleRecipient(t *testing.T) {
	users := &fakeRecipientStore{users: map[string]*models.User{
		"user1": {ID: "user1", FCMToken: "token-1"},
	}}
	dispatcher := &fakeDispatcher{}
	relay := NewPushRelay(users, dispatcher)

	notif := &models.Notification{
		ID:          "n1",
		RecipientID: "user1",
		Title:       "Service approved",
		Body:        "Your service has been approved by admin.",
		Type:        models.NotificationTypeModeration,
	}
	if err := relay.HandleNotificationCreated(context.Background(), notif); err != nil {
		t.Fatalf("HandleNotificationCreated returned error: %v", err)
	}

	if len(dispatcher.singles) != 1 {
		t.Fatalf("single pushes = %d, want 1", len(dispatcher.singles))
	}
	sent := dispatcher.singles[0]
	if sent.token != "token-1" {
		t.Errorf("token = %q, want token-1", sent.token)
	}
	if sent.payload.Title != "Service approved" {
		t.Errorf("title = %q", sent.payload.Title)
	}
	wantData := map[string]string{"notificationId": "n1", "type": models.NotificationTypeModeration}
	if !reflect.DeepEqual(sent.payload.Data, wantData) {
		t.Errorf("data = %v, want %v", sent.payload.Data, wantData)
	}
}

func TestPushRelay_DefaultsTitleAndType(t *testing.T) {
	users := &fakeRecipientStore{users: map[string]*models.User{
		"user1": {ID: "user1", FCMToken: "token-1"},
	}}
	dispatcher := &fakeDispatcher{}
	relay := NewPushRelay(users, dispatcher)

	notif := &models.Notification{ID: "n1", RecipientID: "user1", Body: "hello"}
	if err := relay.HandleNotificationCreated(context.Background(), notif); err != nil {
		t.Fatal(err)
	}

	sent := dispatcher.singles[0]
	if sent.payload.Title != "Lanka Connect" {
		t.Errorf("title = %q, want Lanka Connect", sent.payload.Title)
	}
	if sent.payload.Data["type"] != models.NotificationTypeGeneral {
		t.Errorf("type = %q, want general", sent.payload.Data["type"])
	}
}

func TestPushRelay_SkipsRecipientWithoutToken(t *testing.T) {
	users := &fakeRecipientStore{users: map[string]*models.User{
		"user1": {ID: "user1"},
	}}
	dispatcher := &fakeDispatcher{}
	relay := NewPushRelay(users, dispatcher)

	notif := &models.Notification{ID: "n1", RecipientID: "user1"}
	if err := relay.HandleNotificationCreated(context.Background(), notif); err != nil {
		t.Fatalf("expected nil error for missing token, got %v", err)
	}
	if len(dispatcher.singles) != 0 {
		t.Errorf("single pushes = %d, want 0", len(dispatcher.singles))
	}
}

func TestPushRelay_SkipsUnknownRecipient(t *testing.T) {
	users := &fakeRecipientStore{users: map[string]*models.User{}}
	dispatcher := &fakeDispatcher{}
	relay := NewPushRelay(users, dispatcher)

	notif := &models.Notification{ID: "n1", RecipientID: "ghost"}
	if err := relay.HandleNotificationCreated(context.Background(), notif); err != nil {
		t.Fatalf("expected nil error for unknown recipient, got %v", err)
	}
	if len(dispatcher.singles) != 0 {
		t.Errorf("single pushes = %d, want 0", len(dispatcher.singles))
	}
}

func TestPushRelay_SkipsEmptyRecipient(t *testing.T) {
	users := &fakeRecipientStore{}
	dispatcher := &fakeDispatcher{}
	relay := NewPushRelay(users, dispatcher)

	notif := &models.Notification{ID: "n1"}
	if err := relay.HandleNotificationCreated(context.Background(), notif); err != nil {
		t.Fatalf("expected nil error for empty recipient, got %v", err)
	}
	if len(dispatcher.singles)+len(dispatcher.multicasts) != 0 {
		t.Error("no push should be attempted for a malformed notification")
	}
}

func TestPushRelay_AdminBroadcast(t *testing.T) {
	users := &fakeRecipientStore{adminTokens: []string{"admin-token-1", "admin-token-2"}}
	dispatcher := &fakeDispatcher{}
	relay := NewPushRelay(users, dispatcher)

	notif := &models.Notification{ID: "n1", RecipientID: models.RecipientAllAdmins, Title: "New report"}
	if err := relay.HandleNotificationCreated(context.Background(), notif); err != nil {
		t.Fatal(err)
	}

	if len(dispatcher.multicasts) != 1 {
		t.Fatalf("multicasts = %d, want 1", len(dispatcher.multicasts))
	}
	want := []string{"admin-token-1", "admin-token-2"}
	if !reflect.DeepEqual(dispatcher.multicasts[0].tokens, want) {
		t.Errorf("tokens = %v, want %v", dispatcher.multicasts[0].tokens, want)
	}
	if len(dispatcher.singles) != 0 {
		t.Errorf("single pushes = %d, want 0", len(dispatcher.singles))
	}
}

func TestPushRelay_AdminBroadcastWithoutTokens(t *testing.T) {
	users := &fakeRecipientStore{adminTokens: []string{}}
	dispatcher := &fakeDispatcher{}
	relay := NewPushRelay(users, dispatcher)

	notif := &models.Notification{ID: "n1", RecipientID: models.RecipientAllAdmins}
	if err := relay.HandleNotificationCreated(context.Background(), notif); err != nil {
		t.Fatal(err)
	}
	if len(dispatcher.multicasts) != 0 {
		t.Errorf("multicasts = %d, want 0 with no admin tokens", len(dispatcher.multicasts))
	}
}

func TestPushRelay_SwallowsDispatcherFailure(t *testing.T) {
	users := &fakeRecipientStore{users: map[string]*models.User{
		"user1": {ID: "user1", FCMToken: "token-1"},
	}}
	dispatcher := &fakeDispatcher{failure: errDownstream}
	relay := NewPushRelay(users, dispatcher)

	notif := &models.Notification{ID: "n1", RecipientID: "user1"}
	if err := relay.HandleNotificationCreated(context.Background(), notif); err != nil {
		t.Errorf("dispatcher failure must be swallowed, got %v", err)
	}
}

func TestPushRelay_SwallowsMulticastFailure(t *testing.T) {
	users := &fakeRecipientStore{adminTokens: []string{"admin-token-1"}}
	dispatcher := &fakeDispatcher{failure: errDownstream}
	relay := NewPushRelay(users, dispatcher)

	notif := &models.Notification{ID: "n1", RecipientID: models.RecipientAllAdmins}
	if err := relay.HandleNotificationCreated(context.Background(), notif); err != nil {
		t.Errorf("dispatcher failure must be swallowed, got %v", err)
	}
}
