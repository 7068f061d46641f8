package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lanka-connect/backend/internal/models"

	"github.com/rs/zerolog/log"
)

type SeedUserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
}

type SeedServiceStore interface {
	Upsert(ctx context.Context, svc *models.Service) error
	UpdateStatus(ctx context.Context, id, status string) error
}

type SeedBookingStore interface {
	Upsert(ctx context.Context, booking *models.Booking) error
}

type SeedReviewStore interface {
	Upsert(ctx context.Context, review *models.Review) error
}

// SeedService populates fixed demo records for presentations. Admin only;
// the caller's role is checked against the users collection, not just the
// token, so a stale admin token cannot seed after a demotion.
type SeedService struct {
	users         SeedUserStore
	services      SeedServiceStore
	bookings      SeedBookingStore
	reviews       SeedReviewStore
	notifications NotificationCreator
}

func NewSeedService(users SeedUserStore, services SeedServiceStore, bookings SeedBookingStore, reviews SeedReviewStore, notifications NotificationCreator) *SeedService {
	return &SeedService{
		users:         users,
		services:      services,
		bookings:      bookings,
		reviews:       reviews,
		notifications: notifications,
	}
}

type SeedResult struct {
	OK         bool     `json:"ok"`
	ProviderID string   `json:"providerId"`
	Services   []string `json:"services"`
	Bookings   []string `json:"bookings"`
	ReviewID   string   `json:"reviewId"`
}

func (s *SeedService) SeedDemoData(ctx context.Context, callerUID string) (*SeedResult, error) {
	if callerUID == "" {
		return nil, models.ErrUnauthenticated
	}

	caller, err := s.users.FindByID(ctx, callerUID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrPermissionDenied
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load caller: %w", err)
	}
	if strings.ToLower(caller.Role) != models.RoleAdmin {
		return nil, models.ErrPermissionDenied
	}

	suffix := callerUID
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}

	const providerID = "demo_provider"
	const approvedServiceOneID = "demo_service_cleaning"
	const approvedServiceTwoID = "demo_service_plumbing"
	const pendingServiceID = "demo_service_tutoring"
	acceptedBookingID := "demo_booking_accepted_" + suffix
	completedBookingID := "demo_booking_completed_" + suffix
	reviewID := "demo_review_" + suffix

	provider := &models.User{
		ID:       providerID,
		Role:     models.RoleProvider,
		Name:     "Demo Provider",
		Contact:  "+94770000000",
		District: "Colombo",
		City:     "Maharagama",
		Skills:   []string{"Home Cleaning", "Plumbing"},
		Bio:      "Demo profile for presentation and testing.",
	}
	if err := s.users.Upsert(ctx, provider); err != nil {
		return nil, err
	}

	demoServices := []*models.Service{
		{
			ID:          approvedServiceOneID,
			ProviderID:  providerID,
			Title:       "Home Deep Cleaning",
			Category:    "Cleaning",
			Price:       3500,
			District:    "Colombo",
			City:        "Nugegoda",
			Location:    "Nugegoda, Colombo",
			Description: "Apartment and house deep cleaning service.",
			Status:      models.ServiceStatusPending,
		},
		{
			ID:          approvedServiceTwoID,
			ProviderID:  providerID,
			Title:       "Quick Plumbing Fix",
			Category:    "Plumbing",
			Price:       2500,
			District:    "Gampaha",
			City:        "Kadawatha",
			Location:    "Kadawatha, Gampaha",
			Description: "Leak repairs and basic plumbing maintenance.",
			Status:      models.ServiceStatusPending,
		},
		{
			ID:          pendingServiceID,
			ProviderID:  providerID,
			Title:       "Math Tutoring (O/L)",
			Category:    "Tutoring",
			Price:       2000,
			District:    "Colombo",
			City:        "Dehiwala",
			Location:    "Dehiwala, Colombo",
			Description: "One-to-one O/L maths support sessions.",
			Status:      models.ServiceStatusPending,
		},
	}
	for _, svc := range demoServices {
		if err := s.services.Upsert(ctx, svc); err != nil {
			return nil, err
		}
	}

	demoBookings := []*models.Booking{
		{
			ID:         acceptedBookingID,
			ServiceID:  approvedServiceOneID,
			ProviderID: providerID,
			SeekerID:   callerUID,
			Amount:     3500,
			Status:     models.BookingStatusAccepted,
		},
		{
			ID:         completedBookingID,
			ServiceID:  approvedServiceTwoID,
			ProviderID: providerID,
			SeekerID:   callerUID,
			Amount:     2500,
			Status:     models.BookingStatusCompleted,
		},
	}
	for _, booking := range demoBookings {
		if err := s.bookings.Upsert(ctx, booking); err != nil {
			return nil, err
		}
	}

	review := &models.Review{
		ID:         reviewID,
		BookingID:  completedBookingID,
		ServiceID:  approvedServiceTwoID,
		ProviderID: providerID,
		ReviewerID: callerUID,
		Rating:     5,
		Comment:    "Reliable and quick service. Great for demo data.",
	}
	if err := s.reviews.Upsert(ctx, review); err != nil {
		return nil, err
	}

	notif := &models.Notification{
		RecipientID: callerUID,
		SenderID:    models.SystemSender,
		Title:       "Demo data ready",
		Body:        "Seed completed successfully. Refresh tabs to view sample data.",
		Type:        models.NotificationTypeSystem,
		Data: map[string]interface{}{
			"services": []string{approvedServiceOneID, approvedServiceTwoID, pendingServiceID},
			"bookings": []string{acceptedBookingID, completedBookingID},
		},
	}
	if err := s.notifications.Create(ctx, notif); err != nil {
		return nil, err
	}

	// approving two services last lets the moderation pipeline fire on the
	// freshly seeded data
	if err := s.services.UpdateStatus(ctx, approvedServiceOneID, models.ServiceStatusApproved); err != nil {
		return nil, err
	}
	if err := s.services.UpdateStatus(ctx, approvedServiceTwoID, models.ServiceStatusApproved); err != nil {
		return nil, err
	}

	log.Info().Str("callerUid", callerUID).Msg("seeded demo data for admin user")

	return &SeedResult{
		OK:         true,
		ProviderID: providerID,
		Services:   []string{approvedServiceOneID, approvedServiceTwoID, pendingServiceID},
		Bookings:   []string{acceptedBookingID, completedBookingID},
		ReviewID:   reviewID,
	}, nil
}
