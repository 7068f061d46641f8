package services

import (
	"context"
	"fmt"

	"lanka-connect/backend/internal/models"

	"github.com/rs/zerolog/log"
)

type StatusWriter interface {
	UpdateStatus(ctx context.Context, id, status string) error
}

// StatusNormalizer forces every newly created service into the pending state,
// closing the window where a client could create a service already approved.
type StatusNormalizer struct {
	services StatusWriter
}

func NewStatusNormalizer(services StatusWriter) *StatusNormalizer {
	return &StatusNormalizer{services: services}
}

func (n *StatusNormalizer) HandleServiceCreated(ctx context.Context, svc *models.Service) error {
	if svc == nil {
		return nil
	}
	if svc.Status == models.ServiceStatusPending {
		return nil
	}

	if err := n.services.UpdateStatus(ctx, svc.ID, models.ServiceStatusPending); err != nil {
		return fmt.Errorf("failed to normalize service %s: %w", svc.ID, err)
	}
	log.Info().Str("serviceId", svc.ID).Msg("forced new service status to pending")
	return nil
}
