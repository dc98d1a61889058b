package worker

import (
	"context"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/service"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/sla"
)

// StartSlaWorker registers notification handlers and launches the periodic
// SLA scheduler when enabled.
func StartSlaWorker(ctx context.Context, scheduler *sla.Scheduler, notificationService *service.NotificationService, enabled bool) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if scheduler != nil && enabled {
		scheduler.Start(ctx)
	}
}
