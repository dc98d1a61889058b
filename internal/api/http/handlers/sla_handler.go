package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/api/dto"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/observability"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/sla"
	apperrors "github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/pkg/util"
)

// SlaHandler exposes the administrative surface of the SLA scheduler.
type SlaHandler struct {
	scheduler *sla.Scheduler
	metrics   *observability.Metrics
}

// NewSlaHandler constructs handler.
func NewSlaHandler(scheduler *sla.Scheduler, metrics *observability.Metrics) *SlaHandler {
	return &SlaHandler{scheduler: scheduler, metrics: metrics}
}

// TriggerSweep POST /admin/sla/sweep.
func (h *SlaHandler) TriggerSweep(c *fiber.Ctx) error {
	result, ran := h.scheduler.TriggerNow(c.UserContext())
	if !ran {
		return apperrors.NewConflict("sweep already in progress", nil)
	}
	return c.JSON(fiber.Map{"data": dto.SweepResponse{
		Checked:        result.Checked,
		WarningsRaised: result.WarningsRaised,
		BreachesRaised: result.BreachesRaised,
	}})
}

// Status GET /admin/sla/status.
func (h *SlaHandler) Status(c *fiber.Ctx) error {
	resp := dto.SchedulerStatusResponse{
		Running: h.scheduler.IsRunning(),
	}
	if lastRun, lastSweep := h.scheduler.LastRun(); !lastRun.IsZero() {
		resp.LastRunAt = &lastRun
		resp.LastSweep = &dto.SweepResponse{
			Checked:        lastSweep.Checked,
			WarningsRaised: lastSweep.WarningsRaised,
			BreachesRaised: lastSweep.BreachesRaised,
		}
	}
	resp.SweepsTotal, resp.TicksSkipped, resp.WarningsRaised, resp.BreachesRaised = h.metrics.SweepCounts()
	return c.JSON(fiber.Map{"data": resp})
}
