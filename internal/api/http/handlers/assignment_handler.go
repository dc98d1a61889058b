package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/api/dto"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/assignment"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/events"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/repository"
	apperrors "github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/pkg/util"
)

// AssignmentHandler exposes assignment resolution to entity-creation
// workflows. Recording the outcome in the audit trail is a caller-side
// responsibility; it lives here, not in the resolver.
type AssignmentHandler struct {
	resolver   *assignment.Resolver
	records    repository.AssignmentRecordRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAssignmentHandler constructs handler.
func NewAssignmentHandler(resolver *assignment.Resolver, records repository.AssignmentRecordRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{resolver: resolver, records: records, dispatcher: dispatcher, logger: logger}
}

// Resolve POST /assignments/resolve.
func (h *AssignmentHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TenantID == "" || req.EntityType == "" || req.EntityID == "" {
		return apperrors.NewValidationError("tenant_id, entity_type, entity_id required", nil)
	}

	actx := assignment.Context{
		TenantID:   req.TenantID,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Severity:   req.Severity,
		ReporterID: req.ReporterID,
		Metadata:   req.Metadata,
	}
	if req.Category != nil {
		actx.Category = &assignment.CategoryRef{ID: req.Category.ID, Name: req.Category.Name}
	}
	if req.Location != nil {
		actx.Location = &assignment.LocationRef{
			ID:       req.Location.ID,
			Name:     req.Location.Name,
			Country:  req.Location.Country,
			Region:   req.Location.Region,
			Timezone: req.Location.Timezone,
		}
	}

	result, err := h.resolver.Resolve(c.UserContext(), actx)
	if err != nil {
		return apperrors.MapError(err)
	}
	if result == nil {
		return c.JSON(fiber.Map{"data": dto.ResolveAssignmentResponse{Result: nil}})
	}

	record := &domain.AssignmentRecord{
		ID:         uuid.NewString(),
		TenantID:   req.TenantID,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		UserID:     result.UserID,
		Strategy:   "resolver",
		Reason:     result.Reason,
	}
	if err := h.records.Create(c.UserContext(), record); err != nil {
		return apperrors.MapError(err)
	}
	h.publishAssignedEvent(c.UserContext(), req, result)

	return c.JSON(fiber.Map{"data": dto.ResolveAssignmentResponse{
		Result: &dto.AssignmentResultPayload{UserID: result.UserID, Reason: result.Reason},
	}})
}

func (h *AssignmentHandler) publishAssignedEvent(ctx context.Context, req dto.ResolveAssignmentRequest, result *assignment.Result) {
	if h.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventItemAssigned,
		TenantID:  req.TenantID,
		ItemID:    req.EntityID,
		Timestamp: time.Now(),
		Payload: events.ItemAssignedPayload{
			UserID:   result.UserID,
			Strategy: "resolver",
			Reason:   result.Reason,
		},
	}
	if err := h.dispatcher.Publish(ctx, event); err != nil {
		h.logger.Warn("assignment event publish failed", zap.Error(err))
	}
}
