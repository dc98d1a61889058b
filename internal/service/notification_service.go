package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/config"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/events"
)

// NotificationService forwards SLA escalation events to downstream channels.
// Delivery is stubbed; the engine only guarantees the events are surfaced.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotifyConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotifyConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSlaWarningRaised, n.handleSlaWarning)
	n.dispatcher.Subscribe(events.EventSlaBreachRaised, n.handleSlaBreach)
	n.dispatcher.Subscribe(events.EventItemAssigned, n.handleItemAssigned)
}

func (n *NotificationService) handleSlaWarning(ctx context.Context, event events.Event) error {
	n.logger.Info("SlaWarningRaised",
		zap.String("tenant_id", event.TenantID),
		zap.String("item_id", event.ItemID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSlaBreach(ctx context.Context, event events.Event) error {
	n.logger.Info("SlaBreachRaised",
		zap.String("tenant_id", event.TenantID),
		zap.String("item_id", event.ItemID),
		zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleItemAssigned(ctx context.Context, event events.Event) error {
	n.logger.Info("ItemAssigned",
		zap.String("tenant_id", event.TenantID),
		zap.String("item_id", event.ItemID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("item_id", event.ItemID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("item_id", event.ItemID),
		zap.String("event_type", string(event.Type)))
}
