package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
)

// CategoryRepository reads routing configuration from category records. The
// category lifecycle is owned by the administration module; only the routing
// slice is surfaced here.
type CategoryRepository interface {
	GetRoutingConfig(ctx context.Context, categoryID string) (*domain.CategoryRouting, error)
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository instantiates the repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

// GetRoutingConfig loads a category's default assignee and routing rule.
// Returns nil when the category does not exist.
func (r *categoryRepository) GetRoutingConfig(ctx context.Context, categoryID string) (*domain.CategoryRouting, error) {
	const query = `
        SELECT id, default_assignee_id, routing_rule
        FROM categories WHERE id=$1`
	var (
		routing domain.CategoryRouting
		rawRule []byte
	)
	if err := r.pool.QueryRow(ctx, query, categoryID).Scan(
		&routing.CategoryID,
		&routing.DefaultAssigneeID,
		&rawRule,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if len(rawRule) > 0 {
		rule, err := decodeRoutingRule(rawRule)
		if err != nil {
			return nil, fmt.Errorf("category %s routing rule: %w", categoryID, err)
		}
		routing.Rule = rule
	}
	return &routing, nil
}

// routingRuleEnvelope is the stored JSON shape: a type tag plus a config blob
// whose schema depends on the tag.
type routingRuleEnvelope struct {
	Type   domain.StrategyType `json:"type"`
	Config json.RawMessage     `json:"config"`
}

func decodeRoutingRule(raw []byte) (*domain.RoutingRule, error) {
	var envelope routingRuleEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if envelope.Type == "" {
		return nil, errors.New("routing rule missing type")
	}

	rule := &domain.RoutingRule{Type: envelope.Type}
	switch envelope.Type {
	case domain.StrategyRotation:
		var cfg domain.RotationConfig
		if err := unmarshalConfig(envelope.Config, &cfg); err != nil {
			return nil, err
		}
		rule.Config = cfg
	case domain.StrategyLoadAware:
		var cfg domain.LoadAwareConfig
		if err := unmarshalConfig(envelope.Config, &cfg); err != nil {
			return nil, err
		}
		if cfg.MaxLoad != nil && *cfg.MaxLoad < 0 {
			return nil, errors.New("max_load must not be negative")
		}
		rule.Config = cfg
	case domain.StrategyLocation:
		var cfg domain.LocationConfig
		if err := unmarshalConfig(envelope.Config, &cfg); err != nil {
			return nil, err
		}
		if len(cfg.Mapping) == 0 && cfg.FallbackUserID == nil {
			return nil, errors.New("location rule needs a mapping or a fallback user")
		}
		rule.Config = cfg
	default:
		// Unknown types are kept; the resolver treats a missing registry
		// entry as a resolution miss rather than an error.
		rule.Config = nil
	}
	return rule, nil
}

func unmarshalConfig(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}
