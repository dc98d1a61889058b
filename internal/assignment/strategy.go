package assignment

import (
	"context"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
)

// Strategy is a pluggable assignee-selection algorithm, selected by type key.
// cfg is the decoded per-type configuration from the matched routing rule and
// may be nil when a strategy is invoked with its defaults (the fallback path).
type Strategy interface {
	Type() domain.StrategyType
	Resolve(ctx context.Context, actx Context, cfg domain.StrategyConfig) (*Result, error)
}
