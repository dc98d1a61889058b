package assignment

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/observability"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/repository"
)

// ResolverDependencies bundles collaborators.
type ResolverDependencies struct {
	CategoryRepo repository.CategoryRepository
	UserRepo     repository.UserRepository
	Metrics      *observability.Metrics
	Logger       *zap.Logger
}

// Resolver picks an assignee for a context via an ordered rule chain: the
// category's direct default assignee, then the category's configured strategy,
// then a default rotation over the standard role pool. Every path can miss;
// a nil result means "leave unassigned".
type Resolver struct {
	categories repository.CategoryRepository
	users      repository.UserRepository
	metrics    *observability.Metrics
	logger     *zap.Logger

	mu         sync.RWMutex
	strategies map[domain.StrategyType]Strategy
}

// NewResolver creates the resolver with an empty strategy registry.
func NewResolver(deps ResolverDependencies) *Resolver {
	return &Resolver{
		categories: deps.CategoryRepo,
		users:      deps.UserRepo,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		strategies: make(map[domain.StrategyType]Strategy),
	}
}

// Register adds a strategy to the registry. Registering a type that already
// exists overwrites the previous binding.
func (r *Resolver) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.strategies[s.Type()]; exists {
		r.logger.Warn("overwriting registered assignment strategy",
			zap.String("strategy_type", string(s.Type())))
	}
	r.strategies[s.Type()] = s
}

// Unregister removes a strategy binding.
func (r *Resolver) Unregister(strategyType domain.StrategyType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.strategies, strategyType)
}

func (r *Resolver) strategy(strategyType domain.StrategyType) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[strategyType]
	return s, ok
}

// Resolve walks the rule chain; the first path producing a candidate wins.
// Failures on category-specific paths are logged and resolution falls through
// to the default rotation rather than aborting.
func (r *Resolver) Resolve(ctx context.Context, actx Context) (*Result, error) {
	if actx.Category != nil {
		if result := r.resolveByCategory(ctx, actx); result != nil {
			return result, nil
		}
	}

	rotation, ok := r.strategy(domain.StrategyRotation)
	if !ok {
		r.logger.Warn("no rotation strategy registered for fallback")
		r.metrics.RecordResolution("none", false)
		return nil, nil
	}
	result, err := rotation.Resolve(ctx, actx, nil)
	if err != nil {
		return nil, err
	}
	if result == nil {
		r.metrics.RecordResolution("none", false)
		return nil, nil
	}
	r.metrics.RecordResolution(string(domain.StrategyRotation), true)
	return result, nil
}

func (r *Resolver) resolveByCategory(ctx context.Context, actx Context) *Result {
	routing, err := r.categories.GetRoutingConfig(ctx, actx.Category.ID)
	if err != nil {
		r.logger.Warn("category routing lookup failed, falling back",
			zap.String("category_id", actx.Category.ID), zap.Error(err))
		return nil
	}
	if routing == nil {
		return nil
	}

	if routing.DefaultAssigneeID != nil {
		if result := r.categoryDefault(ctx, actx, *routing.DefaultAssigneeID); result != nil {
			return result
		}
	}

	if routing.Rule == nil {
		return nil
	}
	strategy, ok := r.strategy(routing.Rule.Type)
	if !ok {
		r.logger.Warn("unknown strategy type in routing rule, falling back",
			zap.String("category_id", actx.Category.ID),
			zap.String("strategy_type", string(routing.Rule.Type)))
		return nil
	}
	result, err := strategy.Resolve(ctx, actx, routing.Rule.Config)
	if err != nil {
		r.logger.Warn("category strategy failed, falling back",
			zap.String("category_id", actx.Category.ID),
			zap.String("strategy_type", string(routing.Rule.Type)),
			zap.Error(err))
		return nil
	}
	if result != nil {
		r.metrics.RecordResolution(string(routing.Rule.Type), true)
	}
	return result
}

func (r *Resolver) categoryDefault(ctx context.Context, actx Context, userID string) *Result {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			r.logger.Warn("category default assignee lookup failed",
				zap.String("user_id", userID), zap.Error(err))
		}
		return nil
	}
	if !user.Active || user.TenantID != actx.TenantID {
		return nil
	}
	r.metrics.RecordResolution("category_default", true)
	return &Result{UserID: user.ID, Reason: "category default assignee"}
}
