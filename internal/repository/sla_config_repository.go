package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
)

// SlaConfigRepository resolves per-work-type deadline thresholds. Lookups are
// served from a redis read-through cache because every sweep asks for the same
// handful of work types; missing rows fall back to platform defaults.
type SlaConfigRepository interface {
	GetByWorkType(ctx context.Context, workType string) (domain.SlaConfig, error)
}

type slaConfigRepository struct {
	pool     *pgxpool.Pool
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSlaConfigRepository instantiates the repository. The cache client may be
// nil, in which case every lookup hits postgres.
func NewSlaConfigRepository(pool *pgxpool.Pool, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) SlaConfigRepository {
	return &slaConfigRepository{pool: pool, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func slaConfigCacheKey(workType string) string {
	return "sla:config:" + workType
}

func (r *slaConfigRepository) GetByWorkType(ctx context.Context, workType string) (domain.SlaConfig, error) {
	if cfg, ok := r.fromCache(ctx, workType); ok {
		return cfg, nil
	}

	const query = `
        SELECT work_type, total_days, warning_threshold_pct, critical_threshold_hours
        FROM sla_configs WHERE work_type=$1`
	var cfg domain.SlaConfig
	err := r.pool.QueryRow(ctx, query, workType).Scan(
		&cfg.WorkType,
		&cfg.TotalDays,
		&cfg.WarningThresholdPct,
		&cfg.CriticalThresholdHours,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			cfg = domain.DefaultSlaConfig(workType)
		} else {
			return domain.SlaConfig{}, err
		}
	}

	r.toCache(ctx, workType, cfg)
	return cfg, nil
}

func (r *slaConfigRepository) fromCache(ctx context.Context, workType string) (domain.SlaConfig, bool) {
	if r.cache == nil {
		return domain.SlaConfig{}, false
	}
	raw, err := r.cache.Get(ctx, slaConfigCacheKey(workType)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Debug("sla config cache read failed", zap.Error(err))
		}
		return domain.SlaConfig{}, false
	}
	var cfg domain.SlaConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return domain.SlaConfig{}, false
	}
	return cfg, true
}

func (r *slaConfigRepository) toCache(ctx context.Context, workType string, cfg domain.SlaConfig) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, slaConfigCacheKey(workType), raw, r.cacheTTL).Err(); err != nil {
		r.logger.Debug("sla config cache write failed", zap.Error(err))
	}
}
