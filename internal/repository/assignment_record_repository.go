package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub017/internal/domain"
)

// AssignmentRecordRepository stores assignment audit entries.
type AssignmentRecordRepository interface {
	Create(ctx context.Context, record *domain.AssignmentRecord) error
	FindLast(ctx context.Context, tenantID, entityType string) (*domain.AssignmentRecord, error)
}

type assignmentRecordRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRecordRepository builds repository.
func NewAssignmentRecordRepository(pool *pgxpool.Pool) AssignmentRecordRepository {
	return &assignmentRecordRepository{pool: pool}
}

func (r *assignmentRecordRepository) Create(ctx context.Context, record *domain.AssignmentRecord) error {
	const query = `
        INSERT INTO assignment_records (id, tenant_id, entity_type, entity_id, user_id, strategy, reason)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		record.ID,
		record.TenantID,
		record.EntityType,
		record.EntityID,
		record.UserID,
		record.Strategy,
		record.Reason,
	).Scan(&record.CreatedAt)
}

// FindLast returns the most recent assignment for a (tenant, entity type)
// pair, or nil when no assignment has been recorded yet.
func (r *assignmentRecordRepository) FindLast(ctx context.Context, tenantID, entityType string) (*domain.AssignmentRecord, error) {
	const query = `
        SELECT id, tenant_id, entity_type, entity_id, user_id, strategy, reason, created_at
        FROM assignment_records
        WHERE tenant_id=$1 AND entity_type=$2
        ORDER BY created_at DESC
        LIMIT 1`
	var record domain.AssignmentRecord
	if err := r.pool.QueryRow(ctx, query, tenantID, entityType).Scan(
		&record.ID,
		&record.TenantID,
		&record.EntityType,
		&record.EntityID,
		&record.UserID,
		&record.Strategy,
		&record.Reason,
		&record.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
