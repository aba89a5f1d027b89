package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/itakecare/offerflow/internal/application/port"
	"github.com/itakecare/offerflow/internal/domain/entity"
	"go.uber.org/zap"
)

// AuditRepository implements port.AuditRepository. The transition_records
// table is append-only; this repository exposes no update or delete.
type AuditRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB, logger *zap.Logger) port.AuditRepository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

// Append writes a new transition record
func (r *AuditRepository) Append(ctx context.Context, record *entity.TransitionRecord) error {
	query := `
		INSERT INTO transition_records (
			offer_id, previous_status, new_status, reason, actor_id, timestamp
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query,
		record.OfferID,
		record.PreviousStatus,
		record.NewStatus,
		record.Reason,
		record.ActorID,
		record.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to append transition record", zap.Error(err))
		return fmt.Errorf("failed to append transition record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	record.ID = id
	return nil
}

// ListByOfferID retrieves all transition records for an offer, oldest first
func (r *AuditRepository) ListByOfferID(ctx context.Context, offerID string) ([]*entity.TransitionRecord, error) {
	query := `
		SELECT id, offer_id, previous_status, new_status, reason, actor_id, timestamp
		FROM transition_records
		WHERE offer_id = ?
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, offerID)
	if err != nil {
		r.logger.Error("Failed to list transition records", zap.String("offer_id", offerID), zap.Error(err))
		return nil, fmt.Errorf("failed to list transition records: %w", err)
	}
	defer rows.Close()

	var records []*entity.TransitionRecord
	for rows.Next() {
		var record entity.TransitionRecord
		err := rows.Scan(
			&record.ID,
			&record.OfferID,
			&record.PreviousStatus,
			&record.NewStatus,
			&record.Reason,
			&record.ActorID,
			&record.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transition record: %w", err)
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}

// getExecutor returns appropriate executor based on context
func (r *AuditRepository) getExecutor(ctx context.Context) executor {
	if tx := extractTx(ctx); tx != nil {
		return tx
	}
	return r.db
}

// Verify interface compliance
var _ port.AuditRepository = (*AuditRepository)(nil)
