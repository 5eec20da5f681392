package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"corep-assist/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type AuditRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// AuditSummary is the list-view projection of a stored audit record.
type AuditSummary struct {
	ID                uuid.UUID `json:"id"`
	Scenario          string    `json:"scenario"`
	ThresholdBreached bool      `json:"threshold_breached"`
	GeneratedAt       time.Time `json:"generated_at"`
}

func NewAuditRepository(db *pgxpool.Pool, logger *zap.Logger) *AuditRepository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

func (r *AuditRepository) Create(ctx context.Context, record *models.AuditRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	query := squirrel.Insert("audit_records").
		Columns("id", "scenario", "threshold_breached", "record", "created_at").
		Values(record.ID, record.Scenario, record.Validation.ThresholdBreached, payload, record.GeneratedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert audit record %s: %w", record.ID, err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, limit, offset int) ([]AuditSummary, error) {
	query := squirrel.Select("id", "scenario", "threshold_breached", "created_at").
		From("audit_records").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit list: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	var summaries []AuditSummary
	for rows.Next() {
		var s AuditSummary
		if err := rows.Scan(&s.ID, &s.Scenario, &s.ThresholdBreached, &s.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scan audit summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit rows: %w", err)
	}
	return summaries, nil
}

func (r *AuditRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AuditRecord, error) {
	query := squirrel.Select("record").
		From("audit_records").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit get: %w", err)
	}

	var payload []byte
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&payload); err != nil {
		return nil, fmt.Errorf("get audit record %s: %w", id, err)
	}

	var record models.AuditRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("unmarshal audit record %s: %w", id, err)
	}
	return &record, nil
}
