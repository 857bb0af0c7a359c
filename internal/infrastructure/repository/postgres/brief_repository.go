package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/brieflab/briefsight/internal/core/domain"
)

type BriefRepository struct {
	db *sql.DB
}

func NewBriefRepository(db *sql.DB) *BriefRepository {
	return &BriefRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *BriefRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083001)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS briefs (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	status TEXT NOT NULL,
	error_message TEXT,
	insights JSONB,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_briefs_status ON briefs(status);
CREATE INDEX IF NOT EXISTS idx_briefs_created_at ON briefs(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *BriefRepository) Create(ctx context.Context, brief *domain.Brief) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO briefs (
	id, filename, mime_type, storage_path, status, error_message, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`,
		brief.ID, brief.Filename, brief.MimeType, brief.StoragePath,
		string(brief.Status), brief.Error, brief.CreatedAt, brief.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert brief: %w", err)
	}
	return nil
}

func (r *BriefRepository) GetByID(ctx context.Context, id string) (*domain.Brief, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, mime_type, storage_path, status, error_message, insights, created_at, updated_at
FROM briefs
WHERE id = $1
`, id)

	var brief domain.Brief
	var status string
	var errMessage sql.NullString
	var insightsRaw []byte

	err := row.Scan(
		&brief.ID, &brief.Filename, &brief.MimeType, &brief.StoragePath,
		&status, &errMessage, &insightsRaw, &brief.CreatedAt, &brief.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrBriefNotFound, "get brief", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan brief: %w", err)
	}

	brief.Status = domain.BriefStatus(status)
	brief.Error = errMessage.String
	if len(insightsRaw) > 0 {
		var insights domain.Insights
		if err := json.Unmarshal(insightsRaw, &insights); err != nil {
			return nil, fmt.Errorf("unmarshal insights: %w", err)
		}
		brief.Insights = &insights
	}
	return &brief, nil
}

func (r *BriefRepository) UpdateStatus(ctx context.Context, id string, status domain.BriefStatus, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE briefs
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update brief status: %w", err)
	}
	return requireRow(res, id)
}

func (r *BriefRepository) SaveInsights(ctx context.Context, id string, insights domain.Insights) error {
	insightsJSON, err := json.Marshal(insights)
	if err != nil {
		return fmt.Errorf("marshal insights: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
UPDATE briefs
SET insights = $2, updated_at = $3
WHERE id = $1
`, id, insightsJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save insights: %w", err)
	}
	return requireRow(res, id)
}

func requireRow(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrBriefNotFound, "update brief", fmt.Errorf("id %s", id))
	}
	return nil
}
