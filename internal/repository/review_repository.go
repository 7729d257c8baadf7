package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/macuoit/articulation-backend/internal/model"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// CreateBatch inserts audit rows in one transaction. Used by the
// background worker, which batches queued reviews before flushing.
func (r *ReviewRepository) CreateBatch(ctx context.Context, entries []*model.ReviewEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO transcript_reviews (job_id, file_name, file_path, result_json, comment)
			VALUES ($1, $2, $3, $4, $5)`,
			e.JobID, e.FileName, e.FilePath, e.ResultJSON, e.Comment)
	}

	br := tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert review: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return tx.Commit(ctx)
}

// ListRecent returns the newest audit rows, capped at limit.
func (r *ReviewRepository) ListRecent(ctx context.Context, limit int) ([]model.ReviewEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, job_id, file_name, file_path, result_json, comment, created_at
		FROM transcript_reviews
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ReviewEntry
	for rows.Next() {
		var e model.ReviewEntry
		if err := rows.Scan(&e.ID, &e.JobID, &e.FileName, &e.FilePath, &e.ResultJSON, &e.Comment, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
