package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/macuoit/articulation-backend/internal/model"
)

type EquivalencyRepository struct {
	pool *pgxpool.Pool
}

func NewEquivalencyRepository(pool *pgxpool.Pool) *EquivalencyRepository {
	return &EquivalencyRepository{pool: pool}
}

// ListAll returns the full equivalency table ordered by id; table order
// decides which qualifying row wins during matching.
func (r *EquivalencyRepository) ListAll(ctx context.Context) ([]model.EquivalencyRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, send_course_code, send_edition_low_year, receive_course_code, receive_course_title, receive_units
		FROM course_equivalencies
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.EquivalencyRow
	for rows.Next() {
		var e model.EquivalencyRow
		if err := rows.Scan(&e.ID, &e.SendCourseCode, &e.SendEditionLowYear,
			&e.ReceiveCourseCode, &e.ReceiveCourseTitle, &e.ReceiveUnits); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EquivalencyRepository) Create(ctx context.Context, e *model.EquivalencyRow) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO course_equivalencies (send_course_code, send_edition_low_year, receive_course_code, receive_course_title, receive_units)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		e.SendCourseCode, e.SendEditionLowYear, e.ReceiveCourseCode, e.ReceiveCourseTitle, e.ReceiveUnits,
	).Scan(&e.ID)
}
