package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/macuoit/articulation-backend/internal/model"
)

type InstitutionRepository struct {
	pool *pgxpool.Pool
}

func NewInstitutionRepository(pool *pgxpool.Pool) *InstitutionRepository {
	return &InstitutionRepository{pool: pool}
}

func (r *InstitutionRepository) ListAll(ctx context.Context) ([]model.Institution, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, code FROM institutions ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Institution
	for rows.Next() {
		var i model.Institution
		if err := rows.Scan(&i.ID, &i.Name, &i.Code); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *InstitutionRepository) Create(ctx context.Context, i *model.Institution) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO institutions (name, code) VALUES ($1, $2) RETURNING id`,
		i.Name, i.Code).Scan(&i.ID)
}
