package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/macuoit/articulation-backend/internal/model"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ListAll returns every catalog row ordered by id. Insertion order is the
// matching tie-break order, so the ORDER BY is load-bearing.
func (r *CatalogRepository) ListAll(ctx context.Context) ([]model.CatalogRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, course_code, combined, common_code, institution, common_course_title, source_partition
		FROM catalog_courses
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CatalogRow
	for rows.Next() {
		var c model.CatalogRow
		if err := rows.Scan(&c.ID, &c.CourseCode, &c.Combined, &c.CommonCode,
			&c.Institution, &c.CommonCourseTitle, &c.SourcePartition); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) Create(ctx context.Context, c *model.CatalogRow) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO catalog_courses (course_code, combined, common_code, institution, common_course_title, source_partition)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		c.CourseCode, c.Combined, c.CommonCode, c.Institution, c.CommonCourseTitle, c.SourcePartition,
	).Scan(&c.ID)
}

// PartitionCounts returns row counts grouped by partition, ordered by
// partition name.
func (r *CatalogRepository) PartitionCounts(ctx context.Context) ([]model.PartitionInfo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT source_partition, COUNT(*)
		FROM catalog_courses
		GROUP BY source_partition
		ORDER BY source_partition ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PartitionInfo
	for rows.Next() {
		var p model.PartitionInfo
		if err := rows.Scan(&p.Name, &p.RowCount); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
