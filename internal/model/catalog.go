package model

import (
	"encoding/json"
	"time"
)

// CatalogRow is one course-equivalency-project entry: a course offered by
// some institution in one catalog edition, linked to a cross-institution
// common code. Rows are immutable once loaded; their database order is the
// tie-break order for matching.
type CatalogRow struct {
	ID                int    `json:"id"`
	CourseCode        string `json:"course_code"`
	Combined          string `json:"combined"`
	CommonCode        string `json:"common_code"`
	Institution       string `json:"institution"`
	CommonCourseTitle string `json:"common_course_title"`
	// SourcePartition names the catalog edition the row belongs to,
	// e.g. "2023-2024". Treated as an opaque string by lookups.
	SourcePartition string `json:"source_partition"`
}

// EquivalencyRow is one entry of the institution-pair equivalency table,
// consulted only after the catalog cascade fails.
type EquivalencyRow struct {
	ID                 int    `json:"id"`
	SendCourseCode     string `json:"send_course_code"`
	SendEditionLowYear string `json:"send_edition_low_year"`
	ReceiveCourseCode  string `json:"receive_course_code"`
	ReceiveCourseTitle string `json:"receive_course_title"`
	ReceiveUnits       string `json:"receive_units"`
}

// PartitionInfo summarizes one catalog partition for the admin surface.
type PartitionInfo struct {
	Name     string `json:"name"`
	RowCount int    `json:"row_count"`
}

// CreateCatalogRowRequest is the payload for adding a catalog row.
type CreateCatalogRowRequest struct {
	CourseCode        string `json:"course_code" binding:"max=32"`
	Combined          string `json:"combined" binding:"required,max=200"`
	CommonCode        string `json:"common_code" binding:"max=32"`
	Institution       string `json:"institution" binding:"required,max=100"`
	CommonCourseTitle string `json:"common_course_title" binding:"max=200"`
	SourcePartition   string `json:"source_partition" binding:"required,max=16"`
}

// CreateEquivalencyRequest is the payload for adding an equivalency row.
type CreateEquivalencyRequest struct {
	SendCourseCode     string `json:"send_course_code" binding:"required,max=32"`
	SendEditionLowYear string `json:"send_edition_low_year" binding:"max=8"`
	ReceiveCourseCode  string `json:"receive_course_code" binding:"required,max=32"`
	ReceiveCourseTitle string `json:"receive_course_title" binding:"max=200"`
	ReceiveUnits       string `json:"receive_units" binding:"max=8"`
}

// ReviewEntry is an audit record for one processed transcript: where the
// uploaded file was stored, the enriched output, and the reviewer's comment.
type ReviewEntry struct {
	ID         int             `json:"id"`
	JobID      string          `json:"job_id"`
	FileName   string          `json:"file_name"`
	FilePath   string          `json:"file_path"`
	ResultJSON json.RawMessage `json:"result_json,omitempty"`
	Comment    string          `json:"comment"`
	CreatedAt  time.Time       `json:"created_at"`
}
