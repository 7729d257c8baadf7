package model

// Division classifies a course level as reported on the transcript.
type Division string

const (
	DivisionUndergrad Division = "UNDG"
	DivisionGraduate  Division = "GRAD"
)

// MatchedOn identifies the strategy that produced a catalog match.
type MatchedOn string

const (
	MatchedCourseCode          MatchedOn = "course_code_exact"
	MatchedCombinedText        MatchedOn = "combined_text_exact"
	MatchedCourseCodeOtherYear MatchedOn = "course_code_exact_different_year"
	MatchedCombinedOtherYear   MatchedOn = "combined_text_exact_different_year"
	MatchedEquivalency         MatchedOn = "ceqmacu_course_code"
)

// Provenance values for Course.DataFrom. DataFromNone is the single-space
// sentinel that marks a course which exhausted every source without a
// usable home-institution match.
const (
	DataFromCatalog     = "CEP"
	DataFromEquivalency = "CEQMACU"
	DataFromNone        = " "
)

// Course is one transcript line plus the enrichment fields the matching
// pass fills in. Extraction fields tolerate empty strings throughout.
type Course struct {
	CourseCode string     `json:"course_code"`
	Division   Division   `json:"division"`
	Title      string     `json:"title"`
	ShortTitle string     `json:"short_title"`
	Credits    FlexNumber `json:"credits"`
	Grade      string     `json:"grade"`
	Points     FlexNumber `json:"points"`

	// Enrichment output.
	CEPMatch         bool       `json:"cep_match"`
	EquivalencyMatch bool       `json:"ceqmacu_match"`
	CombinedText     string     `json:"CombineTitleCode,omitempty"`
	AcademicYear     string     `json:"term_academic_year,omitempty"`
	CommonCode       string     `json:"common_code,omitempty"`
	SourceSheet      string     `json:"source_sheet,omitempty"`
	MatchedOn        MatchedOn  `json:"matched_on,omitempty"`
	HomeCourseCode   string     `json:"macu_course_code,omitempty"`
	HomeCourseTitle  string     `json:"macu_course_title,omitempty"`
	HomeCredits      FlexNumber `json:"macu_credits,omitempty"`
	HomeDivision     string     `json:"macu_division"`
	DataFrom         string     `json:"data_from"`
	OlderThanData    bool       `json:"older_than_data"`
	NoMatchReason    string     `json:"no_match_reason,omitempty"`
}

// TranscriptTerm is one academic term extracted from a transcript.
// Statistics ride on the first term of a processed set, matching the
// shape the downstream export tooling already consumes.
type TranscriptTerm struct {
	Institution string           `json:"institution,omitempty"`
	Term        string           `json:"term"`
	Year        string           `json:"year"`
	Courses     []Course         `json:"courses"`
	Statistics  *MatchStatistics `json:"match_statistics,omitempty"`
}

// MatchStatistics tallies one enrichment run for observability.
type MatchStatistics struct {
	TotalCourses       int            `json:"total_courses"`
	CatalogMatches     int            `json:"cep_matches"`
	HomeMatches        int            `json:"macu_matches"`
	EquivalencyMatches int            `json:"ceqmacu_matches"`
	OlderCourses       int            `json:"older_courses"`
	PartitionMatches   map[string]int `json:"sheet_matches"`
}
