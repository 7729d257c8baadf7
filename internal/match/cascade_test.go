package match

import (
	"testing"

	"github.com/macuoit/articulation-backend/internal/model"
)

func testCatalog() []model.CatalogRow {
	return []model.CatalogRow{
		{ID: 1, CourseCode: "ENGL 1113", Combined: "ENGL 101 English Composition", CommonCode: "COM-ENG101", Institution: "OSU", SourcePartition: "2023-2024"},
		{ID: 2, CourseCode: "ENGL 101", Combined: "ENGL 101 English Composition I", CommonCode: "COM-ENG101", Institution: "MACU", CommonCourseTitle: "English Composition I", SourcePartition: "2023-2024"},
		{ID: 3, CourseCode: "HIST 1301", Combined: "HIST 1301 United States History", CommonCode: "COM-HIS101", Institution: "OSU", SourcePartition: "2022-2023"},
		{ID: 4, CourseCode: "HIST 110", Combined: "HIST 110 American History I", CommonCode: "COM-HIS101", Institution: "MACU", CommonCourseTitle: "American History I", SourcePartition: "2022-2023"},
		{ID: 5, CourseCode: "PHIL 2001", Combined: "PHIL 2001 Logic", CommonCode: "COM-PHI200", Institution: "OSU", SourcePartition: "2021-2022"},
	}
}

func term(name, year string, courses ...model.Course) model.TranscriptTerm {
	return model.TranscriptTerm{Term: name, Year: year, Courses: courses}
}

func TestCascadeCourseCodeExact(t *testing.T) {
	idx := BuildIndex(testCatalog(), "MACU")
	m := NewMatcher(idx, nil, 2020)

	terms := []model.TranscriptTerm{term("Fall", "2023", model.Course{
		CourseCode: "ENGL101",
		Division:   model.DivisionUndergrad,
		Title:      "English Composition",
		Credits:    "3",
		Grade:      "A",
	})}
	m.EnrichTerms(terms)

	c := terms[0].Courses[0]
	if !c.CEPMatch {
		t.Fatal("expected catalog match")
	}
	if c.MatchedOn != model.MatchedCourseCode {
		t.Errorf("matched_on = %q, want course_code_exact", c.MatchedOn)
	}
	if c.SourceSheet != "2023-2024" {
		t.Errorf("source_sheet = %q, want 2023-2024", c.SourceSheet)
	}
	if c.HomeCourseCode != "ENGL101" {
		t.Errorf("home course code = %q, want ENGL101", c.HomeCourseCode)
	}
	if c.HomeCourseTitle != "English Composition I" {
		t.Errorf("home course title = %q", c.HomeCourseTitle)
	}
	if c.HomeCredits != "3" {
		t.Errorf("home credits = %q, want carried-over 3", c.HomeCredits)
	}
	if c.DataFrom != model.DataFromCatalog {
		t.Errorf("data_from = %q, want CEP", c.DataFrom)
	}
	if c.HomeDivision != "C" {
		t.Errorf("home division = %q, want C", c.HomeDivision)
	}
}

func TestCascadeCombinedTextExact(t *testing.T) {
	// "ENGL 101H" normalizes to "engl 101h", which is never a code key:
	// both rows extract to "engl 101" and the plain composition row claims
	// it first. Only the full code+title text reaches the honors row.
	rows := append(testCatalog(),
		model.CatalogRow{ID: 6, Combined: "ENGL 101H Honors English Composition", CommonCode: "COM-ENG101", Institution: "OSU", SourcePartition: "2023-2024"})
	idx := BuildIndex(rows, "MACU")
	m := NewMatcher(idx, nil, 2020)

	terms := []model.TranscriptTerm{term("Fall", "2023",
		model.Course{CourseCode: "ENGL 101H", Title: "Honors English Composition", Division: model.DivisionUndergrad})}
	m.EnrichTerms(terms)

	c := terms[0].Courses[0]
	if !c.CEPMatch {
		t.Fatal("expected catalog match")
	}
	if c.MatchedOn != model.MatchedCombinedText {
		t.Fatalf("matched_on = %q, want combined_text_exact", c.MatchedOn)
	}
	if c.SourceSheet != "2023-2024" {
		t.Errorf("source_sheet = %q, want 2023-2024", c.SourceSheet)
	}
	if c.HomeCourseCode != "ENGL101" {
		t.Errorf("home course code = %q, want ENGL101", c.HomeCourseCode)
	}
}

func TestCascadeCombinedTextExactDifferentYear(t *testing.T) {
	rows := append(testCatalog(),
		model.CatalogRow{ID: 6, Combined: "ENGL 101H Honors English Composition", CommonCode: "COM-ENG101", Institution: "OSU", SourcePartition: "2022-2023"})
	idx := BuildIndex(rows, "MACU")
	m := NewMatcher(idx, nil, 2020)

	// Fall 2023 resolves to 2023-2024, where neither the code nor the
	// combined text is present; the closest-partition pass finds the
	// combined text in 2022-2023.
	terms := []model.TranscriptTerm{term("Fall", "2023",
		model.Course{CourseCode: "ENGL 101H", Title: "Honors English Composition"})}
	m.EnrichTerms(terms)

	c := terms[0].Courses[0]
	if !c.CEPMatch || c.SourceSheet != "2022-2023" {
		t.Fatalf("expected 2022-2023 match, got sheet %q matched_on %q", c.SourceSheet, c.MatchedOn)
	}
	if c.MatchedOn != model.MatchedCombinedOtherYear {
		t.Errorf("matched_on = %q, want combined_text_exact_different_year", c.MatchedOn)
	}
}

func TestCascadeCourseCodeColumnIsNotAKey(t *testing.T) {
	// Row 1 carries CourseCode "ENGL 1113" but its combined text extracts
	// to "engl 101"; a transcript course "ENGL1113" must not reach it
	// through the CourseCode column.
	idx := BuildIndex(testCatalog(), "MACU")
	m := NewMatcher(idx, nil, 2020)

	terms := []model.TranscriptTerm{term("Fall", "2023",
		model.Course{CourseCode: "ENGL1113", Title: "English Composition"})}
	m.EnrichTerms(terms)

	c := terms[0].Courses[0]
	if c.CEPMatch {
		t.Fatalf("unexpected catalog match via CourseCode column: matched_on = %q", c.MatchedOn)
	}
	if c.DataFrom != model.DataFromNone {
		t.Errorf("data_from = %q, want the empty marker", c.DataFrom)
	}
	if c.NoMatchReason == "" {
		t.Error("expected a no-match reason")
	}
}

func TestCascadeCrossPartitionClosestFirst(t *testing.T) {
	rows := []model.CatalogRow{
		{ID: 1, Combined: "MATH 101 College Algebra", CommonCode: "COM-MAT101", Institution: "OSU", SourcePartition: "2020-2021"},
		{ID: 2, Combined: "MATH 101 College Algebra", CommonCode: "COM-MAT101-NEW", Institution: "OSU", SourcePartition: "2022-2023"},
		{ID: 3, CourseCode: "MATH 1513", Combined: "MATH 1513 College Algebra", CommonCode: "COM-MAT101", Institution: "MACU", CommonCourseTitle: "College Algebra", SourcePartition: "2020-2021"},
		{ID: 4, CourseCode: "MATH 1513", Combined: "MATH 1513 College Algebra", CommonCode: "COM-MAT101-NEW", Institution: "MACU", CommonCourseTitle: "College Algebra", SourcePartition: "2022-2023"},
	}
	idx := BuildIndex(rows, "MACU")
	m := NewMatcher(idx, nil, 2020)

	// Resolved partition 2023-2024 has no rows; 2022-2023 is numerically
	// closer than 2020-2021 and must win.
	terms := []model.TranscriptTerm{term("Fall", "2023", model.Course{CourseCode: "MATH101", Title: "College Algebra"})}
	m.EnrichTerms(terms)

	c := terms[0].Courses[0]
	if c.SourceSheet != "2022-2023" {
		t.Fatalf("source_sheet = %q, want closest partition 2022-2023", c.SourceSheet)
	}
	if c.MatchedOn != model.MatchedCourseCodeOtherYear {
		t.Errorf("matched_on = %q, want course_code_exact_different_year", c.MatchedOn)
	}
	if c.CommonCode != Normalize("COM-MAT101-NEW") {
		t.Errorf("common_code = %q", c.CommonCode)
	}
}

func TestCascadeDeterministicFirstRowWins(t *testing.T) {
	rows := []model.CatalogRow{
		{ID: 1, Combined: "BIOL 1114 General Biology", CommonCode: "COM-BIO-A", Institution: "OSU", SourcePartition: "2023-2024"},
		{ID: 2, Combined: "BIOL 1114 General Biology", CommonCode: "COM-BIO-B", Institution: "OSU", SourcePartition: "2023-2024"},
		{ID: 3, CourseCode: "BIO 115", Combined: "BIO 115 Biology", CommonCode: "COM-BIO-A", Institution: "MACU", CommonCourseTitle: "Biology", SourcePartition: "2023-2024"},
	}

	for run := 0; run < 3; run++ {
		idx := BuildIndex(rows, "MACU")
		m := NewMatcher(idx, nil, 2020)
		terms := []model.TranscriptTerm{term("Fall", "2023", model.Course{CourseCode: "BIOL1114", Title: "General Biology"})}
		m.EnrichTerms(terms)

		c := terms[0].Courses[0]
		if c.CommonCode != Normalize("COM-BIO-A") {
			t.Fatalf("run %d: common_code = %q, want first-row COM-BIO-A", run, c.CommonCode)
		}
		if c.SourceSheet != "2023-2024" || c.MatchedOn != model.MatchedCourseCode {
			t.Fatalf("run %d: unstable match %q/%q", run, c.SourceSheet, c.MatchedOn)
		}
	}
}

func TestCascadeCommonCodeWithoutHomeRow(t *testing.T) {
	rows := []model.CatalogRow{
		{ID: 1, Combined: "ART 1001 Art Appreciation", CommonCode: "COM-ART100", Institution: "OSU", SourcePartition: "2023-2024"},
	}
	idx := BuildIndex(rows, "MACU")
	m := NewMatcher(idx, nil, 2020)

	terms := []model.TranscriptTerm{term("Fall", "2023", model.Course{CourseCode: "ART1001", Title: "Art Appreciation"})}
	m.EnrichTerms(terms)

	c := terms[0].Courses[0]
	if !c.CEPMatch {
		t.Fatal("expected catalog match to be recorded")
	}
	if c.DataFrom != model.DataFromNone {
		t.Errorf("data_from = %q, want empty-marker", c.DataFrom)
	}
	if c.NoMatchReason == "" {
		t.Error("expected a reason noting the home-course gap")
	}
	if c.HomeCourseCode != "" {
		t.Errorf("home course code = %q, want empty", c.HomeCourseCode)
	}
}

func TestCascadeOldTermShortCircuit(t *testing.T) {
	idx := BuildIndex(testCatalog(), "MACU")
	equiv := []model.EquivalencyRow{
		{ID: 1, SendCourseCode: "ENGL 101", SendEditionLowYear: "2015", ReceiveCourseCode: "ENGL 1113", ReceiveCourseTitle: "Composition I", ReceiveUnits: "3"},
	}
	m := NewMatcher(idx, equiv, 2020)

	t.Run("equivalency rescue", func(t *testing.T) {
		terms := []model.TranscriptTerm{term("Fall", "2018",
			model.Course{CourseCode: "ENGL101", Title: "English Composition", Division: model.DivisionUndergrad})}
		stats := m.EnrichTerms(terms)

		c := terms[0].Courses[0]
		if !c.OlderThanData {
			t.Fatal("expected older_than_data")
		}
		if c.CEPMatch {
			t.Fatal("old term must never match the catalog")
		}
		if c.DataFrom != model.DataFromEquivalency || c.MatchedOn != model.MatchedEquivalency {
			t.Fatalf("data_from=%q matched_on=%q", c.DataFrom, c.MatchedOn)
		}
		if c.HomeCourseCode != "ENGL1113" || c.HomeCredits != "3" {
			t.Errorf("receive fields not applied: %q %q", c.HomeCourseCode, c.HomeCredits)
		}
		if stats.OlderCourses != 1 {
			t.Errorf("older_courses = %d, want 1", stats.OlderCourses)
		}
	})

	t.Run("no rescue", func(t *testing.T) {
		terms := []model.TranscriptTerm{term("Spring", "2019", model.Course{CourseCode: "CHEM101", Title: "Chemistry"})}
		m.EnrichTerms(terms)

		c := terms[0].Courses[0]
		if c.DataFrom != model.DataFromNone {
			t.Fatalf("data_from = %q, want empty-marker", c.DataFrom)
		}
		if c.NoMatchReason == "" {
			t.Fatal("expected old-term no_match_reason")
		}
		if c.MatchedOn != "" {
			t.Errorf("matched_on = %q, want unset", c.MatchedOn)
		}
	})
}

func TestCascadeEquivalencyLowYearFilter(t *testing.T) {
	idx := BuildIndex(nil, "MACU")
	equiv := []model.EquivalencyRow{
		{ID: 1, SendCourseCode: "PSY 1113", SendEditionLowYear: "2024", ReceiveCourseCode: "PSY 110", ReceiveCourseTitle: "Too New", ReceiveUnits: "3"},
		{ID: 2, SendCourseCode: "PSY 1113", SendEditionLowYear: "2019", ReceiveCourseCode: "PSY 111", ReceiveCourseTitle: "Intro to Psychology", ReceiveUnits: "3"},
		{ID: 3, SendCourseCode: "SOC 1113", SendEditionLowYear: "not-a-year", ReceiveCourseCode: "SOC 110", ReceiveCourseTitle: "Intro to Sociology", ReceiveUnits: "3"},
	}
	m := NewMatcher(idx, equiv, 2020)

	t.Run("edition newer than term skipped", func(t *testing.T) {
		terms := []model.TranscriptTerm{term("Fall", "2022", model.Course{CourseCode: "PSY1113"})}
		m.EnrichTerms(terms)
		c := terms[0].Courses[0]
		if c.HomeCourseCode != "PSY111" {
			t.Fatalf("home course code = %q, want PSY111", c.HomeCourseCode)
		}
	})

	t.Run("unparsable low year kept", func(t *testing.T) {
		terms := []model.TranscriptTerm{term("Fall", "2022", model.Course{CourseCode: "SOC1113"})}
		m.EnrichTerms(terms)
		c := terms[0].Courses[0]
		if c.HomeCourseCode != "SOC110" {
			t.Fatalf("home course code = %q, want SOC110", c.HomeCourseCode)
		}
	})
}

func TestCascadeStatisticsInvariant(t *testing.T) {
	idx := BuildIndex(testCatalog(), "MACU")
	equiv := []model.EquivalencyRow{
		{ID: 1, SendCourseCode: "PSY 1113", SendEditionLowYear: "2019", ReceiveCourseCode: "PSY 111", ReceiveCourseTitle: "Intro to Psychology", ReceiveUnits: "3"},
	}
	m := NewMatcher(idx, equiv, 2020)

	terms := []model.TranscriptTerm{
		term("Fall", "2023",
			model.Course{CourseCode: "ENGL101", Title: "English Composition", Division: model.DivisionUndergrad},
			model.Course{CourseCode: "PSY1113", Title: "General Psychology"},
			model.Course{CourseCode: "XYZ999", Title: "Unknown Course"},
		),
		term("Spring", "2019", model.Course{CourseCode: "CHEM101", Title: "Chemistry"}),
	}
	stats := m.EnrichTerms(terms)

	noMatch := 0
	for _, tm := range terms {
		for _, c := range tm.Courses {
			if c.DataFrom == "" {
				t.Fatalf("course %s finished without data_from", c.CourseCode)
			}
			if c.DataFrom == model.DataFromNone {
				if c.NoMatchReason == "" {
					t.Fatalf("course %s has no reason for its no-match", c.CourseCode)
				}
				noMatch++
			}
		}
	}

	if got := stats.HomeMatches + stats.EquivalencyMatches + noMatch; got != stats.TotalCourses {
		t.Fatalf("sum invariant broken: %d matched+unmatched vs %d total", got, stats.TotalCourses)
	}
	if terms[0].Statistics == nil {
		t.Fatal("statistics not attached to first term")
	}
	if terms[1].Statistics != nil {
		t.Fatal("statistics attached to a later term")
	}
}

func TestCascadeZeroCourses(t *testing.T) {
	idx := BuildIndex(testCatalog(), "MACU")
	m := NewMatcher(idx, nil, 2020)

	stats := m.EnrichTerms(nil)
	if stats.TotalCourses != 0 {
		t.Fatalf("total = %d, want 0", stats.TotalCourses)
	}
	for partition, n := range stats.PartitionMatches {
		if n != 0 {
			t.Errorf("partition %s count = %d, want 0", partition, n)
		}
	}
	if len(stats.PartitionMatches) != 3 {
		t.Errorf("expected all 3 known partitions initialized, got %d", len(stats.PartitionMatches))
	}
}

func TestCascadeEndToEndScenario(t *testing.T) {
	// The documented end-to-end example: imputation then matching.
	rows := []model.CatalogRow{
		{ID: 1, CourseCode: "ENGL 101", Combined: "ENGL 101 English Composition", CommonCode: "COM-ENG101", Institution: "MACU", CommonCourseTitle: "English Composition I", SourcePartition: "2023-2024"},
	}
	idx := BuildIndex(rows, "MACU")
	m := NewMatcher(idx, nil, 2020)

	terms := []model.TranscriptTerm{term("Fall", "2023", model.Course{
		CourseCode: "ENGL101",
		Division:   model.DivisionUndergrad,
		Title:      "English Composition",
		Points:     "12",
		Grade:      "A",
	})}

	PrepareTerms(terms)
	if terms[0].Courses[0].Credits != "3" {
		t.Fatalf("imputed credits = %q, want 3", terms[0].Courses[0].Credits)
	}

	m.EnrichTerms(terms)
	c := terms[0].Courses[0]
	switch {
	case !c.CEPMatch:
		t.Error("cep_match false")
	case c.MatchedOn != model.MatchedCourseCode:
		t.Errorf("matched_on = %q", c.MatchedOn)
	case c.SourceSheet != "2023-2024":
		t.Errorf("source_sheet = %q", c.SourceSheet)
	case c.HomeCourseCode != "ENGL101":
		t.Errorf("macu_course_code = %q", c.HomeCourseCode)
	case c.HomeCourseTitle != "English Composition I":
		t.Errorf("macu_course_title = %q", c.HomeCourseTitle)
	case c.HomeCredits != "3":
		t.Errorf("macu_credits = %q", c.HomeCredits)
	case c.DataFrom != model.DataFromCatalog:
		t.Errorf("data_from = %q", c.DataFrom)
	case c.HomeDivision != "C":
		t.Errorf("macu_division = %q", c.HomeDivision)
	}
}
