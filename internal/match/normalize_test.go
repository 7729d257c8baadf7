package match

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ENGL-101", "engl 101"},
		{"engl 101", "engl 101"},
		{"ENGL101", "engl 101"},
		{"  MATH 2414  ", "math 2414"},
		{"BIO2010 Human Anatomy", "bio 2010 human anatomy"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"ENGL-101", "COMM1313 Intro to Speech", "a1b2c3", "  Mixed-Case 42 "}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestExtractCourseCode(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"subject then number", "COMM 1313 Intro to Speech", "comm 1313"},
		{"glued subject number", "ENGL101 Composition I", "engl 101"},
		{"double space boundary", "HIST 1301  United States History", "hist 1301"},
		{"token scan", "Gen Ed MATH0123", "ed math 0123"},
		{"two word fallback", "Independent Study", "independent study"},
		{"single word", "Orientation", "orientation"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractCourseCode(tc.in); got != tc.want {
				t.Fatalf("ExtractCourseCode(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExtractCourseCodeAgreesWithNormalize(t *testing.T) {
	// A bare code through either path must land on the same key.
	if ExtractCourseCode("ENGL101 English Composition") != Normalize("ENGL 101") {
		t.Fatal("extracted code and normalized code disagree")
	}
}
