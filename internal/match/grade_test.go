package match

import "testing"

func TestGradePoints(t *testing.T) {
	cases := []struct {
		grade string
		want  float64
		ok    bool
	}{
		{"A", 4.0, true},
		{"A+", 4.0, true}, // A+ does not exceed 4.0
		{"A-", 3.7, true},
		{"B+", 3.3, true},
		{"B", 3.0, true},
		{"b-", 2.7, true},
		{"C", 2.0, true},
		{"D-", 0.7, true},
		{"F", 0.0, true},
		{" a ", 4.0, true},
		{"P", 0, false},
		{"W", 0, false},
		{"CR", 2.0, true}, // unknown suffix ignored
		{"", 0, false},
		{"?", 0, false},
	}

	for _, tc := range cases {
		got, ok := GradePoints(tc.grade)
		if ok != tc.ok {
			t.Errorf("GradePoints(%q) ok = %v, want %v", tc.grade, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("GradePoints(%q) = %v, want %v", tc.grade, got, tc.want)
		}
	}
}
