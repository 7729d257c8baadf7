package match

import "testing"

func TestResolvePartition(t *testing.T) {
	cases := []struct {
		term string
		year string
		want string
	}{
		{"Fall", "2023", "2023-2024"},
		{"Spring", "2024", "2023-2024"},
		{"Summer", "2021", "2020-2021"},
		{"Fall Semester", "2020", "2020-2021"},
		{"Intersession", "2022", "2022-2023"}, // unrecognized → fall rule
		{"Fall", "n/a", "0-1"},
	}

	for _, tc := range cases {
		if got := ResolvePartition(tc.term, tc.year); got != tc.want {
			t.Errorf("ResolvePartition(%q, %q) = %q, want %q", tc.term, tc.year, got, tc.want)
		}
	}
}

func TestOlderThanData(t *testing.T) {
	cases := []struct {
		term string
		year string
		want bool
	}{
		{"Fall", "2019", true},
		{"Fall", "2020", false},
		{"Spring", "2020", true}, // 2019-2020 edition does not exist
		{"Spring", "2021", false},
		{"Summer", "2020", true},
		{"Winter", "2019", true},
		{"Fall", "bad", true}, // unparsable year resolves to zero
	}

	for _, tc := range cases {
		if got := olderThanData(tc.term, tc.year, 2020); got != tc.want {
			t.Errorf("olderThanData(%q, %q) = %v, want %v", tc.term, tc.year, got, tc.want)
		}
	}
}
