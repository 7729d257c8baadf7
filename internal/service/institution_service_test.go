package service

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/macuoit/articulation-backend/internal/model"
)

func newTestInstitutionService(list []model.Institution) *InstitutionService {
	s := NewInstitutionService(nil, zerolog.Nop())
	s.list = list
	return s
}

func TestResolveExactMatchIgnoresCase(t *testing.T) {
	s := newTestInstitutionService([]model.Institution{
		{ID: 1, Name: "Central Valley College", Code: "1042"},
		{ID: 2, Name: "Northern State University", Code: "877"},
	})

	got, err := s.Resolve("  northern state university ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != 2 {
		t.Fatalf("resolved institution %d, want 2", got.ID)
	}
	if got.Similarity != 1.0 {
		t.Fatalf("similarity = %v, want 1.0", got.Similarity)
	}
}

func TestResolveFuzzyMatch(t *testing.T) {
	s := newTestInstitutionService([]model.Institution{
		{ID: 1, Name: "Central Valley College", Code: "1042"},
		{ID: 2, Name: "Northern State University", Code: "877"},
	})

	got, err := s.Resolve("central valey college")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("resolved institution %d, want 1", got.ID)
	}
	if got.Similarity >= 1.0 || got.Similarity < resolveCutoff {
		t.Fatalf("similarity = %v, want in [%v, 1.0)", got.Similarity, resolveCutoff)
	}
}

func TestResolveRejectsDistantNames(t *testing.T) {
	s := newTestInstitutionService([]model.Institution{
		{ID: 1, Name: "Central Valley College", Code: "1042"},
	})

	if _, err := s.Resolve("xq"); err != ErrInstitutionNotFound {
		t.Fatalf("err = %v, want ErrInstitutionNotFound", err)
	}
	// Similarity 0.62, under the 70% floor.
	if _, err := s.Resolve("metropolitan college"); err != ErrInstitutionNotFound {
		t.Fatalf("loose match err = %v, want ErrInstitutionNotFound", err)
	}
	if _, err := s.Resolve("   "); err != ErrInstitutionNotFound {
		t.Fatalf("blank query err = %v, want ErrInstitutionNotFound", err)
	}
}

func TestResolvePadsCodeToSixDigits(t *testing.T) {
	s := newTestInstitutionService([]model.Institution{
		{ID: 1, Name: "Central Valley College", Code: "1042"},
	})

	got, err := s.Resolve("Central Valley College")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Code != "001042" {
		t.Fatalf("code = %q, want 001042", got.Code)
	}
}

func TestSimilaritySymmetricBounds(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"abc", "abc", 1.0},
		{"abc", "xyz", 0.0},
		{"", "abc", 0.0},
	}
	for _, tc := range cases {
		if got := similarity(tc.a, tc.b); got != tc.want {
			t.Errorf("similarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
		if got, rev := similarity(tc.a, tc.b), similarity(tc.b, tc.a); got != rev {
			t.Errorf("similarity not symmetric for %q/%q: %v vs %v", tc.a, tc.b, got, rev)
		}
	}
}
