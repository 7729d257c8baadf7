package match

import (
	"testing"

	"github.com/macuoit/articulation-backend/internal/model"
)

func TestImputeCredits(t *testing.T) {
	t.Run("from points and grade", func(t *testing.T) {
		c := model.Course{Points: "12", Grade: "A"}
		ImputeCredits(&c)
		if c.Credits != "3" {
			t.Fatalf("credits = %q, want 3", c.Credits)
		}
	})

	t.Run("plus modifier", func(t *testing.T) {
		c := model.Course{Points: "13.2", Grade: "B+"}
		ImputeCredits(&c)
		if c.Credits != "4" {
			t.Fatalf("credits = %q, want 4", c.Credits)
		}
	})

	t.Run("existing credits untouched", func(t *testing.T) {
		c := model.Course{Credits: "3", Points: "16", Grade: "A"}
		ImputeCredits(&c)
		if c.Credits != "3" {
			t.Fatalf("credits = %q, want 3", c.Credits)
		}
	})

	t.Run("zero grade value leaves empty", func(t *testing.T) {
		c := model.Course{Points: "0", Grade: "F"}
		ImputeCredits(&c)
		if !c.Credits.IsEmpty() {
			t.Fatalf("credits = %q, want empty", c.Credits)
		}
	})

	t.Run("non-standard grade leaves empty", func(t *testing.T) {
		c := model.Course{Points: "12", Grade: "P"}
		ImputeCredits(&c)
		if !c.Credits.IsEmpty() {
			t.Fatalf("credits = %q, want empty", c.Credits)
		}
	})

	t.Run("non-numeric points leaves empty", func(t *testing.T) {
		c := model.Course{Points: "n/a", Grade: "A"}
		ImputeCredits(&c)
		if !c.Credits.IsEmpty() {
			t.Fatalf("credits = %q, want empty", c.Credits)
		}
	})
}

func TestPrepareTerms(t *testing.T) {
	terms := []model.TranscriptTerm{
		{Institution: "Langston University", Term: "Fall", Year: "2023", Courses: []model.Course{
			{CourseCode: "CS101", Points: "12", Grade: "A"},
		}},
		{Term: "Spring", Year: "2024", Courses: []model.Course{
			{CourseCode: "MATH202", Credits: "4", Grade: "B+"},
		}},
	}

	PrepareTerms(terms)

	if terms[1].Institution != "Langston University" {
		t.Errorf("institution not propagated, got %q", terms[1].Institution)
	}
	if terms[0].Courses[0].Credits != "3" {
		t.Errorf("credits not imputed, got %q", terms[0].Courses[0].Credits)
	}
	if terms[1].Courses[0].Credits != "4" {
		t.Errorf("existing credits changed, got %q", terms[1].Courses[0].Credits)
	}
}

func TestPrepareTermsEmpty(t *testing.T) {
	PrepareTerms(nil) // must not panic
}
