package extractor

import "testing"

func TestParseFencedTerms(t *testing.T) {
	reply := "Here is the extracted data:\n```json\n[\n  {\"institution\": \"Langston University\", \"term\": \"Fall\", \"year\": \"2023\", \"courses\": [\n    {\"course_code\": \"CS101\", \"division\": \"UNDG\", \"title\": \"Intro\", \"short_title\": \"Intro\", \"credits\": 3, \"grade\": \"A\", \"points\": 12}\n  ]}\n]\n```\nLet me know if you need anything else."

	terms, err := ParseFencedTerms(reply)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(terms) != 1 {
		t.Fatalf("terms = %d, want 1", len(terms))
	}
	if terms[0].Institution != "Langston University" || terms[0].Term != "Fall" {
		t.Errorf("term header wrong: %+v", terms[0])
	}

	c := terms[0].Courses[0]
	if c.CourseCode != "CS101" {
		t.Errorf("course_code = %q", c.CourseCode)
	}
	if c.Credits != "3" || c.Points != "12" {
		t.Errorf("numeric fields: credits=%q points=%q", c.Credits, c.Points)
	}
}

func TestParseFencedTermsBareArray(t *testing.T) {
	terms, err := ParseFencedTerms(`[{"term": "Spring", "year": "2024", "courses": []}]`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(terms) != 1 || terms[0].Term != "Spring" {
		t.Fatalf("unexpected terms: %+v", terms)
	}
}

func TestParseFencedTermsStringNumerics(t *testing.T) {
	terms, err := ParseFencedTerms(`[{"term": "Fall", "year": "2022", "courses": [{"course_code": "X", "credits": "", "points": "9.9", "grade": "B"}]}]`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	c := terms[0].Courses[0]
	if !c.Credits.IsEmpty() {
		t.Errorf("credits should be empty, got %q", c.Credits)
	}
	if v, ok := c.Points.Float(); !ok || v != 9.9 {
		t.Errorf("points = %q", c.Points)
	}
}

func TestParseFencedTermsGarbage(t *testing.T) {
	if _, err := ParseFencedTerms("I could not read this document."); err == nil {
		t.Fatal("expected error for non-JSON reply")
	}
}
