package match

import (
	"math"

	"github.com/macuoit/articulation-backend/internal/model"
)

// ImputeCredits back-calculates a missing credit-hour value from grade
// points: credits = points / grade value, rounded to one decimal. Courses
// with credits already present, a zero-point grade, or unusable numbers are
// left untouched.
func ImputeCredits(c *model.Course) {
	if !c.Credits.IsEmpty() || c.Points.IsEmpty() || c.Grade == "" {
		return
	}

	gradeValue, ok := GradePoints(c.Grade)
	if !ok || gradeValue == 0 {
		return
	}

	points, ok := c.Points.Float()
	if !ok {
		return
	}

	credits := math.Round(points/gradeValue*10) / 10
	c.Credits = model.FlexFromFloat(credits)
}

// PrepareTerms runs the pre-matching pass over extracted transcript data:
// the institution found on the first term is propagated to terms lacking
// one, and missing credits are imputed for every course. Must run before
// matching so carried-over home credits see final values.
func PrepareTerms(terms []model.TranscriptTerm) {
	if len(terms) == 0 {
		return
	}

	if institution := terms[0].Institution; institution != "" {
		for i := range terms {
			if terms[i].Institution == "" {
				terms[i].Institution = institution
			}
		}
	}

	for i := range terms {
		for j := range terms[i].Courses {
			ImputeCredits(&terms[i].Courses[j])
		}
	}
}
