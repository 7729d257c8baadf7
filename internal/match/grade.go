package match

import "strings"

// gradeTenths maps base letter grades to tenths of a grade point.
// Tenths keep the plus/minus arithmetic exact in float terms.
var gradeTenths = map[byte]int{
	'A': 40,
	'B': 30,
	'C': 20,
	'D': 10,
	'F': 0,
}

// GradePoints converts a letter grade to its numeric value on the 4.0
// scale. The second return is false for grades that carry no points
// (P, W, I, audit marks, empty input) — never an error.
func GradePoints(grade string) (float64, bool) {
	grade = strings.ToUpper(strings.TrimSpace(grade))
	if grade == "" {
		return 0, false
	}

	tenths, ok := gradeTenths[grade[0]]
	if !ok {
		return 0, false
	}

	switch grade[1:] {
	case "+":
		if grade[0] != 'A' { // A+ caps at 4.0
			tenths += 3
		}
	case "-":
		tenths -= 3
	}

	return float64(tenths) / 10, true
}
