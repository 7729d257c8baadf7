package match

import (
	"fmt"
	"strconv"
	"strings"
)

// ResolvePartition maps a term name and 4-digit year to the catalog
// partition that governs it. Fall opens an academic year; spring and
// summer close one. Unrecognized terms follow the fall rule. A
// non-numeric year resolves as zero.
func ResolvePartition(termName, year string) string {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		y = 0
	}

	term := strings.ToLower(termName)
	if strings.Contains(term, "spring") || strings.Contains(term, "summer") {
		return fmt.Sprintf("%d-%d", y-1, y)
	}
	return fmt.Sprintf("%d-%d", y, y+1)
}

// olderThanData reports whether a term predates the earliest catalog
// edition. Spring/summer terms of the boundary year already belong to the
// previous edition, so they count as older too.
func olderThanData(termName, year string, earliestYear int) bool {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		y = 0
	}

	term := strings.ToLower(termName)
	if strings.Contains(term, "spring") || strings.Contains(term, "summer") {
		return y <= earliestYear
	}
	return y < earliestYear
}
