package match

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/macuoit/articulation-backend/internal/model"
)

// Matcher runs the ordered matching cascade for one enrichment run. The
// index and equivalency table are read-only snapshots; a Matcher may be
// shared by concurrent course lookups but is built fresh per run.
type Matcher struct {
	idx          *Index
	equiv        []model.EquivalencyRow
	equivKeys    []string // normalized send codes, parallel to equiv
	earliestYear int
}

// NewMatcher prepares a cascade over the given index and optional
// equivalency table. earliestYear is the opening year of the oldest
// catalog edition available.
func NewMatcher(idx *Index, equiv []model.EquivalencyRow, earliestYear int) *Matcher {
	keys := make([]string, len(equiv))
	for i, row := range equiv {
		keys[i] = Normalize(row.SendCourseCode)
	}
	return &Matcher{
		idx:          idx,
		equiv:        equiv,
		equivKeys:    keys,
		earliestYear: earliestYear,
	}
}

// EnrichTerms matches every course in place and attaches run statistics to
// the first term. Data-quality problems never abort the run; they surface
// as no-match outcomes with a reason.
func (m *Matcher) EnrichTerms(terms []model.TranscriptTerm) *model.MatchStatistics {
	st := newStats(m.idx.PartitionNames())

	for ti := range terms {
		term := &terms[ti]
		academicYear := ResolvePartition(term.Term, term.Year)
		oldTerm := olderThanData(term.Term, term.Year, m.earliestYear)

		for ci := range term.Courses {
			m.matchCourse(&term.Courses[ci], term.Term, term.Year, academicYear, oldTerm, st)
		}
	}

	result := st.result()
	if len(terms) > 0 {
		terms[0].Statistics = result
	}
	return result
}

// matchCourse applies the cascade to a single course. Strategy order:
// old-term short-circuit, exact course code in the resolved partition,
// exact combined text there, closest-year partitions, equivalency table,
// no-match terminal.
func (m *Matcher) matchCourse(c *model.Course, termName, year, academicYear string, oldTerm bool, st *stats) {
	st.totalCourses++

	c.CEPMatch = false
	c.EquivalencyMatch = false
	c.HomeDivision = ""
	c.CombinedText = strings.TrimSpace(c.CourseCode + " " + c.Title)
	c.AcademicYear = academicYear

	codeNormalized := Normalize(c.CourseCode)
	codeLower := strings.ToLower(strings.TrimSpace(c.CourseCode))
	combinedNormalized := Normalize(c.CombinedText)

	catalogDone := false

	if oldTerm {
		// Terms before the earliest catalog edition cannot match any
		// partition; go straight to the equivalency table.
		st.olderCourses++
		c.OlderThanData = true
		c.DataFrom = ""
		c.NoMatchReason = m.oldTermReason(termName, year)
	} else {
		c.OlderThanData = false

		if p := m.idx.Partition(academicYear); p != nil {
			if row, ok := lookupCode(p, codeNormalized, codeLower); ok {
				catalogDone = m.applyCatalogHit(c, row, academicYear, model.MatchedCourseCode, st)
			} else if row, ok := p.LookupCombined(combinedNormalized); ok {
				catalogDone = m.applyCatalogHit(c, row, academicYear, model.MatchedCombinedText, st)
			}
		}

		if !catalogDone {
			for _, name := range m.idx.ClosestPartitions(academicYear) {
				p := m.idx.Partition(name)
				if p == nil {
					continue
				}

				row, ok := lookupCode(p, codeNormalized, codeLower)
				matchedOn := model.MatchedCourseCodeOtherYear
				if !ok {
					row, ok = p.LookupCombined(combinedNormalized)
					matchedOn = model.MatchedCombinedOtherYear
				}
				if !ok {
					continue
				}

				catalogDone = m.applyCatalogHit(c, row, name, matchedOn, st)
				if catalogDone {
					break
				}
			}
		}
	}

	if !catalogDone && len(m.equiv) > 0 {
		if m.applyEquivalency(c, year, codeNormalized, codeLower, st) {
			return
		}
		if oldTerm {
			c.NoMatchReason = m.oldTermReason(termName, year) + " and no equivalency match found"
		}
	}

	if c.DataFrom == "" {
		c.DataFrom = model.DataFromNone
		if c.NoMatchReason == "" {
			if oldTerm {
				c.NoMatchReason = m.oldTermReason(termName, year)
			} else {
				c.NoMatchReason = "No matching course found in any available data source"
			}
		}
	}
}

// applyCatalogHit records a catalog match and resolves the common code to
// the home institution's course. Returns true in either case: a common
// code without a home row still terminates the cascade, with the
// empty-marker provenance and a reason noting the gap.
func (m *Matcher) applyCatalogHit(c *model.Course, row model.CatalogRow, partition string, matchedOn model.MatchedOn, st *stats) bool {
	commonCode := Normalize(row.CommonCode)

	c.CEPMatch = true
	c.CommonCode = commonCode
	c.SourceSheet = partition
	c.MatchedOn = matchedOn
	st.catalogMatches++
	st.partitionMatches[partition]++

	if commonCode == "" {
		c.DataFrom = model.DataFromNone
		c.NoMatchReason = "Catalog row has no common code"
		return true
	}

	home, ok := m.idx.HomeByCommonCode(commonCode)
	if !ok {
		c.DataFrom = model.DataFromNone
		c.NoMatchReason = "Common code found but no matching home-institution course"
		return true
	}

	c.HomeCourseCode = strings.ReplaceAll(home.CourseCode, " ", "")
	c.HomeCourseTitle = home.CommonCourseTitle
	c.HomeCredits = c.Credits
	c.DataFrom = model.DataFromCatalog
	c.HomeDivision = homeDivision(c.Division)
	st.homeMatches++
	return true
}

// applyEquivalency tries the institution-pair table. Among rows whose send
// code matches, only editions at or before the term year qualify; rows
// with unparsable low years are kept permissively. Table order decides.
func (m *Matcher) applyEquivalency(c *model.Course, year, codeNormalized, codeLower string, st *stats) bool {
	termYear, termYearErr := strconv.Atoi(strings.TrimSpace(year))

	for i, row := range m.equiv {
		if m.equivKeys[i] != codeNormalized && m.equivKeys[i] != codeLower {
			continue
		}

		if termYearErr == nil {
			if lowYear, err := strconv.Atoi(strings.TrimSpace(row.SendEditionLowYear)); err == nil && termYear < lowYear {
				continue
			}
		}

		c.EquivalencyMatch = true
		c.NoMatchReason = ""
		c.HomeCourseCode = strings.ReplaceAll(row.ReceiveCourseCode, " ", "")
		c.HomeCourseTitle = row.ReceiveCourseTitle
		c.HomeCredits = model.FlexNumber(row.ReceiveUnits)
		c.DataFrom = model.DataFromEquivalency
		c.MatchedOn = model.MatchedEquivalency
		c.HomeDivision = homeDivision(c.Division)
		st.equivalencyMatches++
		return true
	}
	return false
}

func (m *Matcher) oldTermReason(termName, year string) string {
	return fmt.Sprintf("Term (%s %s) is before earliest available data (%d-%d)",
		termName, year, m.earliestYear, m.earliestYear+1)
}

// lookupCode tries the extract-style and plain lowercased forms of the
// course's own code against a partition's code table.
func lookupCode(p *partitionIndex, codeNormalized, codeLower string) (model.CatalogRow, bool) {
	if row, ok := p.LookupCode(codeNormalized); ok {
		return row, true
	}
	if codeLower != codeNormalized {
		if row, ok := p.LookupCode(codeLower); ok {
			return row, true
		}
	}
	return model.CatalogRow{}, false
}

// homeDivision marks undergraduate transfer credit with the registrar's
// "C" division code; graduate and unknown divisions stay blank.
func homeDivision(d model.Division) string {
	if d == model.DivisionUndergrad {
		return "C"
	}
	return ""
}
