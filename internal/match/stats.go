package match

import "github.com/macuoit/articulation-backend/internal/model"

// stats accumulates one enrichment run's counters. Partition counters are
// pre-seeded with every known partition so zero-course runs still report
// the full partition set.
type stats struct {
	totalCourses       int
	catalogMatches     int
	homeMatches        int
	equivalencyMatches int
	olderCourses       int
	partitionMatches   map[string]int
}

func newStats(partitions []string) *stats {
	pm := make(map[string]int, len(partitions))
	for _, p := range partitions {
		pm[p] = 0
	}
	return &stats{partitionMatches: pm}
}

func (s *stats) result() *model.MatchStatistics {
	return &model.MatchStatistics{
		TotalCourses:       s.totalCourses,
		CatalogMatches:     s.catalogMatches,
		HomeMatches:        s.homeMatches,
		EquivalencyMatches: s.equivalencyMatches,
		OlderCourses:       s.olderCourses,
		PartitionMatches:   s.partitionMatches,
	}
}
