package service

import (
	"github.com/rs/zerolog"

	"github.com/macuoit/articulation-backend/internal/match"
	"github.com/macuoit/articulation-backend/internal/model"
)

// EnrichmentService runs extracted transcript terms through credit
// imputation and the catalog match cascade.
type EnrichmentService struct {
	catalog *CatalogService
	log     zerolog.Logger
}

// NewEnrichmentService creates a new EnrichmentService.
func NewEnrichmentService(catalog *CatalogService, log zerolog.Logger) *EnrichmentService {
	return &EnrichmentService{
		catalog: catalog,
		log:     log.With().Str("component", "enrichment_service").Logger(),
	}
}

// Enrich mutates terms in place: propagates the sending institution,
// imputes missing credits, and annotates every course with its match
// outcome. Statistics land on the first term and are also returned.
func (s *EnrichmentService) Enrich(terms []model.TranscriptTerm) (*model.MatchStatistics, error) {
	matcher, err := s.catalog.Matcher()
	if err != nil {
		return nil, err
	}

	match.PrepareTerms(terms)
	stats := matcher.EnrichTerms(terms)

	s.log.Debug().
		Int("terms", len(terms)).
		Int("total_courses", stats.TotalCourses).
		Int("catalog_matches", stats.CatalogMatches).
		Int("equivalency_matches", stats.EquivalencyMatches).
		Msg("Transcript enriched")
	return stats, nil
}
