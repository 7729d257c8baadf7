package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/macuoit/articulation-backend/internal/model"
	"github.com/macuoit/articulation-backend/internal/repository"
)

// ErrInstitutionNotFound means no institution is close enough to the query.
var ErrInstitutionNotFound = errors.New("no matching institution")

// resolveCutoff is the minimum similarity accepted for fuzzy hits: at
// least 70% similar, anything looser returns not-found.
const resolveCutoff = 0.7

// InstitutionService resolves free-text institution names, as extracted
// from transcripts, to registry entries with zero-padded codes.
type InstitutionService struct {
	repo *repository.InstitutionRepository
	log  zerolog.Logger

	mu   sync.RWMutex
	list []model.Institution
}

// NewInstitutionService creates a new InstitutionService.
func NewInstitutionService(repo *repository.InstitutionRepository, log zerolog.Logger) *InstitutionService {
	return &InstitutionService{
		repo: repo,
		log:  log.With().Str("component", "institution_service").Logger(),
	}
}

// Prewarm loads the registry into memory. The table is small and changes
// rarely, so lookups never touch the database afterwards.
func (s *InstitutionService) Prewarm(ctx context.Context) error {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list institutions: %w", err)
	}
	s.mu.Lock()
	s.list = list
	s.mu.Unlock()
	s.log.Info().Int("count", len(list)).Msg("Institution registry loaded")
	return nil
}

// ResolvedInstitution is a registry hit with its similarity to the query.
type ResolvedInstitution struct {
	model.Institution
	Code       string  `json:"code"`
	Similarity float64 `json:"similarity"`
}

// Resolve finds the institution whose name best matches the query,
// exact (case-insensitive) first, then fuzzy. The returned code is
// zero-padded to six digits.
func (s *InstitutionService) Resolve(name string) (*ResolvedInstitution, error) {
	s.mu.RLock()
	list := s.list
	s.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return nil, ErrInstitutionNotFound
	}

	var best *model.Institution
	bestScore := 0.0
	for i := range list {
		candidate := strings.ToLower(strings.TrimSpace(list[i].Name))
		if candidate == query {
			best = &list[i]
			bestScore = 1.0
			break
		}
		if score := similarity(query, candidate); score > bestScore {
			best = &list[i]
			bestScore = score
		}
	}

	if best == nil || bestScore < resolveCutoff {
		return nil, ErrInstitutionNotFound
	}

	return &ResolvedInstitution{
		Institution: *best,
		Code:        padCode(best.Code),
		Similarity:  bestScore,
	}, nil
}

// Add persists a new registry entry and reloads the cache.
func (s *InstitutionService) Add(ctx context.Context, inst *model.Institution) error {
	if err := s.repo.Create(ctx, inst); err != nil {
		return fmt.Errorf("create institution: %w", err)
	}
	return s.Prewarm(ctx)
}

// List returns the cached registry.
func (s *InstitutionService) List() []model.Institution {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list
}

func padCode(code string) string {
	if len(code) >= 6 {
		return code
	}
	return strings.Repeat("0", 6-len(code)) + code
}

// similarity is 2*LCS/(len(a)+len(b)), the longest-common-subsequence
// analogue of a difflib ratio. Good enough for short institution names.
func similarity(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return 2 * float64(prev[len(b)]) / float64(len(a)+len(b))
}
