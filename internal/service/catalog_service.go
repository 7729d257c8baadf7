package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/macuoit/articulation-backend/internal/config"
	"github.com/macuoit/articulation-backend/internal/match"
	"github.com/macuoit/articulation-backend/internal/model"
	"github.com/macuoit/articulation-backend/internal/repository"
)

// ErrCatalogUnavailable means the index has not been warmed yet.
var ErrCatalogUnavailable = errors.New("catalog index not loaded")

// CatalogService owns the in-memory match index. Rows live in PostgreSQL,
// a serialized snapshot lives in Redis so restarts skip the full table
// scan, and the index itself is rebuilt in RAM on every (re)load.
type CatalogService struct {
	cfg         *config.Config
	rdb         *redis.Client
	catalogRepo *repository.CatalogRepository
	equivRepo   *repository.EquivalencyRepository
	log         zerolog.Logger

	mu    sync.RWMutex
	idx   *match.Index
	equiv []model.EquivalencyRow
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	cfg *config.Config,
	rdb *redis.Client,
	catalogRepo *repository.CatalogRepository,
	equivRepo *repository.EquivalencyRepository,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		cfg:         cfg,
		rdb:         rdb,
		catalogRepo: catalogRepo,
		equivRepo:   equivRepo,
		log:         log.With().Str("component", "catalog_service").Logger(),
	}
}

// Prewarm builds the match index before the server accepts traffic. It
// prefers the Redis snapshot and falls back to PostgreSQL, refreshing the
// snapshot on the way.
func (s *CatalogService) Prewarm(ctx context.Context) error {
	rows, equiv, fromCache, err := s.loadSnapshot(ctx)
	if err != nil {
		return err
	}
	if !fromCache {
		if rows, equiv, err = s.loadFromDatabase(ctx); err != nil {
			return err
		}
	}

	s.swap(rows, equiv)

	s.log.Info().
		Int("catalog_rows", len(rows)).
		Int("equivalencies", len(equiv)).
		Bool("from_cache", fromCache).
		Msg("Catalog index warmed")
	return nil
}

// Refresh reloads rows from PostgreSQL, rewrites the Redis snapshot, and
// swaps in a freshly built index. In-flight enrichments keep the old index.
func (s *CatalogService) Refresh(ctx context.Context) error {
	rows, equiv, err := s.loadFromDatabase(ctx)
	if err != nil {
		return err
	}

	s.swap(rows, equiv)

	s.log.Info().
		Int("catalog_rows", len(rows)).
		Int("equivalencies", len(equiv)).
		Msg("Catalog index refreshed")
	return nil
}

// Matcher returns a matcher over the current index.
func (s *CatalogService) Matcher() (*match.Matcher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.idx == nil {
		return nil, ErrCatalogUnavailable
	}
	return match.NewMatcher(s.idx, s.equiv, s.cfg.EarliestCatalogYear), nil
}

// Partitions lists the loaded catalog editions with their row counts.
func (s *CatalogService) Partitions() ([]model.PartitionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.idx == nil {
		return nil, ErrCatalogUnavailable
	}
	return s.idx.PartitionInfos(), nil
}

// AddRow persists a catalog row and rebuilds the index so the row takes
// effect immediately.
func (s *CatalogService) AddRow(ctx context.Context, req *model.CreateCatalogRowRequest) (*model.CatalogRow, error) {
	row := &model.CatalogRow{
		CourseCode:        req.CourseCode,
		Combined:          req.Combined,
		CommonCode:        req.CommonCode,
		Institution:       req.Institution,
		CommonCourseTitle: req.CommonCourseTitle,
		SourcePartition:   req.SourcePartition,
	}
	if err := s.catalogRepo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("create catalog row: %w", err)
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return row, nil
}

// AddEquivalency persists an equivalency row and rebuilds the index.
func (s *CatalogService) AddEquivalency(ctx context.Context, row *model.EquivalencyRow) error {
	if err := s.equivRepo.Create(ctx, row); err != nil {
		return fmt.Errorf("create equivalency: %w", err)
	}
	return s.Refresh(ctx)
}

func (s *CatalogService) swap(rows []model.CatalogRow, equiv []model.EquivalencyRow) {
	idx := match.BuildIndex(rows, s.cfg.HomeInstitution)
	s.mu.Lock()
	s.idx = idx
	s.equiv = equiv
	s.mu.Unlock()
}

// loadSnapshot reads both serialized row sets from Redis. A missing key is
// a cache miss, not an error.
func (s *CatalogService) loadSnapshot(ctx context.Context) ([]model.CatalogRow, []model.EquivalencyRow, bool, error) {
	rawRows, err := s.rdb.Get(ctx, config.CacheKey.CatalogSnapshotKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("get catalog snapshot: %w", err)
	}
	rawEquiv, err := s.rdb.Get(ctx, config.CacheKey.EquivalencySnapshotKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil, false, nil
		}
		return nil, nil, false, fmt.Errorf("get equivalency snapshot: %w", err)
	}

	var rows []model.CatalogRow
	var equiv []model.EquivalencyRow
	if err := json.Unmarshal(rawRows, &rows); err != nil {
		s.log.Warn().Err(err).Msg("Corrupt catalog snapshot, reloading from database")
		return nil, nil, false, nil
	}
	if err := json.Unmarshal(rawEquiv, &equiv); err != nil {
		s.log.Warn().Err(err).Msg("Corrupt equivalency snapshot, reloading from database")
		return nil, nil, false, nil
	}
	return rows, equiv, true, nil
}

func (s *CatalogService) loadFromDatabase(ctx context.Context) ([]model.CatalogRow, []model.EquivalencyRow, error) {
	rows, err := s.catalogRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list catalog rows: %w", err)
	}
	equiv, err := s.equivRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list equivalencies: %w", err)
	}

	rawRows, err := json.Marshal(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal catalog snapshot: %w", err)
	}
	rawEquiv, err := json.Marshal(equiv)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal equivalency snapshot: %w", err)
	}

	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, config.CacheKey.CatalogSnapshotKey(), rawRows, 0)
	pipe.Set(ctx, config.CacheKey.EquivalencySnapshotKey(), rawEquiv, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		// The index still works without the snapshot. Log and move on.
		s.log.Warn().Err(err).Msg("Failed to write catalog snapshot")
	}

	return rows, equiv, nil
}
