package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/macuoit/articulation-backend/internal/config"
	"github.com/macuoit/articulation-backend/internal/extractor"
	"github.com/macuoit/articulation-backend/internal/model"
	"github.com/macuoit/articulation-backend/internal/repository"
)

// Job lookup errors.
var (
	ErrJobNotFound    = errors.New("job not found")
	ErrJobNotFinished = errors.New("job not finished")
)

// TranscriptResult is the finished output of one processing job.
type TranscriptResult struct {
	JobID    string                 `json:"job_id"`
	FileName string                 `json:"file_name"`
	Terms    []model.TranscriptTerm `json:"terms"`
	Usage    *model.TokenUsage      `json:"usage,omitempty"`
}

// ProgressEvent is published on the job's PubSub channel at each stage
// transition so WebSocket subscribers can follow along.
type ProgressEvent struct {
	JobID  string          `json:"job_id"`
	Status model.JobStatus `json:"status"`
	Detail string          `json:"detail,omitempty"`
}

// TranscriptService orchestrates upload-to-result processing: it stores the
// PDF, runs extraction and enrichment in a background goroutine, and keeps
// job state plus the finished result in Redis with a bounded TTL.
type TranscriptService struct {
	cfg        *config.Config
	rdb        *redis.Client
	extractor  extractor.Extractor
	enrichment *EnrichmentService
	reviewRepo *repository.ReviewRepository
	log        zerolog.Logger
}

// NewTranscriptService creates a new TranscriptService.
func NewTranscriptService(
	cfg *config.Config,
	rdb *redis.Client,
	ext extractor.Extractor,
	enrichment *EnrichmentService,
	reviewRepo *repository.ReviewRepository,
	log zerolog.Logger,
) *TranscriptService {
	return &TranscriptService{
		cfg:        cfg,
		rdb:        rdb,
		extractor:  ext,
		enrichment: enrichment,
		reviewRepo: reviewRepo,
		log:        log.With().Str("component", "transcript_service").Logger(),
	}
}

// Submit stores the uploaded PDF, registers a queued job, and starts
// processing in the background. The returned state carries the job ID the
// client polls or subscribes with.
func (s *TranscriptService) Submit(ctx context.Context, fileName string, data []byte) (*model.JobState, error) {
	jobID := uuid.New().String()

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	filePath := filepath.Join(s.cfg.UploadDir, jobID+".pdf")
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	now := time.Now()
	state := &model.JobState{
		ID:        jobID,
		Status:    model.JobQueued,
		FileName:  fileName,
		FilePath:  filePath,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.saveState(ctx, state); err != nil {
		return nil, err
	}

	go s.process(state, data)

	s.log.Info().
		Str("job_id", jobID).
		Str("file_name", fileName).
		Int("bytes", len(data)).
		Msg("Transcript job queued")
	return state, nil
}

// process runs detached from the request context. Extraction gets its own
// timeout; everything else is fast and local.
func (s *TranscriptService) process(state *model.JobState, data []byte) {
	ctx := context.Background()

	s.transition(ctx, state, model.JobExtracting, "")

	extractCtx, cancel := context.WithTimeout(ctx, s.cfg.ExtractTimeout)
	terms, usage, err := s.extractor.Extract(extractCtx, data)
	cancel()
	if err != nil {
		s.fail(ctx, state, fmt.Errorf("extract: %w", err))
		return
	}
	state.Usage = usage

	s.transition(ctx, state, model.JobMatching, "")

	if _, err := s.enrichment.Enrich(terms); err != nil {
		s.fail(ctx, state, fmt.Errorf("enrich: %w", err))
		return
	}

	result := TranscriptResult{
		JobID:    state.ID,
		FileName: state.FileName,
		Terms:    terms,
		Usage:    usage,
	}
	raw, err := json.Marshal(result)
	if err != nil {
		s.fail(ctx, state, fmt.Errorf("marshal result: %w", err))
		return
	}
	if err := s.rdb.Set(ctx, config.CacheKey.JobResultKey(state.ID), raw, s.cfg.JobResultTTL).Err(); err != nil {
		s.fail(ctx, state, fmt.Errorf("store result: %w", err))
		return
	}

	s.transition(ctx, state, model.JobDone, "")
	s.log.Info().
		Str("job_id", state.ID).
		Int("terms", len(terms)).
		Msg("Transcript job finished")
}

// GetJob returns the job's current state.
func (s *TranscriptService) GetJob(ctx context.Context, jobID string) (*model.JobState, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.JobStateKey(jobID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("get job state: %w", err)
	}
	var state model.JobState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode job state: %w", err)
	}
	return &state, nil
}

// GetResult returns the enriched transcript for a finished job.
func (s *TranscriptService) GetResult(ctx context.Context, jobID string) (*TranscriptResult, error) {
	state, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if state.Status != model.JobDone {
		return nil, ErrJobNotFinished
	}

	raw, err := s.rdb.Get(ctx, config.CacheKey.JobResultKey(jobID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("get job result: %w", err)
	}
	var result TranscriptResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode job result: %w", err)
	}
	return &result, nil
}

// Feedback records a reviewer comment for a finished job. The full audit
// row is queued for the background worker, which persists in batches.
func (s *TranscriptService) Feedback(ctx context.Context, jobID, comment string) error {
	state, err := s.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if state.Status != model.JobDone {
		return ErrJobNotFinished
	}

	raw, err := s.rdb.Get(ctx, config.CacheKey.JobResultKey(jobID)).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("get job result: %w", err)
	}

	entry := model.ReviewEntry{
		JobID:      jobID,
		FileName:   state.FileName,
		FilePath:   state.FilePath,
		ResultJSON: raw,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}

	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistReviewsQueue, payload).Err(); err != nil {
		return fmt.Errorf("queue review: %w", err)
	}
	return nil
}

// ListReviews returns the newest persisted audit entries. Entries still
// sitting in the worker queue are not included.
func (s *TranscriptService) ListReviews(ctx context.Context, limit int) ([]model.ReviewEntry, error) {
	return s.reviewRepo.ListRecent(ctx, limit)
}

// Subscribe opens a PubSub subscription on the job's progress channel.
// The caller owns the subscription and must Close it.
func (s *TranscriptService) Subscribe(ctx context.Context, jobID string) *redis.PubSub {
	return s.rdb.Subscribe(ctx, config.CacheKey.JobProgressChannel(jobID))
}

func (s *TranscriptService) transition(ctx context.Context, state *model.JobState, status model.JobStatus, detail string) {
	state.Status = status
	state.UpdatedAt = time.Now()
	if err := s.saveState(ctx, state); err != nil {
		s.log.Error().Err(err).Str("job_id", state.ID).Msg("Failed to save job state")
	}
	s.publish(ctx, state.ID, status, detail)
}

func (s *TranscriptService) fail(ctx context.Context, state *model.JobState, cause error) {
	s.log.Error().Err(cause).Str("job_id", state.ID).Msg("Transcript job failed")
	state.Error = cause.Error()
	s.transition(ctx, state, model.JobFailed, cause.Error())
}

func (s *TranscriptService) saveState(ctx context.Context, state *model.JobState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal job state: %w", err)
	}
	if err := s.rdb.Set(ctx, config.CacheKey.JobStateKey(state.ID), raw, s.cfg.JobResultTTL).Err(); err != nil {
		return fmt.Errorf("store job state: %w", err)
	}
	return nil
}

func (s *TranscriptService) publish(ctx context.Context, jobID string, status model.JobStatus, detail string) {
	event := ProgressEvent{JobID: jobID, Status: status, Detail: detail}
	raw, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.JobProgressChannel(jobID), raw).Err(); err != nil {
		s.log.Warn().Err(err).Str("job_id", jobID).Msg("Failed to publish progress")
	}
}
