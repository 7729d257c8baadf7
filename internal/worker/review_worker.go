package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/macuoit/articulation-backend/internal/config"
	"github.com/macuoit/articulation-backend/internal/model"
	"github.com/macuoit/articulation-backend/internal/repository"
)

const (
	ReviewBatchSize    = 25
	ReviewBatchTimeout = 2 * time.Second
	ReviewPollTimeout  = 1 * time.Second
)

// ReviewWorker drains queued review entries and persists them to
// PostgreSQL in batches, so feedback submission never waits on the
// database.
type ReviewWorker struct {
	reviewRepo *repository.ReviewRepository
	rdb        *redis.Client
	log        zerolog.Logger
}

// NewReviewWorker creates a new ReviewWorker.
func NewReviewWorker(reviewRepo *repository.ReviewRepository, rdb *redis.Client, log zerolog.Logger) *ReviewWorker {
	return &ReviewWorker{
		reviewRepo: reviewRepo,
		rdb:        rdb,
		log:        log.With().Str("component", "review_worker").Logger(),
	}
}

// Start runs the worker loop until ctx is cancelled. The remaining batch
// is flushed on shutdown.
func (w *ReviewWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ReviewWorker started")

	batch := make([]*model.ReviewEntry, 0, ReviewBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= ReviewBatchSize || time.Since(lastFlush) >= ReviewBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ReviewPollTimeout, config.WorkerKey.PersistReviewsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var entry model.ReviewEntry
			if err := json.Unmarshal([]byte(item[1]), &entry); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &entry)
		}
	}
}

// flushSafe persists the batch, requeueing every entry on failure so
// nothing is lost across restarts.
func (w *ReviewWorker) flushSafe(ctx context.Context, batch []*model.ReviewEntry) {
	if len(batch) == 0 {
		return
	}

	if err := w.reviewRepo.CreateBatch(ctx, batch); err != nil {
		w.log.Error().Err(err).Int("count", len(batch)).Msg("Batch insert failed — requeueing")
		for _, entry := range batch {
			raw, merr := json.Marshal(entry)
			if merr != nil {
				continue
			}
			w.rdb.RPush(ctx, config.WorkerKey.PersistReviewsQueue, raw)
		}
		return
	}

	w.log.Debug().Int("count", len(batch)).Msg("Reviews persisted")
}
