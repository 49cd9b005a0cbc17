package biz

import (
	"context"
	"time"

	"github.com/kart-io/logger"
	"github.com/panjf2000/ants/v2"

	"github.com/kart-io/mentor-ai/internal/mentor/store"
	"github.com/kart-io/mentor-ai/internal/pkg/apperrors"
)

// WorkerConfig tunes the background processing pool.
type WorkerConfig struct {
	// PoolSize is the number of videos processed concurrently.
	PoolSize int
	// MaxRetries is the number of extra attempts after the first failure.
	MaxRetries int
	// Backoff is the base delay before a retry; it doubles per attempt.
	Backoff time.Duration
	// JobTimeout bounds one processing attempt.
	JobTimeout time.Duration
}

// NewWorkerConfig returns the default worker configuration.
func NewWorkerConfig() *WorkerConfig {
	return &WorkerConfig{
		PoolSize:   4,
		MaxRetries: 3,
		Backoff:    2 * time.Second,
		JobTimeout: 10 * time.Minute,
	}
}

// Worker schedules video processing on a goroutine pool. Provider-side
// failures are retried with exponential backoff; everything else fails the
// video on the first attempt.
type Worker struct {
	pool      *ants.Pool
	videos    store.VideoStore
	processor *Processor
	config    *WorkerConfig
}

// NewWorker creates the worker and its pool.
func NewWorker(videos store.VideoStore, processor *Processor, config *WorkerConfig) (*Worker, error) {
	if config == nil {
		config = NewWorkerConfig()
	}
	pool, err := ants.NewPool(config.PoolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &Worker{
		pool:      pool,
		videos:    videos,
		processor: processor,
		config:    config,
	}, nil
}

// Enqueue marks the video queued and submits it to the pool. A video that
// is already in flight yields ErrConflict with no state change; a submit
// failure marks the video failed and yields ErrUnavailable.
func (w *Worker) Enqueue(ctx context.Context, videoID string) error {
	if err := w.videos.TryMarkQueued(ctx, videoID); err != nil {
		return err
	}

	if err := w.pool.Submit(func() { w.run(videoID) }); err != nil {
		logger.Errorw("failed to schedule video processing", "video_id", videoID, "error", err)
		if markErr := w.videos.MarkFailed(context.Background(), videoID, "failed to schedule processing"); markErr != nil {
			logger.Errorw("failed to mark video failed", "video_id", videoID, "error", markErr)
		}
		return apperrors.ErrUnavailable.WithMessage("processing queue is full")
	}
	return nil
}

// run executes one job with the retry policy.
func (w *Worker) run(videoID string) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), w.config.JobTimeout)
		lastErr = w.processor.Process(ctx, videoID)
		cancel()

		if lastErr == nil {
			return
		}
		if !w.shouldRetry(lastErr, attempt) {
			logger.Errorw("video processing failed",
				"video_id", videoID, "attempts", attempt+1, "error", lastErr)
			return
		}

		delay := w.config.Backoff << attempt
		logger.Warnw("video processing attempt failed, retrying",
			"video_id", videoID, "attempt", attempt+1, "delay", delay, "error", lastErr)
		time.Sleep(delay)
	}
}

// shouldRetry allows retries only for provider-side failures and only while
// the retry budget lasts.
func (w *Worker) shouldRetry(err error, attempt int) bool {
	return attempt < w.config.MaxRetries && apperrors.IsRetryable(err)
}

// Shutdown releases the pool. Running jobs finish; queued jobs are dropped.
func (w *Worker) Shutdown() {
	w.pool.Release()
}
