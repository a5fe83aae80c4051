package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-code-gen/internal/logger"
	"github.com/MKhiriev/go-code-gen/internal/utils"
	"github.com/MKhiriev/go-code-gen/models"
)

const consumeRetryDelay = time.Second

// ValidationWorker runs deferred validations on a fixed number of goroutines.
type ValidationWorker struct {
	queue       TaskQueue
	processor   TaskProcessor
	concurrency int

	wg     sync.WaitGroup
	cancel context.CancelFunc

	logger *logger.Logger
}

// NewValidationWorker returns a pool of concurrency consumers of queue.
func NewValidationWorker(queue TaskQueue, processor TaskProcessor, concurrency int, logger *logger.Logger) (*ValidationWorker, error) {
	if concurrency <= 0 {
		return nil, ErrInvalidConcurrency
	}

	return &ValidationWorker{
		queue:       queue,
		processor:   processor,
		concurrency: concurrency,
		logger:      logger,
	}, nil
}

// Run starts the consumers. Cancelling ctx does not stop them; use Shutdown
// so queued tasks get drained.
func (w *ValidationWorker) Run(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(context.WithoutCancel(ctx))

	for i := range w.concurrency {
		w.wg.Add(1)
		go w.loop(ctx, i)
	}

	w.logger.Info().Int("concurrency", w.concurrency).Msg("validation worker started")
}

// Shutdown closes the queue and waits until the consumers drained it. When
// ctx expires first the consumers are cancelled and ctx.Err() is returned.
func (w *ValidationWorker) Shutdown(ctx context.Context) error {
	if err := w.queue.Close(); err != nil {
		w.logger.Err(err).Msg("closing validation queue failed")
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info().Msg("validation worker drained")
		return nil
	case <-ctx.Done():
		if w.cancel != nil {
			w.cancel()
		}
		w.logger.Warn().Msg("validation worker stopped before the queue was drained")
		return fmt.Errorf("validation worker shutdown: %w", ctx.Err())
	}
}

func (w *ValidationWorker) loop(ctx context.Context, id int) {
	defer w.wg.Done()

	log := w.logger.With().Int("consumer", id).Logger()

	for {
		task, err := w.queue.Consume(ctx)
		switch {
		case errors.Is(err, ErrQueueClosed), ctx.Err() != nil:
			return
		case err != nil:
			log.Err(err).Msg("consuming validation task failed")
			select {
			case <-time.After(consumeRetryDelay):
			case <-ctx.Done():
				return
			}
			continue
		}

		w.process(ctx, task)
	}
}

func (w *ValidationWorker) process(ctx context.Context, task models.ValidationTask) {
	taskLogger := w.logger.WithTraceID(utils.NewTraceID())
	ctx = taskLogger.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			taskLogger.Error().Any("panic", r).Int64("code_id", task.CodeID).Msg("validation task panicked")
		}
	}()

	if err := w.processor.ProcessTask(ctx, task); err != nil {
		taskLogger.Err(err).Int64("code_id", task.CodeID).Msg("validation task failed")
	}
}
