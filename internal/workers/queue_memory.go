package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-code-gen/internal/metrics"
	"github.com/MKhiriev/go-code-gen/models"
)

// MemoryQueue is a bounded in-process queue backed by a buffered channel.
// Tasks do not survive a restart.
type MemoryQueue struct {
	mu     sync.RWMutex
	closed bool
	tasks  chan models.ValidationTask
}

// NewMemoryQueue returns a queue buffering up to size tasks.
func NewMemoryQueue(size int) *MemoryQueue {
	return &MemoryQueue{tasks: make(chan models.ValidationTask, size)}
}

// Publish enqueues task or fails with ErrQueueFull when the buffer is
// exhausted.
func (q *MemoryQueue) Publish(ctx context.Context, task models.ValidationTask) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.tasks <- task:
		return nil
	default:
		metrics.QueueErrorsTotal.WithLabelValues("publish").Inc()
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Consume(ctx context.Context) (models.ValidationTask, error) {
	select {
	case task, ok := <-q.tasks:
		if !ok {
			return models.ValidationTask{}, ErrQueueClosed
		}
		return task, nil
	case <-ctx.Done():
		return models.ValidationTask{}, ctx.Err()
	}
}

// Close is idempotent.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.tasks)
	}
	return nil
}

// Len returns the number of buffered tasks.
func (q *MemoryQueue) Len() int {
	return len(q.tasks)
}
