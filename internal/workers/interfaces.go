// Package workers runs background work of the server: the deferred
// validation pool and the task queues that feed it.
//
// A [Worker] is started once with Run and stopped with Shutdown. The
// [Workers] aggregate starts and stops several of them as one unit.
package workers

import (
	"context"

	"github.com/MKhiriev/go-code-gen/models"
)

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns immediately; processing happens on
// goroutines owned by the worker. Shutdown stops accepting new work, waits for
// in-flight work and returns ctx.Err() when ctx expires first.
type Worker interface {
	Run(ctx context.Context)
	Shutdown(ctx context.Context) error
}

// TaskQueue carries validation tasks from request handlers to the pool.
type TaskQueue interface {
	// Publish enqueues task without waiting for a consumer.
	Publish(ctx context.Context, task models.ValidationTask) error
	// Consume blocks until a task is available. After Close it keeps
	// returning queued tasks and then ErrQueueClosed.
	Consume(ctx context.Context) (models.ValidationTask, error)
	// Close stops accepting new tasks.
	Close() error
}

// TaskProcessor executes one validation task.
type TaskProcessor interface {
	ProcessTask(ctx context.Context, task models.ValidationTask) error
}
