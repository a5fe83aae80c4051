package workers

import "errors"

var (
	// ErrQueueClosed is returned by Publish after Close and by Consume once
	// a closed queue is empty.
	ErrQueueClosed = errors.New("task queue is closed")

	// ErrQueueFull is returned by the in-memory queue when its buffer is
	// exhausted.
	ErrQueueFull = errors.New("task queue is full")

	// ErrInvalidConcurrency is returned for a pool without goroutines.
	ErrInvalidConcurrency = errors.New("worker concurrency must be positive")
)
