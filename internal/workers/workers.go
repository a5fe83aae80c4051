package workers

import (
	"context"
	"errors"
)

// Workers starts and stops a group of workers together.
type Workers struct {
	workers []Worker
}

// NewWorkers groups workers. Nil entries are skipped.
func NewWorkers(workers ...Worker) *Workers {
	w := &Workers{}
	for _, worker := range workers {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Run starts every worker in order.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Shutdown stops every worker in reverse start order and joins their errors.
func (w *Workers) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(w.workers) - 1; i >= 0; i-- {
		if err := w.workers[i].Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
