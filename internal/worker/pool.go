// Package worker runs async jobs on an in-process pool. The app is a single
// local process, so the queue is a buffered channel rather than a broker;
// the dispatcher/handler split mirrors how jobs are enqueued elsewhere so
// callers never block on slow work like PDF rendering.
package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler processes one job kind.
type Handler func(ctx context.Context, job Job) error

// ErrQueueFull is returned when the queue cannot accept more work.
var ErrQueueFull = errors.New("worker queue full")

// Dispatcher enqueues jobs and owns the handler registry.
type Dispatcher struct {
	queue    chan Job
	handlers map[string]Handler
}

func NewDispatcher(buffer int) *Dispatcher {
	return &Dispatcher{
		queue:    make(chan Job, buffer),
		handlers: make(map[string]Handler),
	}
}

// Register wires a handler for a job type. Call before Start.
func (d *Dispatcher) Register(jobType string, h Handler) {
	d.handlers[jobType] = h
}

// Enqueue pushes a job without blocking. A full queue is an error the
// caller surfaces, not something retried here.
func (d *Dispatcher) Enqueue(jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	select {
	case d.queue <- Job{Type: jobType, Payload: data}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start launches numWorkers goroutines consuming the queue. Workers drain
// until ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go d.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (d *Dispatcher) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		case job := <-d.queue:
			d.process(ctx, job)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, job Job) {
	h, ok := d.handlers[job.Type]
	if !ok {
		log.Error().Str("type", job.Type).Msg("no handler registered for job")
		return
	}
	if err := h(ctx, job); err != nil {
		log.Error().Str("type", job.Type).Err(err).Msg("job failed")
		return
	}
	log.Info().Str("type", job.Type).Msg("job processed")
}
