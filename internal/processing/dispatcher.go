package processing

import (
	"context"

	"github.com/wavesplatform/push-notifications/internal/model"
)

// dispatchBufferSize mirrors the original's mpsc::channel(100): "buffer size
// is rather arbitrary" (push-notifications-processor/src/main.rs).
const dispatchBufferSize = 100

// eventProcessor is satisfied by *EventProcessor; kept as an interface here
// so Dispatcher's serialization can be tested without a live database.
type eventProcessor interface {
	ProcessEvent(ctx context.Context, event model.Event) error
}

// Dispatcher unifies every event source behind one bounded channel feeding a
// single consumer goroutine, so EventProcessor.ProcessEvent only ever runs
// on one goroutine at a time and every database mutation is serialized
// (crates/processing/src/processing.rs's MessagePump::run_event_loop, fed by
// EventWithFeedback/oneshot acks from each source's send_*_events).
type Dispatcher struct {
	processor eventProcessor
	queue     chan dispatchRequest
}

type dispatchRequest struct {
	event  model.Event
	result chan error
}

// NewDispatcher wraps processor behind a single-writer event queue.
func NewDispatcher(processor *EventProcessor) *Dispatcher {
	return &Dispatcher{
		processor: processor,
		queue:     make(chan dispatchRequest, dispatchBufferSize),
	}
}

// ProcessEvent enqueues event and blocks until Run's goroutine has processed
// it, giving callers the same call-and-wait semantics a direct call would,
// while guaranteeing only Run ever touches the database.
func (d *Dispatcher) ProcessEvent(ctx context.Context, event model.Event) error {
	req := dispatchRequest{event: event, result: make(chan error, 1)}

	select {
	case d.queue <- req:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drains the queue until ctx is cancelled. It is the only goroutine that
// calls the wrapped EventProcessor's ProcessEvent.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case req := <-d.queue:
			req.result <- d.processor.ProcessEvent(ctx, req.event)
		case <-ctx.Done():
			return nil
		}
	}
}
