package processing

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wavesplatform/push-notifications/internal/model"
)

// countingProcessor records how many ProcessEvent calls are in flight at
// once, failing the test if more than one ever overlaps.
type countingProcessor struct {
	inFlight int32
	calls    int32
	fail     error
}

func (c *countingProcessor) ProcessEvent(ctx context.Context, event model.Event) error {
	if atomic.AddInt32(&c.inFlight, 1) > 1 {
		panic("concurrent ProcessEvent calls")
	}
	defer atomic.AddInt32(&c.inFlight, -1)
	atomic.AddInt32(&c.calls, 1)
	time.Sleep(time.Millisecond)
	return c.fail
}

func newDispatcherForTest(p eventProcessor) *Dispatcher {
	return &Dispatcher{processor: p, queue: make(chan dispatchRequest, dispatchBufferSize)}
}

func TestDispatcher_SerializesConcurrentSources(t *testing.T) {
	proc := &countingProcessor{}
	d := newDispatcherForTest(proc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	go func() { _ = d.Run(ctx) }()

	const sources = 2
	const eventsPerSource = 20
	for i := 0; i < sources; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < eventsPerSource; j++ {
				if err := d.ProcessEvent(ctx, model.Event{}); err != nil {
					t.Errorf("ProcessEvent: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&proc.calls); got != sources*eventsPerSource {
		t.Fatalf("expected %d processed events, got %d", sources*eventsPerSource, got)
	}
}

func TestDispatcher_ProcessEvent_PropagatesError(t *testing.T) {
	wantErr := errors.New("boom")
	proc := &countingProcessor{fail: wantErr}
	d := newDispatcherForTest(proc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.Run(ctx) }()

	if err := d.ProcessEvent(ctx, model.Event{}); !errors.Is(err, wantErr) {
		t.Fatalf("ProcessEvent error = %v, want %v", err, wantErr)
	}
}

func TestDispatcher_ProcessEvent_ReturnsOnContextCancel(t *testing.T) {
	proc := &countingProcessor{}
	d := newDispatcherForTest(proc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // no Run loop is started, and the queue is never drained

	if err := d.ProcessEvent(ctx, model.Event{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("ProcessEvent error = %v, want context.Canceled", err)
	}
}
