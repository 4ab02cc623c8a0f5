// Package polling runs the periodic event synchronization cycle against the
// remote marketplace: fetch events, drop duplicates, drive order transitions
// and acknowledge what was processed.
package polling

import (
	"context"
	"log/slog"
	"sync"
	"time"

	apperrors "github.com/allisson/ifood-integration/internal/errors"
	eventDomain "github.com/allisson/ifood-integration/internal/event/domain"
	"github.com/allisson/ifood-integration/internal/ifood"
)

// Gateway defines the remote calls the engine needs.
type Gateway interface {
	PollEvents(ctx context.Context) ([]ifood.RemoteEvent, error)
	AckEvents(ctx context.Context, ids []string) error
}

// EventProcessor applies one inbound event to its order.
type EventProcessor interface {
	ProcessEvent(ctx context.Context, event ifood.RemoteEvent) (eventDomain.Result, error)
}

// Deduplicator filters already-processed event ids.
type Deduplicator interface {
	FilterNew(ids []string) []string
	Mark(id string)
	Sweep() int
}

// Status is a snapshot of the engine state for the dashboard.
type Status struct {
	PollingActive  bool       `json:"polling_active"`
	LastPollAt     *time.Time `json:"last_poll_at"`
	EventsReceived int64      `json:"events_received"`
	ErrorsCount    int64      `json:"errors_count"`
	LastError      *string    `json:"last_error"`
}

// Engine owns the background polling loop. One engine runs per merchant
// integration; Start, Stop and ForcePollOnce may be called concurrently with
// the timer loop, cycles themselves never overlap.
type Engine struct {
	interval  time.Duration
	gateway   Gateway
	processor EventProcessor
	dedup     Deduplicator
	logger    *slog.Logger

	// cycleMu serializes cycle execution between the timer loop and
	// ForcePollOnce callers.
	cycleMu sync.Mutex

	mu             sync.Mutex
	running        bool
	stopCh         chan struct{}
	doneCh         chan struct{}
	lastPollAt     *time.Time
	eventsReceived int64
	errorsCount    int64
	lastError      *string
}

// NewEngine creates a new Engine.
func NewEngine(
	interval time.Duration,
	gateway Gateway,
	processor EventProcessor,
	dedup Deduplicator,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		interval:  interval,
		gateway:   gateway,
		processor: processor,
		dedup:     dedup,
		logger:    logger,
	}
}

// Start launches the background timer loop. Starting an already running
// engine is a conflict.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return apperrors.Wrap(apperrors.ErrConflict, "polling is already running")
	}
	e.running = true
	e.stopCh = make(chan struct{})
	e.doneCh = make(chan struct{})
	stopCh := e.stopCh
	doneCh := e.doneCh
	e.mu.Unlock()

	e.logger.Info("polling started", slog.Duration("interval", e.interval))

	go e.loop(ctx, stopCh, doneCh)
	return nil
}

// loop runs cycles at the configured interval until stopped. A stop signal is
// only observed between cycles so an in-progress batch always finishes before
// the loop exits.
func (e *Engine) loop(ctx context.Context, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	// First cycle runs immediately so the merchant shows up online without
	// waiting a full interval.
	e.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("polling stopped", slog.String("cause", "context cancelled"))
			return
		case <-stopCh:
			e.logger.Info("polling stopped")
			return
		case <-ticker.C:
			e.runCycle(ctx)
		}
	}
}

// Stop signals the timer loop to exit after its current cycle completes and
// waits for it to drain. Stopping a stopped engine is a conflict.
func (e *Engine) Stop() error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return apperrors.Wrap(apperrors.ErrConflict, "polling is not running")
	}
	e.running = false
	close(e.stopCh)
	doneCh := e.doneCh
	e.mu.Unlock()

	<-doneCh
	return nil
}

// ForcePollOnce runs one cycle synchronously. It waits for any in-progress
// cycle instead of running concurrently with it, and works whether or not
// the timer loop is running.
func (e *Engine) ForcePollOnce(ctx context.Context) error {
	return e.runCycle(ctx)
}

// Status returns a snapshot of the engine state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Status{
		PollingActive:  e.running,
		LastPollAt:     e.lastPollAt,
		EventsReceived: e.eventsReceived,
		ErrorsCount:    e.errorsCount,
		LastError:      e.lastError,
	}
}

// runCycle executes one fetch, process, ack round trip. Acks are only issued
// after every event in the batch was applied or deliberately rejected; ids
// are recorded in the dedup cache only after the ack succeeded, so un-acked
// events are reprocessed on redelivery.
func (e *Engine) runCycle(ctx context.Context) error {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()

	events, err := e.gateway.PollEvents(ctx)
	if err != nil {
		e.recordError(err)
		e.logger.Error("event fetch failed", slog.Any("error", err))
		return err
	}

	now := time.Now().UTC()
	e.mu.Lock()
	e.lastPollAt = &now
	e.eventsReceived += int64(len(events))
	e.mu.Unlock()

	if len(events) == 0 {
		e.clearError()
		return nil
	}

	ids := make([]string, len(events))
	for i, event := range events {
		ids[i] = event.ID
	}
	fresh := make(map[string]struct{}, len(events))
	for _, id := range e.dedup.FilterNew(ids) {
		fresh[id] = struct{}{}
	}

	processed := make([]string, 0, len(events))
	var hardErr error
	for _, event := range events {
		// Redeliveries acked in a previous cycle and duplicate ids inside the
		// batch itself are dropped and never re-acked.
		if _, ok := fresh[event.ID]; !ok {
			continue
		}
		delete(fresh, event.ID)

		result, err := e.processor.ProcessEvent(ctx, event)
		if err != nil {
			// Left out of the ack batch, the remote will redeliver it.
			hardErr = err
			e.logger.Error("event processing failed",
				slog.String("event_id", event.ID),
				slog.Any("error", err),
			)
			continue
		}

		e.logger.Debug("event processed",
			slog.String("event_id", event.ID),
			slog.String("result", string(result)),
		)
		processed = append(processed, event.ID)
	}

	if len(processed) > 0 {
		if err := e.gateway.AckEvents(ctx, processed); err != nil {
			// Events stay un-acked; the order graph makes the eventual
			// redelivery a no-op.
			e.recordError(err)
			e.logger.Error("event ack failed",
				slog.Int("count", len(processed)),
				slog.Any("error", err),
			)
			return err
		}
		for _, id := range processed {
			e.dedup.Mark(id)
		}
	}

	e.dedup.Sweep()

	if hardErr != nil {
		e.recordError(hardErr)
		return hardErr
	}

	e.clearError()
	return nil
}

func (e *Engine) recordError(err error) {
	msg := err.Error()
	e.mu.Lock()
	e.errorsCount++
	e.lastError = &msg
	e.mu.Unlock()
}

func (e *Engine) clearError() {
	e.mu.Lock()
	e.lastError = nil
	e.mu.Unlock()
}
