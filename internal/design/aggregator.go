package design

import (
	"sync"
	"time"

	"genstudio/internal/logging"
)

// DefaultInterval is the quiet period that has to pass after the last edit
// before a batch is submitted.
const DefaultInterval = 500 * time.Millisecond

// SubmitFunc sends the synthesized edit instruction upstream. It may block
// on network I/O; the aggregator enforces no timeout, so the callback owns
// its own deadline.
type SubmitFunc func(prompt string) error

// PreviewFunc applies a style change to the live preview immediately,
// before any debounce.
type PreviewFunc func(elementID string, styles map[string]string)

// Config wires an Aggregator to its collaborators. OnSubmit is required;
// the rest are optional.
type Config struct {
	Interval  time.Duration
	OnSubmit  SubmitFunc
	OnPreview PreviewFunc
	OnError   func(error)
	Logger    logging.Logger
}

// Aggregator collects design changes, suppresses rapid-fire updates through
// a quiet-period timer, and submits one synthesized instruction per batch.
// Changes that arrive while a batch is in flight land in a fresh queue and
// ride the next debounce or flush; a failed batch is not re-queued.
type Aggregator struct {
	mu         sync.Mutex
	pending    []Change
	processing bool

	debounce *debouncer
	cfg      Config
	log      logging.Logger
}

func NewAggregator(cfg Config) *Aggregator {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Aggregator{
		debounce: newDebouncer(cfg.Interval),
		cfg:      cfg,
		log:      logging.OrNop(cfg.Logger),
	}
}

// Queue accepts a change, stamps it, and restarts the quiet-period timer.
// Style changes additionally trigger the instant-preview callback right
// here, so the visible preview updates with zero delay regardless of when
// (or whether) the change is submitted upstream. Queue never blocks.
func (a *Aggregator) Queue(change Change) {
	change.Timestamp = time.Now()

	if change.Type == TypeStyle && a.cfg.OnPreview != nil {
		a.cfg.OnPreview(change.ElementID, change.Style)
	}

	a.mu.Lock()
	a.pending = append(a.pending, change)
	n := len(a.pending)
	a.mu.Unlock()

	a.log.Debug("queued %s change for %s (%d pending)", change.Type, change.ElementID, n)
	a.debounce.schedule(a.process)
}

// Flush cancels the pending timer and processes whatever is queued now.
// It returns once the batch has been submitted (or refused because a
// submission is already in flight).
func (a *Aggregator) Flush() {
	a.debounce.cancel()
	a.process()
}

// Clear cancels the timer and discards queued changes without processing.
// Changes already handed to an in-flight submission are not affected.
func (a *Aggregator) Clear() {
	a.debounce.cancel()
	a.mu.Lock()
	a.pending = nil
	a.mu.Unlock()
}

// PendingCount returns the current queue length.
func (a *Aggregator) PendingCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

// IsProcessing reports whether a submission is currently in flight.
func (a *Aggregator) IsProcessing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.processing
}

// process drains the queue and submits one instruction for the batch. The
// queue is swapped out before the submit call so changes enqueued while the
// call is in flight are isolated into the next batch, and the processing
// flag keeps a second wave from entering until the first completes.
func (a *Aggregator) process() {
	a.mu.Lock()
	if a.processing || len(a.pending) == 0 {
		a.mu.Unlock()
		return
	}
	batch := a.pending
	a.pending = nil
	a.processing = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.processing = false
		a.mu.Unlock()
	}()

	prompt := SynthesizePrompt(batch)
	a.log.Info("submitting %d design change(s)", len(batch))

	if err := a.cfg.OnSubmit(prompt); err != nil {
		a.log.Warn("design change submission failed: %v", err)
		if a.cfg.OnError != nil {
			a.cfg.OnError(err)
		}
	}
}
