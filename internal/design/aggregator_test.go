package design

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func styleChange(id, file string, styles map[string]string) Change {
	return Change{
		Type:      TypeStyle,
		ElementID: id,
		File:      file,
		Style:     styles,
	}
}

func TestQueueThenFlushSubmitsOnce(t *testing.T) {
	var calls int32
	var got string
	agg := NewAggregator(Config{
		OnSubmit: func(prompt string) error {
			atomic.AddInt32(&calls, 1)
			got = prompt
			return nil
		},
	})

	agg.Queue(styleChange("btn-1", "src/App.jsx", map[string]string{"color": "#fff"}))
	agg.Flush()

	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.Contains(t, got, "src/App.jsx")
	assert.Contains(t, got, "color: #fff")
	assert.Zero(t, agg.PendingCount())
}

func TestRapidChangesDebounceToOneSubmission(t *testing.T) {
	var calls int32
	agg := NewAggregator(Config{
		Interval: 50 * time.Millisecond,
		OnSubmit: func(string) error {
			atomic.AddInt32(&calls, 1)
			return nil
		},
	})

	for i := 0; i < 3; i++ {
		agg.Queue(styleChange("btn-1", "src/App.jsx", map[string]string{"color": "#fff"}))
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestFlushWhileProcessingDoesNotReenter(t *testing.T) {
	release := make(chan struct{})
	var calls int32
	agg := NewAggregator(Config{
		OnSubmit: func(string) error {
			atomic.AddInt32(&calls, 1)
			<-release
			return nil
		},
	})

	agg.Queue(styleChange("btn-1", "src/App.jsx", map[string]string{"color": "#fff"}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		agg.Flush()
	}()

	// Wait until the first submission is in flight.
	require.Eventually(t, agg.IsProcessing, time.Second, time.Millisecond)

	// A second flush must bail out instead of starting another submission.
	agg.Queue(styleChange("btn-2", "src/App.jsx", map[string]string{"color": "#000"}))
	agg.Flush()
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	// The change queued mid-flight stays pending for the next wave.
	assert.Equal(t, 1, agg.PendingCount())

	close(release)
	wg.Wait()
	assert.False(t, agg.IsProcessing())

	agg.Flush()
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestStylePreviewFiresImmediately(t *testing.T) {
	var previewed map[string]string
	agg := NewAggregator(Config{
		OnSubmit:  func(string) error { return nil },
		OnPreview: func(id string, styles map[string]string) { previewed = styles },
	})

	agg.Queue(styleChange("btn-1", "src/App.jsx", map[string]string{"color": "red"}))

	// The preview callback ran synchronously inside Queue, before any
	// debounce and independent of submission.
	assert.Equal(t, map[string]string{"color": "red"}, previewed)
}

func TestClearDiscardsWithoutSubmitting(t *testing.T) {
	var calls int32
	agg := NewAggregator(Config{
		Interval: 20 * time.Millisecond,
		OnSubmit: func(string) error {
			atomic.AddInt32(&calls, 1)
			return nil
		},
	})

	agg.Queue(styleChange("btn-1", "src/App.jsx", map[string]string{"color": "#fff"}))
	agg.Clear()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&calls))
	assert.Zero(t, agg.PendingCount())
}

func TestSubmissionFailureReportsAndDropsBatch(t *testing.T) {
	boom := errors.New("backend down")
	var reported error
	var calls int32
	agg := NewAggregator(Config{
		OnSubmit: func(string) error {
			atomic.AddInt32(&calls, 1)
			return boom
		},
		OnError: func(err error) { reported = err },
	})

	agg.Queue(styleChange("btn-1", "src/App.jsx", map[string]string{"color": "#fff"}))
	agg.Flush()

	assert.ErrorIs(t, reported, boom)
	assert.False(t, agg.IsProcessing())
	assert.Zero(t, agg.PendingCount(), "failed batch must not be re-queued")

	// The aggregator keeps working after a failure.
	agg.Queue(styleChange("btn-1", "src/App.jsx", map[string]string{"color": "#000"}))
	agg.Flush()
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestFlushWithEmptyQueueIsNoop(t *testing.T) {
	var calls int32
	agg := NewAggregator(Config{
		OnSubmit: func(string) error {
			atomic.AddInt32(&calls, 1)
			return nil
		},
	})

	agg.Flush()
	assert.Zero(t, atomic.LoadInt32(&calls))
}
