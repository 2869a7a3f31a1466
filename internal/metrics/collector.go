package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector provides simple built-in metrics collection with no external dependencies
type Collector struct {
	viewMetrics       *ViewMetrics
	operationCounters map[string]*int64
	mu                sync.RWMutex
	startTime         time.Time
}

// ViewMetrics tracks rendering and reconciliation counters
type ViewMetrics struct {
	// Full renders
	Renders        int64 `json:"renders"`
	MarkupReturned int64 `json:"markup_returned"`
	EmptyRenders   int64 `json:"empty_renders"`

	// Status templates
	SpinnerRenders int64 `json:"spinner_renders"`
	ErrorRenders   int64 `json:"error_renders"`
	MessageRenders int64 `json:"message_renders"`

	// Reconciliation
	Updates          int64 `json:"updates"`
	TextPatches      int64 `json:"text_patches"`
	AttrPatches      int64 `json:"attr_patches"`
	SkippedNodes     int64 `json:"skipped_nodes"`
	ShapeMismatches  int64 `json:"shape_mismatches"`
	GenerationErrors int64 `json:"generation_errors"`

	// Uptime
	StartTime time.Time     `json:"start_time"`
	Uptime    time.Duration `json:"uptime"`
}

// NewCollector creates a new metrics collector
func NewCollector() *Collector {
	return &Collector{
		viewMetrics: &ViewMetrics{
			StartTime: time.Now(),
		},
		operationCounters: make(map[string]*int64),
		startTime:         time.Now(),
	}
}

// IncrementRender records a full render; attached is false when only the
// markup string was returned to the caller
func (c *Collector) IncrementRender(attached bool) {
	if attached {
		atomic.AddInt64(&c.viewMetrics.Renders, 1)
		return
	}
	atomic.AddInt64(&c.viewMetrics.MarkupReturned, 1)
}

// IncrementEmptyRender records data that was routed to the error state
func (c *Collector) IncrementEmptyRender() {
	atomic.AddInt64(&c.viewMetrics.EmptyRenders, 1)
}

// IncrementSpinner records a spinner render
func (c *Collector) IncrementSpinner() {
	atomic.AddInt64(&c.viewMetrics.SpinnerRenders, 1)
}

// IncrementErrorRender records an error template render
func (c *Collector) IncrementErrorRender() {
	atomic.AddInt64(&c.viewMetrics.ErrorRenders, 1)
}

// IncrementMessage records a message template render
func (c *Collector) IncrementMessage() {
	atomic.AddInt64(&c.viewMetrics.MessageRenders, 1)
}

// RecordUpdate records one reconciliation and the patches it applied
func (c *Collector) RecordUpdate(textPatches, attrPatches, skipped int) {
	atomic.AddInt64(&c.viewMetrics.Updates, 1)
	atomic.AddInt64(&c.viewMetrics.TextPatches, int64(textPatches))
	atomic.AddInt64(&c.viewMetrics.AttrPatches, int64(attrPatches))
	if skipped > 0 {
		atomic.AddInt64(&c.viewMetrics.SkippedNodes, int64(skipped))
		atomic.AddInt64(&c.viewMetrics.ShapeMismatches, 1)
	}
}

// IncrementGenerationError records a markup generation failure
func (c *Collector) IncrementGenerationError() {
	atomic.AddInt64(&c.viewMetrics.GenerationErrors, 1)
}

// IncrementCustomCounter increments a custom named counter
func (c *Collector) IncrementCustomCounter(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, exists := c.operationCounters[name]; exists {
		atomic.AddInt64(counter, 1)
	} else {
		var newCounter int64 = 1
		c.operationCounters[name] = &newCounter
	}
}

// GetMetrics returns a snapshot of the current counters
func (c *Collector) GetMetrics() ViewMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return ViewMetrics{
		Renders:          atomic.LoadInt64(&c.viewMetrics.Renders),
		MarkupReturned:   atomic.LoadInt64(&c.viewMetrics.MarkupReturned),
		EmptyRenders:     atomic.LoadInt64(&c.viewMetrics.EmptyRenders),
		SpinnerRenders:   atomic.LoadInt64(&c.viewMetrics.SpinnerRenders),
		ErrorRenders:     atomic.LoadInt64(&c.viewMetrics.ErrorRenders),
		MessageRenders:   atomic.LoadInt64(&c.viewMetrics.MessageRenders),
		Updates:          atomic.LoadInt64(&c.viewMetrics.Updates),
		TextPatches:      atomic.LoadInt64(&c.viewMetrics.TextPatches),
		AttrPatches:      atomic.LoadInt64(&c.viewMetrics.AttrPatches),
		SkippedNodes:     atomic.LoadInt64(&c.viewMetrics.SkippedNodes),
		ShapeMismatches:  atomic.LoadInt64(&c.viewMetrics.ShapeMismatches),
		GenerationErrors: atomic.LoadInt64(&c.viewMetrics.GenerationErrors),
		StartTime:        c.viewMetrics.StartTime,
		Uptime:           time.Since(c.startTime),
	}
}

// GetCustomCounters returns all custom counters
func (c *Collector) GetCustomCounters() map[string]int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]int64)
	for name, counter := range c.operationCounters {
		result[name] = atomic.LoadInt64(counter)
	}
	return result
}

// Reset resets all metrics to zero
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, counter := range []*int64{
		&c.viewMetrics.Renders,
		&c.viewMetrics.MarkupReturned,
		&c.viewMetrics.EmptyRenders,
		&c.viewMetrics.SpinnerRenders,
		&c.viewMetrics.ErrorRenders,
		&c.viewMetrics.MessageRenders,
		&c.viewMetrics.Updates,
		&c.viewMetrics.TextPatches,
		&c.viewMetrics.AttrPatches,
		&c.viewMetrics.SkippedNodes,
		&c.viewMetrics.ShapeMismatches,
		&c.viewMetrics.GenerationErrors,
	} {
		atomic.StoreInt64(counter, 0)
	}

	// Reset custom counters
	c.operationCounters = make(map[string]*int64)

	// Reset start time
	c.startTime = time.Now()
	c.viewMetrics.StartTime = c.startTime
}

// GetPatchesPerUpdate returns the average number of patches applied per update
func (c *Collector) GetPatchesPerUpdate() float64 {
	updates := atomic.LoadInt64(&c.viewMetrics.Updates)
	if updates == 0 {
		return 0.0
	}

	patches := atomic.LoadInt64(&c.viewMetrics.TextPatches) + atomic.LoadInt64(&c.viewMetrics.AttrPatches)
	return float64(patches) / float64(updates)
}

// GetMismatchRate returns the percentage of updates whose trees differed in shape
func (c *Collector) GetMismatchRate() float64 {
	updates := atomic.LoadInt64(&c.viewMetrics.Updates)
	if updates == 0 {
		return 0.0
	}

	return float64(atomic.LoadInt64(&c.viewMetrics.ShapeMismatches)) / float64(updates) * 100.0
}
