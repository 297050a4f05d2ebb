package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"newstv/internal/catalog"
	"newstv/internal/config"
	"newstv/internal/domain"
	"newstv/internal/metrics"
	"newstv/internal/observable"
)

const unknownError = "unknown error"

// Controller owns the current filter and view state and coordinates
// headline fetches with filter changes. Only the result of the most
// recently dispatched fetch is ever applied.
type Controller struct {
	provider Provider
	logger   *slog.Logger
	config   config.HeadlinesConfig

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.Mutex
	seq         uint64
	cancelFetch context.CancelFunc
	closed      bool

	filter   *observable.Value[domain.Filter]
	state    *observable.Value[domain.ViewState]
	snapshot *observable.Value[domain.Snapshot]
}

// New creates a controller in the Loading state and starts the first fetch.
// Empty country or category fall back to "us" and "general".
func New(provider Provider, logger *slog.Logger, cfg config.HeadlinesConfig) *Controller {
	filter := domain.DefaultFilter()
	if cfg.Country != "" {
		filter.Country = cfg.Country
	}
	if cfg.Category != "" {
		filter.Category = cfg.Category
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Controller{
		provider: provider,
		logger:   logger.With("component", "controller"),
		config:   cfg,
		ctx:      ctx,
		cancel:   cancel,
		filter:   observable.NewValue(filter),
		state:    observable.NewValue[domain.ViewState](domain.Loading{}),
		snapshot: observable.NewValue(domain.Snapshot{Filter: filter, State: domain.Loading{}}),
	}
	metrics.ViewStateTransitionsTotal.WithLabelValues(domain.KindLoading).Inc()

	c.mu.Lock()
	c.dispatchLocked()
	c.mu.Unlock()

	return c
}

// Filter returns the current filter.
func (c *Controller) Filter() domain.Filter {
	return c.filter.Get()
}

// State returns the current view state.
func (c *Controller) State() domain.ViewState {
	return c.state.Get()
}

// States streams the current view state followed by every applied transition.
func (c *Controller) States(ctx context.Context) <-chan domain.ViewState {
	return c.state.Subscribe(ctx)
}

// Snapshot returns the current filter and view state as one consistent pair.
func (c *Controller) Snapshot() domain.Snapshot {
	return c.snapshot.Get()
}

// Snapshots streams filter and state pairs. Every pair holds the filter that
// was current when the state was applied.
func (c *Controller) Snapshots(ctx context.Context) <-chan domain.Snapshot {
	return c.snapshot.Subscribe(ctx)
}

// Filters streams the current filter followed by every change.
func (c *Controller) Filters(ctx context.Context) <-chan domain.Filter {
	return c.filter.Subscribe(ctx)
}

// Reload refetches headlines for the current filter.
func (c *Controller) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.logger.Debug("reload requested")
	if c.dispatchLocked() {
		c.publishLocked()
	}
}

// SetCountry replaces the filter's country and reloads.
func (c *Controller) SetCountry(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	filter := c.filter.Get().WithCountry(code)
	c.filter.Set(filter)
	c.logger.Info("country changed", "country", filter.Country, "category", filter.Category)
	c.dispatchLocked()
	c.publishLocked()
}

// SetCategory replaces the filter's category and reloads.
func (c *Controller) SetCategory(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	filter := c.filter.Get().WithCategory(name)
	c.filter.Set(filter)
	c.logger.Info("category changed", "country", filter.Country, "category", filter.Category)
	c.dispatchLocked()
	c.publishLocked()
}

// Close cancels outstanding fetches, waits for them to return and ends
// all subscriptions. Commands issued after Close are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()

	c.filter.Close()
	c.state.Close()
	c.snapshot.Close()
	c.logger.Debug("controller closed")
}

// dispatchLocked moves to Loading and starts a fetch tagged with the next
// sequence number. It reports whether the state changed. c.mu must be held.
func (c *Controller) dispatchLocked() bool {
	_, loading := c.state.Get().(domain.Loading)
	if !loading {
		c.applyLocked(domain.Loading{})
	}

	if c.config.CancelSuperseded && c.cancelFetch != nil {
		c.cancelFetch()
	}

	c.seq++
	seq := c.seq
	filter := c.filter.Get()

	var (
		fetchCtx context.Context
		cancel   context.CancelFunc
	)
	if c.config.FetchTimeout > 0 {
		fetchCtx, cancel = context.WithTimeout(c.ctx, c.config.FetchTimeout)
	} else {
		fetchCtx, cancel = context.WithCancel(c.ctx)
	}
	c.cancelFetch = cancel

	c.wg.Add(1)
	metrics.HeadlineFetchesInFlight.Inc()
	go c.fetch(fetchCtx, cancel, seq, filter)
	return !loading
}

func (c *Controller) fetch(ctx context.Context, cancel context.CancelFunc, seq uint64, filter domain.Filter) {
	defer c.wg.Done()
	defer cancel()
	defer metrics.HeadlineFetchesInFlight.Dec()

	logger := c.logger.With(
		"seq", seq,
		"country", filter.Country,
		"category", filter.Category,
	)
	logger.Debug("fetching headlines")

	country, category := metricLabels(filter)

	start := time.Now()
	headlines, err := c.callProvider(ctx, filter)
	metrics.HeadlineFetchDuration.WithLabelValues(country, category).Observe(time.Since(start).Seconds())

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || seq != c.seq {
		metrics.HeadlineFetchesTotal.WithLabelValues(country, category, "superseded").Inc()
		logger.Debug("discarding superseded result", "latest_seq", c.seq)
		return
	}

	if err != nil {
		metrics.HeadlineFetchesTotal.WithLabelValues(country, category, "error").Inc()
		logger.Warn("fetch headlines failed", "error", err)
		c.applyLocked(domain.Error{Message: errorMessage(err)})
		c.publishLocked()
		return
	}

	if headlines == nil {
		headlines = []domain.Headline{}
	}
	metrics.HeadlineFetchesTotal.WithLabelValues(country, category, "success").Inc()
	metrics.HeadlinesServed.WithLabelValues(country, category).Add(float64(len(headlines)))
	logger.Info("headlines loaded", "count", len(headlines), "duration", time.Since(start))
	c.applyLocked(domain.Success{Headlines: headlines})
	c.publishLocked()
}

// callProvider converts a provider panic into an error so nothing escapes
// the controller.
func (c *Controller) callProvider(ctx context.Context, filter domain.Filter) (headlines []domain.Headline, err error) {
	defer func() {
		if r := recover(); r != nil {
			headlines = nil
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	return c.provider.FetchHeadlines(ctx, filter.Country, filter.Category)
}

func (c *Controller) applyLocked(state domain.ViewState) {
	metrics.ViewStateTransitionsTotal.WithLabelValues(state.Kind()).Inc()
	c.state.Set(state)
}

// publishLocked emits the current filter and state as one snapshot. Callers
// invoke it once after a command or fetch result has finished mutating, so
// a snapshot never pairs a state with a filter it was not produced for.
func (c *Controller) publishLocked() {
	c.snapshot.Set(domain.Snapshot{Filter: c.filter.Get(), State: c.state.Get()})
}

// metricLabels keeps label values to the catalog. Filters are free-form, so
// anything else is counted as "other".
func metricLabels(filter domain.Filter) (country, category string) {
	country, category = metrics.OtherLabel, metrics.OtherLabel
	if catalog.IsCountry(filter.Country) {
		country = filter.Country
	}
	if catalog.IsCategory(filter.Category) {
		category = filter.Category
	}
	return country, category
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return unknownError
}
