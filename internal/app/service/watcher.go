package service

import (
	"context"
	"sync"
	"time"

	"mcp_market/internal/app/port"
	"mcp_market/internal/pkg/metrics"
)

// FetchFunc produces one fresh snapshot of polled data.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Snapshot is the current state of a Poller. InitialLoading is true only
// until the very first fetch settles; Refreshing is true while a later fetch
// is in flight. On a failed refresh Data keeps its last good value and Err
// carries the failure.
type Snapshot[T any] struct {
	Data           T
	Err            error
	InitialLoading bool
	Refreshing     bool
	UpdatedAt      time.Time
}

// Poller periodically re-fetches a value on a fixed interval, starting with
// an immediate fetch. Fetches are numbered as they are issued and a response
// is applied only while it is still the newest issued fetch, so a slow
// response can never overwrite a fresher one.
type Poller[T any] struct {
	fetch    FetchFunc[T]
	interval time.Duration
	logger   port.Logger

	mu         sync.Mutex
	snap       Snapshot[T]
	issued     uint64
	lastAccess time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates and starts a poller.
func NewPoller[T any](fetch FetchFunc[T], interval time.Duration, log port.Logger) *Poller[T] {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller[T]{
		fetch:    fetch,
		interval: interval,
		logger:   log,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	p.snap.InitialLoading = true
	p.lastAccess = time.Now()

	metrics.ActivePollers.Inc()
	go p.loop(ctx)
	return p
}

func (p *Poller[T]) loop(ctx context.Context) {
	defer close(p.done)
	defer metrics.ActivePollers.Dec()

	p.issue(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.issue(ctx)
		}
	}
}

// issue starts one fetch in its own goroutine. Errors never stop the ticker.
func (p *Poller[T]) issue(ctx context.Context) {
	p.mu.Lock()
	p.issued++
	seq := p.issued
	if !p.snap.InitialLoading {
		p.snap.Refreshing = true
	}
	p.mu.Unlock()

	go func() {
		data, err := p.fetch(ctx)

		p.mu.Lock()
		defer p.mu.Unlock()
		if seq != p.issued {
			metrics.StaleResponsesDropped.Inc()
			p.logger.Debug("Dropping stale poll response", "seq", seq, "newest", p.issued)
			return
		}

		p.snap.InitialLoading = false
		p.snap.Refreshing = false
		p.snap.UpdatedAt = time.Now()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.snap.Err = err
			metrics.RefreshTicks.WithLabelValues("error").Inc()
			p.logger.Warn("Poll fetch failed", "error", err)
			return
		}
		p.snap.Data = data
		p.snap.Err = nil
		metrics.RefreshTicks.WithLabelValues("ok").Inc()
	}()
}

// Snapshot returns the current state and marks the poller as recently used.
func (p *Poller[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastAccess = time.Now()
	return p.snap
}

// idleSince reports the time of the last Snapshot call.
func (p *Poller[T]) idleSince() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastAccess
}

// Stop cancels the poll loop and waits for it to exit. In-flight fetch
// results after Stop are discarded.
func (p *Poller[T]) Stop() {
	p.cancel()
	<-p.done
}

// PollerManager keeps one Poller per key, starting them lazily on first
// access and stopping the ones nobody has looked at for idleTTL.
type PollerManager[T any] struct {
	newFetch func(key string) FetchFunc[T]
	interval time.Duration
	idleTTL  time.Duration
	logger   port.Logger

	mu      sync.Mutex
	pollers map[string]*Poller[T]

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPollerManager creates a manager and starts its idle sweeper.
func NewPollerManager[T any](newFetch func(key string) FetchFunc[T], interval, idleTTL time.Duration, log port.Logger) *PollerManager[T] {
	ctx, cancel := context.WithCancel(context.Background())
	m := &PollerManager[T]{
		newFetch: newFetch,
		interval: interval,
		idleTTL:  idleTTL,
		logger:   log,
		pollers:  make(map[string]*Poller[T]),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go m.sweep(ctx)
	return m
}

// Get returns the snapshot for a key, creating and starting its poller on
// first access.
func (m *PollerManager[T]) Get(key string) Snapshot[T] {
	m.mu.Lock()
	p, ok := m.pollers[key]
	if !ok {
		m.logger.Info("Starting poller", "key", key, "interval", m.interval.String())
		p = NewPoller(m.newFetch(key), m.interval, m.logger)
		m.pollers[key] = p
	}
	m.mu.Unlock()
	return p.Snapshot()
}

func (m *PollerManager[T]) sweep(ctx context.Context) {
	defer close(m.done)
	ticker := time.NewTicker(m.idleTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-m.idleTTL)
			var expired []*Poller[T]
			m.mu.Lock()
			for key, p := range m.pollers {
				if p.idleSince().Before(cutoff) {
					m.logger.Info("Stopping idle poller", "key", key)
					delete(m.pollers, key)
					expired = append(expired, p)
				}
			}
			m.mu.Unlock()
			for _, p := range expired {
				p.Stop()
			}
		}
	}
}

// Stop shuts down the sweeper and every managed poller.
func (m *PollerManager[T]) Stop() {
	m.cancel()
	<-m.done

	m.mu.Lock()
	pollers := make([]*Poller[T], 0, len(m.pollers))
	for key, p := range m.pollers {
		pollers = append(pollers, p)
		delete(m.pollers, key)
	}
	m.mu.Unlock()
	for _, p := range pollers {
		p.Stop()
	}
}
