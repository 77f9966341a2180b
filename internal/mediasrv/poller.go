package mediasrv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rberon/strmctl/internal/bus"
	"github.com/rberon/strmctl/internal/status"
	"go.uber.org/zap"
)

const defaultInterval = 2 * time.Second

// Poller periodically queries the server API, publishes stats.updated
// snapshots and flips the session between LIVE and DEGRADED based on
// API reachability.
type Poller struct {
	apiURL   string
	client   *http.Client
	bus      *bus.Bus
	machine  *status.Machine
	logger   *zap.Logger
	interval time.Duration
	cancel   context.CancelFunc

	mu   sync.RWMutex
	last Snapshot
}

// NewPoller creates a poller for the API at apiAddr (host:port).
func NewPoller(apiAddr string, m *status.Machine, b *bus.Bus, logger *zap.Logger) *Poller {
	return &Poller{
		apiURL:   fmt.Sprintf("http://%s/v3/paths/list", apiAddr),
		client:   &http.Client{Timeout: 3 * time.Second},
		bus:      b,
		machine:  m,
		logger:   logger,
		interval: defaultInterval,
	}
}

// Start begins the poll loop.
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	go p.loop(ctx)
}

// Stop halts the poll loop.
func (p *Poller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}

// Last returns the most recent snapshot.
func (p *Poller) Last() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

func (p *Poller) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	snap, err := p.fetch(ctx)
	if err != nil {
		// Only a live session degrades; a stopped server is expected
		// to be unreachable.
		if p.machine.Current() == status.Live {
			p.logger.Warn("server api unreachable", zap.Error(err))
			_ = p.machine.Transition(status.Degraded, err.Error())
			p.bus.Emit(bus.KindServerDegraded, err.Error())
		}
		return
	}

	if p.machine.Current() == status.Degraded {
		_ = p.machine.Transition(status.Live, "")
		p.bus.Emit(bus.KindServerRecovered, nil)
	}

	p.mu.Lock()
	prev := p.last
	p.last = snap
	p.mu.Unlock()

	p.publishDiffs(prev, snap)
	p.bus.Emit(bus.KindStatsUpdated, snap)
}

func (p *Poller) fetch(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL, nil)
	if err != nil {
		return Snapshot{}, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return Snapshot{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("server api status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Snapshot{}, err
	}
	return ParsePaths(body)
}

// publishDiffs emits publisher up/gone events by comparing snapshots.
func (p *Poller) publishDiffs(prev, cur Snapshot) {
	ready := func(s Snapshot) map[string]bool {
		m := make(map[string]bool, len(s.Paths))
		for _, path := range s.Paths {
			if path.Ready {
				m[path.Name] = true
			}
		}
		return m
	}
	was, is := ready(prev), ready(cur)
	for name := range is {
		if !was[name] {
			p.bus.Emit(bus.KindStatsPublisherUp, name)
		}
	}
	for name := range was {
		if !is[name] {
			p.bus.Emit(bus.KindStatsPublisherGn, name)
		}
	}
}
