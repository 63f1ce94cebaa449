package client

import (
	"context"
	"crypto/sha256"
	"log/slog"
	"sync"
	"time"

	"github.com/groblegark/bdclient/internal/rpc"
	"github.com/groblegark/bdclient/internal/transport"
)

// DefaultPollInterval is how often the poller samples when no interval is
// configured.
const DefaultPollInterval = 2 * time.Second

// Poller detects data changes by periodically sampling the stats operation
// and fingerprinting the raw response. Stats is cheap for the daemon to
// answer and any mutation shifts at least one of its counters.
type Poller struct {
	tr       transport.Transport
	interval time.Duration
	onChange func()
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	last    [sha256.Size]byte
	hasLast bool
}

// NewPoller creates a stopped poller. onChange runs on the poller's
// goroutine whenever consecutive samples differ.
func NewPoller(tr transport.Transport, interval time.Duration, onChange func()) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		tr:       tr,
		interval: interval,
		onChange: onChange,
		logger:   slog.Default(),
	}
}

// Start begins sampling. The first sample is taken immediately and only
// establishes the baseline; it never fires onChange. Starting a running
// poller has no effect.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

// Stop halts sampling and waits for the polling goroutine to exit.
// Stopping a stopped poller has no effect.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.sample(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sample(ctx)
		}
	}
}

// sample takes one fingerprint. A failed sample is skipped without firing
// or clearing the baseline; transient daemon hiccups should not look like
// data changes.
func (p *Poller) sample(ctx context.Context) {
	data, err := p.tr.Send(ctx, rpc.OpStats, rpc.StatsArgs{})
	if err != nil {
		p.logger.Debug("change poll failed", "error", err)
		return
	}
	sum := sha256.Sum256(data)
	if p.hasLast && sum != p.last {
		p.last = sum
		p.onChange()
		return
	}
	p.last = sum
	p.hasLast = true
}
