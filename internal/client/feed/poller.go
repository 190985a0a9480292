// Package feed keeps the chat view's message list fresh by polling.
//
// A Poller belongs to one chat view. The view calls Start when it opens and
// Stop when it closes; no fetch or callback happens after Stop returns, even
// when Stop races the poller's first tick.
package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/corpchat/internal/client/models"
	"github.com/dmitrijs2005/corpchat/internal/logging"
)

const DefaultInterval = 3 * time.Second

var ErrAlreadyStarted = errors.New("poller already started")

type FetchFunc func(ctx context.Context) (*models.MessagePage, error)

type Options struct {
	// Interval between fetches. Zero means DefaultInterval.
	Interval time.Duration
	// Active gates every fetch; polling is skipped while it returns false.
	// Nil means always active.
	Active func() bool
	// OnUpdate receives each fetched page.
	OnUpdate func(*models.MessagePage)
	// OnError receives the fetch error that paused the poller.
	OnError func(error)
	Logger  logging.Logger
}

type Poller struct {
	fetch FetchFunc
	opts  Options

	retry chan struct{}
	done  chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
	running bool
	cancel  context.CancelFunc
	lastErr error
}

func New(fetch FetchFunc, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Active == nil {
		opts.Active = func() bool { return true }
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop{}
	}
	opts.Logger = opts.Logger.With("module", "feed")

	return &Poller{
		fetch: fetch,
		opts:  opts,
		retry: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Start marks the poller as running and polls in a new goroutine. A Stop
// issued any time after Start returns is honored.
func (p *Poller) Start(ctx context.Context) error {
	ctx, cancel, err := p.begin(ctx)
	if err != nil || cancel == nil {
		return err
	}
	go p.loop(ctx, cancel)
	return nil
}

// Run fetches immediately and then once per interval until ctx is cancelled
// or Stop is called. After a failed fetch the poller is paused until Retry.
// A Poller runs at most once; Run after Stop returns without fetching.
func (p *Poller) Run(ctx context.Context) error {
	ctx, cancel, err := p.begin(ctx)
	if err != nil || cancel == nil {
		return err
	}
	p.loop(ctx, cancel)
	return nil
}

// begin claims the poller. A nil cancel means Stop came first and there is
// nothing to run.
func (p *Poller) begin(ctx context.Context) (context.Context, context.CancelFunc, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil, nil, ErrAlreadyStarted
	}
	p.started = true
	if p.stopped {
		p.cancel = func() {}
		close(p.done)
		return nil, nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	p.running = true
	p.cancel = cancel
	return ctx, cancel, nil
}

func (p *Poller) loop(ctx context.Context, cancel context.CancelFunc) {
	ticker := time.NewTicker(p.opts.Interval)
	defer func() {
		ticker.Stop()
		cancel()
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
		close(p.done)
	}()

	if !p.poll(ctx) {
		ticker.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.poll(ctx) {
				ticker.Stop()
			}
		case <-p.retry:
			p.setErr(nil)
			if p.poll(ctx) {
				ticker.Reset(p.opts.Interval)
			} else {
				ticker.Stop()
			}
		}
	}
}

// poll performs one fetch and reports whether polling should continue.
// Results arriving after cancellation are dropped.
func (p *Poller) poll(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	if !p.opts.Active() {
		p.opts.Logger.Debug(ctx, "session inactive, skipping fetch")
		return true
	}

	page, err := p.fetch(ctx)
	if ctx.Err() != nil {
		return true
	}
	if err != nil {
		p.opts.Logger.Warn(ctx, "feed paused", "error", err)
		p.setErr(err)
		if p.opts.OnError != nil {
			p.opts.OnError(err)
		}
		return false
	}

	if p.opts.OnUpdate != nil {
		p.opts.OnUpdate(page)
	}
	return true
}

// Retry clears the displayed error and fetches again. It does nothing if the
// poller is not running.
func (p *Poller) Retry() {
	if !p.Running() {
		return
	}
	select {
	case p.retry <- struct{}{}:
	default:
	}
}

// Stop cancels the poller and waits for its loop to return. Safe to call
// more than once. A Stop before Start or Run keeps the poller from ever
// fetching.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.stopped = true
	started, cancel := p.started, p.cancel
	p.mu.Unlock()

	if !started {
		return
	}
	cancel()
	<-p.done
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Err is the error that paused the poller, or nil while it is polling.
func (p *Poller) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *Poller) setErr(err error) {
	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()
}
