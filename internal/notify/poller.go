// Package notify keeps the unread counters live: a visibility-aware poller
// for personal notifications and broadcast notices, and the persisted
// "last seen" marker the notice counter is derived from.
package notify

import (
	"sync"
	"time"

	"grievgo/backend/internal/api"
	"grievgo/backend/internal/config"
	"grievgo/backend/pkg/logger"
)

// Counts is the pair of unread counters published to subscribers.
type Counts struct {
	UnreadPersonal int
	UnreadNotices  int
}

// Subscriber receives every published counter update.
type Subscriber func(Counts)

// VisibilitySource is the host's foreground/background signal. It is a
// minimal interface so the scheduling logic is testable without a real
// host environment.
type VisibilitySource interface {
	OnForegroundChange(fn func(foreground bool))
}

// Poller periodically refreshes both unread counters. It has two states,
// stopped and running; Start is idempotent and always clears any previous
// timer before installing a new one, so two Start calls never produce two
// tickers.
type Poller struct {
	Backend api.Backend
	Store   SeenStore

	// Interval between ticks; DefaultPollInterval when zero.
	Interval time.Duration

	// RoleGate suppresses fetching for roles without notifications.
	// A nil gate means always fetch.
	RoleGate func() bool

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	sub     Subscriber
	last    Counts
}

// NewPoller creates a poller over the given backend and seen-marker store.
func NewPoller(backend api.Backend, store SeenStore, interval time.Duration) *Poller {
	return &Poller{Backend: backend, Store: store, Interval: interval}
}

// Start begins periodic polling, replacing any previous schedule.
func (p *Poller) Start(sub Subscriber) {
	p.mu.Lock()
	if p.running {
		close(p.stopCh)
	}
	if sub != nil {
		p.sub = sub
	}
	p.running = true
	p.stopCh = make(chan struct{})
	stopCh := p.stopCh
	interval := p.Interval
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}
	p.mu.Unlock()

	go p.loop(stopCh, interval)
}

// Stop clears the timer. Safe to call when already stopped.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	close(p.stopCh)
	p.running = false
}

// Running reports whether a poll schedule is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// RefreshNow fetches and publishes both counters immediately, independent
// of the tick schedule.
func (p *Poller) RefreshNow() {
	p.refresh()
}

// BindVisibility couples the poller to the host foreground signal: going to
// background stops polling, returning to foreground refreshes once and
// restarts the schedule. This avoids both polling nobody can see and a
// burst of stale ticks on resume.
func (p *Poller) BindVisibility(src VisibilitySource) {
	src.OnForegroundChange(func(foreground bool) {
		if foreground {
			p.RefreshNow()
			p.Start(nil)
		} else {
			p.Stop()
		}
	})
}

// MarkNoticesSeen persists the seen marker at the given time and publishes
// a zero notice counter immediately. No network round-trip is needed: the
// unread-notice invariant is purely a time comparison, and the next tick
// recomputes it consistently with the stored marker.
func (p *Poller) MarkNoticesSeen(now time.Time) error {
	if err := p.Store.SetLastNoticeSeen(now); err != nil {
		return err
	}

	p.mu.Lock()
	p.last.UnreadNotices = 0
	counts := p.last
	sub := p.sub
	p.mu.Unlock()

	if sub != nil {
		sub(counts)
	}
	return nil
}

func (p *Poller) loop(stopCh chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.refresh()
		case <-stopCh:
			return
		}
	}
}

func (p *Poller) refresh() {
	if p.RoleGate != nil && !p.RoleGate() {
		return
	}

	personal, err := p.Backend.UnreadNotificationCount()
	if err != nil {
		logger.Warn().Err(err).Msg("unread notification fetch failed")
		return
	}

	notices, err := p.Backend.ListNotices()
	if err != nil {
		logger.Warn().Err(err).Msg("notice fetch failed")
		return
	}

	marker, hasMarker := p.Store.LastNoticeSeen()
	unreadNotices := 0
	for _, n := range notices {
		if !hasMarker || n.CreatedAt.After(marker) {
			unreadNotices++
		}
	}

	counts := Counts{UnreadPersonal: personal, UnreadNotices: unreadNotices}

	p.mu.Lock()
	p.last = counts
	sub := p.sub
	p.mu.Unlock()

	if sub != nil {
		sub(counts)
	}
}
