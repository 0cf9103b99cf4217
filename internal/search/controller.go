// Package search holds the per-session live search state machine: raw query
// input is debounced, committed queries trigger repository lookups, and only
// the most recently issued lookup may set the visible state.
package search

import (
	"context"
	"sync"
	"time"

	"bookcatalog/internal/book"
)

// Status describes the outcome of the most recent committed lookup.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusFailure
)

// State is an immutable snapshot the UI renders from.
type State struct {
	Status Status
	Query  string      // last committed query
	Books  []book.Book // set when StatusSuccess
	Err    string      // set when StatusFailure
}

// Options tune a Controller. Zero values pick the defaults. The hooks are
// invoked with the controller lock held and must not call back into it.
type Options struct {
	// Debounce is the idle interval after the last keystroke before the
	// pending query commits.
	Debounce time.Duration
	// LookupTimeout bounds each repository lookup.
	LookupTimeout time.Duration
	// OnCommit fires when a debounced query commits, so the routing
	// collaborator can reflect it into the navigable query string.
	OnCommit func(query string)
	// OnChange fires on every state transition.
	OnChange func(State)
}

const (
	defaultDebounce      = time.Second
	defaultLookupTimeout = 5 * time.Second
)

// Controller debounces query input and reconciles lookup results. Lookups
// are tagged with a monotonically increasing sequence number; a lookup that
// resolves after a newer one was issued is discarded, so the final state is
// last-write-wins by issuance order, not completion order.
type Controller struct {
	repo book.Repository
	opts Options

	mu       sync.Mutex
	pending  string
	timer    *time.Timer
	timerGen uint64 // invalidates stale debounce fires
	seq      uint64 // incremented per committed lookup
	state    State
	closed   bool
}

func NewController(repo book.Repository, opts Options) *Controller {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = defaultLookupTimeout
	}
	return &Controller{repo: repo, opts: opts}
}

// SetQuery captures raw input immediately and re-arms the debounce timer.
// Only the final value within the idle window commits (trailing edge).
func (c *Controller) SetQuery(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.pending = raw
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timerGen++
	gen := c.timerGen
	c.timer = time.AfterFunc(c.opts.Debounce, func() {
		c.fireDebounce(gen)
	})
}

func (c *Controller) fireDebounce(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.timerGen {
		// A newer keystroke re-armed the timer while this fire was pending.
		return
	}
	c.timer = nil
	c.commitLocked()
}

// Flush commits the pending query immediately, bypassing the debounce wait.
// Used for the initial lookup when a session starts with a bookmarked query.
func (c *Controller) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGen++
	c.commitLocked()
}

func (c *Controller) commitLocked() {
	if c.closed {
		return
	}
	query := c.pending
	c.seq++
	seq := c.seq
	c.setStateLocked(State{Status: StatusLoading, Query: query})
	if c.opts.OnCommit != nil {
		c.opts.OnCommit(query)
	}
	go c.lookup(seq, query)
}

func (c *Controller) lookup(seq uint64, query string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.LookupTimeout)
	defer cancel()
	books, err := c.repo.Search(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		// A newer lookup was issued while this one was in flight.
		return
	}
	if err != nil {
		c.setStateLocked(State{Status: StatusFailure, Query: query, Err: err.Error()})
		return
	}
	c.setStateLocked(State{Status: StatusSuccess, Query: query, Books: books})
}

func (c *Controller) setStateLocked(s State) {
	c.state = s
	if c.opts.OnChange != nil {
		c.opts.OnChange(s)
	}
}

// State returns the latest snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close stops the debounce timer and invalidates in-flight lookups. Called
// when the session navigates away.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGen++
	c.seq++
}
