// Package form holds the book creation form state machine: field edits,
// the validation gate, and the submission lifecycle.
package form

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"bookcatalog/internal/book"
)

// Phase tracks a single creation attempt.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

// Field identifies one form input.
type Field string

const (
	FieldTitle     Field = "title"
	FieldAuthor    Field = "author"
	FieldPublisher Field = "publisher"
	FieldPrice     Field = "price"
	FieldISBN      Field = "isbn"
)

// Fields holds the raw input strings as typed by the user.
type Fields struct {
	Title     string
	Author    string
	Publisher string
	Price     string
	ISBN      string
}

// State is an immutable snapshot the UI renders from.
type State struct {
	Phase   Phase
	Fields  Fields
	Errors  book.FormErrors
	Created book.Book // set when PhaseSucceeded
	Err     string    // set when PhaseFailed
}

// Options tune a Controller. Zero values pick the defaults. The hooks are
// invoked with the controller lock held and must not call back into it.
type Options struct {
	// NavigateAfter is the delay between a successful submission and the
	// automatic navigation back to the search view.
	NavigateAfter time.Duration
	// SubmitTimeout bounds the repository insert.
	SubmitTimeout time.Duration
	// OnNavigate fires NavigateAfter after success; the routing collaborator
	// returns the user to the search view with an empty query.
	OnNavigate func()
	// OnChange fires on every state transition.
	OnChange func(State)
}

const (
	defaultNavigateAfter = 2 * time.Second
	defaultSubmitTimeout = 5 * time.Second
)

// Controller orchestrates validation and submission of one creation form.
// A controller is created per session and discarded on navigation away.
type Controller struct {
	repo book.Repository
	opts Options

	mu    sync.Mutex
	state State
}

func NewController(repo book.Repository, opts Options) *Controller {
	if opts.NavigateAfter <= 0 {
		opts.NavigateAfter = defaultNavigateAfter
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = defaultSubmitTimeout
	}
	return &Controller{repo: repo, opts: opts}
}

// SetField records an edit. The edited field's error clears immediately
// without re-validating, and editing after a failed submission returns the
// form to idle. Edits are ignored while submitting or after success, when
// the controls are disabled.
func (c *Controller) SetField(f Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.Phase {
	case PhaseSubmitting, PhaseSucceeded:
		return
	case PhaseFailed:
		c.state.Phase = PhaseIdle
		c.state.Err = ""
	}

	switch f {
	case FieldTitle:
		c.state.Fields.Title = value
		c.state.Errors.Title = ""
	case FieldAuthor:
		c.state.Fields.Author = value
		c.state.Errors.Author = ""
	case FieldPublisher:
		c.state.Fields.Publisher = value
		c.state.Errors.Publisher = ""
	case FieldPrice:
		c.state.Fields.Price = value
		c.state.Errors.Price = ""
	case FieldISBN:
		c.state.Fields.ISBN = value
		c.state.Errors.ISBN = ""
	default:
		return
	}
	c.notifyLocked()
}

// Submit validates the current fields and, when clean, persists them
// asynchronously. Calls while submitting or after success are no-ops.
func (c *Controller) Submit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state.Phase {
	case PhaseSubmitting, PhaseSucceeded:
		return
	}

	f := c.state.Fields
	errs := book.Validate(f.Title, f.Author, f.Publisher, f.Price, f.ISBN)
	if errs.HasErrors() {
		c.state.Phase = PhaseIdle
		c.state.Errors = errs
		c.notifyLocked()
		return
	}

	price, err := strconv.Atoi(strings.TrimSpace(f.Price))
	if err != nil {
		// Validate guarantees a parsable price; treat anything else as a
		// fresh validation failure rather than submitting garbage.
		c.state.Phase = PhaseIdle
		c.state.Errors = book.FormErrors{Price: "price must be a positive integer"}
		c.notifyLocked()
		return
	}

	formData := book.CreateBookForm{
		Title:     f.Title,
		Author:    f.Author,
		Publisher: f.Publisher,
		Price:     price,
		ISBN:      f.ISBN,
	}
	c.state.Phase = PhaseSubmitting
	c.state.Errors = book.FormErrors{}
	c.state.Err = ""
	c.notifyLocked()
	go c.submit(formData)
}

func (c *Controller) submit(formData book.CreateBookForm) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opts.SubmitTimeout)
	defer cancel()
	created, err := c.repo.Create(ctx, formData)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != PhaseSubmitting {
		return
	}
	if err != nil {
		c.state.Phase = PhaseFailed
		c.state.Err = "could not save book: " + err.Error()
		c.notifyLocked()
		return
	}

	c.state.Phase = PhaseSucceeded
	c.state.Created = created
	c.notifyLocked()
	if c.opts.OnNavigate != nil {
		// Fire-and-forget: the success transition is already visible.
		time.AfterFunc(c.opts.NavigateAfter, c.opts.OnNavigate)
	}
}

func (c *Controller) notifyLocked() {
	if c.opts.OnChange != nil {
		c.opts.OnChange(c.state)
	}
}

// State returns the latest snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
