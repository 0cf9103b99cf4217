package search_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu     sync.Mutex
	calls  []string
	search func(ctx context.Context, query string) ([]book.Book, error)
}

func (f *fakeRepo) Search(ctx context.Context, query string) ([]book.Book, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	fn := f.search
	f.mu.Unlock()
	return fn(ctx, query)
}

func (f *fakeRepo) Create(ctx context.Context, form book.CreateBookForm) (book.Book, error) {
	return book.Book{}, errors.New("not implemented")
}

func (f *fakeRepo) callsSnapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func waitForStatus(t *testing.T, changes <-chan search.State, want search.Status) search.State {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-changes:
			if s.Status == want {
				return s
			}
		case <-deadline:
			t.Fatalf("timed out waiting for status %v", want)
		}
	}
}

func TestController_DebounceTrailingEdge(t *testing.T) {
	rustBooks := []book.Book{{ID: 1, Title: "Programming Rust", Author: "Jim Blandy"}}
	repo := &fakeRepo{search: func(ctx context.Context, q string) ([]book.Book, error) {
		return rustBooks, nil
	}}

	changes := make(chan search.State, 16)
	c := search.NewController(repo, search.Options{
		Debounce: 40 * time.Millisecond,
		OnChange: func(s search.State) { changes <- s },
	})
	defer c.Close()

	// Rapid keystrokes within the idle window: only the final value fires.
	c.SetQuery("R")
	time.Sleep(10 * time.Millisecond)
	c.SetQuery("Ru")
	time.Sleep(10 * time.Millisecond)
	c.SetQuery("Rust")

	state := waitForStatus(t, changes, search.StatusSuccess)
	assert.Equal(t, "Rust", state.Query)
	assert.Equal(t, rustBooks, state.Books)

	// Let any stray timers fire before checking the call log.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{"Rust"}, repo.callsSnapshot())
}

func TestController_StaleLookupDiscarded(t *testing.T) {
	booksA := []book.Book{{ID: 1, Title: "A Book"}}
	booksB := []book.Book{{ID: 2, Title: "B Book"}}
	release := make(chan struct{})

	repo := &fakeRepo{search: func(ctx context.Context, q string) ([]book.Book, error) {
		if q == "A" {
			<-release // hold the first lookup until after the second resolves
			return booksA, nil
		}
		return booksB, nil
	}}

	changes := make(chan search.State, 16)
	c := search.NewController(repo, search.Options{
		OnChange: func(s search.State) { changes <- s },
	})
	defer c.Close()

	c.SetQuery("A")
	c.Flush()
	c.SetQuery("B")
	c.Flush()

	state := waitForStatus(t, changes, search.StatusSuccess)
	assert.Equal(t, "B", state.Query)
	assert.Equal(t, booksB, state.Books)

	// Now let the stale "A" lookup resolve; it must not overwrite "B".
	close(release)
	time.Sleep(100 * time.Millisecond)

	final := c.State()
	assert.Equal(t, search.StatusSuccess, final.Status)
	assert.Equal(t, "B", final.Query)
	assert.Equal(t, booksB, final.Books)
}

func TestController_LookupFailure(t *testing.T) {
	repo := &fakeRepo{search: func(ctx context.Context, q string) ([]book.Book, error) {
		return nil, &book.PersistenceError{Op: "search books", Err: errors.New("connection refused")}
	}}

	changes := make(chan search.State, 16)
	c := search.NewController(repo, search.Options{
		OnChange: func(s search.State) { changes <- s },
	})
	defer c.Close()

	c.SetQuery("anything")
	c.Flush()

	state := waitForStatus(t, changes, search.StatusFailure)
	assert.Contains(t, state.Err, "connection refused")
}

func TestController_CommitReflectsQueryToNavigation(t *testing.T) {
	repo := &fakeRepo{search: func(ctx context.Context, q string) ([]book.Book, error) {
		return nil, nil
	}}

	var mu sync.Mutex
	var committed []string
	changes := make(chan search.State, 16)
	c := search.NewController(repo, search.Options{
		Debounce: 20 * time.Millisecond,
		OnCommit: func(q string) {
			mu.Lock()
			committed = append(committed, q)
			mu.Unlock()
		},
		OnChange: func(s search.State) { changes <- s },
	})
	defer c.Close()

	c.SetQuery("Rust")
	waitForStatus(t, changes, search.StatusSuccess)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"Rust"}, committed)
}

func TestController_CloseStopsCommits(t *testing.T) {
	repo := &fakeRepo{search: func(ctx context.Context, q string) ([]book.Book, error) {
		return nil, nil
	}}

	c := search.NewController(repo, search.Options{Debounce: 10 * time.Millisecond})
	c.SetQuery("Rust")
	c.Close()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, repo.callsSnapshot())
}
