package listsync

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// SearchOptions configures a search-as-you-type machine.
type SearchOptions[T any] struct {
	Fetch FetchFunc[T]

	// MinLength is the shortest query that triggers a fetch. Default 2.
	MinLength int
	// Limit caps the number of returned suggestions. Default 6.
	Limit int

	DebounceDelay   time.Duration
	DebounceMaxWait time.Duration
}

// SearchState is a snapshot of the dropdown.
type SearchState[T any] struct {
	Query   string
	Results []T
	Loading bool
	Open    bool
	Err     string
}

// SearchMachine drives a suggestion dropdown. Stale completions are
// detected by comparing the term a fetch was dispatched with against
// the query current at completion time.
type SearchMachine[T any] struct {
	fetch     FetchFunc[T]
	minLength int
	limit     int

	ctx       context.Context
	cancel    context.CancelFunc
	debouncer *Debouncer

	mu      sync.Mutex
	query   string
	results []T
	loading bool
	open    bool
	errMsg  string
}

func NewSearchMachine[T any](opts SearchOptions[T]) (*SearchMachine[T], error) {
	if opts.Fetch == nil {
		return nil, fmt.Errorf("fetch function is required")
	}
	if opts.MinLength <= 0 {
		opts.MinLength = 2
	}
	if opts.Limit <= 0 {
		opts.Limit = 6
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &SearchMachine[T]{
		fetch:     opts.Fetch,
		minLength: opts.MinLength,
		limit:     opts.Limit,
		ctx:       ctx,
		cancel:    cancel,
	}
	s.debouncer = NewDebouncer(opts.DebounceDelay, opts.DebounceMaxWait, s.dispatch)
	return s, nil
}

// SetQuery records the typed text. Queries shorter than the minimum
// clear the dropdown without fetching.
func (s *SearchMachine[T]) SetQuery(query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	s.query = query
	if utf8.RuneCountInString(query) < s.minLength {
		s.results = nil
		s.loading = false
		s.open = false
		s.errMsg = ""
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.mu.Unlock()

	s.debouncer.Trigger()
}

func (s *SearchMachine[T]) dispatch() {
	s.mu.Lock()
	term := s.query
	if utf8.RuneCountInString(term) < s.minLength {
		s.loading = false
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	page, err := s.fetch(s.ctx, Params{Search: term, Page: 1, PerPage: s.limit})

	s.mu.Lock()
	defer s.mu.Unlock()
	if term != s.query {
		// The user kept typing; this completion is stale.
		return
	}
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.results = page.Items
	s.errMsg = ""
	s.open = true
}

// Dismiss closes the dropdown without clearing the query.
func (s *SearchMachine[T]) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

// Clear resets the query and dropdown entirely.
func (s *SearchMachine[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = ""
	s.results = nil
	s.loading = false
	s.open = false
	s.errMsg = ""
}

func (s *SearchMachine[T]) State() SearchState[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SearchState[T]{
		Query:   s.query,
		Results: append([]T(nil), s.results...),
		Loading: s.loading,
		Open:    s.open,
		Err:     s.errMsg,
	}
}

func (s *SearchMachine[T]) Close() {
	s.debouncer.Stop()
	s.cancel()
}
