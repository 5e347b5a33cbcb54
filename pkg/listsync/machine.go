// Package listsync owns paginated, filtered list state: it reconciles
// filter changes with debounced re-fetching, merges incoming pages by
// item id and discards results of superseded in-flight requests.
package listsync

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Phase is the machine's loading state.
type Phase int

const (
	PhaseInitialLoading Phase = iota
	PhaseIdle
	PhaseLoadingMore
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseInitialLoading:
		return "initial_loading"
	case PhaseIdle:
		return "idle"
	case PhaseLoadingMore:
		return "loading_more"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Params is the filter scope sent with every fetch.
type Params struct {
	Genders    []string
	BrandIDs   []string
	Season     string
	ProfileAny []string
	ProfileAll []string
	Search     string
	Sort       string
	Page       int
	PerPage    int
}

// Page is one fetched slice of the list together with the server's
// authoritative total.
type Page[T any] struct {
	Items []T
	Total int
}

type (
	// KeyFunc extracts the stable id used for merge deduplication.
	KeyFunc[T any] func(T) string
	// FetchFunc loads one page for the given params.
	FetchFunc[T any] func(ctx context.Context, p Params) (Page[T], error)
)

type Options[T any] struct {
	Fetch FetchFunc[T]
	Key   KeyFunc[T]

	// Genders fix the filter scope of this machine.
	Genders []string
	PerPage int // default 20
	Sort    string

	// Initial seeds the machine with a pre-fetched first page,
	// skipping the first network round trip.
	Initial *Page[T]

	// Debounce windows for filter-change triggers. Defaults 250ms
	// delay, 600ms max wait.
	DebounceDelay   time.Duration
	DebounceMaxWait time.Duration
}

// State is a point-in-time snapshot of the machine.
type State[T any] struct {
	Items   []T
	Total   int
	Page    int
	PerPage int
	Phase   Phase
	Err     string
}

func (s State[T]) HasNext() bool { return len(s.Items) < s.Total }

func (s State[T]) IsEmpty() bool {
	return s.Phase != PhaseInitialLoading && len(s.Items) == 0
}

// Machine synchronizes one filter scope's list. All state mutation
// happens under the mutex; every dispatched fetch captures the current
// epoch and a completion whose epoch is no longer current is discarded,
// so the last-dispatched fetch always wins regardless of completion
// order.
type Machine[T any] struct {
	fetch FetchFunc[T]
	key   KeyFunc[T]

	ctx       context.Context
	cancel    context.CancelFunc
	debouncer *Debouncer

	mu      sync.Mutex
	params  Params
	items   []T
	index   map[string]int
	total   int
	page    int
	perPage int
	phase   Phase
	errMsg  string
	epoch   uint64
}

func NewMachine[T any](opts Options[T]) (*Machine[T], error) {
	if opts.Fetch == nil {
		return nil, fmt.Errorf("fetch function is required")
	}
	if opts.Key == nil {
		return nil, fmt.Errorf("key function is required")
	}
	if opts.PerPage <= 0 {
		opts.PerPage = 20
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Machine[T]{
		fetch:  opts.Fetch,
		key:    opts.Key,
		ctx:    ctx,
		cancel: cancel,
		params: Params{
			Genders: append([]string(nil), opts.Genders...),
			Sort:    opts.Sort,
		},
		index:   make(map[string]int),
		perPage: opts.PerPage,
		page:    1,
	}
	m.debouncer = NewDebouncer(opts.DebounceDelay, opts.DebounceMaxWait, m.dispatchReset)

	if opts.Initial != nil {
		for _, item := range opts.Initial.Items {
			m.upsert(item)
		}
		m.total = opts.Initial.Total
		if len(opts.Initial.Items) == m.perPage {
			m.page = 2
		}
		m.phase = PhaseIdle
	} else {
		m.phase = PhaseInitialLoading
		m.dispatchReset()
	}
	return m, nil
}

// State returns a copy of the machine's current state.
func (m *Machine[T]) State() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State[T]{
		Items:   append([]T(nil), m.items...),
		Total:   m.total,
		Page:    m.page,
		PerPage: m.perPage,
		Phase:   m.phase,
		Err:     m.errMsg,
	}
}

func (m *Machine[T]) ToggleBrand(id string) {
	m.mutate(func() {
		m.params.BrandIDs = toggleValue(m.params.BrandIDs, id)
	})
}

func (m *Machine[T]) SetSeason(season string) {
	m.mutate(func() { m.params.Season = season })
}

func (m *Machine[T]) ToggleProfileTag(tag string) {
	m.mutate(func() {
		m.params.ProfileAny = toggleValue(m.params.ProfileAny, tag)
	})
}

func (m *Machine[T]) SetSort(sort string) {
	m.mutate(func() { m.params.Sort = sort })
}

func (m *Machine[T]) SetPageSize(perPage int) {
	if perPage <= 0 {
		return
	}
	m.mutate(func() { m.perPage = perPage })
}

func (m *Machine[T]) ResetFilters() {
	m.mutate(func() {
		m.params.BrandIDs = nil
		m.params.Season = ""
		m.params.ProfileAny = nil
		m.params.ProfileAll = nil
		m.params.Search = ""
	})
}

// mutate applies a filter change and feeds the debouncer; the actual
// reset fetch fires on the trailing edge.
func (m *Machine[T]) mutate(apply func()) {
	m.mu.Lock()
	apply()
	m.mu.Unlock()
	m.debouncer.Trigger()
}

// Refresh dispatches an immediate reset fetch, bypassing the debounce
// window.
func (m *Machine[T]) Refresh() {
	m.dispatchReset()
}

// dispatchReset starts a first-page fetch for the current filters. It
// supersedes any in-flight request, including a LoadingMore one.
func (m *Machine[T]) dispatchReset() {
	m.mu.Lock()
	m.epoch++
	my := m.epoch
	m.page = 1
	m.phase = PhaseInitialLoading
	m.errMsg = ""
	params := m.snapshotParams(1)
	m.mu.Unlock()

	go m.run(my, params, true)
}

// LoadNextPage fetches the next page. No-op while a fetch is in flight
// or when the list is exhausted.
func (m *Machine[T]) LoadNextPage() {
	m.mu.Lock()
	if m.phase != PhaseIdle && m.phase != PhaseError {
		m.mu.Unlock()
		return
	}
	if len(m.items) >= m.total {
		m.mu.Unlock()
		return
	}
	m.epoch++
	my := m.epoch
	m.phase = PhaseLoadingMore
	m.errMsg = ""
	params := m.snapshotParams(m.page)
	m.mu.Unlock()

	go m.run(my, params, false)
}

func (m *Machine[T]) snapshotParams(page int) Params {
	p := m.params
	p.Genders = append([]string(nil), m.params.Genders...)
	p.BrandIDs = append([]string(nil), m.params.BrandIDs...)
	p.ProfileAny = append([]string(nil), m.params.ProfileAny...)
	p.ProfileAll = append([]string(nil), m.params.ProfileAll...)
	p.Page = page
	p.PerPage = m.perPage
	return p
}

func (m *Machine[T]) run(my uint64, params Params, reset bool) {
	page, err := m.fetch(m.ctx, params)

	m.mu.Lock()
	defer m.mu.Unlock()
	if my != m.epoch {
		// Superseded by a newer dispatch.
		return
	}

	if err != nil {
		m.phase = PhaseError
		m.errMsg = err.Error()
		return
	}

	if reset {
		m.items = nil
		m.index = make(map[string]int)
	}
	for _, item := range page.Items {
		m.upsert(item)
	}
	m.total = page.Total

	// A short page means the list is exhausted; the counter only
	// advances past a full page.
	if len(page.Items) == params.PerPage {
		m.page = params.Page + 1
	}

	m.phase = PhaseIdle
	m.errMsg = ""
}

// upsert inserts by id, updating in place when the id was already
// seen. Insertion order governs final ordering. Caller holds the lock.
func (m *Machine[T]) upsert(item T) {
	k := m.key(item)
	if pos, ok := m.index[k]; ok {
		m.items[pos] = item
		return
	}
	m.index[k] = len(m.items)
	m.items = append(m.items, item)
}

// Close cancels any in-flight fetch and stops the debouncer.
func (m *Machine[T]) Close() {
	m.debouncer.Stop()
	m.cancel()
}

func toggleValue(values []string, v string) []string {
	for i, existing := range values {
		if existing == v {
			return append(values[:i:i], values[i+1:]...)
		}
	}
	return append(values, v)
}
