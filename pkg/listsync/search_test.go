package listsync

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestSearchMachine(t *testing.T) (*SearchMachine[item], chan fetchCall) {
	t.Helper()
	fetch, calls := blockingFetcher()
	s, err := NewSearchMachine(SearchOptions[item]{
		Fetch:           fetch,
		DebounceDelay:   5 * time.Millisecond,
		DebounceMaxWait: 20 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, calls
}

func Test_Search_ShortQueryDoesNotFetch(t *testing.T) {
	s, calls := newTestSearchMachine(t)

	s.SetQuery("o")
	requireNoCall(t, calls)

	state := s.State()
	require.False(t, state.Open)
	require.False(t, state.Loading)
}

func Test_Search_FetchesWithLimit(t *testing.T) {
	s, calls := newTestSearchMachine(t)

	s.SetQuery("oud")
	call := waitCall(t, calls)
	require.Equal(t, "oud", call.params.Search)
	require.Equal(t, 1, call.params.Page)
	require.Equal(t, 6, call.params.PerPage)

	call.respond <- fetchResult{page: Page[item]{Items: makeItems(0, 3), Total: 3}}
	require.Eventually(t, func() bool {
		return s.State().Open
	}, time.Second, time.Millisecond)

	state := s.State()
	require.Len(t, state.Results, 3)
	require.False(t, state.Loading)
	require.Empty(t, state.Err)
}

func Test_Search_StaleCompletionDiscarded(t *testing.T) {
	s, calls := newTestSearchMachine(t)

	s.SetQuery("oud")
	stale := waitCall(t, calls)

	// user keeps typing before the first fetch returns
	s.SetQuery("oud noir")
	stale.respond <- fetchResult{page: Page[item]{Items: makeItems(0, 6), Total: 6}}

	fresh := waitCall(t, calls)
	require.Equal(t, "oud noir", fresh.params.Search)

	// the stale page never became visible
	require.Empty(t, s.State().Results)

	fresh.respond <- fetchResult{page: Page[item]{Items: makeItems(10, 2), Total: 2}}
	require.Eventually(t, func() bool {
		return len(s.State().Results) == 2
	}, time.Second, time.Millisecond)
	require.Equal(t, "p-010", s.State().Results[0].ID)
}

func Test_Search_ErrorPreserved(t *testing.T) {
	s, calls := newTestSearchMachine(t)

	s.SetQuery("oud")
	call := waitCall(t, calls)
	call.respond <- fetchResult{err: fmt.Errorf("api request failed: timeout")}

	require.Eventually(t, func() bool {
		return s.State().Err != ""
	}, time.Second, time.Millisecond)
	require.False(t, s.State().Loading)
}

func Test_Search_ClearAndDismiss(t *testing.T) {
	s, calls := newTestSearchMachine(t)

	s.SetQuery("oud")
	call := waitCall(t, calls)
	call.respond <- fetchResult{page: Page[item]{Items: makeItems(0, 2), Total: 2}}
	require.Eventually(t, func() bool { return s.State().Open }, time.Second, time.Millisecond)

	s.Dismiss()
	state := s.State()
	require.False(t, state.Open)
	require.Equal(t, "oud", state.Query, "dismiss keeps the query")

	s.Clear()
	state = s.State()
	require.Empty(t, state.Query)
	require.Empty(t, state.Results)
}

func Test_Search_QueryTrimmedAndShrunkBelowMinClears(t *testing.T) {
	s, calls := newTestSearchMachine(t)

	s.SetQuery("  oud  ")
	call := waitCall(t, calls)
	require.Equal(t, "oud", call.params.Search)
	call.respond <- fetchResult{page: Page[item]{Items: makeItems(0, 2), Total: 2}}
	require.Eventually(t, func() bool { return s.State().Open }, time.Second, time.Millisecond)

	// deleting back below the minimum closes and clears
	s.SetQuery("o")
	state := s.State()
	require.False(t, state.Open)
	require.Empty(t, state.Results)
}
