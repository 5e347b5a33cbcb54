package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type echoResponse struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Query  string `json:"query"`
}

func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(echoResponse{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func Test_Client_Verbs(t *testing.T) {
	server := newEchoServer(t)
	client, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	ctx := context.Background()

	var out echoResponse
	require.NoError(t, client.Get(ctx, "/api/products", nil, &out))
	require.Equal(t, http.MethodGet, out.Method)
	require.Equal(t, "/api/products", out.Path)

	require.NoError(t, client.Post(ctx, "api/orders", map[string]int{"qty": 1}, &out))
	require.Equal(t, http.MethodPost, out.Method)
	require.Equal(t, "/api/orders", out.Path)

	require.NoError(t, client.Put(ctx, "/api/cart", nil, &out))
	require.Equal(t, http.MethodPut, out.Method)

	require.NoError(t, client.Patch(ctx, "/api/cart", nil, &out))
	require.Equal(t, http.MethodPatch, out.Method)

	require.NoError(t, client.Delete(ctx, "/api/cart", &out))
	require.Equal(t, http.MethodDelete, out.Method)
}

func Test_Client_QueryEncoding(t *testing.T) {
	server := newEchoServer(t)
	client, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	var out echoResponse
	query := map[string][]string{"genders": {"women"}, "page": {"2"}}
	require.NoError(t, client.Get(context.Background(), "/api/products", query, &out))
	require.Equal(t, "genders=women&page=2", out.Query)
}

func Test_Client_ErrorNormalization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid season, allowed: fall_winter, spring_summer, all_seasons"}`))
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	err = client.Get(context.Background(), "/api/products", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Contains(t, apiErr.Message, "invalid season")
}

func Test_Client_ErrorWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	err = client.Get(context.Background(), "/missing", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, http.StatusText(http.StatusNotFound), apiErr.Message)
}

func Test_Client_RetriesOn5xx(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{
		BaseURL:    server.URL,
		RetryCount: 3,
		RetryDelay: 5 * time.Millisecond,
	})
	require.NoError(t, err)

	var out map[string]bool
	require.NoError(t, client.Get(context.Background(), "/flaky", nil, &out))
	require.True(t, out["ok"])
	require.EqualValues(t, 3, atomic.LoadInt32(&attempts))
}

func Test_Client_NoRetryOn4xx(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{
		BaseURL:    server.URL,
		RetryCount: 3,
		RetryDelay: 5 * time.Millisecond,
	})
	require.NoError(t, err)

	err = client.Get(context.Background(), "/bad", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.EqualValues(t, 1, atomic.LoadInt32(&attempts), "client errors are not retried")
}

func Test_Client_RetriesExhausted(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{
		BaseURL:    server.URL,
		RetryCount: 2,
		RetryDelay: 5 * time.Millisecond,
	})
	require.NoError(t, err)

	err = client.Get(context.Background(), "/down", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	require.EqualValues(t, 3, atomic.LoadInt32(&attempts))
}

func Test_Client_CancelPreviousGet(t *testing.T) {
	release := make(chan struct{})
	var slowStarted int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			atomic.StoreInt32(&slowStarted, 1)
			select {
			case <-release:
			case <-r.Context().Done():
				return
			}
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	client, err := New(Config{BaseURL: server.URL, CancelPrevious: true})
	require.NoError(t, err)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- client.Get(context.Background(), "/slow", nil, nil)
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&slowStarted) == 1
	}, time.Second, time.Millisecond)

	// the second GET aborts the first
	var out map[string]bool
	require.NoError(t, client.Get(context.Background(), "/fast", nil, &out))

	select {
	case err := <-firstDone:
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Zero(t, apiErr.StatusCode)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded request did not complete")
	}
}

func Test_Client_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL, Timeout: 30 * time.Millisecond})
	require.NoError(t, err)

	err = client.Get(context.Background(), "/hang", nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Zero(t, apiErr.StatusCode)
}
