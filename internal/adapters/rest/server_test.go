package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-service/internal/core/port"

	"github.com/stretchr/testify/require"
)

type noopTestLogger struct{}

func (noopTestLogger) Info(string, port.Fields)         {}
func (noopTestLogger) Warn(string, port.Fields)         {}
func (noopTestLogger) Error(string, error, port.Fields) {}
func (noopTestLogger) Debug(string, port.Fields)        {}
func (noopTestLogger) WithFields(port.Fields) port.LoggerPort {
	return noopTestLogger{}
}

func Test_Server_Routes(t *testing.T) {
	server := NewServer(ServerConfig{Port: "0"},
		newTestCatalogHandler(nil, nil, nil, nil, nil),
		NewOrderHandler(&stubCreateOrder{}, &stubSubmitContact{}, false),
		noopTestLogger{},
	)

	cases := []struct {
		method, path string
		wantStatus   int
	}{
		{http.MethodGet, "/api/products", http.StatusOK},
		{http.MethodGet, "/api/brands", http.StatusOK},
		{http.MethodGet, "/api/aromaboxes", http.StatusOK},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
		{http.MethodDelete, "/api/products", http.StatusMethodNotAllowed},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		server.httpServer.Handler.ServeHTTP(rec, req)
		require.Equal(t, tc.wantStatus, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func Test_Server_TraceIDHeader(t *testing.T) {
	server := NewServer(ServerConfig{Port: "0"},
		newTestCatalogHandler(nil, nil, nil, nil, nil),
		NewOrderHandler(&stubCreateOrder{}, &stubSubmitContact{}, false),
		noopTestLogger{},
	)

	req := httptest.NewRequest(http.MethodGet, "/api/brands", nil)
	rec := httptest.NewRecorder()
	server.httpServer.Handler.ServeHTTP(rec, req)

	require.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}
