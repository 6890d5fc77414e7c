package server_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/sortbench/internal/server"
	"github.com/Sumatoshi-tech/sortbench/pkg/analysis"
	"github.com/Sumatoshi-tech/sortbench/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newServer(t *testing.T, mutate func(*server.Options)) http.Handler {
	t.Helper()

	opts := server.Options{
		Analyzer: analysis.New(),
		Config:   config.Default().Server,
	}
	opts.Config.RateLimit = 0

	if mutate != nil {
		mutate(&opts)
	}

	srv, err := server.New(opts)
	require.NoError(t, err)

	return srv.Handler()
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Parallel()

	rec := post(t, newServer(t, nil), "/api/sort/analyze", `{"data":[5,3,1,4,2]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var report map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	assert.Equal(t, "random", report["distributionProfile"])
	assert.Equal(t, "QuickSort", report["recommendedAlgorithm"])

	results, ok := report["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 6)

	first, ok := results[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "BubbleSort", first["algorithm"])
	assert.Equal(t, []any{1.0, 2.0, 3.0, 4.0, 5.0}, first["sortedData"])
	assert.Equal(t, false, first["isRecommended"])
}

func TestAnalyzeEndpoint_MissingDataIsEmpty(t *testing.T) {
	t.Parallel()

	h := newServer(t, nil)

	for _, body := range []string{`{}`, ``, `{"data":null}`} {
		rec := post(t, h, "/api/sort/analyze", body)
		require.Equal(t, http.StatusOK, rec.Code, "body %q", body)

		var report map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, "trivial", report["distributionProfile"])
		assert.InDelta(t, 0, report["inputSize"], 0)
	}
}

func TestAnalyzeEndpoint_BadRequests(t *testing.T) {
	t.Parallel()

	h := newServer(t, func(o *server.Options) {
		o.MaxInputLength = 3
		o.Config.MaxBodySize = "64B"
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed", body: `{"data":[1,`, want: http.StatusBadRequest},
		{name: "strings", body: `{"data":["a"]}`, want: http.StatusBadRequest},
		{name: "too_many_values", body: `{"data":[1,2,3,4]}`, want: http.StatusBadRequest},
		{name: "body_too_large", body: `{"data":[` + strings.Repeat("1,", 60) + `1]}`, want: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := post(t, h, "/api/sort/analyze", tt.body)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestBestEndpoint(t *testing.T) {
	t.Parallel()

	rec := post(t, newServer(t, nil), "/api/sort/best", `{"data":[3,1,2]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var best map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &best))
	assert.Equal(t, []any{1.0, 2.0, 3.0}, best["sortedData"])
	assert.NotEmpty(t, best["algorithm"])
}

func TestBestEndpoint_EmptySuiteIsNotFound(t *testing.T) {
	t.Parallel()

	h := newServer(t, func(o *server.Options) {
		o.Analyzer = analysis.New(analysis.WithSuite(nil))
	})

	rec := post(t, h, "/api/sort/best", `{"data":[1]}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"No sorting algorithms available"}`, rec.Body.String())
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	h := newServer(t, func(o *server.Options) {
		o.Config.RateLimit = 0.001
		o.Config.RateBurst = 1
	})

	assert.Equal(t, http.StatusOK, post(t, h, "/api/sort/best", `{"data":[1]}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, post(t, h, "/api/sort/best", `{"data":[1]}`).Code)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	h := newServer(t, nil)

	rec := post(t, h, "/api/sort/best", `{"data":[1]}`)
	assert.Len(t, rec.Header().Get(server.HeaderRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(server.HeaderRequestID, "abc-123")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(server.HeaderRequestID))
}

func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("wildcard_preflight", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodOptions, "/api/sort/analyze", nil)
		req.Header.Set("Origin", "http://example.com")

		rec := httptest.NewRecorder()
		newServer(t, nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allow_list", func(t *testing.T) {
		t.Parallel()

		h := newServer(t, func(o *server.Options) {
			o.Config.CORSOrigins = []string{"http://allowed.test"}
		})

		req := httptest.NewRequest(http.MethodOptions, "/api/sort/analyze", nil)
		req.Header.Set("Origin", "http://allowed.test")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "http://allowed.test", rec.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodOptions, "/api/sort/analyze", nil)
		req.Header.Set("Origin", "http://evil.test")

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	t.Parallel()

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("sortbench_up 1\n"))
	})

	h := newServer(t, func(o *server.Options) { o.MetricsHandler = metrics })

	for path, want := range map[string]string{
		"/healthz": `"ok"`,
		"/readyz":  `"ok"`,
		"/metrics": "sortbench_up",
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), want, path)
	}
}

func TestServeGracefulShutdown(t *testing.T) {
	t.Parallel()

	srv, err := server.New(server.Options{Config: config.Default().Server})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, getErr := http.Get("http://" + ln.Addr().String() + "/healthz") //nolint:noctx // test probe.
		if getErr != nil {
			return false
		}

		resp.Body.Close()

		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewRejectsBadBodySize(t *testing.T) {
	t.Parallel()

	cfg := config.Default().Server
	cfg.MaxBodySize = "lots"

	_, err := server.New(server.Options{Config: cfg})
	require.ErrorIs(t, err, config.ErrInvalidBodySize)
}
