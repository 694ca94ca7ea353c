package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		status        int
		providedReqID string
		wantLogFields []string
	}{
		{
			name:   "logs GET request with generated ID",
			method: http.MethodGet,
			path:   "/api/v1/snapshot",
			status: http.StatusOK,
			wantLogFields: []string{
				"method=GET",
				"path=/api/v1/snapshot",
				"status=200",
				"duration_ms=",
				"request_id=",
			},
		},
		{
			name:   "logs POST request",
			method: http.MethodPost,
			path:   "/api/v1/poll",
			status: http.StatusCreated,
			wantLogFields: []string{
				"method=POST",
				"status=201",
			},
		},
		{
			name:          "uses provided request ID",
			method:        http.MethodGet,
			path:          "/test",
			status:        http.StatusOK,
			providedReqID: "custom-req-id-123",
			wantLogFields: []string{
				"request_id=custom-req-id-123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.providedReqID != "" {
				req.Header.Set(requestIDHeader, tt.providedReqID)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := RequestLog(logger)(func(c echo.Context) error {
				return c.NoContent(tt.status)
			})

			err := handler(c)
			require.NoError(t, err)

			logOutput := buf.String()
			for _, field := range tt.wantLogFields {
				assert.Contains(t, logOutput, field)
			}

			// Response should have the request ID header.
			respID := rec.Header().Get(requestIDHeader)
			assert.NotEmpty(t, respID)

			if tt.providedReqID != "" {
				assert.Equal(t, tt.providedReqID, respID)
			}

			// Context should have request_id.
			assert.NotEmpty(t, c.Get(RequestIDKey))
		})
	}
}

// TestRequestLog_ProbeSuppression replays a sequence of responses on one
// path and checks which of them produced a log line.
func TestRequestLog_ProbeSuppression(t *testing.T) {
	t.Parallel()

	const (
		ok   = http.StatusOK
		down = http.StatusServiceUnavailable
	)

	tests := []struct {
		name       string
		path       string
		statuses   []int
		wantLogged []bool
	}{
		{
			name:       "healthz logs first success only",
			path:       "/healthz",
			statuses:   []int{ok, ok, ok},
			wantLogged: []bool{true, false, false},
		},
		{
			name:       "readyz failures always logged",
			path:       "/readyz",
			statuses:   []int{down, down},
			wantLogged: []bool{true, true},
		},
		{
			name:       "readyz failure after suppressed success",
			path:       "/readyz",
			statuses:   []int{ok, ok, down},
			wantLogged: []bool{true, false, true},
		},
		{
			name:       "recovery logs the next success",
			path:       "/readyz",
			statuses:   []int{ok, down, ok, ok},
			wantLogged: []bool{true, true, true, false},
		},
		{
			name:       "api paths always logged",
			path:       "/api/v1/snapshot",
			statuses:   []int{ok, ok},
			wantLogged: []bool{true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			e := echo.New()

			call := 0
			handler := RequestLog(slog.New(slog.NewTextHandler(&buf, nil)))(func(c echo.Context) error {
				status := tt.statuses[call]
				call++
				return c.NoContent(status)
			})

			for i, status := range tt.statuses {
				before := buf.Len()
				req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
				require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))

				logged := buf.Len() > before
				assert.Equal(t, tt.wantLogged[i], logged, "response %d (status %d)", i, status)
				if logged && status >= http.StatusInternalServerError {
					assert.Contains(t, buf.String()[before:], "level=WARN")
				}
			}
		})
	}
}

func TestRequestLog_ServerErrorAtWarn(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	e := echo.New()
	handler := RequestLog(logger)(func(c echo.Context) error {
		return c.NoContent(http.StatusBadGateway)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/poll", http.NoBody)
	require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "status=502")
}
