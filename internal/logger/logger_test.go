package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func observe(t *testing.T) *observer.ObservedLogs {
	core, observed := observer.New(zapcore.InfoLevel)
	originalLog := log
	log = zap.New(core)
	t.Cleanup(func() { log = originalLog })
	return observed
}

func TestInit(t *testing.T) {
	originalLog := log
	defer func() { log = originalLog }()

	for _, env := range []string{"production", "development", "test"} {
		t.Run(env, func(t *testing.T) {
			Init(env)
			assert.NotNil(t, log)
		})
	}
}

func TestL(t *testing.T) {
	originalLog := log
	defer func() { log = originalLog }()

	log = nil
	os.Setenv("APP_ENV", "test")

	l := L()
	assert.NotNil(t, l)
	assert.NotNil(t, log)
}

func TestContextFunctions(t *testing.T) {
	ctx := context.Background()
	reqID := "test-request-id-123"

	t.Run("WithRequestID", func(t *testing.T) {
		newCtx := WithRequestID(ctx, reqID)
		assert.Equal(t, reqID, newCtx.Value(requestIDKey))
	})

	t.Run("RequestIDFrom", func(t *testing.T) {
		assert.Equal(t, reqID, RequestIDFrom(WithRequestID(ctx, reqID)))
		assert.Equal(t, "", RequestIDFrom(ctx))
	})

	t.Run("EnsureRequestID keeps existing", func(t *testing.T) {
		newCtx, id := EnsureRequestID(WithRequestID(ctx, reqID))
		assert.Equal(t, reqID, id)
		assert.Equal(t, reqID, RequestIDFrom(newCtx))
	})

	t.Run("EnsureRequestID generates", func(t *testing.T) {
		newCtx, id := EnsureRequestID(ctx)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, RequestIDFrom(newCtx))
	})
}

func TestFromCtx(t *testing.T) {
	observed := observe(t)

	t.Run("WithRequestID", func(t *testing.T) {
		FromCtx(WithRequestID(context.Background(), "req-abc-123")).Info("with id")

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		assert.Equal(t, "req-abc-123", logs[0].ContextMap()["request_id"])
	})

	t.Run("WithoutRequestID", func(t *testing.T) {
		FromCtx(context.Background()).Info("without id")

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		_, ok := logs[0].ContextMap()["request_id"]
		assert.False(t, ok)
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, func() {
		Sync()
	})
}

func TestTransport(t *testing.T) {
	t.Run("Stamps request id and logs", func(t *testing.T) {
		observed := observe(t)

		var seen string
		tr := NewTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
			seen = req.Header.Get("X-Request-ID")
			rec := httptest.NewRecorder()
			rec.WriteHeader(http.StatusCreated)
			return rec.Result(), nil
		}))

		req := httptest.NewRequest(http.MethodPost, "http://api.test/brand/create-brand", nil)
		resp, err := tr.RoundTrip(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.NotEmpty(t, seen)

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		assert.Equal(t, "outgoing request", logs[0].Message)
		assert.Equal(t, "/brand/create-brand", logs[0].ContextMap()["path"])
		assert.EqualValues(t, http.StatusCreated, logs[0].ContextMap()["status"])
	})

	t.Run("Preserves context request id", func(t *testing.T) {
		observe(t)

		var seen string
		tr := NewTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
			seen = req.Header.Get("X-Request-ID")
			return httptest.NewRecorder().Result(), nil
		}))

		req := httptest.NewRequest(http.MethodGet, "http://api.test/brand/all-brand", nil)
		req = req.WithContext(WithRequestID(req.Context(), "fixed-id"))
		_, err := tr.RoundTrip(req)

		require.NoError(t, err)
		assert.Equal(t, "fixed-id", seen)
	})

	t.Run("Network error", func(t *testing.T) {
		observed := observe(t)

		tr := NewTransport(roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		}))

		_, err := tr.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.test/x", nil))

		assert.Error(t, err)
		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		assert.Equal(t, "outgoing request failed", logs[0].Message)
	})
}
