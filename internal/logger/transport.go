package logger

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Transport stamps every outgoing request with X-Request-ID and logs the
// exchange once the response headers are in.
type Transport struct {
	Next http.RoundTripper
}

func NewTransport(next http.RoundTripper) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Transport{Next: next}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, reqID := EnsureRequestID(req.Context())
	req = req.Clone(ctx)
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	log := FromCtx(ctx).With(
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
	)

	resp, err := t.Next.RoundTrip(req)
	if err != nil {
		log.Error("outgoing request failed",
			zap.Duration("duration_ms", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	log.Info("outgoing request",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration_ms", time.Since(start)),
	)
	return resp, nil
}
