package httpclients

import (
	"context"
	"time"

	"chapter-api/internal/infrastructure/logger"

	"resty.dev/v3"
)

type httpClientStartsAt struct{}

// NewClient builds a resty client that logs every request at debug level.
func NewClient(clientName string, timeout time.Duration) *resty.Client {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	client.AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
		r.SetContext(context.WithValue(r.Context(), httpClientStartsAt{}, time.Now()))
		return nil
	})
	client.AddResponseMiddleware(func(c *resty.Client, r *resty.Response) error {
		log := logger.GetLogger()
		startTime, _ := r.Request.Context().Value(httpClientStartsAt{}).(time.Time)
		latency := time.Since(startTime)

		log.Debug().
			Str("client", clientName).
			Int("status", r.StatusCode()).
			Str("method", r.Request.RawRequest.Method).
			Str("path", r.Request.RawRequest.URL.Path).
			Dur("latency", latency).
			Msg("HTTP client request")
		return nil
	})
	return client
}
