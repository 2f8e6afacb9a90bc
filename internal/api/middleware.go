package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/leish-app/leish-go/internal/logging"
)

// TokenSource yields the bearer token to attach to outgoing requests.
// An empty string means no credential is available.
type TokenSource interface {
	AuthToken(ctx context.Context) string
}

// AuthClearer wipes locally persisted credentials.
type AuthClearer interface {
	ClearAuth(ctx context.Context) error
}

// Middleware decorates a RoundTripper. The chain is composed once at client
// construction; each stage sees the request on the way out and the response
// on the way back.
type Middleware func(next http.RoundTripper) http.RoundTripper

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Chain wraps base with the given middlewares; the first listed runs
// outermost.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	rt := base
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}
	return rt
}

// WithRequestID stamps every request with a fresh X-Request-Id so client and
// server logs can be correlated.
func WithRequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			req = req.Clone(req.Context())
			req.Header.Set("X-Request-Id", uuid.NewString())
			return next.RoundTrip(req)
		})
	}
}

// WithBearerToken attaches the currently persisted token, if any, as a
// bearer credential. The token is read from storage per request, so every
// call reflects storage state at call time, not at client construction.
func WithBearerToken(tokens TokenSource) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if token := tokens.AuthToken(req.Context()); token != "" {
				req = req.Clone(req.Context())
				req.Header.Set("Authorization", "Bearer "+token)
			}
			return next.RoundTrip(req)
		})
	}
}

// WithAuthReset clears persisted credentials whenever the backend answers
// 401. The response still propagates unchanged: no retry, no redirect, the
// caller decides what to do with the rejection.
func WithAuthReset(auth AuthClearer, log logging.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(req)
			if err != nil {
				return resp, err
			}
			if resp.StatusCode == http.StatusUnauthorized {
				if cerr := auth.ClearAuth(req.Context()); cerr != nil {
					log.Error(req.Context(), "failed to clear auth after 401", "err", cerr)
				}
			}
			return resp, nil
		})
	}
}
