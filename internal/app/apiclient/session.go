package apiclient

import (
	"context"
	"net/http"
)

type sessionKey struct{}

// WithSession attaches the visitor's upstream session cookies to ctx so they
// are forwarded on every upstream call made with it.
func WithSession(ctx context.Context, cookies []*http.Cookie) context.Context {
	if len(cookies) == 0 {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, cookies)
}

func sessionFrom(ctx context.Context) []*http.Cookie {
	cookies, _ := ctx.Value(sessionKey{}).([]*http.Cookie)
	return cookies
}

// withoutSession hides any session cookies attached to ctx.
func withoutSession(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionKey{}, []*http.Cookie(nil))
}
