package handlers

import "context"

type requestMetaKey struct{}

// RequestMeta holds HTTP request metadata attached by the middleware layer
// and consumed when building analytics events.
type RequestMeta struct {
	RequestID string
	ClientIP  string
	UserAgent string
	Referrer  string
}

// ContextWithRequestMeta attaches request metadata to the context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata, zero-valued when absent.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}
