package aegis

import "context"

type contextKey int

const (
	ctxKeyPrincipal contextKey = iota
	ctxKeyOperation
)

// WithPrincipal returns a context carrying the authenticated principal.
// Transport layers set this after authentication; the middleware reads it
// back when assembling the RequestContext.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// PrincipalFromContext returns the principal stored by WithPrincipal, or nil
// for anonymous requests.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, ok := ctx.Value(ctxKeyPrincipal).(*Principal)
	if !ok {
		return nil
	}
	return p
}

// WithOperation returns a context carrying the operation identifier being
// decided. DecideOperation sets this so plugins can attribute decisions.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, ctxKeyOperation, operation)
}

// OperationFromContext returns the operation identifier set by
// WithOperation, or "".
func OperationFromContext(ctx context.Context) string {
	op, ok := ctx.Value(ctxKeyOperation).(string)
	if !ok {
		return ""
	}
	return op
}
