package httpserver

import (
	"context"
	"net/http"

	shareddomain "inventar-server/internal/shared_kernel/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type principalContextKey struct{}

// PrincipalMiddleware resolves the caller from the trusted identity headers
// set by the auth proxy in front of this service and stores it on the
// request context.
func PrincipalMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := shareddomain.Principal{
				ID:   shareddomain.ID(r.Header.Get("X-User-ID")),
				Name: r.Header.Get("X-User-Name"),
				Role: shareddomain.Role(r.Header.Get("X-User-Role")),
			}
			if principal.Role == "" {
				principal.Role = shareddomain.RoleUser
			}

			if !principal.IsAnonymous() {
				span := trace.SpanFromContext(r.Context())
				span.SetAttributes(
					attribute.String("user.id", principal.ID.String()),
					attribute.String("user.role", string(principal.Role)),
				)
			}

			ctx := context.WithValue(r.Context(), principalContextKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromRequest returns the resolved caller; the zero Principal is
// anonymous.
func PrincipalFromRequest(r *http.Request) shareddomain.Principal {
	principal, _ := r.Context().Value(principalContextKey{}).(shareddomain.Principal)
	return principal
}

// RequestWithPrincipal is a test helper that injects a principal the same
// way the middleware does.
func RequestWithPrincipal(r *http.Request, principal shareddomain.Principal) *http.Request {
	ctx := context.WithValue(r.Context(), principalContextKey{}, principal)
	return r.WithContext(ctx)
}
