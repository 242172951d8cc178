package middleware

import (
	"context"
	"net/http"

	"github.com/marketbay/marketbay/pkg/auth"
	"github.com/marketbay/marketbay/pkg/contextkeys"
	"github.com/marketbay/marketbay/pkg/httputil"
	"github.com/marketbay/marketbay/pkg/rbac"
)

// Authenticate returns the authentication guard. It extracts the bearer
// token from the Authorization header, verifies it and attaches the decoded
// claims to the request context.
func Authenticate(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractFromHeader(r.Header.Get("Authorization"))
			if token == "" {
				httputil.WriteErrorMessage(w, http.StatusUnauthorized, "authorization token required")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				httputil.WriteErrorMessage(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles returns the authorization guard for a route. It must run
// after Authenticate: it reads the role id from the attached claims,
// resolves the role name and rejects callers whose role is not in the
// allow-list. Unresolvable and inactive roles are also rejected.
func RequireRoles(resolver *rbac.Resolver, allowed ...string) func(http.Handler) http.Handler {
	allowSet := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		allowSet[name] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				httputil.WriteErrorMessage(w, http.StatusUnauthorized, "authentication required")
				return
			}

			role, err := resolver.AssertActive(r.Context(), claims.RoleID)
			if err != nil {
				httputil.WriteErrorMessage(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			if _, ok := allowSet[role.Name]; !ok {
				httputil.WriteErrorMessage(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithClaims attaches verified claims to a context.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, contextkeys.ClaimsKey, claims)
}

// ClaimsFromContext extracts the verified claims attached by Authenticate,
// or nil when the request did not pass the guard.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(contextkeys.ClaimsKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
