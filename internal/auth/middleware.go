package auth

import (
	"net/http"
	"strings"

	apperrors "homeward/pkg/errors"
	httputil "homeward/pkg/http"
	"homeward/pkg/logger"
)

// Middleware authenticates requests. Requests without an Authorization header
// proceed as the anonymous principal; a malformed or unverifiable token is
// rejected outright.
func Middleware(verifier *TokenVerifier, resolver *Resolver, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), Anonymous)))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				_ = httputil.WriteError(w, apperrors.Unauthorized("Invalid Authorization header"))
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				log.Warn("Token verification failed", "error", err)
				_ = httputil.WriteError(w, apperrors.Unauthorized("Invalid token"))
				return
			}

			principal, err := resolver.Resolve(r.Context(), claims)
			if err != nil {
				log.Error("Identity resolution failed", "external_id", claims.ExternalID, "error", err)
				_ = httputil.WriteError(w, apperrors.Internal("Failed to resolve identity", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireEmployee gates the lifecycle operations: role EMPLOYEE or ADMIN.
func RequireEmployee(r *http.Request) (Principal, error) {
	p := FromContext(r.Context())
	if !p.IsAuthenticated() {
		return p, apperrors.Unauthorized("Authentication required")
	}
	if !p.IsEmployee() {
		return p, apperrors.Forbidden("Employee role required")
	}
	return p, nil
}

// RequireAdmin gates operations that need the resolved ADMIN role.
func RequireAdmin(r *http.Request) (Principal, error) {
	p := FromContext(r.Context())
	if !p.IsAuthenticated() {
		return p, apperrors.Unauthorized("Authentication required")
	}
	if !p.IsAdmin() {
		return p, apperrors.Forbidden("Admin role required")
	}
	return p, nil
}

// RequireAllowListedAdmin gates catalog mutation: the caller's external
// identity must match the static admin allow-list, a stored ADMIN role alone
// is not sufficient.
func RequireAllowListedAdmin(r *http.Request, isAllowListed func(string) bool) (Principal, error) {
	p := FromContext(r.Context())
	if !p.IsAuthenticated() || !isAllowListed(p.ExternalID) {
		return p, apperrors.Forbidden("Admin allow-list required")
	}
	return p, nil
}
