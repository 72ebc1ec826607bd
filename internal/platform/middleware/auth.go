package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"talenthub/internal/auth/models"
	"talenthub/internal/sentinel"
	dErrors "talenthub/pkg/domain-errors"
	"talenthub/pkg/platform/httputil"
)

// TokenValidator checks a bearer token and returns its subject.
type TokenValidator interface {
	Validate(tokenString string) (string, error)
}

// PrincipalResolver maps a token subject to a live account.
type PrincipalResolver interface {
	Resolve(ctx context.Context, email string) (*models.User, error)
}

type principalKey struct{}

// GetPrincipal retrieves the authenticated user from the context. It returns
// nil outside of routes wrapped by RequirePrincipal.
func GetPrincipal(ctx context.Context) *models.User {
	if user, ok := ctx.Value(principalKey{}).(*models.User); ok {
		return user
	}
	return nil
}

// RequirePrincipal authenticates the request from its Authorization header
// and stores the resolved user in the context. A missing or malformed header
// fails before any token work; expired tokens, unknown subjects and disabled
// accounts all produce the same 401 so callers cannot probe accounts.
func RequirePrincipal(tokens TokenValidator, resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				httputil.WriteError(w, dErrors.New(dErrors.CodeAuthentication, "missing credentials"))
				return
			}

			subject, err := tokens.Validate(raw)
			if err != nil {
				if errors.Is(err, sentinel.ErrExpired) {
					httputil.WriteError(w, dErrors.New(dErrors.CodeAuthentication, "token expired"))
					return
				}
				httputil.WriteError(w, dErrors.New(dErrors.CodeAuthentication, "invalid credentials"))
				return
			}

			user, err := resolver.Resolve(r.Context(), subject)
			if err != nil || !user.IsActive() {
				httputil.WriteError(w, dErrors.New(dErrors.CodeAuthentication, "invalid credentials"))
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSuperuser gates a route to superuser principals. It must run inside
// RequirePrincipal.
func RequireSuperuser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetPrincipal(r.Context())
		if user == nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeAuthentication, "missing credentials"))
			return
		}
		if !user.Superuser {
			httputil.WriteError(w, dErrors.New(dErrors.CodeAuthorization, "insufficient privileges"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
