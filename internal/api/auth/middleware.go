package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"com.martdev.kitchenrack/internal/auth"
	"com.martdev.kitchenrack/internal/auth/jwt"
	dbuser "com.martdev.kitchenrack/internal/database/user"
	"com.martdev.kitchenrack/internal/util"
	"go.uber.org/zap"
)

type claimsKey struct{}

var errNotLoggedIn = errors.New("you're not logged in")

// RequireAuth validates the access token from the access_token cookie (or an
// Authorization bearer header) and stores the claims in the request context.
func RequireAuth(authenticator auth.Authenticator, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				util.UnauthorizedErrorResponse(w, r, errNotLoggedIn, logger)
				return
			}

			claims, err := authenticator.ValidateToken(token)
			if err != nil {
				util.UnauthorizedErrorResponse(w, r, err, logger)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin guards catalog mutations. Must run after RequireAuth.
func RequireAdmin(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.Role != dbuser.RoleAdmin {
				util.ForbiddenErrorResponse(w, r, errors.New("admin access required"), logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*jwt.UserClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*jwt.UserClaims)
	return claims, ok
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}
