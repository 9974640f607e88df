package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/q815101630/flaska/internal/core/ports"
)

// SessionChecker reports whether a session token has been revoked by logout.
type SessionChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Authenticate validates the bearer JWT, rejects revoked sessions and loads
// the full account into context under "user". It also bumps the account's
// last_seen timestamp, best effort.
func Authenticate(jwtSecret string, sessions SessionChecker, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}
			raw := parts[1]

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := c.Request().Context()
			if revoked, err := sessions.IsRevoked(ctx, raw); err != nil || revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			userID, ok := claims["user_id"].(float64)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(ctx, int64(userID))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
			}
			_ = users.TouchLastSeen(ctx, user.ID)

			c.Set("user", user)
			return next(c)
		}
	}
}
