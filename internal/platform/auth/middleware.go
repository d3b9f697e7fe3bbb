// Package auth provides JWT authentication and role checks for practice
// staff. Tokens are HS256-signed by the practice identity service and carry
// the user ID, role, and organisation (tenant) claims.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "user_role"
	OrgIDKey  contextKey = "org_id"
)

// Claims are the JWT claims issued for practice staff.
type Claims struct {
	jwt.RegisteredClaims
	OrganisationID string `json:"org_id"`
	Role           string `json:"role"`
	Name           string `json:"name,omitempty"`
}

// JWTConfig configures the JWT middleware.
type JWTConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
}

// JWTMiddleware validates the Authorization bearer token and stores the
// user ID, role, and organisation on the request context.
func JWTMiddleware(cfg JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := &Claims{}
			parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
			if cfg.Issuer != "" {
				parserOpts = append(parserOpts, jwt.WithIssuer(cfg.Issuer))
			}
			if cfg.Audience != "" {
				parserOpts = append(parserOpts, jwt.WithAudience(cfg.Audience))
			}

			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				return cfg.Secret, nil
			}, parserOpts...)
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, UserIDKey, claims.Subject)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)
			ctx = context.WithValue(ctx, OrgIDKey, claims.OrganisationID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("jwt_org_id", claims.OrganisationID)

			return next(c)
		}
	}
}

// DevAuthMiddleware grants admin access to unauthenticated requests.
// Development mode only.
func DevAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, UserIDKey, "dev-user")
			ctx = context.WithValue(ctx, RoleKey, "admin")
			ctx = context.WithValue(ctx, OrgIDKey, "default")
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("jwt_org_id", "default")
			return next(c)
		}
	}
}

// SignToken issues an HS256 token for the given claims. Used by the tenant
// bootstrap CLI and by tests.
func SignToken(claims *Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func UserIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(UserIDKey).(string)
	return uid
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}

func OrgIDFromContext(ctx context.Context) string {
	org, _ := ctx.Value(OrgIDKey).(string)
	return org
}
