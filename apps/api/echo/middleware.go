package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/marksheet/core/access"
	"github.com/trezcool/marksheet/core/records"
)

// roleMiddleware lets the request through only when the token's user has the required role.
// An empty role only requires a known user.
func roleMiddleware(auth *authenticator, gate *access.Gate, role records.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			var identity string
			if claims, err := auth.getContextClaims(ctx); err == nil {
				identity = claims.Subject
			}

			decision, err := gate.Authorize(ctx.Request().Context(), identity, role)
			if err != nil {
				return errors.Wrap(err, "authorizing")
			}
			if !decision.Allowed() {
				return decision.Err()
			}
			ctx.Set(contextUserKey, decision.User)
			return next(ctx)
		}
	}
}
