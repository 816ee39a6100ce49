package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/model"
)

// RequireRole returns a middleware that enforces that the authenticated
// principal holds one of the allowed roles.  It assumes JWTAuth has already
// stored the role under CtxRole.  A missing or disallowed role yields 403;
// this is deliberately distinct from the 401 returned for absent or invalid
// tokens.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
    allowed := make(map[model.Role]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            v := c.Get(CtxRole)
            role, ok := v.(string)
            if !ok || !allowed[model.Role(role)] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
