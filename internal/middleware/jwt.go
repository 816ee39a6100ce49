package middleware // middleware contains reusable HTTP middleware functions

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/utils"
)

// Context keys populated by JWTAuth for downstream middleware and handlers.
const (
    CtxUserID = "user_id"
    CtxEmail  = "email"
    CtxRole   = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the verified principal into the request context.  The secret
// must match the one used when issuing tokens.  A missing or malformed
// Authorization header is rejected before the token codec or any store query
// runs.  Verification failures are not differentiated: expired, forged and
// malformed tokens all yield the same 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            p, err := utils.VerifyToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            c.Set(CtxUserID, p.UserID)
            c.Set(CtxEmail, p.Email)
            c.Set(CtxRole, string(p.Role))
            return next(c)
        }
    }
}
