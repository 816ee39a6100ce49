package handler // handler defines http handlers

import (
    "errors"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/middleware"
)

// dbTimeout bounds the duration of database work per request.
const dbTimeout = 5 * time.Second

// getUserID extracts the authenticated user id from echo.Context and
// converts it to uint64.  JWTAuth stores it as uint64 but tolerate other
// numeric encodings.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get(middleware.CtxUserID)
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric :id style path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
    n, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || n == 0 {
        return 0, false
    }
    return n, true
}
