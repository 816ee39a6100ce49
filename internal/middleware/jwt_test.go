package middleware

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/model"
    "github.com/rezamb/canteen-ordering/internal/utils"
)

const testSecret = "middleware-test-secret"

func issueTestToken(t *testing.T, role model.Role, ttl time.Duration) string {
    t.Helper()
    tok, err := utils.IssueToken(testSecret, model.Principal{
        UserID: 9, Email: "test@example.com", Role: role,
    }, ttl)
    if err != nil {
        t.Fatalf("issue token: %v", err)
    }
    return tok.Token
}

// runGate sends a request through JWTAuth (and optional RequireRole) into a
// probe handler and reports the response plus whether the probe ran.
func runGate(t *testing.T, header string, roles []model.Role) (*httptest.ResponseRecorder, bool) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
    if header != "" {
        req.Header.Set("Authorization", header)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    reached := false
    var h echo.HandlerFunc = func(c echo.Context) error {
        reached = true
        return c.JSON(http.StatusOK, echo.Map{"ok": true})
    }
    if len(roles) > 0 {
        h = RequireRole(roles...)(h)
    }
    h = JWTAuth(testSecret)(h)

    if err := h(c); err != nil {
        t.Fatalf("handler returned error: %v", err)
    }
    return rec, reached
}

func TestJWTAuth_MissingHeader(t *testing.T) {
    rec, reached := runGate(t, "", nil)
    if rec.Code != http.StatusUnauthorized {
        t.Errorf("expected 401, got %d", rec.Code)
    }
    if reached {
        t.Error("handler must not run without a token")
    }
}

func TestJWTAuth_NonBearerHeader(t *testing.T) {
    rec, reached := runGate(t, "Basic dXNlcjpwYXNz", nil)
    if rec.Code != http.StatusUnauthorized {
        t.Errorf("expected 401, got %d", rec.Code)
    }
    if reached {
        t.Error("handler must not run with a non-bearer header")
    }
}

func TestJWTAuth_InvalidToken(t *testing.T) {
    rec, reached := runGate(t, "Bearer not.a.token", nil)
    if rec.Code != http.StatusUnauthorized {
        t.Errorf("expected 401, got %d", rec.Code)
    }
    if reached {
        t.Error("handler must not run with an invalid token")
    }
    if !strings.Contains(rec.Body.String(), "invalid token") {
        t.Errorf("unexpected body: %s", rec.Body.String())
    }
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
    tok := issueTestToken(t, model.RoleUser, -time.Minute)
    rec, reached := runGate(t, "Bearer "+tok, nil)
    if rec.Code != http.StatusUnauthorized {
        t.Errorf("expected 401 for expired token, got %d", rec.Code)
    }
    if reached {
        t.Error("handler must not run with an expired token")
    }
}

func TestJWTAuth_ValidTokenInjectsPrincipal(t *testing.T) {
    e := echo.New()
    tok := issueTestToken(t, model.RoleCanteen, time.Hour)
    req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
    req.Header.Set("Authorization", "Bearer "+tok)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    h := JWTAuth(testSecret)(func(c echo.Context) error {
        if got := c.Get(CtxUserID); got != uint64(9) {
            t.Errorf("expected user_id 9 in context, got %v", got)
        }
        if got := c.Get(CtxRole); got != string(model.RoleCanteen) {
            t.Errorf("expected role canteen in context, got %v", got)
        }
        return c.NoContent(http.StatusOK)
    })
    if err := h(c); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Errorf("expected 200, got %d", rec.Code)
    }
}
