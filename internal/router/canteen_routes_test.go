package router

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/handler"
    "github.com/rezamb/canteen-ordering/internal/model"
    "github.com/rezamb/canteen-ordering/internal/repository"
    "github.com/rezamb/canteen-ordering/internal/utils"
)

const testSecret = "canteen-routes-test-secret"

// The handlers sit behind nil *sql.DB repos; every request below is
// answered by the role gate or by pre-query validation, so no database is
// touched.
func newCanteenServer(t *testing.T) *echo.Echo {
    t.Helper()
    e := echo.New()
    RegisterCanteen(e,
        handler.NewCanteenProductHandler(repository.NewProductRepo(nil)),
        handler.NewCanteenOrderHandler(repository.NewOrderRepo(nil), repository.NewNotificationRepo(nil)),
        testSecret)
    return e
}

func bearerFor(t *testing.T, role model.Role) string {
    t.Helper()
    tok, err := utils.IssueToken(testSecret,
        model.Principal{UserID: 7, Email: "staff@example.com", Role: role}, time.Hour)
    if err != nil {
        t.Fatalf("IssueToken: %v", err)
    }
    return "Bearer " + tok.Token
}

func doCanteen(t *testing.T, e *echo.Echo, method, path, bearer string) *httptest.ResponseRecorder {
    t.Helper()
    req := httptest.NewRequest(method, path, strings.NewReader(`{"status":"accepted"}`))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    req.Header.Set(echo.HeaderAuthorization, bearer)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func TestOrderQueueRejectsAdmin(t *testing.T) {
    e := newCanteenServer(t)
    rec := doCanteen(t, e, http.MethodPut, "/v1/canteen/orders/abc/status", bearerFor(t, model.RoleAdmin))
    if rec.Code != http.StatusForbidden {
        t.Fatalf("admin on order status = %d, want 403", rec.Code)
    }
}

func TestOrderQueueAdmitsCanteen(t *testing.T) {
    e := newCanteenServer(t)
    // A non-numeric id proves the request got past the gate into the
    // handler's own validation.
    rec := doCanteen(t, e, http.MethodPut, "/v1/canteen/orders/abc/status", bearerFor(t, model.RoleCanteen))
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("canteen on order status = %d, want 400", rec.Code)
    }
}

func TestCatalogAdmitsAdmin(t *testing.T) {
    e := newCanteenServer(t)
    rec := doCanteen(t, e, http.MethodDelete, "/v1/canteen/products/abc", bearerFor(t, model.RoleAdmin))
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("admin on product delete = %d, want 400", rec.Code)
    }
}

func TestCanteenSurfaceRejectsUser(t *testing.T) {
    e := newCanteenServer(t)
    for _, path := range []string{"/v1/canteen/orders", "/v1/canteen/products/1"} {
        method := http.MethodGet
        if strings.Contains(path, "products") {
            method = http.MethodDelete
        }
        rec := doCanteen(t, e, method, path, bearerFor(t, model.RoleUser))
        if rec.Code != http.StatusForbidden {
            t.Fatalf("user on %s = %d, want 403", path, rec.Code)
        }
    }
}
