package handler

import (
    "fmt"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/middleware"
    "github.com/rezamb/canteen-ordering/internal/repository"
)

// Quantity cap checks run before any query, so nil *sql.DB repos suffice.
func newCartHandler() *CartHandler {
    return NewCartHandler(repository.NewCartRepo(nil), repository.NewProductRepo(nil))
}

func cartCtx(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(method, path, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set(middleware.CtxUserID, uint64(1))
    return c, rec
}

func TestCartAddRejectsExcessiveQuantity(t *testing.T) {
    body := fmt.Sprintf(`{"product_id":1,"quantity":%d}`, repository.MaxCartQuantity+1)
    c, rec := cartCtx(t, http.MethodPost, "/v1/cart", body)
    if err := newCartHandler().Add(c); err != nil {
        t.Fatalf("Add: %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400", rec.Code)
    }
    if !strings.Contains(rec.Body.String(), "quantity cannot exceed") {
        t.Fatalf("body = %s, want quantity cap message", rec.Body.String())
    }
}

func TestCartUpdateRejectsExcessiveQuantity(t *testing.T) {
    c, rec := cartCtx(t, http.MethodPut, "/v1/cart/1", `{"quantity":42949673}`)
    c.SetPath("/v1/cart/:productID")
    c.SetParamNames("productID")
    c.SetParamValues("1")
    if err := newCartHandler().UpdateItem(c); err != nil {
        t.Fatalf("UpdateItem: %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400", rec.Code)
    }
}
