package handler

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/repository"
)

// The validation paths below reject before any query runs, so a handler
// around a nil *sql.DB is safe to exercise.
func newStatusHandler() *CanteenOrderHandler {
    return NewCanteenOrderHandler(repository.NewOrderRepo(nil), repository.NewNotificationRepo(nil))
}

func patchStatus(t *testing.T, h *CanteenOrderHandler, id, body string) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPut, "/v1/canteen/orders/"+id+"/status", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetPath("/v1/canteen/orders/:id/status")
    c.SetParamNames("id")
    c.SetParamValues(id)
    if err := h.UpdateStatus(c); err != nil {
        t.Fatalf("UpdateStatus returned error: %v", err)
    }
    return rec
}

func TestUpdateStatusRejectsBadOrderID(t *testing.T) {
    rec := patchStatus(t, newStatusHandler(), "abc", `{"status":"accepted"}`)
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400", rec.Code)
    }
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
    rec := patchStatus(t, newStatusHandler(), "1", `{"status":"teleported"}`)
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400", rec.Code)
    }
    if !strings.Contains(rec.Body.String(), "invalid status") {
        t.Fatalf("body = %s, want invalid status message", rec.Body.String())
    }
}

func TestUpdateStatusRejectsEmptyStatus(t *testing.T) {
    rec := patchStatus(t, newStatusHandler(), "1", `{}`)
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400", rec.Code)
    }
}

func TestListRejectsBadStatusFilter(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/canteen/orders?status=bogus", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if err := newStatusHandler().List(c); err != nil {
        t.Fatalf("List returned error: %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400", rec.Code)
    }
}
