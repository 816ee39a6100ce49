package handler

import (
    "database/sql/driver"
    "fmt"
    "net/http"
    "net/http/httptest"
    "regexp"
    "strings"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/middleware"
    "github.com/rezamb/canteen-ordering/internal/repository"
)

// contains matches any string argument that includes the substring.
type contains string

func (c contains) Match(v driver.Value) bool {
    s, ok := v.(string)
    return ok && strings.Contains(s, string(c))
}

var orderColumns = []string{
    "id", "user_id", "status", "subtotal_cents", "discount_cents", "total_cents",
    "coupon_code", "payment_method", "payment_ref", "receipt", "created_at", "updated_at",
}

func pendingOrderRow(id, userID uint64) *sqlmock.Rows {
    now := time.Now().UTC()
    return sqlmock.NewRows(orderColumns).
        AddRow(id, userID, "pending", uint32(2500), uint32(0), uint32(2500),
            nil, "wallet", nil, "rcpt-test", now, now)
}

func TestUpdateStatusWritesExactlyOneNotification(t *testing.T) {
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock: %v", err)
    }
    defer db.Close()

    mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id=?")).
        WithArgs(uint64(1)).
        WillReturnRows(pendingOrderRow(1, 9))
    mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status=?")).
        WithArgs("accepted", uint64(1)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notifications")).
        WithArgs(uint64(9), contains("accepted")).
        WillReturnResult(sqlmock.NewResult(1, 1))

    h := NewCanteenOrderHandler(repository.NewOrderRepo(db), repository.NewNotificationRepo(db))

    e := echo.New()
    req := httptest.NewRequest(http.MethodPut, "/v1/canteen/orders/1/status",
        strings.NewReader(`{"status":"accepted"}`))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetPath("/v1/canteen/orders/:id/status")
    c.SetParamNames("id")
    c.SetParamValues("1")

    if err := h.UpdateStatus(c); err != nil {
        t.Fatalf("UpdateStatus: %v", err)
    }
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
    }
    // Unmet or extra statements both fail here, so the single expected
    // notification insert is exactly what ran.
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatalf("db expectations: %v", err)
    }
}

func TestCreateCouponDuplicateCodeRejected(t *testing.T) {
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock: %v", err)
    }
    defer db.Close()

    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO coupons")).
        WillReturnError(fmt.Errorf("Error 1062 (23000): Duplicate entry 'WELCOME10' for key 'coupons.code'"))

    h := NewAdminHandler(repository.NewCouponRepo(db), repository.NewUserRepo(db), repository.NewNotificationRepo(db))

    body := fmt.Sprintf(`{"code":"WELCOME10","discount_type":"percent","discount_value":10,"expires_at":%q}`,
        time.Now().Add(48*time.Hour).UTC().Format(time.RFC3339))
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/admin/coupons", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()

    if err := h.CreateCoupon(e.NewContext(req, rec)); err != nil {
        t.Fatalf("CreateCoupon: %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400", rec.Code)
    }
    if !strings.Contains(rec.Body.String(), "Coupon code already exists") {
        t.Fatalf("body = %s, want duplicate-code message", rec.Body.String())
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatalf("db expectations: %v", err)
    }
}

func TestGetMineForeignOrderForbidden(t *testing.T) {
    db, mock, err := sqlmock.New()
    if err != nil {
        t.Fatalf("sqlmock: %v", err)
    }
    defer db.Close()

    // Order 5 belongs to user 2; user 1 asks for it.
    mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id=?")).
        WithArgs(uint64(5)).
        WillReturnRows(pendingOrderRow(5, 2))

    h := NewOrderHandler(
        repository.NewOrderRepo(db), repository.NewCartRepo(db),
        repository.NewCouponRepo(db), repository.NewWalletRepo(db),
        repository.NewNotificationRepo(db), nil)

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/orders/5", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetPath("/v1/orders/:id")
    c.SetParamNames("id")
    c.SetParamValues("5")
    c.Set(middleware.CtxUserID, uint64(1))

    if err := h.GetMine(c); err != nil {
        t.Fatalf("GetMine: %v", err)
    }
    if rec.Code != http.StatusForbidden {
        t.Fatalf("status = %d, want 403", rec.Code)
    }
    if err := mock.ExpectationsWereMet(); err != nil {
        t.Fatalf("db expectations: %v", err)
    }
}
