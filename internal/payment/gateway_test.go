package payment

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/rezamb/canteen-ordering/internal/config"
)

func testClient(url string) *Client {
    return NewClient(config.PaymentConfig{
        BaseURL:   url,
        KeyID:     "key",
        KeySecret: "secret",
        Currency:  "INR",
        Timeout:   2 * time.Second,
    }, config.NewCircuitBreaker("gateway-test"))
}

func TestCreateOrder_Success(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/v1/orders" {
            t.Errorf("expected /v1/orders, got %s", r.URL.Path)
        }
        if user, pass, ok := r.BasicAuth(); !ok || user != "key" || pass != "secret" {
            t.Error("expected basic auth credentials")
        }
        var req map[string]any
        if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
            t.Fatalf("decode request: %v", err)
        }
        if req["amount"] != float64(2500) || req["currency"] != "INR" {
            t.Errorf("unexpected request: %v", req)
        }
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(http.StatusCreated)
        _, _ = w.Write([]byte(`{"id":"order_abc123","amount":2500,"currency":"INR","status":"created","receipt":"rcpt-1"}`))
    }))
    defer srv.Close()

    got, err := testClient(srv.URL).CreateOrder(context.Background(), 2500, "rcpt-1")
    if err != nil {
        t.Fatalf("create order: %v", err)
    }
    if got.ID != "order_abc123" || got.Status != "created" || got.Receipt != "rcpt-1" {
        t.Errorf("unexpected order: %+v", got)
    }
}

func TestCreateOrder_GatewayError(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusBadGateway)
    }))
    defer srv.Close()

    if _, err := testClient(srv.URL).CreateOrder(context.Background(), 100, "rcpt-2"); err == nil {
        t.Fatal("expected error for gateway 502")
    }
}

func TestCreateOrder_MissingID(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        _, _ = w.Write([]byte(`{"status":"created"}`))
    }))
    defer srv.Close()

    if _, err := testClient(srv.URL).CreateOrder(context.Background(), 100, "rcpt-3"); err == nil {
        t.Fatal("expected error when gateway omits the order id")
    }
}

func TestCreateOrder_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusInternalServerError)
    }))
    defer srv.Close()

    c := testClient(srv.URL)
    for i := 0; i < 3; i++ {
        if _, err := c.CreateOrder(context.Background(), 100, "r"); err == nil {
            t.Fatal("expected failure")
        }
    }
    // Fourth call should be rejected by the open breaker without reaching
    // the server.
    srv.Close()
    if _, err := c.CreateOrder(context.Background(), 100, "r"); err == nil {
        t.Fatal("expected open-breaker rejection")
    }
}
