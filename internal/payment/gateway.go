// Package payment talks to the external payment gateway.  The gateway is an
// opaque collaborator: this client only creates gateway orders and reads
// back their identifiers; webhooks, capture and settlement are the
// gateway's business.
package payment

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "net/http"

    "github.com/sony/gobreaker"

    "github.com/rezamb/canteen-ordering/internal/config"
)

// GatewayOrder is the order object returned by the gateway.
type GatewayOrder struct {
    ID       string `json:"id"`
    Amount   uint32 `json:"amount"`
    Currency string `json:"currency"`
    Status   string `json:"status"`
    Receipt  string `json:"receipt"`
}

// Client creates orders at the gateway.  Calls run through a circuit breaker
// so a flapping gateway fails fast instead of holding request goroutines
// until the HTTP timeout.
type Client struct {
    cfg     config.PaymentConfig
    http    *http.Client
    breaker *gobreaker.CircuitBreaker
}

// NewClient builds a gateway client from config.  The breaker may be shared
// with health checks; pass a fresh one from config.NewCircuitBreaker
// otherwise.
func NewClient(cfg config.PaymentConfig, breaker *gobreaker.CircuitBreaker) *Client {
    return &Client{
        cfg:     cfg,
        http:    &http.Client{Timeout: cfg.Timeout},
        breaker: breaker,
    }
}

type createOrderReq struct {
    Amount   uint32 `json:"amount"`
    Currency string `json:"currency"`
    Receipt  string `json:"receipt"`
}

// CreateOrder asks the gateway for a new payment order of amountCents.  The
// receipt is an idempotency handle generated by the caller.
func (c *Client) CreateOrder(ctx context.Context, amountCents uint32, receipt string) (GatewayOrder, error) {
    res, err := c.breaker.Execute(func() (interface{}, error) {
        return c.createOrder(ctx, amountCents, receipt)
    })
    if err != nil {
        return GatewayOrder{}, err
    }
    return res.(GatewayOrder), nil
}

func (c *Client) createOrder(ctx context.Context, amountCents uint32, receipt string) (GatewayOrder, error) {
    body, err := json.Marshal(createOrderReq{
        Amount:   amountCents,
        Currency: c.cfg.Currency,
        Receipt:  receipt,
    })
    if err != nil {
        return GatewayOrder{}, err
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/orders", bytes.NewReader(body))
    if err != nil {
        return GatewayOrder{}, err
    }
    req.Header.Set("Content-Type", "application/json")
    req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)

    resp, err := c.http.Do(req)
    if err != nil {
        return GatewayOrder{}, err
    }
    defer resp.Body.Close()

    if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
        return GatewayOrder{}, fmt.Errorf("gateway returned status %d", resp.StatusCode)
    }

    var out GatewayOrder
    if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
        return GatewayOrder{}, err
    }
    if out.ID == "" {
        return GatewayOrder{}, fmt.Errorf("gateway response missing order id")
    }
    return out, nil
}
