package config

import (
    "log"
    "os"
    "time"

    "github.com/sony/gobreaker"
)

// PaymentConfig carries credentials and endpoint for the external payment
// gateway.  The gateway is an opaque collaborator: this service only creates
// gateway orders and reads back their id/status.  KeyID and KeySecret are
// sent as HTTP basic auth.
type PaymentConfig struct {
    BaseURL   string
    KeyID     string
    KeySecret string
    Currency  string
    Timeout   time.Duration
}

// LoadPaymentConfig reads gateway settings from the environment.  The base
// URL and key pair are required so that a misconfigured deployment fails at
// startup rather than on the first checkout.
func LoadPaymentConfig() PaymentConfig {
    return PaymentConfig{
        BaseURL:   must("PAYMENT_BASE_URL"),
        KeyID:     must("PAYMENT_KEY_ID"),
        KeySecret: must("PAYMENT_KEY_SECRET"),
        Currency:  getenv("PAYMENT_CURRENCY", "INR"),
        Timeout:   parseDur(getenv("PAYMENT_TIMEOUT", "10s")),
    }
}

// NewCircuitBreaker creates a circuit breaker with standard settings.  The
// name parameter uniquely identifies the circuit breaker instance.  The
// breaker opens after three consecutive failures so a flapping gateway does
// not hold request goroutines hostage.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
    timeout := 30 * time.Second
    if v := os.Getenv("BREAKER_TIMEOUT"); v != "" {
        if d, err := time.ParseDuration(v); err == nil {
            timeout = d
        }
    }
    return gobreaker.NewCircuitBreaker(gobreaker.Settings{
        Name:        name,
        MaxRequests: 3,
        Interval:    10 * time.Second,
        Timeout:     timeout,
        ReadyToTrip: func(counts gobreaker.Counts) bool {
            return counts.ConsecutiveFailures >= 3
        },
        OnStateChange: func(name string, from, to gobreaker.State) {
            log.Printf("circuit breaker %s: %s -> %s", name, from, to)
        },
    })
}
