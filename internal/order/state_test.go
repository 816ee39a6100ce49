package order

import (
    "errors"
    "strings"
    "testing"

    "github.com/rezamb/canteen-ordering/internal/model"
)

func TestCanTransition_HappyPath(t *testing.T) {
    path := []model.OrderStatus{
        model.StatusPending,
        model.StatusAccepted,
        model.StatusPreparing,
        model.StatusReady,
        model.StatusCompleted,
    }
    for i := 0; i < len(path)-1; i++ {
        if err := CanTransition(path[i], path[i+1]); err != nil {
            t.Errorf("expected %s -> %s to be legal, got %v", path[i], path[i+1], err)
        }
    }
}

func TestCanTransition_CancelFromNonTerminal(t *testing.T) {
    for _, from := range []model.OrderStatus{
        model.StatusPending, model.StatusAccepted, model.StatusPreparing, model.StatusReady,
    } {
        if err := CanTransition(from, model.StatusCancelled); err != nil {
            t.Errorf("expected %s -> cancelled to be legal, got %v", from, err)
        }
    }
}

func TestCanTransition_TerminalStatesAreClosed(t *testing.T) {
    for _, from := range []model.OrderStatus{model.StatusCompleted, model.StatusCancelled} {
        for _, to := range []model.OrderStatus{
            model.StatusPending, model.StatusAccepted, model.StatusPreparing,
            model.StatusReady, model.StatusCompleted, model.StatusCancelled,
        } {
            if err := CanTransition(from, to); err == nil {
                t.Errorf("expected %s -> %s to be rejected", from, to)
            }
        }
    }
}

func TestCanTransition_RejectsRegressionsAndSkips(t *testing.T) {
    cases := []struct{ from, to model.OrderStatus }{
        {model.StatusReady, model.StatusPending},      // regression
        {model.StatusPreparing, model.StatusAccepted}, // regression
        {model.StatusPending, model.StatusPreparing},  // skip
        {model.StatusPending, model.StatusCompleted},  // skip to terminal
        {model.StatusAccepted, model.StatusAccepted},  // no-op
    }
    for _, tc := range cases {
        err := CanTransition(tc.from, tc.to)
        if err == nil {
            t.Errorf("expected %s -> %s to be rejected", tc.from, tc.to)
            continue
        }
        var inv *ErrInvalidTransition
        if !errors.As(err, &inv) {
            t.Errorf("expected *ErrInvalidTransition, got %T", err)
        }
    }
}

func TestErrInvalidTransition_NamesValidNextStates(t *testing.T) {
    err := CanTransition(model.StatusPending, model.StatusReady)
    if err == nil {
        t.Fatal("expected error")
    }
    msg := err.Error()
    if !strings.Contains(msg, "accepted") || !strings.Contains(msg, "cancelled") {
        t.Errorf("expected message to name valid next states, got %q", msg)
    }
}

func TestNextStates_ReturnsCopy(t *testing.T) {
    a := NextStates(model.StatusPending)
    if len(a) == 0 {
        t.Fatal("expected successors for pending")
    }
    a[0] = model.StatusCompleted
    b := NextStates(model.StatusPending)
    if b[0] == model.StatusCompleted {
        t.Error("NextStates must not expose internal table")
    }
}

func TestCancellableByOwner(t *testing.T) {
    if !CancellableByOwner(model.StatusPending) || !CancellableByOwner(model.StatusAccepted) {
        t.Error("owner should be able to cancel pending/accepted orders")
    }
    for _, s := range []model.OrderStatus{
        model.StatusPreparing, model.StatusReady, model.StatusCompleted, model.StatusCancelled,
    } {
        if CancellableByOwner(s) {
            t.Errorf("owner should not be able to cancel %s order", s)
        }
    }
}
