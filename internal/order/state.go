// Package order defines the order lifecycle state machine.  Statuses are
// declared in the model package; this package owns which transitions between
// them are legal.
package order

import (
    "fmt"
    "strings"

    "github.com/rezamb/canteen-ordering/internal/model"
)

// adjacency is the authoritative transition table.  The happy path moves
// pending → accepted → preparing → ready → completed; cancelled is reachable
// from every non-terminal state.  Terminal states have no outgoing edges.
var adjacency = map[model.OrderStatus][]model.OrderStatus{
    model.StatusPending:   {model.StatusAccepted, model.StatusCancelled},
    model.StatusAccepted:  {model.StatusPreparing, model.StatusCancelled},
    model.StatusPreparing: {model.StatusReady, model.StatusCancelled},
    model.StatusReady:     {model.StatusCompleted, model.StatusCancelled},
    model.StatusCompleted: {},
    model.StatusCancelled: {},
}

// ErrInvalidTransition is returned by CanTransition when a requested status
// change is not an edge of the adjacency table.  It names the valid next
// states so that API error messages can tell the caller what would have been
// accepted.
type ErrInvalidTransition struct {
    From model.OrderStatus
    To   model.OrderStatus
}

func (e *ErrInvalidTransition) Error() string {
    nexts := NextStates(e.From)
    if len(nexts) == 0 {
        return fmt.Sprintf("invalid transition: %s is a terminal state", e.From)
    }
    labels := make([]string, len(nexts))
    for i, s := range nexts {
        labels[i] = string(s)
    }
    return fmt.Sprintf("invalid transition: %s -> %s; valid next states: %s",
        e.From, e.To, strings.Join(labels, ", "))
}

// NextStates returns the legal successor states of from.  The returned slice
// is a copy; callers may mutate it freely.
func NextStates(from model.OrderStatus) []model.OrderStatus {
    nexts := adjacency[from]
    out := make([]model.OrderStatus, len(nexts))
    copy(out, nexts)
    return out
}

// CanTransition reports whether moving an order from one status to another
// is legal.  It returns nil for legal edges and *ErrInvalidTransition
// otherwise.  Unknown statuses have no outgoing edges and therefore always
// fail.
func CanTransition(from, to model.OrderStatus) error {
    for _, next := range adjacency[from] {
        if next == to {
            return nil
        }
    }
    return &ErrInvalidTransition{From: from, To: to}
}

// CancellableByOwner reports whether the owning user may still cancel an
// order in the given status.  Owners can back out before the canteen starts
// preparing; after that only staff may cancel.
func CancellableByOwner(status model.OrderStatus) bool {
    return status == model.StatusPending || status == model.StatusAccepted
}
