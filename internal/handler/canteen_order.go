package handler

import (
    "context"
    "fmt"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/model"
    "github.com/rezamb/canteen-ordering/internal/order"
    q "github.com/rezamb/canteen-ordering/internal/queue"
    "github.com/rezamb/canteen-ordering/internal/repository"
    queue_publisher "github.com/rezamb/canteen-ordering/internal/service"
)

// CanteenOrderHandler serves the canteen staff view of the order queue:
// listing incoming orders and driving them through the status lifecycle.
type CanteenOrderHandler struct {
    OrderRepo        *repository.OrderRepo
    NotificationRepo *repository.NotificationRepo
}

func NewCanteenOrderHandler(orderRepo *repository.OrderRepo, notificationRepo *repository.NotificationRepo) *CanteenOrderHandler {
    if orderRepo == nil || notificationRepo == nil {
        panic("nil repository passed to NewCanteenOrderHandler")
    }
    return &CanteenOrderHandler{OrderRepo: orderRepo, NotificationRepo: notificationRepo}
}

// List handles GET /v1/canteen/orders.  ?status= narrows the list to one
// lifecycle state.
func (h *CanteenOrderHandler) List(c echo.Context) error {
    var filter model.OrderStatus
    if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
        filter = model.OrderStatus(strings.ToLower(raw))
        if !filter.Valid() {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
        }
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    orders, err := h.OrderRepo.List(ctx, filter)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]echo.Map, 0, len(orders))
    for _, o := range orders {
        out = append(out, echo.Map{
            "id":          o.ID,
            "user_id":     o.UserID,
            "status":      o.Status,
            "total_cents": o.TotalCents,
            "receipt":     o.Receipt,
            "created_at":  o.CreatedAt,
            "updated_at":  o.UpdatedAt,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"orders": out, "count": len(out)})
}

// Get handles GET /v1/canteen/orders/:id with item snapshots.
func (h *CanteenOrderHandler) Get(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    o, err := h.OrderRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    items, err := h.OrderRepo.Items(ctx, o.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"order": toOrderResp(o), "user_id": o.UserID, "items": items})
}

type updateStatusReq struct {
    Status model.OrderStatus `json:"status"`
}

// UpdateStatus handles PUT /v1/canteen/orders/:id/status.  Only adjacent
// lifecycle moves are accepted; an illegal move is rejected with the set of
// valid next states.  A successful change notifies the owner once and
// publishes an event, both best effort.
func (h *CanteenOrderHandler) UpdateStatus(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
    }
    var req updateStatusReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Status = model.OrderStatus(strings.ToLower(strings.TrimSpace(string(req.Status))))
    if !req.Status.Valid() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    o, err := h.OrderRepo.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if err := order.CanTransition(o.Status, req.Status); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    if err := h.OrderRepo.UpdateStatus(ctx, o.ID, req.Status); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update status"})
    }

    if err := h.NotificationRepo.Create(ctx, o.UserID,
        fmt.Sprintf("Order #%d is now %s", o.ID, req.Status)); err != nil {
        log.Printf("notification: order %d status %s: %v", o.ID, req.Status, err)
    }
    _ = queue_publisher.PublishOrderStatus(c.Request().Context(), q.OrderStatusEvent{
        OrderID:    o.ID,
        UserID:     o.UserID,
        FromStatus: string(o.Status),
        ToStatus:   string(req.Status),
        TotalCents: o.TotalCents,
        Receipt:    o.Receipt,
        ChangedAt:  time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusOK, echo.Map{
        "id":       o.ID,
        "previous": o.Status,
        "status":   req.Status,
    })
}
