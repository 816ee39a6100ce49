package handler

import (
    "context"
    "fmt"
    "log"
    "math"
    "net/http"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/model"
    "github.com/rezamb/canteen-ordering/internal/order"
    "github.com/rezamb/canteen-ordering/internal/payment"
    "github.com/rezamb/canteen-ordering/internal/repository"
    queue_publisher "github.com/rezamb/canteen-ordering/internal/service"
    q "github.com/rezamb/canteen-ordering/internal/queue"
)

// Payment methods accepted at checkout.
const (
    payWallet  = "wallet"
    payGateway = "gateway"
)

// OrderHandler serves order placement, listing and cancellation for the
// owning user.  Placement runs the cross-repository transaction: order row,
// item snapshots, coupon redemption, wallet debit and cart clear commit or
// roll back together.  The notification write and queue publish that follow
// are fire-and-forget.
type OrderHandler struct {
    OrderRepo        *repository.OrderRepo
    CartRepo         *repository.CartRepo
    CouponRepo       *repository.CouponRepo
    WalletRepo       *repository.WalletRepo
    NotificationRepo *repository.NotificationRepo
    Gateway          *payment.Client
}

func NewOrderHandler(orderRepo *repository.OrderRepo, cartRepo *repository.CartRepo, couponRepo *repository.CouponRepo, walletRepo *repository.WalletRepo, notificationRepo *repository.NotificationRepo, gateway *payment.Client) *OrderHandler {
    if orderRepo == nil || cartRepo == nil || couponRepo == nil || walletRepo == nil || notificationRepo == nil {
        panic("nil repository passed to NewOrderHandler")
    }
    return &OrderHandler{
        OrderRepo:        orderRepo,
        CartRepo:         cartRepo,
        CouponRepo:       couponRepo,
        WalletRepo:       walletRepo,
        NotificationRepo: notificationRepo,
        Gateway:          gateway,
    }
}

type placeOrderReq struct {
    PaymentMethod string `json:"payment_method"` // wallet | gateway
    CouponCode    string `json:"coupon_code"`
}

type orderResp struct {
    ID            uint64            `json:"id"`
    Status        model.OrderStatus `json:"status"`
    SubtotalCents uint32            `json:"subtotal_cents"`
    DiscountCents uint32            `json:"discount_cents"`
    TotalCents    uint32            `json:"total_cents"`
    CouponCode    *string           `json:"coupon_code,omitempty"`
    PaymentMethod string            `json:"payment_method"`
    PaymentRef    *string           `json:"payment_ref,omitempty"`
    Receipt       string            `json:"receipt"`
    CreatedAt     time.Time         `json:"created_at"`
}

func toOrderResp(o model.Order) orderResp {
    return orderResp{
        ID: o.ID, Status: o.Status, SubtotalCents: o.SubtotalCents,
        DiscountCents: o.DiscountCents, TotalCents: o.TotalCents,
        CouponCode: o.CouponCode, PaymentMethod: o.PaymentMethod,
        PaymentRef: o.PaymentRef, Receipt: o.Receipt, CreatedAt: o.CreatedAt,
    }
}

// buildOrderItems turns cart lines into order item snapshots and a subtotal.
// Totals are accumulated in 64-bit so oversized quantities cannot wrap the
// amount the wallet gets charged; anything past uint32 is rejected rather
// than truncated.
func buildOrderItems(lines []model.CartLine) (uint32, []model.OrderItem, string) {
    var subtotal uint64
    items := make([]model.OrderItem, 0, len(lines))
    for _, l := range lines {
        if !l.Available {
            return 0, nil, fmt.Sprintf("product %q is no longer available", l.Name)
        }
        subtotal += uint64(l.PriceCents) * uint64(l.Quantity)
        if subtotal > math.MaxUint32 {
            return 0, nil, "order total too large"
        }
        items = append(items, model.OrderItem{
            ProductID: l.ProductID, Name: l.Name,
            PriceCents: l.PriceCents, Quantity: l.Quantity,
        })
    }
    return uint32(subtotal), items, ""
}

// discountFor computes the coupon discount for a subtotal, capped at the
// subtotal itself.
func discountFor(cpn model.Coupon, subtotal uint32) uint32 {
    var d uint32
    switch cpn.DiscountType {
    case model.DiscountPercent:
        d = uint32(uint64(subtotal) * uint64(cpn.DiscountValue) / 100)
    case model.DiscountFlat:
        d = cpn.DiscountValue
    }
    if d > subtotal {
        d = subtotal
    }
    return d
}

// Place handles POST /v1/orders.  It builds an order from the cart,
// applies an optional coupon, charges the wallet or creates a gateway
// order, clears the cart and leaves the order in pending.
func (h *OrderHandler) Place(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req placeOrderReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
    if method != payWallet && method != payGateway {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_method must be wallet or gateway"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    lines, err := h.CartRepo.ListLines(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if len(lines) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
    }

    subtotal, items, problem := buildOrderItems(lines)
    if problem != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": problem})
    }

    // Coupon is resolved before the transaction; redemption is recorded
    // inside it.
    var (
        discount   uint32
        couponCode *string
        couponID   uint64
    )
    if code := strings.TrimSpace(req.CouponCode); code != "" {
        cpn, err := h.CouponRepo.GetActiveByCode(ctx, code)
        if err != nil {
            if err == repository.ErrNotFound {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or expired coupon"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        if subtotal < cpn.MinOrderCents {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "order total below coupon minimum"})
        }
        discount = discountFor(cpn, subtotal)
        couponCode = &cpn.Code
        couponID = cpn.ID
    }
    total := subtotal - discount
    receipt := "rcpt-" + uuid.NewString()

    // Gateway payment is created before the local transaction so a gateway
    // refusal never leaves a half-written order behind.
    var paymentRef *string
    if method == payGateway {
        gw, err := h.Gateway.CreateOrder(c.Request().Context(), total, receipt)
        if err != nil {
            log.Printf("payment gateway: create order failed: %v", err)
            return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment gateway unavailable"})
        }
        paymentRef = &gw.ID
    }

    tx, err := h.OrderRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if method == payWallet {
        if err := h.WalletRepo.DebitTx(ctx, tx, userID, total, "order "+receipt); err != nil {
            if err == repository.ErrInsufficientBalance {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient wallet balance"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
    }

    orderID, err := h.OrderRepo.CreateTx(ctx, tx, model.Order{
        UserID:        userID,
        SubtotalCents: subtotal,
        DiscountCents: discount,
        TotalCents:    total,
        CouponCode:    couponCode,
        PaymentMethod: method,
        PaymentRef:    paymentRef,
        Receipt:       receipt,
    }, items)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
    }

    if couponID != 0 {
        if err := h.CouponRepo.RecordUseTx(ctx, tx, userID, couponID, orderID); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record coupon use"})
        }
    }
    if err := h.CartRepo.ClearTx(ctx, tx, userID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to clear cart"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    // Best effort from here on: the order exists either way.
    if err := h.NotificationRepo.Create(ctx, userID,
        fmt.Sprintf("Order #%d placed, status: pending", orderID)); err != nil {
        log.Printf("notification: order %d placed: %v", orderID, err)
    }
    _ = queue_publisher.PublishOrderStatus(c.Request().Context(), q.OrderStatusEvent{
        OrderID:    orderID,
        UserID:     userID,
        ToStatus:   string(model.StatusPending),
        TotalCents: total,
        Receipt:    receipt,
        ChangedAt:  time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusCreated, echo.Map{
        "id":             orderID,
        "status":         model.StatusPending,
        "subtotal_cents": subtotal,
        "discount_cents": discount,
        "total_cents":    total,
        "receipt":        receipt,
        "payment_ref":    paymentRef,
    })
}

// ownedOrder loads an order and enforces ownership, mapping a foreign order
// to repository.ErrForbidden.
func (h *OrderHandler) ownedOrder(ctx context.Context, id, userID uint64) (model.Order, error) {
    o, err := h.OrderRepo.GetByID(ctx, id)
    if err != nil {
        return o, err
    }
    if o.UserID != userID {
        return o, repository.ErrForbidden
    }
    return o, nil
}

func orderAccessError(c echo.Context, err error) error {
    switch err {
    case repository.ErrNotFound:
        return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
    case repository.ErrForbidden:
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// ListMine handles GET /v1/orders.
func (h *OrderHandler) ListMine(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    orders, err := h.OrderRepo.ListByUser(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]orderResp, 0, len(orders))
    for _, o := range orders {
        out = append(out, toOrderResp(o))
    }
    return c.JSON(http.StatusOK, echo.Map{"orders": out, "count": len(out)})
}

// GetMine handles GET /v1/orders/:id.  Users can only read their own
// orders.
func (h *OrderHandler) GetMine(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    o, err := h.ownedOrder(ctx, id, userID)
    if err != nil {
        return orderAccessError(c, err)
    }

    items, err := h.OrderRepo.Items(ctx, o.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"order": toOrderResp(o), "items": items})
}

// Cancel handles POST /v1/orders/:id/cancel.  Owners can back out while the
// order is pending or accepted; wallet payments are refunded in the same
// transaction as the status change.
func (h *OrderHandler) Cancel(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    o, err := h.ownedOrder(ctx, id, userID)
    if err != nil {
        return orderAccessError(c, err)
    }
    if !order.CancellableByOwner(o.Status) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("order in status %s can no longer be cancelled", o.Status)})
    }

    tx, err := h.OrderRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if err := h.OrderRepo.UpdateStatusTx(ctx, tx, o.ID, model.StatusCancelled); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel order"})
    }
    if o.PaymentMethod == payWallet && o.TotalCents > 0 {
        if err := h.WalletRepo.CreditTx(ctx, tx, userID, o.TotalCents, "refund "+o.Receipt); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to refund wallet"})
        }
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    if err := h.NotificationRepo.Create(ctx, userID,
        fmt.Sprintf("Order #%d has been cancelled", o.ID)); err != nil {
        log.Printf("notification: order %d cancelled: %v", o.ID, err)
    }
    _ = queue_publisher.PublishOrderStatus(c.Request().Context(), q.OrderStatusEvent{
        OrderID:    o.ID,
        UserID:     o.UserID,
        FromStatus: string(o.Status),
        ToStatus:   string(model.StatusCancelled),
        TotalCents: o.TotalCents,
        Receipt:    o.Receipt,
        ChangedAt:  time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusOK, echo.Map{"id": o.ID, "status": model.StatusCancelled})
}
