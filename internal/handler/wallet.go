package handler

import (
    "context"
    "log"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/payment"
    "github.com/rezamb/canteen-ordering/internal/repository"
)

// WalletHandler serves the user's wallet: balance, ledger and top-ups.
// Top-ups go through the payment gateway before the credit row is written.
type WalletHandler struct {
    WalletRepo *repository.WalletRepo
    Gateway    *payment.Client
}

func NewWalletHandler(walletRepo *repository.WalletRepo, gateway *payment.Client) *WalletHandler {
    if walletRepo == nil {
        panic("nil repository passed to NewWalletHandler")
    }
    return &WalletHandler{WalletRepo: walletRepo, Gateway: gateway}
}

// Get handles GET /v1/wallet.
func (h *WalletHandler) Get(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    bal, err := h.WalletRepo.Balance(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    txs, err := h.WalletRepo.List(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    out := make([]echo.Map, 0, len(txs))
    for _, t := range txs {
        out = append(out, echo.Map{
            "id":           t.ID,
            "kind":         t.Kind,
            "amount_cents": t.AmountCents,
            "reason":       t.Reason,
            "created_at":   t.CreatedAt,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"balance_cents": bal, "transactions": out})
}

type topUpReq struct {
    AmountCents uint32 `json:"amount_cents"`
}

// TopUp handles POST /v1/wallet/topup.  The gateway order is created first;
// the credit row references the gateway id so support can reconcile the two
// sides later.
func (h *WalletHandler) TopUp(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req topUpReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.AmountCents == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount_cents must be positive"})
    }

    gw, err := h.Gateway.CreateOrder(c.Request().Context(), req.AmountCents, "")
    if err != nil {
        log.Printf("payment gateway: topup for user %d failed: %v", userID, err)
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment gateway unavailable"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.WalletRepo.Credit(ctx, userID, req.AmountCents, "topup "+gw.ID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    bal, err := h.WalletRepo.Balance(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "balance_cents": bal,
        "payment_ref":   gw.ID,
    })
}
