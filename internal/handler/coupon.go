package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/repository"
)

// CouponHandler serves the user-facing coupon list.
type CouponHandler struct {
    CouponRepo *repository.CouponRepo
}

func NewCouponHandler(couponRepo *repository.CouponRepo) *CouponHandler {
    if couponRepo == nil {
        panic("nil repository passed to NewCouponHandler")
    }
    return &CouponHandler{CouponRepo: couponRepo}
}

// ListActive handles GET /v1/coupons.  Only active, unexpired coupons are
// exposed to users.
func (h *CouponHandler) ListActive(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    coupons, err := h.CouponRepo.ListActive(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]echo.Map, 0, len(coupons))
    for _, cpn := range coupons {
        out = append(out, echo.Map{
            "code":            cpn.Code,
            "description":     cpn.Description,
            "discount_type":   cpn.DiscountType,
            "discount_value":  cpn.DiscountValue,
            "min_order_cents": cpn.MinOrderCents,
            "expires_at":      cpn.ExpiresAt,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"coupons": out, "count": len(out)})
}
