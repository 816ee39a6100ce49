package handler

import (
    "context"
    "database/sql"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/repository"
)

// CartHandler serves the authenticated user's cart.  All methods assume JWT
// authentication and role validation have already been performed by
// middleware.
type CartHandler struct {
    CartRepo    *repository.CartRepo
    ProductRepo *repository.ProductRepo
}

func NewCartHandler(cartRepo *repository.CartRepo, productRepo *repository.ProductRepo) *CartHandler {
    if cartRepo == nil || productRepo == nil {
        panic("nil repository passed to NewCartHandler")
    }
    return &CartHandler{CartRepo: cartRepo, ProductRepo: productRepo}
}

type cartLineResp struct {
    ProductID  uint64 `json:"product_id"`
    Name       string `json:"name"`
    PriceCents uint32 `json:"price_cents"`
    Quantity   uint32 `json:"quantity"`
    Available  bool   `json:"available"`
    TotalCents uint64 `json:"total_cents"`
}

// Get handles GET /v1/cart.  It returns the cart lines joined with current
// product data plus the running subtotal.
func (h *CartHandler) Get(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    lines, err := h.CartRepo.ListLines(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    out := make([]cartLineResp, 0, len(lines))
    var subtotal uint64
    for _, l := range lines {
        // 64-bit math: line totals must not wrap however large the
        // stored quantity is.
        total := uint64(l.PriceCents) * uint64(l.Quantity)
        subtotal += total
        out = append(out, cartLineResp{
            ProductID: l.ProductID, Name: l.Name, PriceCents: l.PriceCents,
            Quantity: l.Quantity, Available: l.Available, TotalCents: total,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "subtotal_cents": subtotal})
}

// Add handles POST /v1/cart.  The body carries a product id and a quantity;
// adding an already-present product accumulates quantity via an atomic
// upsert.
func (h *CartHandler) Add(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        ProductID uint64 `json:"product_id"`
        Quantity  uint32 `json:"quantity"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if body.ProductID == 0 || body.Quantity == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id and quantity required"})
    }
    if body.Quantity > repository.MaxCartQuantity {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("quantity cannot exceed %d", repository.MaxCartQuantity)})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    p, err := h.ProductRepo.GetByID(ctx, body.ProductID)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !p.Available {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "product is not available"})
    }

    if err := h.CartRepo.Upsert(ctx, userID, body.ProductID, body.Quantity); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"product_id": body.ProductID})
}

// UpdateItem handles PUT /v1/cart/:productID.  Quantity zero removes the
// line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    productID, ok := pathID(c, "productID")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
    }
    var body struct {
        Quantity uint32 `json:"quantity"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if body.Quantity > repository.MaxCartQuantity {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("quantity cannot exceed %d", repository.MaxCartQuantity)})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.CartRepo.SetQuantity(ctx, userID, productID, body.Quantity); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "cart item not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"product_id": productID, "quantity": body.Quantity})
}

// RemoveItem handles DELETE /v1/cart/:productID.
func (h *CartHandler) RemoveItem(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    productID, ok := pathID(c, "productID")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.CartRepo.Remove(ctx, userID, productID); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "cart item not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.NoContent(http.StatusNoContent)
}

// Clear handles DELETE /v1/cart.
func (h *CartHandler) Clear(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.CartRepo.Clear(ctx, userID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.NoContent(http.StatusNoContent)
}
