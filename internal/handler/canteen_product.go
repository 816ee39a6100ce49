package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/model"
    "github.com/rezamb/canteen-ordering/internal/repository"
)

// CanteenProductHandler serves catalog management for canteen staff.
type CanteenProductHandler struct {
    ProductRepo *repository.ProductRepo
}

func NewCanteenProductHandler(productRepo *repository.ProductRepo) *CanteenProductHandler {
    if productRepo == nil {
        panic("nil repository passed to NewCanteenProductHandler")
    }
    return &CanteenProductHandler{ProductRepo: productRepo}
}

type productReq struct {
    Name        string `json:"name"`
    Description string `json:"description"`
    Category    string `json:"category"`
    PriceCents  uint32 `json:"price_cents"`
    ImageURL    string `json:"image_url"`
    Available   *bool  `json:"available"`
}

func (r *productReq) validate() string {
    r.Name = strings.TrimSpace(r.Name)
    r.Category = strings.TrimSpace(r.Category)
    if r.Name == "" {
        return "name required"
    }
    if r.Category == "" {
        return "category required"
    }
    if r.PriceCents == 0 {
        return "price_cents must be positive"
    }
    return ""
}

func (r *productReq) toModel() model.Product {
    available := true
    if r.Available != nil {
        available = *r.Available
    }
    return model.Product{
        Name:        r.Name,
        Description: strings.TrimSpace(r.Description),
        Category:    r.Category,
        PriceCents:  r.PriceCents,
        ImageURL:    strings.TrimSpace(r.ImageURL),
        Available:   available,
    }
}

// Create handles POST /v1/canteen/products.
func (h *CanteenProductHandler) Create(c echo.Context) error {
    var req productReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg := req.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    id, err := h.ProductRepo.Create(ctx, req.toModel())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create product"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Update handles PUT /v1/canteen/products/:id.  The body carries the full
// set of mutable fields.
func (h *CanteenProductHandler) Update(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
    }
    var req productReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg := req.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    p := req.toModel()
    p.ID = id
    if req.Available == nil {
        // An omitted flag keeps the stored value instead of silently
        // re-enabling a switched-off product.
        cur, err := h.ProductRepo.GetByID(ctx, id)
        if err != nil {
            if err == sql.ErrNoRows {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        p.Available = cur.Available
    }
    if err := h.ProductRepo.Update(ctx, p); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update product"})
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// SetAvailability handles PUT /v1/canteen/products/:id/availability.
func (h *CanteenProductHandler) SetAvailability(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
    }
    var body struct {
        Available *bool `json:"available"`
    }
    if err := c.Bind(&body); err != nil || body.Available == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "available required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.ProductRepo.SetAvailability(ctx, id, *body.Available); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update product"})
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "available": *body.Available})
}

// Delete handles DELETE /v1/canteen/products/:id.
func (h *CanteenProductHandler) Delete(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.ProductRepo.Delete(ctx, id); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete product"})
    }
    return c.NoContent(http.StatusNoContent)
}
