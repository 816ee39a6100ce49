// This file defines handlers for the public catalog API.  These routes allow
// unauthenticated users to browse products without requiring authentication.
// Internal flags and timestamps are filtered from responses.

package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated browsing.
// It produces sanitized responses suitable for public consumption.
type PublicHandler struct {
    ProductRepo *repository.ProductRepo
}

// PublicProduct represents a product exposed via the public API.  It
// contains only safe fields.
type PublicProduct struct {
    ID          uint64 `json:"id"`
    Name        string `json:"name"`
    Description string `json:"description,omitempty"`
    Category    string `json:"category"`
    PriceCents  uint32 `json:"price_cents"`
    ImageURL    string `json:"image_url,omitempty"`
    Available   bool   `json:"available"`
}

// ListProducts handles GET /v1/products.  Optional query parameters:
// ?category= filters by category, ?available=true hides switched-off items.
func (h *PublicHandler) ListProducts(c echo.Context) error {
    category := strings.TrimSpace(c.QueryParam("category"))
    availableOnly := strings.EqualFold(c.QueryParam("available"), "true")

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    products, err := h.ProductRepo.List(ctx, category, availableOnly)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    out := make([]PublicProduct, 0, len(products))
    for _, p := range products {
        out = append(out, PublicProduct{
            ID: p.ID, Name: p.Name, Description: p.Description,
            Category: p.Category, PriceCents: p.PriceCents,
            ImageURL: p.ImageURL, Available: p.Available,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"products": out, "count": len(out)})
}

// GetProduct handles GET /v1/products/:id.
func (h *PublicHandler) GetProduct(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    p, err := h.ProductRepo.GetByID(ctx, id)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, PublicProduct{
        ID: p.ID, Name: p.Name, Description: p.Description,
        Category: p.Category, PriceCents: p.PriceCents,
        ImageURL: p.ImageURL, Available: p.Available,
    })
}
