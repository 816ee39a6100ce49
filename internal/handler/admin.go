package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/model"
    "github.com/rezamb/canteen-ordering/internal/repository"
)

// AdminHandler serves admin-only management: coupons, user roles and
// platform-wide notification broadcasts.
type AdminHandler struct {
    CouponRepo       *repository.CouponRepo
    UserRepo         *repository.UserRepo
    NotificationRepo *repository.NotificationRepo
}

func NewAdminHandler(couponRepo *repository.CouponRepo, userRepo *repository.UserRepo, notificationRepo *repository.NotificationRepo) *AdminHandler {
    if couponRepo == nil || userRepo == nil || notificationRepo == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{CouponRepo: couponRepo, UserRepo: userRepo, NotificationRepo: notificationRepo}
}

type createCouponReq struct {
    Code          string    `json:"code"`
    Description   string    `json:"description"`
    DiscountType  string    `json:"discount_type"` // percent | flat
    DiscountValue uint32    `json:"discount_value"`
    MinOrderCents uint32    `json:"min_order_cents"`
    ExpiresAt     time.Time `json:"expires_at"`
    Active        *bool     `json:"active"`
}

// CreateCoupon handles POST /v1/admin/coupons.
func (h *AdminHandler) CreateCoupon(c echo.Context) error {
    var req createCouponReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
    if req.Code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
    }
    switch req.DiscountType {
    case model.DiscountPercent:
        if req.DiscountValue == 0 || req.DiscountValue > 100 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "percent discount must be between 1 and 100"})
        }
    case model.DiscountFlat:
        if req.DiscountValue == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "flat discount must be positive"})
        }
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "discount_type must be percent or flat"})
    }
    if req.ExpiresAt.IsZero() || req.ExpiresAt.Before(time.Now()) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "expires_at must be in the future"})
    }
    active := true
    if req.Active != nil {
        active = *req.Active
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    id, err := h.CouponRepo.Create(ctx, model.Coupon{
        Code:          req.Code,
        Description:   strings.TrimSpace(req.Description),
        DiscountType:  req.DiscountType,
        DiscountValue: req.DiscountValue,
        MinOrderCents: req.MinOrderCents,
        ExpiresAt:     req.ExpiresAt,
        Active:        active,
    })
    if err != nil {
        if err == repository.ErrCouponCodeExists {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "Coupon code already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create coupon"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": id, "code": req.Code})
}

// ListCoupons handles GET /v1/admin/coupons, including expired and disabled
// codes.
func (h *AdminHandler) ListCoupons(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    coupons, err := h.CouponRepo.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]echo.Map, 0, len(coupons))
    for _, cpn := range coupons {
        out = append(out, echo.Map{
            "id":              cpn.ID,
            "code":            cpn.Code,
            "description":     cpn.Description,
            "discount_type":   cpn.DiscountType,
            "discount_value":  cpn.DiscountValue,
            "min_order_cents": cpn.MinOrderCents,
            "expires_at":      cpn.ExpiresAt,
            "active":          cpn.Active,
            "created_at":      cpn.CreatedAt,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"coupons": out, "count": len(out)})
}

// DeleteCoupon handles DELETE /v1/admin/coupons/:id.
func (h *AdminHandler) DeleteCoupon(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coupon id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.CouponRepo.Delete(ctx, id); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "coupon not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete coupon"})
    }
    return c.NoContent(http.StatusNoContent)
}

// ListUsers handles GET /v1/admin/users.  Password hashes never leave the
// repository layer response.
func (h *AdminHandler) ListUsers(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    users, err := h.UserRepo.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]echo.Map, 0, len(users))
    for _, u := range users {
        out = append(out, echo.Map{
            "id":         u.ID,
            "name":       u.Name,
            "email":      u.Email,
            "role":       u.Role,
            "created_at": u.CreatedAt,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"users": out, "count": len(out)})
}

type updateRoleReq struct {
    Role model.Role `json:"role"`
}

// UpdateUserRole handles PUT /v1/admin/users/:id/role.  Admins cannot
// demote themselves; that would orphan the admin surface when only one admin
// exists.
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    var req updateRoleReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Role = model.Role(strings.ToLower(strings.TrimSpace(string(req.Role))))
    if !req.Role.Valid() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
    }
    if self, err := getUserID(c); err == nil && self == id && req.Role != model.RoleAdmin {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot change own role"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.UserRepo.UpdateRole(ctx, id, req.Role); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update role"})
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "role": req.Role})
}

type broadcastReq struct {
    Message string `json:"message"`
}

// Broadcast handles POST /v1/admin/notifications, inserting the
// same message for every registered user.
func (h *AdminHandler) Broadcast(c echo.Context) error {
    var req broadcastReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Message = strings.TrimSpace(req.Message)
    if req.Message == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "message required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    n, err := h.NotificationRepo.Broadcast(ctx, req.Message)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"delivered": n})
}
