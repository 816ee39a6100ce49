package router

import (
    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/handler"
    "github.com/rezamb/canteen-ordering/internal/middleware"
    "github.com/rezamb/canteen-ordering/internal/model"
)

// RegisterAdmin registers admin-only endpoints under /v1/admin.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin),
    )

    g.POST("/coupons", a.CreateCoupon)
    g.GET("/coupons", a.ListCoupons)
    g.DELETE("/coupons/:id", a.DeleteCoupon)

    g.GET("/users", a.ListUsers)
    g.PUT("/users/:id/role", a.UpdateUserRole)

    g.POST("/notifications", a.Broadcast)
}
