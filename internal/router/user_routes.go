package router

import (
    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/handler"
    "github.com/rezamb/canteen-ordering/internal/middleware"
    "github.com/rezamb/canteen-ordering/internal/model"
)

// RegisterUser registers the user-scoped surface under /v1: cart, orders,
// wallet, coupons and notifications.  Every route requires a valid JWT with
// the user role; canteen and admin accounts use their own surfaces.
func RegisterUser(e *echo.Echo, cart *handler.CartHandler, orders *handler.OrderHandler,
    wallet *handler.WalletHandler, coupons *handler.CouponHandler,
    notifications *handler.NotificationHandler, jwtSecret string) {

    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleUser),
    )

    g.GET("/cart", cart.Get)
    g.POST("/cart", cart.Add)
    g.PUT("/cart/:productID", cart.UpdateItem)
    g.DELETE("/cart/:productID", cart.RemoveItem)
    g.DELETE("/cart", cart.Clear)

    g.POST("/orders", orders.Place)
    g.GET("/orders", orders.ListMine)
    g.GET("/orders/:id", orders.GetMine)
    g.POST("/orders/:id/cancel", orders.Cancel)

    g.GET("/wallet", wallet.Get)
    g.POST("/wallet/topup", wallet.TopUp)

    g.GET("/coupons", coupons.ListActive)

    g.GET("/notifications", notifications.List)
    g.POST("/notifications/:id/read", notifications.MarkRead)
}
