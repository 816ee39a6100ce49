package router

import (
    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/handler"
    "github.com/rezamb/canteen-ordering/internal/middleware"
    "github.com/rezamb/canteen-ordering/internal/model"
)

// RegisterCanteen registers staff endpoints under /v1/canteen.  Catalog
// management admits admins alongside canteen staff, but the order queue is
// canteen-only: order status is mutated exclusively by canteen principals
// (owners cancel through their own surface).
func RegisterCanteen(e *echo.Echo, products *handler.CanteenProductHandler,
    orders *handler.CanteenOrderHandler, jwtSecret string) {

    catalog := e.Group(
        "/v1/canteen",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleCanteen, model.RoleAdmin),
    )
    catalog.POST("/products", products.Create)
    catalog.PUT("/products/:id", products.Update)
    catalog.PUT("/products/:id/availability", products.SetAvailability)
    catalog.DELETE("/products/:id", products.Delete)

    queue := e.Group(
        "/v1/canteen",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleCanteen),
    )
    queue.GET("/orders", orders.List)
    queue.GET("/orders/:id", orders.Get)
    queue.PUT("/orders/:id/status", orders.UpdateStatus)
}
