package router

import (
    "github.com/labstack/echo/v4"
    "github.com/prometheus/client_golang/prometheus/promhttp"

    "github.com/rezamb/canteen-ordering/internal/handler"
    "github.com/rezamb/canteen-ordering/internal/middleware"
)

// RegisterRoutes registers routes that carry no authentication: the health
// check and the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
    e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers authentication endpoints.  Register and login live
// under /v1/auth without middleware; /v1/me requires a valid token of any
// role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)

    auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated catalog.  The extra
// middleware (response cache, rate limiter) is passed in by the caller so
// tests can register the routes bare.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
    g := e.Group("/v1", mw...)
    g.GET("/products", p.ListProducts)
    g.GET("/products/:id", p.GetProduct)
}
