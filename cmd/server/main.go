package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/config"
    "github.com/rezamb/canteen-ordering/internal/database"
    "github.com/rezamb/canteen-ordering/internal/handler"
    "github.com/rezamb/canteen-ordering/internal/middleware"
    "github.com/rezamb/canteen-ordering/internal/payment"
    "github.com/rezamb/canteen-ordering/internal/queue"
    "github.com/rezamb/canteen-ordering/internal/repository"
    "github.com/rezamb/canteen-ordering/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    rdb := config.NewRedisClient()
    cacheCfg := config.LoadCacheConfig()
    rateCfg := config.LoadRateLimitConfig()

    payCfg := config.LoadPaymentConfig()
    gateway := payment.NewClient(payCfg, config.NewCircuitBreaker("payment-gateway"))

    users := repository.NewUserRepo(db)
    products := repository.NewProductRepo(db)
    carts := repository.NewCartRepo(db)
    orders := repository.NewOrderRepo(db)
    wallets := repository.NewWalletRepo(db)
    coupons := repository.NewCouponRepo(db)
    notifications := repository.NewNotificationRepo(db)

    authH := handler.NewAuthHandler(cfg, users)
    publicH := &handler.PublicHandler{ProductRepo: products}
    cartH := handler.NewCartHandler(carts, products)
    orderH := handler.NewOrderHandler(orders, carts, coupons, wallets, notifications, gateway)
    walletH := handler.NewWalletHandler(wallets, gateway)
    couponH := handler.NewCouponHandler(coupons)
    notificationH := handler.NewNotificationHandler(notifications)
    canteenProductH := handler.NewCanteenProductHandler(products)
    canteenOrderH := handler.NewCanteenOrderHandler(orders, notifications)
    adminH := handler.NewAdminHandler(coupons, users, notifications)

    // Consumer is best effort: the API serves traffic even when the broker
    // is down and the consumer keeps retrying in the background.
    go func() {
        if err := queue.StartOrderStatusConsumer(); err != nil {
            log.Printf("queue consumer: %v", err)
        }
    }()

    e := echo.New()
    e.HideBanner = true
    e.Use(middleware.Metrics())

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterPublic(e, publicH,
        middleware.NewTokenBucket(rateCfg, rdb),
        middleware.NewRedisCache(cacheCfg, rdb),
    )
    router.RegisterUser(e, cartH, orderH, walletH, couponH, notificationH, cfg.JWTSecret)
    router.RegisterCanteen(e, canteenProductH, canteenOrderH, cfg.JWTSecret)
    router.RegisterAdmin(e, adminH, cfg.JWTSecret)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
