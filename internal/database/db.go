package database

import (
    "context"
    "database/sql"
    "net"
    "time"

    "github.com/go-sql-driver/mysql"

    "github.com/rezamb/canteen-ordering/internal/config"
)

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// Open connects to MySQL, applies the configured pool limits and verifies
// the connection.  The DSN is assembled through the driver's own config
// type; ParseTime maps DATETIME columns to time.Time and the UTC location
// keeps stored timestamps consistent across instances.
func Open(cfg config.Config) (*sql.DB, error) {
    mc := mysql.NewConfig()
    mc.User = cfg.DBUser
    mc.Passwd = cfg.DBPass
    mc.Net = "tcp"
    mc.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
    mc.DBName = cfg.DBName
    mc.ParseTime = true
    mc.Loc = time.UTC
    mc.Params = map[string]string{"charset": "utf8mb4"}

    db, err := sql.Open("mysql", mc.FormatDSN())
    if err != nil {
        return nil, err
    }

    db.SetMaxOpenConns(cfg.DBMaxOpen)
    db.SetMaxIdleConns(cfg.DBMaxIdle)
    db.SetConnMaxLifetime(time.Duration(cfg.DBConnLifeMin) * time.Minute)

    ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
    defer cancel()
    if err := db.PingContext(ctx); err != nil {
        db.Close()
        return nil, err
    }
    return db, nil
}
