package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/repository"
)

// NotificationHandler serves the authenticated user's notification feed.
type NotificationHandler struct {
    NotificationRepo *repository.NotificationRepo
}

func NewNotificationHandler(notificationRepo *repository.NotificationRepo) *NotificationHandler {
    if notificationRepo == nil {
        panic("nil repository passed to NewNotificationHandler")
    }
    return &NotificationHandler{NotificationRepo: notificationRepo}
}

// List handles GET /v1/notifications.
func (h *NotificationHandler) List(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    ns, err := h.NotificationRepo.ListByUser(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]echo.Map, 0, len(ns))
    unread := 0
    for _, n := range ns {
        if !n.Read {
            unread++
        }
        out = append(out, echo.Map{
            "id":         n.ID,
            "message":    n.Message,
            "read":       n.Read,
            "created_at": n.CreatedAt,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"notifications": out, "unread": unread})
}

// MarkRead handles POST /v1/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid notification id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    if err := h.NotificationRepo.MarkRead(ctx, userID, id); err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "read": true})
}
