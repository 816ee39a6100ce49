package middleware

import (
    "net/http"
    "testing"
    "time"

    "github.com/rezamb/canteen-ordering/internal/model"
)

func TestRequireRole_WrongRoleForbidden(t *testing.T) {
    tok := issueTestToken(t, model.RoleUser, time.Hour)
    rec, reached := runGate(t, "Bearer "+tok, []model.Role{model.RoleCanteen})
    if rec.Code != http.StatusForbidden {
        t.Errorf("expected 403 for user hitting canteen route, got %d", rec.Code)
    }
    if reached {
        t.Error("handler must not run for a disallowed role")
    }
}

func TestRequireRole_AllowedRolePasses(t *testing.T) {
    tok := issueTestToken(t, model.RoleCanteen, time.Hour)
    rec, reached := runGate(t, "Bearer "+tok, []model.Role{model.RoleCanteen, model.RoleAdmin})
    if rec.Code != http.StatusOK {
        t.Errorf("expected 200, got %d", rec.Code)
    }
    if !reached {
        t.Error("handler should run for an allowed role")
    }
}

func TestRequireRole_AdminOnCanteenRoutes(t *testing.T) {
    // Canteen product routes admit both canteen and admin.
    tok := issueTestToken(t, model.RoleAdmin, time.Hour)
    rec, reached := runGate(t, "Bearer "+tok, []model.Role{model.RoleCanteen, model.RoleAdmin})
    if rec.Code != http.StatusOK || !reached {
        t.Errorf("expected admin to pass canteen+admin gate, got %d", rec.Code)
    }
}

func TestRequireRole_NoTokenStill401(t *testing.T) {
    // Authentication failure wins over authorization: no token means 401,
    // not 403.
    rec, reached := runGate(t, "", []model.Role{model.RoleAdmin})
    if rec.Code != http.StatusUnauthorized {
        t.Errorf("expected 401, got %d", rec.Code)
    }
    if reached {
        t.Error("handler must not run")
    }
}
