package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/rezamb/canteen-ordering/internal/config"
    "github.com/rezamb/canteen-ordering/internal/middleware"
    "github.com/rezamb/canteen-ordering/internal/model"
    "github.com/rezamb/canteen-ordering/internal/repository"
    "github.com/rezamb/canteen-ordering/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
    Cfg   config.Config
    Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
    Name     string `json:"name"`
    Email    string `json:"email"`
    Password string `json:"password"`
    Role     string `json:"role"` // user | canteen (admin cannot be self-assigned)
}
type loginReq struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

type userPart struct {
    ID    uint64     `json:"id"`
    Name  string     `json:"name"`
    Email string     `json:"email"`
    Role  model.Role `json:"role"`
}
type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}
type authResp struct {
    User  userPart  `json:"user"`
    Token tokenPart `json:"token"`
}

func (h *AuthHandler) tokenTTL() time.Duration {
    return time.Duration(h.Cfg.TokenTTLHours) * time.Hour
}

// Register: create user and return a token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" || req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password required"})
    }
    role := model.Role(strings.ToLower(strings.TrimSpace(req.Role)))
    if role != model.RoleCanteen {
        // Everything else, including an attempted "admin", falls back to a
        // plain user account.  Admins are promoted by an existing admin.
        role = model.RoleUser
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    uid, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, role, h.Cfg.BcryptCost)
    if err != nil {
        if err == repository.ErrEmailExists {
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
    }

    tok, err := utils.IssueToken(h.Cfg.JWTSecret,
        model.Principal{UserID: uid, Email: req.Email, Role: role}, h.tokenTTL())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
    }

    return c.JSON(http.StatusCreated, authResp{
        User:  userPart{ID: uid, Name: req.Name, Email: req.Email, Role: role},
        Token: tokenPart{Token: tok.Token, Expires: tok.Exp},
    })
}

// Login: verify credentials and return a fresh token.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    tok, err := utils.IssueToken(h.Cfg.JWTSecret,
        model.Principal{UserID: u.ID, Email: u.Email, Role: u.Role}, h.tokenTTL())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
    }

    return c.JSON(http.StatusOK, authResp{
        User:  userPart{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role},
        Token: tokenPart{Token: tok.Token, Expires: tok.Exp},
    })
}

// Me: simple protected endpoint returning the token's principal.
func (h *AuthHandler) Me(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "user_id": c.Get(middleware.CtxUserID),
        "email":   c.Get(middleware.CtxEmail),
        "role":    c.Get(middleware.CtxRole),
    })
}
