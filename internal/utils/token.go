package utils // package utils provides helpers for credential hashing and token issuance

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5"

    "github.com/rezamb/canteen-ordering/internal/model"
)

// Claims is the JWT payload carried by every access token.  The principal
// fields (user id, email, role) are embedded alongside the registered
// expiry/issued-at claims.  The role claim is authoritative for the token's
// lifetime; a role change takes effect only when a new token is issued.
type Claims struct {
    UserID uint64     `json:"user_id"`
    Email  string     `json:"email"`
    Role   model.Role `json:"role"`
    jwt.RegisteredClaims
}

// AccessToken pairs a signed JWT string with its expiry instant.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// ErrInvalidToken covers every verification failure: malformed, expired,
// wrong signature.  Callers deliberately cannot tell these apart.
var ErrInvalidToken = errors.New("invalid token")

// IssueToken builds and signs an HS256 JWT for the principal.  The secret is
// injected by the caller; this package never reads the environment.  ttl
// controls how long the token stays valid (the platform default is 7 days).
func IssueToken(secret string, p model.Principal, ttl time.Duration) (AccessToken, error) {
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := Claims{
        UserID: p.UserID,
        Email:  p.Email,
        Role:   p.Role,
        RegisteredClaims: jwt.RegisteredClaims{
            ExpiresAt: jwt.NewNumericDate(exp),
            IssuedAt:  jwt.NewNumericDate(now),
        },
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyToken validates signature and expiry and returns the embedded
// principal.  Any failure collapses into ErrInvalidToken: expired and forged
// tokens are indistinguishable to callers.
func VerifyToken(secret, raw string) (model.Principal, error) {
    var claims Claims
    tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return model.Principal{}, ErrInvalidToken
    }
    if claims.UserID == 0 || !claims.Role.Valid() {
        return model.Principal{}, ErrInvalidToken
    }
    return model.Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}
