package model

import "time"

// Role is the coarse-grained capability class gating route access.  There is
// no hierarchy between roles: each protected route group names the exact set
// of roles it admits.
type Role string

const (
    RoleUser    Role = "user"    // regular customer placing orders
    RoleCanteen Role = "canteen" // canteen staff managing products and order status
    RoleAdmin   Role = "admin"   // platform administrator
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
    switch r {
    case RoleUser, RoleCanteen, RoleAdmin:
        return true
    }
    return false
}

// User represents an application user record as stored in the `users` table.
// Each field corresponds to a column in the database.  The json tags are
// omitted here because these structs are primarily used internally by the
// repository layer; handlers define separate response types with appropriate
// JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – capability class (user, canteen, admin).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Name         string    // users.name
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         Role      // users.role
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// Principal is the authenticated identity derived from a verified token.  It
// is embedded in every issued token and treated as authoritative for the
// token's lifetime.
type Principal struct {
    UserID uint64 `json:"user_id"`
    Email  string `json:"email"`
    Role   Role   `json:"role"`
}
