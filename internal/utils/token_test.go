package utils

import (
    "testing"
    "time"

    "github.com/rezamb/canteen-ordering/internal/model"
)

const testSecret = "unit-test-secret"

func TestIssueVerify_RoundTrip(t *testing.T) {
    p := model.Principal{UserID: 42, Email: "sara@example.com", Role: model.RoleCanteen}

    tok, err := IssueToken(testSecret, p, time.Hour)
    if err != nil {
        t.Fatalf("issue failed: %v", err)
    }
    if tok.Token == "" {
        t.Fatal("expected non-empty token")
    }

    got, err := VerifyToken(testSecret, tok.Token)
    if err != nil {
        t.Fatalf("verify failed: %v", err)
    }
    if got != p {
        t.Errorf("principal round-trip mismatch: got %+v want %+v", got, p)
    }
}

func TestVerifyToken_Expired(t *testing.T) {
    p := model.Principal{UserID: 7, Email: "ali@example.com", Role: model.RoleUser}
    tok, err := IssueToken(testSecret, p, -time.Minute)
    if err != nil {
        t.Fatalf("issue failed: %v", err)
    }
    if _, err := VerifyToken(testSecret, tok.Token); err != ErrInvalidToken {
        t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
    }
}

func TestVerifyToken_WrongSecret(t *testing.T) {
    p := model.Principal{UserID: 7, Email: "ali@example.com", Role: model.RoleUser}
    tok, err := IssueToken(testSecret, p, time.Hour)
    if err != nil {
        t.Fatalf("issue failed: %v", err)
    }
    if _, err := VerifyToken("another-secret", tok.Token); err != ErrInvalidToken {
        t.Errorf("expected ErrInvalidToken for forged token, got %v", err)
    }
}

func TestVerifyToken_Malformed(t *testing.T) {
    for _, raw := range []string{"", "garbage", "a.b.c"} {
        if _, err := VerifyToken(testSecret, raw); err != ErrInvalidToken {
            t.Errorf("expected ErrInvalidToken for %q, got %v", raw, err)
        }
    }
}

func TestVerifyToken_UnknownRoleRejected(t *testing.T) {
    tok, err := IssueToken(testSecret, model.Principal{UserID: 1, Email: "x@example.com", Role: "superuser"}, time.Hour)
    if err != nil {
        t.Fatalf("issue failed: %v", err)
    }
    if _, err := VerifyToken(testSecret, tok.Token); err != ErrInvalidToken {
        t.Errorf("expected ErrInvalidToken for unknown role claim, got %v", err)
    }
}
