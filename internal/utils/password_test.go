package utils

import "testing"

func TestPassword_HashAndVerify(t *testing.T) {
    hash, err := HashPassword("correct horse battery staple", 4)
    if err != nil {
        t.Fatalf("hash failed: %v", err)
    }
    if hash == "correct horse battery staple" {
        t.Fatal("hash must not equal the plain password")
    }
    if !VerifyPassword(hash, "correct horse battery staple") {
        t.Error("expected matching password to verify")
    }
    if VerifyPassword(hash, "correct horse battery stapl") {
        t.Error("expected non-matching password to fail")
    }
}

func TestPassword_VerifyMalformedDigest(t *testing.T) {
    if VerifyPassword("not-a-bcrypt-digest", "anything") {
        t.Error("malformed digest must never verify")
    }
}

func TestPassword_DistinctSalts(t *testing.T) {
    a, err := HashPassword("same", 4)
    if err != nil {
        t.Fatalf("hash failed: %v", err)
    }
    b, err := HashPassword("same", 4)
    if err != nil {
        t.Fatalf("hash failed: %v", err)
    }
    if a == b {
        t.Error("two digests of the same password should differ by salt")
    }
}
