package security

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	password := []byte("password123")
	hash, err := h.Hash(password)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" {
		t.Fatal("Hash returned empty")
	}
	if hash == string(password) {
		t.Fatal("hash must not equal the plaintext")
	}
	if err := h.Compare(hash, password); err != nil {
		t.Fatalf("Compare: %v", err)
	}
}

func TestHasher_CompareWrongPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	hash, _ := h.Hash([]byte("password123"))
	err := h.Compare(hash, []byte("wrong"))
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		t.Fatalf("Compare with wrong password = %v, want mismatch error", err)
	}
}

func TestHasher_PasswordTooLong(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if _, err := h.Hash([]byte(strings.Repeat("x", 73))); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("Hash of 73 bytes = %v, want ErrPasswordTooLong", err)
	}
	if _, err := h.Hash([]byte(strings.Repeat("x", 72))); err != nil {
		t.Fatalf("Hash of 72 bytes: %v", err)
	}
}

func TestHasher_CostClamping(t *testing.T) {
	if h := NewHasher(12); h.Cost != 12 {
		t.Errorf("Cost = %d, want 12", h.Cost)
	}
	if h := NewHasher(0); h.Cost != bcrypt.DefaultCost {
		t.Errorf("zero cost = %d, want DefaultCost", h.Cost)
	}
	if h := NewHasher(99); h.Cost != bcrypt.MaxCost {
		t.Errorf("oversized cost = %d, want MaxCost", h.Cost)
	}
}
