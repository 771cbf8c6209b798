package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheck(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if hash == "secret" {
		t.Fatalf("stored hash must never equal the plaintext")
	}

	if err := h.Check(hash, "secret"); err != nil {
		t.Fatalf("expected matching password to verify, got %v", err)
	}

	if err := h.Check(hash, "wrong"); err == nil {
		t.Fatalf("expected mismatch error for wrong password")
	}
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	second, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	if first == second {
		t.Fatalf("two hashes of the same password should differ (salt)")
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	h := NewHasher(1000)

	hash, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("hash failed with clamped cost: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("cost extraction failed: %v", err)
	}

	if cost != bcrypt.DefaultCost {
		t.Fatalf("got cost %d, want default %d", cost, bcrypt.DefaultCost)
	}
}
