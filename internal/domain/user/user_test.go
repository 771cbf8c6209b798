package user

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleUser, true},
		{RoleAdmin, true},
		{"superuser", false},
		{"ADMIN", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidRole(tt.role); got != tt.want {
			t.Fatalf("ValidRole(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestUserJSONNeverContainsHash(t *testing.T) {
	u := User{
		Name:         "Ann",
		Email:        "ann@x.com",
		PasswordHash: "$2a$10$something",
		Role:         RoleUser,
	}

	raw, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if strings.Contains(string(raw), "$2a$") || strings.Contains(strings.ToLower(string(raw)), "password") {
		t.Fatalf("serialized user leaks the hash: %s", raw)
	}
}

func TestSanitize(t *testing.T) {
	u := User{
		Name:         "Ann",
		Email:        "ann@x.com",
		PasswordHash: "hash",
		Role:         RoleAdmin,
	}

	got := u.Sanitize()

	if got.Name != "Ann" || got.Email != "ann@x.com" || got.Role != RoleAdmin {
		t.Fatalf("unexpected sanitized view: %+v", got)
	}

	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if strings.Contains(string(raw), "hash") {
		t.Fatalf("sanitized view leaks the hash: %s", raw)
	}
}
