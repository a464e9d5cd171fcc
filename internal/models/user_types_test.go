package models

import (
	"strings"
	"testing"
	"time"
)

func TestSanitizeUserFieldSet(t *testing.T) {
	now := time.Now()
	code := "hashed-reset-code"
	verified := true
	image := "http://localhost:8080/uploads/abc.png"

	user := &User{
		ID:                    42,
		Name:                  "Ali Hassan",
		Slug:                  "ali-hassan",
		Email:                 "ali@example.com",
		PasswordHash:          "$2a$12$secret-hash",
		Role:                  RoleUser,
		ProfileImage:          &image,
		PasswordChangedAt:     &now,
		PasswordResetCode:     &code,
		PasswordResetExpires:  &now,
		PasswordResetVerified: &verified,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	sanitized := SanitizeUser(user)

	allowed := map[string]bool{
		"id": true, "name": true, "email": true, "role": true, "profileImage": true,
	}
	for key := range sanitized {
		if !allowed[key] {
			t.Errorf("sanitized output contains unexpected field %q", key)
		}
	}

	for _, value := range sanitized {
		if s, ok := value.(string); ok && strings.Contains(s, "secret-hash") {
			t.Errorf("sanitized output leaked the password hash: %v", sanitized)
		}
	}

	if sanitized["id"] != int64(42) || sanitized["email"] != "ali@example.com" {
		t.Errorf("sanitized output lost public fields: %v", sanitized)
	}
	if sanitized["profileImage"] != image {
		t.Errorf("expected profileImage %q, got %v", image, sanitized["profileImage"])
	}
}

func TestSanitizeUserWithoutProfileImage(t *testing.T) {
	user := &User{ID: 1, Name: "A", Email: "a@b.c", Role: RoleAdmin}

	sanitized := SanitizeUser(user)
	if _, present := sanitized["profileImage"]; present {
		t.Errorf("profileImage should be absent when unset: %v", sanitized)
	}
}

func TestPasswordSetAndMatches(t *testing.T) {
	var password Password
	if err := password.Set("correct horse battery"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if password.Hash == "correct horse battery" {
		t.Fatal("hash must differ from the plaintext")
	}
	if !strings.HasPrefix(password.Hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", password.Hash)
	}

	ok, err := password.Matches("correct horse battery")
	if err != nil || !ok {
		t.Errorf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = password.Matches("wrong password")
	if err != nil {
		t.Errorf("mismatch must not be an error: %v", err)
	}
	if ok {
		t.Error("wrong password must not match")
	}
}
