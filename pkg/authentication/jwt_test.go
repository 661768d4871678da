// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"errors"
	"testing"
	"time"

	"github.com/asset3d/facility-service/internal/types"
)

func demoUser() *types.User {
	return &types.User{
		ID:       "user-1",
		TenantID: "tenant-1",
		Email:    "user@example.com",
		Role:     types.RoleCompany,
		Active:   true,
	}
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.IssueToken(demoUser())
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	claims, err := m.VerifyToken(token)
	if err != nil {
		t.Fatalf("unexpected error verifying token: %v", err)
	}

	if claims.Subject != "user-1" {
		t.Errorf("expected subject user-1, got %q", claims.Subject)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("expected email claim, got %q", claims.Email)
	}
	if claims.Role != types.RoleCompany {
		t.Errorf("expected role claim, got %q", claims.Role)
	}
	if claims.TenantID != "tenant-1" {
		t.Errorf("expected tenant claim, got %q", claims.TenantID)
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).IssueToken(demoUser())
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	_, err = NewJWTManager("secret-b", time.Hour).VerifyToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, err := m.IssueToken(demoUser())
	if err != nil {
		t.Fatalf("unexpected error issuing token: %v", err)
	}

	if _, err := m.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWTManager_Garbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	if _, err := m.VerifyToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("demo123")
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}

	if !CheckPassword(hash, "demo123") {
		t.Errorf("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Errorf("expected wrong password to fail")
	}
}
