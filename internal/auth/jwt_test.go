package auth

import (
	"testing"
	"time"
)

func TestGeneratePair(t *testing.T) {
	j := NewJWT("secret", time.Minute, time.Hour)
	pair, err := j.GeneratePair("admin", "editor")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := j.Validate(pair.AccessToken)
	if err != nil {
		t.Fatalf("validate access: %v", err)
	}
	if claims.Subject != "admin" || claims.Role != "editor" {
		t.Fatalf("claims=%+v", claims)
	}
	if _, err := j.ValidateRefresh(pair.RefreshToken); err != nil {
		t.Fatalf("validate refresh: %v", err)
	}
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	j := NewJWT("secret", time.Minute, time.Hour)
	pair, err := j.GeneratePair("admin", "editor")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := j.Validate(pair.RefreshToken); err == nil {
		t.Fatal("refresh token accepted as access token")
	}
	if _, err := j.ValidateRefresh(pair.AccessToken); err == nil {
		t.Fatal("access token accepted as refresh token")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	pair, err := NewJWT("one", time.Minute, time.Hour).GeneratePair("admin", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewJWT("two", time.Minute, time.Hour).Validate(pair.AccessToken); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}
