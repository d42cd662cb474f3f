package utils

import (
	"pos_backend/pkg/config"
	"pos_backend/pkg/models"
	"testing"
	"time"
)

func TestTokenTTL(t *testing.T) {
	tests := map[string]time.Duration{
		"7d":   7 * 24 * time.Hour,
		"1d":   24 * time.Hour,
		"90m":  90 * time.Minute,
		"":     7 * 24 * time.Hour,
		"soon": 7 * 24 * time.Hour,
		"-3h":  7 * 24 * time.Hour,
		"xd":   7 * 24 * time.Hour,
	}
	for in, want := range tests {
		config.AppConfig = &config.Config{JWTExpiresIn: in}
		if got := TokenTTL(); got != want {
			t.Errorf("TokenTTL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "secret", JWTExpiresIn: "1h"}

	token, err := GenerateToken("s3", models.RoleWaiter, "key-1")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.StaffID != "s3" || claims.Role != models.RoleWaiter || claims.SessionKey() != "key-1" {
		t.Errorf("claims = %+v", claims)
	}

	config.AppConfig.JWTSecret = "other"
	if _, err := VerifyToken(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestComparePasscode(t *testing.T) {
	if !ComparePasscode("1234", "1234") || ComparePasscode("1234", "4321") {
		t.Error("plain passcode comparison is wrong")
	}

	hashed, err := HashPasscode("2580")
	if err != nil {
		t.Fatal(err)
	}
	if hashed == "2580" {
		t.Fatal("passcode was not hashed")
	}
	if !ComparePasscode(hashed, "2580") {
		t.Error("hashed passcode rejected")
	}
	if ComparePasscode(hashed, "0000") {
		t.Error("wrong passcode accepted against hash")
	}
	if err := CheckPasscodeStrength("123"); err == nil {
		t.Error("three-digit passcode accepted")
	}
}
