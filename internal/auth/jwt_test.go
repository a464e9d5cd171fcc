package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/azir-ecommerce/azir-golang/internal/config"
)

func testConfig(env string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Env: env},
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			ExpiresIn:       24 * time.Hour,
			CookieExpiresIn: 7,
		},
	}
}

func TestCreateTokenRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig("development")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	token, err := CreateToken(1337, c, cfg)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := ValidateToken(token, cfg)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 1337 {
		t.Errorf("expected userId 1337, got %d", claims.UserID)
	}
	if claims.IssuedAt.IsZero() {
		t.Error("expected a non-zero issued-at")
	}
}

func TestCreateTokenCookieAttributes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig("development")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if _, err := CreateToken(1, c, cfg); err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	var jwtCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "jwt" {
			jwtCookie = cookie
		}
	}
	if jwtCookie == nil {
		t.Fatal("jwt cookie was not set")
	}

	if jwtCookie.MaxAge != 7*24*60*60 {
		t.Errorf("expected max-age %d, got %d", 7*24*60*60, jwtCookie.MaxAge)
	}
	if !jwtCookie.HttpOnly {
		t.Error("cookie must be http-only")
	}
	if jwtCookie.SameSite != http.SameSiteStrictMode {
		t.Errorf("expected SameSite=Strict, got %v", jwtCookie.SameSite)
	}
	if jwtCookie.Secure {
		t.Error("cookie must not be Secure in development")
	}
}

func TestCreateTokenCookieSecureOutsideDevelopment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig("production")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if _, err := CreateToken(1, c, cfg); err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "jwt" && !cookie.Secure {
			t.Error("cookie must be Secure outside development")
		}
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	token, err := CreateToken(1, c, testConfig("development"))
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	other := testConfig("development")
	other.JWT.Secret = "a-different-secret"
	if _, err := ValidateToken(token, other); err == nil {
		t.Error("expected validation to fail with a different secret")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token", testConfig("development")); err == nil {
		t.Error("expected validation to fail for a malformed token")
	}
}
