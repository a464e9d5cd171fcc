package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/azir-ecommerce/azir-golang/internal/config"
)

// TokenClaims is what ValidateToken recovers from a verified token.
// IssuedAt is kept so the Protect middleware can reject tokens minted
// before the user's last password change.
type TokenClaims struct {
	UserID   int64
	IssuedAt time.Time
}

// CreateToken signs a session token for the given user and attaches it to
// the response as the "jwt" cookie. The cookie lives for
// JWT.CookieExpiresIn days, is HttpOnly, SameSite=Strict, and is marked
// Secure everywhere except development. The raw token string is returned
// too, for handlers that also include it in the JSON body.
//
// A signing failure here means the configuration is broken (the secret is
// checked at startup); callers must treat it as fatal for the request, not
// retry.
func CreateToken(userID int64, c *gin.Context, cfg *config.Config) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    now.Add(cfg.JWT.ExpiresIn).Unix(),
		"iat":    now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return "", err
	}

	maxAge := cfg.JWT.CookieExpiresIn * 24 * 60 * 60
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("jwt", tokenString, maxAge, "/", "", !cfg.IsDevelopment(), true)

	return tokenString, nil
}

// ValidateToken parses and verifies a token string and returns its claims.
func ValidateToken(tokenString string, cfg *config.Config) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Reject anything not signed with our HMAC method.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	// JSON numbers decode as float64.
	userIDFloat, ok := claims["userId"].(float64)
	if !ok {
		return nil, errors.New("invalid userId claim")
	}

	result := &TokenClaims{UserID: int64(userIDFloat)}
	if iat, ok := claims["iat"].(float64); ok {
		result.IssuedAt = time.Unix(int64(iat), 0)
	}
	return result, nil
}
