package middleware

import (
	"database/sql"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/azir-ecommerce/azir-golang/internal/apierror"
	"github.com/azir-ecommerce/azir-golang/internal/auth"
	"github.com/azir-ecommerce/azir-golang/internal/config"
)

// tokenFromRequest pulls the session token out of the request. The "jwt"
// cookie is preferred (that is how CreateToken delivers it); a Bearer
// Authorization header works too for API clients that manage the token
// themselves.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("jwt"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// Protect is the authentication guard. It validates the session token,
// confirms the user still exists, and rejects tokens issued before the
// user's last password change. On success the user's id and role are put
// on the context for the handlers and role guards downstream.
func Protect(db *sql.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			apierror.Respond(c, apierror.Unauthorized("You are not logged in. Please log in to get access"))
			return
		}

		claims, err := auth.ValidateToken(tokenString, cfg)
		if err != nil {
			apierror.Respond(c, apierror.Unauthorized("Invalid or expired token"))
			return
		}

		var role string
		var passwordChangedAt sql.NullTime
		query := "SELECT role, password_changed_at FROM users WHERE id = ?"
		err = db.QueryRow(query, claims.UserID).Scan(&role, &passwordChangedAt)
		if err != nil {
			if err == sql.ErrNoRows {
				apierror.Respond(c, apierror.Unauthorized("The user belonging to this token no longer exists"))
				return
			}
			apierror.Respond(c, apierror.Internal("Database error checking user", err))
			return
		}

		// A password change invalidates every token minted before it.
		if passwordChangedAt.Valid && claims.IssuedAt.Before(passwordChangedAt.Time) {
			apierror.Respond(c, apierror.Unauthorized("Password was changed recently. Please log in again"))
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", role)
		c.Next()
	}
}

// AllowedTo returns a role guard. It must run AFTER Protect, which is what
// puts userRole on the context.
func AllowedTo(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("userRole")
		if !exists {
			apierror.Respond(c, apierror.Unauthorized("You are not logged in. Please log in to get access"))
			return
		}

		role := roleValue.(string)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		apierror.Respond(c, apierror.Forbidden("You are not allowed to access this route"))
	}
}
