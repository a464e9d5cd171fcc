package handlers

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/azir-ecommerce/azir-golang/internal/apierror"
	"github.com/azir-ecommerce/azir-golang/internal/auth"
	"github.com/azir-ecommerce/azir-golang/internal/models"
)

type SignupInput struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Signup handles POST /api/v1/auth/signup.
// Every account created here is a plain "user"; there is no way to request
// a role through the API.
func (h *Handlers) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Respond(c, apierror.Validation(err.Error()))
		return
	}

	// Reject duplicate emails up front with a readable message instead of
	// leaking a raw unique-constraint error.
	var existingID int64
	err := h.DB.QueryRow("SELECT id FROM users WHERE email = ?", input.Email).Scan(&existingID)
	if err == nil {
		apierror.Respond(c, apierror.Validation("E-mail already in use"))
		return
	}
	if err != sql.ErrNoRows {
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		apierror.Respond(c, apierror.Internal("Failed to hash password", err))
		return
	}

	now := time.Now()
	query := `INSERT INTO users (name, slug, email, password_hash, role, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := h.DB.Exec(query, input.Name, slug.Make(input.Name), input.Email,
		password.Hash, models.RoleUser, now, now)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to create user", err))
		return
	}

	id, _ := res.LastInsertId()
	user := &models.User{
		ID:    id,
		Name:  input.Name,
		Email: input.Email,
		Role:  models.RoleUser,
	}

	token, err := auth.CreateToken(id, c, h.Config)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to sign token", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":  models.SanitizeUser(user),
		"token": token,
	})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Respond(c, apierror.Validation(err.Error()))
		return
	}

	user, err := h.findUserByEmail(input.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			apierror.Respond(c, apierror.Unauthorized("Incorrect email or password"))
			return
		}
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	matches, err := password.Matches(input.Password)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to verify password", err))
		return
	}
	if !matches {
		apierror.Respond(c, apierror.Unauthorized("Incorrect email or password"))
		return
	}

	token, err := auth.CreateToken(user.ID, c, h.Config)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to sign token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  models.SanitizeUser(user),
		"token": token,
	})
}

// Logout handles GET /api/v1/auth/logout by expiring the jwt cookie.
func (h *Handlers) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("jwt", "", -1, "/", "", !h.Config.IsDevelopment(), true)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword handles POST /api/v1/auth/forgotPassword.
// Generates a six digit one-time code, stores its hash with a 10 minute
// expiry, and mails the plaintext code to the user. A failed send rolls the
// stored code back and reports the failure instead of pretending it worked.
func (h *Handlers) ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Respond(c, apierror.Validation(err.Error()))
		return
	}

	user, err := h.findUserByEmail(input.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			apierror.Respond(c, apierror.NotFound("There is no user with that email address: %s", input.Email))
			return
		}
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	resetCode, err := generateResetCode()
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to generate reset code", err))
		return
	}

	query := `UPDATE users SET password_reset_code = ?, password_reset_expires = ?, password_reset_verified = FALSE WHERE id = ?`
	_, err = h.DB.Exec(query, hashResetCode(resetCode), time.Now().Add(10*time.Minute), user.ID)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to store reset code", err))
		return
	}

	if err := h.Mailer.SendPasswordResetEmail(user.Email, user.Name, resetCode); err != nil {
		// The code is useless if it never arrived. Clear it so a stale
		// hash cannot linger in the row.
		h.clearResetFields(user.ID)
		apierror.Respond(c, apierror.Internal("There is an error in sending email", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Reset code sent to email",
	})
}

type VerifyResetCodeInput struct {
	ResetCode string `json:"resetCode" binding:"required,len=6"`
}

// VerifyResetCode handles POST /api/v1/auth/verifyResetCode.
func (h *Handlers) VerifyResetCode(c *gin.Context) {
	var input VerifyResetCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Respond(c, apierror.Validation(err.Error()))
		return
	}

	var userID int64
	query := `SELECT id FROM users WHERE password_reset_code = ? AND password_reset_expires > ?`
	err := h.DB.QueryRow(query, hashResetCode(input.ResetCode), time.Now()).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			apierror.Respond(c, apierror.Validation("Reset code invalid or expired"))
			return
		}
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	_, err = h.DB.Exec("UPDATE users SET password_reset_verified = TRUE WHERE id = ?", userID)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to verify reset code", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ResetPassword handles PUT /api/v1/auth/resetPassword.
// Only works after the reset code for this account has been verified.
// Issues a fresh token, since the password change invalidates every old one.
func (h *Handlers) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Respond(c, apierror.Validation(err.Error()))
		return
	}

	user, err := h.findUserByEmail(input.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			apierror.Respond(c, apierror.NotFound("There is no user with that email address: %s", input.Email))
			return
		}
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	var verified bool
	err = h.DB.QueryRow("SELECT COALESCE(password_reset_verified, FALSE) FROM users WHERE id = ?", user.ID).Scan(&verified)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}
	if !verified {
		apierror.Respond(c, apierror.Validation("Reset code not verified"))
		return
	}

	var password models.Password
	if err := password.Set(input.NewPassword); err != nil {
		apierror.Respond(c, apierror.Internal("Failed to hash password", err))
		return
	}

	query := `UPDATE users SET password_hash = ?, password_changed_at = ?,
	          password_reset_code = NULL, password_reset_expires = NULL, password_reset_verified = NULL,
	          updated_at = ? WHERE id = ?`
	_, err = h.DB.Exec(query, password.Hash, time.Now(), time.Now(), user.ID)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to reset password", err))
		return
	}

	token, err := auth.CreateToken(user.ID, c, h.Config)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to sign token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// --- Helpers ---

func (h *Handlers) findUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + strings.Join(userColumns, ", ") + " FROM users WHERE email = ?"
	return scanUser(h.DB.QueryRow(query, email))
}

func (h *Handlers) clearResetFields(userID int64) {
	_, err := h.DB.Exec(`UPDATE users SET password_reset_code = NULL,
		password_reset_expires = NULL, password_reset_verified = NULL WHERE id = ?`, userID)
	if err != nil {
		log.Printf("Failed to clear reset fields for user %d: %v", userID, err)
	}
}

// generateResetCode draws a uniformly random six digit code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// hashResetCode returns the hex sha256 of a code. Reset codes are stored
// hashed for the same reason passwords are; only the email carries the
// plaintext.
func hashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
