package handlers

import (
	"database/sql"

	"github.com/azir-ecommerce/azir-golang/internal/config"
)

// ResetMailer is the slice of the mailer the handlers need. Declared here
// so tests can drop in a stub instead of a real SMTP dialer.
type ResetMailer interface {
	SendPasswordResetEmail(to, username, resetCode string) error
}

// Handlers holds all dependencies for our HTTP handlers. One instance is
// built in main() and shared by every request.
type Handlers struct {
	DB     *sql.DB
	Config *config.Config
	Mailer ResetMailer
}
