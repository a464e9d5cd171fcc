package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/azir-ecommerce/azir-golang/internal/apierror"
	"github.com/azir-ecommerce/azir-golang/internal/features"
	"github.com/azir-ecommerce/azir-golang/internal/models"
)

// userColumns is the column list every user SELECT uses, in the exact order
// scanUser expects.
var userColumns = []string{
	"id", "name", "slug", "email", "password_hash", "role",
	"profile_image", "password_changed_at", "created_at", "updated_at",
}

// Whitelists for the query modifier chain. Only what is named here can end
// up in a WHERE clause, an ORDER BY, or the response field mask.
var (
	userFilterColumns = map[string]string{
		"name":  "name",
		"email": "email",
		"role":  "role",
	}
	userSortColumns = map[string]string{
		"name":      "name",
		"email":     "email",
		"createdAt": "created_at",
	}
	userFields = map[string]bool{
		"id":           true,
		"name":         true,
		"email":        true,
		"role":         true,
		"profileImage": true,
	}
)

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one users row (userColumns order) into a models.User.
func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var profileImage sql.NullString
	var passwordChangedAt sql.NullTime

	err := row.Scan(
		&u.ID, &u.Name, &u.Slug, &u.Email, &u.PasswordHash, &u.Role,
		&profileImage, &passwordChangedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if profileImage.Valid {
		u.ProfileImage = &profileImage.String
	}
	if passwordChangedAt.Valid {
		u.PasswordChangedAt = &passwordChangedAt.Time
	}
	return &u, nil
}

// findUserByID fetches a single user or returns sql.ErrNoRows.
func (h *Handlers) findUserByID(id string) (*models.User, error) {
	query := "SELECT " + strings.Join(userColumns, ", ") + " FROM users WHERE id = ?"
	return scanUser(h.DB.QueryRow(query, id))
}

// GetUsers handles GET /api/v1/users (Admin).
// Runs the full modifier chain over every non-admin account and returns
// sanitized records with pagination metadata.
func (h *Handlers) GetUsers(c *gin.Context) {
	base := features.New("users", userColumns...).
		Where("role <> ?", models.RoleAdmin)

	// Total count first; pagination metadata is computed against the whole
	// non-admin population, matching the documented contract.
	countSQL, countArgs := base.CountSQL()
	var total int
	if err := h.DB.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	params := c.Request.URL.Query()
	q := base.
		Filter(params, userFilterColumns).
		Sort(params.Get("sort"), userSortColumns).
		LimitFields(params.Get("fields"), userFields).
		Search(params.Get("keyword"), "name", "email").
		Paginate(params.Get("page"), params.Get("limit"), total)

	selectSQL, args := q.SelectSQL()
	rows, err := h.DB.Query(selectSQL, args...)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}
	defer rows.Close()

	data := []map[string]any{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			continue
		}
		data = append(data, q.ApplyFieldMask(models.SanitizeUser(user)))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"pagination": q.Pagination(),
		"data":       data,
	})
}

// GetUser handles GET /api/v1/users/:id (Admin).
func (h *Handlers) GetUser(c *gin.Context) {
	id := c.Param("id")

	user, err := h.findUserByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			apierror.Respond(c, apierror.NotFound("No user for this id: %s", id))
			return
		}
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": models.SanitizeUser(user)})
}

type UpdateUserInput struct {
	Name  string `json:"name" binding:"required,min=3"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=user admin"`
}

// UpdateUser handles PUT /api/v1/users/:id (Admin).
// Updates name (and its slug), email and role in one atomic statement, then
// returns the updated record.
func (h *Handlers) UpdateUser(c *gin.Context) {
	id := c.Param("id")

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Respond(c, apierror.Validation(err.Error()))
		return
	}

	existing, err := h.findUserByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			apierror.Respond(c, apierror.NotFound("There is no user found with this ID: %s", id))
			return
		}
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	role := existing.Role
	if input.Role != "" {
		role = input.Role
	}

	query := `UPDATE users SET name = ?, slug = ?, email = ?, role = ?, updated_at = ? WHERE id = ?`
	_, err = h.DB.Exec(query, input.Name, slug.Make(input.Name), input.Email, role, time.Now(), id)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to update user", err))
		return
	}

	updated, err := h.findUserByID(id)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": models.SanitizeUser(updated)})
}

type ChangePasswordInput struct {
	Password string `json:"password" binding:"required,min=8"`
}

// ChangePassword handles PUT /api/v1/users/changePassword/:id.
// Hashes the new password and stamps password_changed_at so every token
// issued before this moment stops working.
func (h *Handlers) ChangePassword(c *gin.Context) {
	id := c.Param("id")

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Respond(c, apierror.Validation(err.Error()))
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		apierror.Respond(c, apierror.Internal("Failed to hash password", err))
		return
	}

	query := `UPDATE users SET password_hash = ?, password_changed_at = ?, updated_at = ? WHERE id = ?`
	res, err := h.DB.Exec(query, password.Hash, time.Now(), time.Now(), id)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to change password", err))
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		apierror.Respond(c, apierror.NotFound("There is no user found with ID: %s", id))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Password changed successfully",
	})
}

// DeleteUser handles DELETE /api/v1/users/:id (Admin).
func (h *Handlers) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	res, err := h.DB.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to delete user", err))
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		apierror.Respond(c, apierror.NotFound("No user for this id: %s", id))
		return
	}

	c.Status(http.StatusOK)
}

// GetMe handles GET /api/v1/users/getMe.
// Rewrites the id param to the logged-in user and reuses GetUser.
func (h *Handlers) GetMe(c *gin.Context) {
	userID := c.MustGet("userID").(int64)
	c.AddParam("id", strconv.FormatInt(userID, 10))
	h.GetUser(c)
}

type UpdateMeInput struct {
	Name         string  `json:"name" binding:"required,min=3"`
	Email        string  `json:"email" binding:"required,email"`
	ProfileImage *string `json:"profileImage"`
}

// UpdateMe handles PUT /api/v1/users/updateMe.
// Self-service update of name, email and profile image only; role and
// password can never travel through this route.
func (h *Handlers) UpdateMe(c *gin.Context) {
	userID := c.MustGet("userID").(int64)

	var input UpdateMeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Respond(c, apierror.Validation(err.Error()))
		return
	}

	query := `UPDATE users SET name = ?, email = ?, profile_image = COALESCE(?, profile_image), updated_at = ? WHERE id = ?`
	_, err := h.DB.Exec(query, input.Name, input.Email, input.ProfileImage, time.Now(), userID)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to update profile", err))
		return
	}

	updated, err := h.findUserByID(strconv.FormatInt(userID, 10))
	if err != nil {
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": models.SanitizeUser(updated)})
}
