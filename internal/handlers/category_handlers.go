package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/azir-ecommerce/azir-golang/internal/apierror"
	"github.com/azir-ecommerce/azir-golang/internal/features"
	"github.com/azir-ecommerce/azir-golang/internal/models"
)

var categoryColumns = []string{"id", "name", "slug", "created_at", "updated_at"}

var (
	categoryFilterColumns = map[string]string{
		"name": "name",
		"slug": "slug",
	}
	categorySortColumns = map[string]string{
		"name":      "name",
		"createdAt": "created_at",
	}
	categoryFields = map[string]bool{
		"id":        true,
		"name":      true,
		"slug":      true,
		"createdAt": true,
		"updatedAt": true,
	}
)

func scanCategory(row rowScanner) (*models.Category, error) {
	var cat models.Category
	err := row.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// categoryToMap mirrors the struct's JSON shape so the chain's field mask
// can be applied uniformly to list responses.
func categoryToMap(cat *models.Category) map[string]any {
	return map[string]any{
		"id":        cat.ID,
		"name":      cat.Name,
		"slug":      cat.Slug,
		"createdAt": cat.CreatedAt,
		"updatedAt": cat.UpdatedAt,
	}
}

// GetCategories handles GET /api/v1/categories (Public).
func (h *Handlers) GetCategories(c *gin.Context) {
	base := features.New("categories", categoryColumns...)

	countSQL, countArgs := base.CountSQL()
	var total int
	if err := h.DB.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	params := c.Request.URL.Query()
	q := base.
		Filter(params, categoryFilterColumns).
		Sort(params.Get("sort"), categorySortColumns).
		LimitFields(params.Get("fields"), categoryFields).
		Search(params.Get("keyword"), "name").
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
		cat, err := scanCategory(rows)
		if err != nil {
			continue
		}
		data = append(data, q.ApplyFieldMask(categoryToMap(cat)))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"pagination": q.Pagination(),
		"data":       data,
	})
}

// GetCategory handles GET /api/v1/categories/:id (Public).
func (h *Handlers) GetCategory(c *gin.Context) {
	id := c.Param("id")

	query := "SELECT id, name, slug, created_at, updated_at FROM categories WHERE id = ?"
	cat, err := scanCategory(h.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			apierror.Respond(c, apierror.NotFound("No category for this id: %s", id))
			return
		}
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cat})
}

// CreateCategory handles POST /api/v1/categories (Admin).
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Respond(c, apierror.Validation(err.Error()))
		return
	}

	now := time.Now()
	query := `INSERT INTO categories (name, slug, created_at, updated_at) VALUES (?, ?, ?, ?)`
	res, err := h.DB.Exec(query, input.Name, slug.Make(input.Name), now, now)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to create category", err))
		return
	}

	id, _ := res.LastInsertId()
	cat := models.Category{
		ID:        id,
		Name:      input.Name,
		Slug:      slug.Make(input.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	c.JSON(http.StatusCreated, gin.H{"data": cat})
}

// UpdateCategory handles PUT /api/v1/categories/:id (Admin).
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id := c.Param("id")

	var input models.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Respond(c, apierror.Validation(err.Error()))
		return
	}

	query := `UPDATE categories SET name = ?, slug = ?, updated_at = ? WHERE id = ?`
	res, err := h.DB.Exec(query, input.Name, slug.Make(input.Name), time.Now(), id)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to update category", err))
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		apierror.Respond(c, apierror.NotFound("No category for this id: %s", id))
		return
	}

	cat, err := scanCategory(h.DB.QueryRow(
		"SELECT id, name, slug, created_at, updated_at FROM categories WHERE id = ?", id))
	if err != nil {
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cat})
}

// DeleteCategory handles DELETE /api/v1/categories/:id (Admin).
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	res, err := h.DB.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to delete category", err))
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		apierror.Respond(c, apierror.NotFound("No category for this id: %s", id))
		return
	}

	c.Status(http.StatusOK)
}
