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

var subCategoryColumns = []string{"id", "name", "slug", "category_id", "created_at", "updated_at"}

var (
	subCategoryFilterColumns = map[string]string{
		"name":       "name",
		"slug":       "slug",
		"categoryId": "category_id",
	}
	subCategorySortColumns = map[string]string{
		"name":      "name",
		"createdAt": "created_at",
	}
	subCategoryFields = map[string]bool{
		"id":         true,
		"name":       true,
		"slug":       true,
		"categoryId": true,
		"createdAt":  true,
		"updatedAt":  true,
	}
)

func scanSubCategory(row rowScanner) (*models.SubCategory, error) {
	var sub models.SubCategory
	err := row.Scan(&sub.ID, &sub.Name, &sub.Slug, &sub.CategoryID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func subCategoryToMap(sub *models.SubCategory) map[string]any {
	return map[string]any{
		"id":         sub.ID,
		"name":       sub.Name,
		"slug":       sub.Slug,
		"categoryId": sub.CategoryID,
		"createdAt":  sub.CreatedAt,
		"updatedAt":  sub.UpdatedAt,
	}
}

// categoryExists backs the referential check on subcategory writes: a
// subcategory may only ever point at a real category.
func (h *Handlers) categoryExists(categoryID int64) (bool, error) {
	var id int64
	err := h.DB.QueryRow("SELECT id FROM categories WHERE id = ?", categoryID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetSubCategories handles GET /api/v1/subcategories (Public).
// Supports the full modifier chain; ?categoryId=N narrows the list to one
// parent category.
func (h *Handlers) GetSubCategories(c *gin.Context) {
	base := features.New("subcategories", subCategoryColumns...)

	countSQL, countArgs := base.CountSQL()
	var total int
	if err := h.DB.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	params := c.Request.URL.Query()
	q := base.
		Filter(params, subCategoryFilterColumns).
		Sort(params.Get("sort"), subCategorySortColumns).
		LimitFields(params.Get("fields"), subCategoryFields).
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
		sub, err := scanSubCategory(rows)
		if err != nil {
			continue
		}
		data = append(data, q.ApplyFieldMask(subCategoryToMap(sub)))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"pagination": q.Pagination(),
		"data":       data,
	})
}

// GetSubCategory handles GET /api/v1/subcategories/:id (Public).
func (h *Handlers) GetSubCategory(c *gin.Context) {
	id := c.Param("id")

	query := "SELECT id, name, slug, category_id, created_at, updated_at FROM subcategories WHERE id = ?"
	sub, err := scanSubCategory(h.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			apierror.Respond(c, apierror.NotFound("No subcategory for this id: %s", id))
			return
		}
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sub})
}

// CreateSubCategory handles POST /api/v1/subcategories (Admin).
func (h *Handlers) CreateSubCategory(c *gin.Context) {
	var input models.CreateSubCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Respond(c, apierror.Validation(err.Error()))
		return
	}

	exists, err := h.categoryExists(input.CategoryID)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}
	if !exists {
		apierror.Respond(c, apierror.Validation("No category for this id"))
		return
	}

	now := time.Now()
	query := `INSERT INTO subcategories (name, slug, category_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	res, err := h.DB.Exec(query, input.Name, slug.Make(input.Name), input.CategoryID, now, now)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to create subcategory", err))
		return
	}

	id, _ := res.LastInsertId()
	sub := models.SubCategory{
		ID:         id,
		Name:       input.Name,
		Slug:       slug.Make(input.Name),
		CategoryID: input.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	c.JSON(http.StatusCreated, gin.H{"data": sub})
}

// UpdateSubCategory handles PUT /api/v1/subcategories/:id (Admin).
func (h *Handlers) UpdateSubCategory(c *gin.Context) {
	id := c.Param("id")

	var input models.UpdateSubCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Respond(c, apierror.Validation(err.Error()))
		return
	}

	exists, err := h.categoryExists(input.CategoryID)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}
	if !exists {
		apierror.Respond(c, apierror.Validation("No category for this id"))
		return
	}

	query := `UPDATE subcategories SET name = ?, slug = ?, category_id = ?, updated_at = ? WHERE id = ?`
	res, err := h.DB.Exec(query, input.Name, slug.Make(input.Name), input.CategoryID, time.Now(), id)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to update subcategory", err))
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		apierror.Respond(c, apierror.NotFound("No subcategory for this id: %s", id))
		return
	}

	sub, err := scanSubCategory(h.DB.QueryRow(
		"SELECT id, name, slug, category_id, created_at, updated_at FROM subcategories WHERE id = ?", id))
	if err != nil {
		apierror.Respond(c, apierror.Internal("Database error", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sub})
}

// DeleteSubCategory handles DELETE /api/v1/subcategories/:id (Admin).
func (h *Handlers) DeleteSubCategory(c *gin.Context) {
	id := c.Param("id")

	res, err := h.DB.Exec("DELETE FROM subcategories WHERE id = ?", id)
	if err != nil {
		apierror.Respond(c, apierror.Internal("Failed to delete subcategory", err))
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		apierror.Respond(c, apierror.NotFound("No subcategory for this id: %s", id))
		return
	}

	c.Status(http.StatusOK)
}
