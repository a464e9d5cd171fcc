package models

import "time"

// --- Domain Models ---

// Category is a top-level product grouping.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SubCategory always belongs to exactly one Category. The handler checks
// that CategoryID points at a real category before any insert or update.
type SubCategory struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Slug       string    `json:"slug" db:"slug"`
	CategoryID int64     `json:"categoryId" db:"category_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// --- API Input Structs ---
// Separate from the domain models so clients can never smuggle in an id,
// slug, or timestamp of their own.

type CreateCategoryInput struct {
	Name string `json:"name" binding:"required,min=3,max=32"`
}

type UpdateCategoryInput struct {
	Name string `json:"name" binding:"required,min=3,max=32"`
}

type CreateSubCategoryInput struct {
	Name       string `json:"name" binding:"required,min=2,max=32"`
	CategoryID int64  `json:"categoryId" binding:"required"`
}

type UpdateSubCategoryInput struct {
	Name       string `json:"name" binding:"required,min=2,max=32"`
	CategoryID int64  `json:"categoryId" binding:"required"`
}
