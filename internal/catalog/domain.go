// Package catalog manages products, brands and categories. All three are
// soft-deleted: a delete moves the row to the trash, from where it can be
// restored or purged for good.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product is a sellable item.
type Product struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	SKU         string
	Description string
	Price       float64
	BrandID     *uuid.UUID
	CategoryID  *uuid.UUID
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Brand groups products by manufacturer.
type Brand struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Category is a node in the product taxonomy.
type Category struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	ParentID  *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
