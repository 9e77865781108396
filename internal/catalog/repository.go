package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopvima/shopvima/internal/platform/db"
	"github.com/shopvima/shopvima/internal/shared"
)

// Repository provides PostgreSQL backed persistence for the catalog.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const productColumns = `id, name, slug, sku, description, price, brand_id, category_id, is_published, created_at, updated_at, deleted_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.SKU, &p.Description, &p.Price,
		&p.BrandID, &p.CategoryID, &p.IsPublished, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	return p, err
}

func (r *Repository) queryProducts(ctx context.Context, where string, args ...any) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products WHERE `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListProducts returns a page of live products ordered by name.
func (r *Repository) ListProducts(ctx context.Context, limit, offset int) ([]Product, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, 0, err
	}
	products, err := r.queryProducts(ctx, `deleted_at IS NULL ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	return products, total, err
}

// ListTrashedProducts returns soft-deleted products, newest deletion first.
func (r *Repository) ListTrashedProducts(ctx context.Context) ([]Product, error) {
	return r.queryProducts(ctx, `deleted_at IS NOT NULL ORDER BY deleted_at DESC`)
}

// GetProduct fetches a live product by ID.
func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1 AND deleted_at IS NULL`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, shared.ErrNotFound
	}
	return p, err
}

// CreateProduct inserts a product. Slug and SKU collisions map to ErrDuplicate.
func (r *Repository) CreateProduct(ctx context.Context, p Product) (Product, error) {
	created, err := scanProduct(r.pool.QueryRow(ctx, `
		INSERT INTO products (id, name, slug, sku, description, price, brand_id, category_id, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING `+productColumns,
		p.ID, p.Name, p.Slug, p.SKU, p.Description, p.Price, p.BrandID, p.CategoryID, p.IsPublished))
	if err != nil {
		return Product{}, db.MapUniqueViolation(err)
	}
	return created, nil
}

// UpdateProduct updates a live product.
func (r *Repository) UpdateProduct(ctx context.Context, p Product) (Product, error) {
	updated, err := scanProduct(r.pool.QueryRow(ctx, `
		UPDATE products SET name = $2, slug = $3, sku = $4, description = $5, price = $6,
			brand_id = $7, category_id = $8, is_published = $9, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+productColumns,
		p.ID, p.Name, p.Slug, p.SKU, p.Description, p.Price, p.BrandID, p.CategoryID, p.IsPublished))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, shared.ErrNotFound
	}
	if err != nil {
		return Product{}, db.MapUniqueViolation(err)
	}
	return updated, nil
}

// UpsertProductBySKU inserts or refreshes a product keyed by its SKU. Used by
// the import pipeline, which must be re-runnable.
func (r *Repository) UpsertProductBySKU(ctx context.Context, p Product) (Product, error) {
	upserted, err := scanProduct(r.pool.QueryRow(ctx, `
		INSERT INTO products (id, name, slug, sku, description, price, brand_id, category_id, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name, slug = EXCLUDED.slug, description = EXCLUDED.description,
			price = EXCLUDED.price, brand_id = EXCLUDED.brand_id, category_id = EXCLUDED.category_id,
			is_published = EXCLUDED.is_published, deleted_at = NULL, updated_at = NOW()
		RETURNING `+productColumns,
		p.ID, p.Name, p.Slug, p.SKU, p.Description, p.Price, p.BrandID, p.CategoryID, p.IsPublished))
	if err != nil {
		return Product{}, db.MapUniqueViolation(err)
	}
	return upserted, nil
}

// SoftDeleteProduct moves a product to the trash.
func (r *Repository) SoftDeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.softDelete(ctx, "products", id)
}

// RestoreProduct brings a trashed product back.
func (r *Repository) RestoreProduct(ctx context.Context, id uuid.UUID) error {
	return r.restore(ctx, "products", id)
}

// HardDeleteProduct removes a trashed product permanently. Live rows must be
// trashed first.
func (r *Repository) HardDeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.hardDelete(ctx, "products", id)
}

const brandColumns = `id, name, slug, created_at, updated_at, deleted_at`

func scanBrand(row pgx.Row) (Brand, error) {
	var b Brand
	err := row.Scan(&b.ID, &b.Name, &b.Slug, &b.CreatedAt, &b.UpdatedAt, &b.DeletedAt)
	return b, err
}

// ListBrands returns all live brands ordered by name.
func (r *Repository) ListBrands(ctx context.Context) ([]Brand, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+brandColumns+` FROM brands WHERE deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// CreateBrand inserts a brand.
func (r *Repository) CreateBrand(ctx context.Context, b Brand) (Brand, error) {
	created, err := scanBrand(r.pool.QueryRow(ctx, `
		INSERT INTO brands (id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING `+brandColumns, b.ID, b.Name, b.Slug))
	if err != nil {
		return Brand{}, db.MapUniqueViolation(err)
	}
	return created, nil
}

// UpdateBrand updates a live brand.
func (r *Repository) UpdateBrand(ctx context.Context, b Brand) (Brand, error) {
	updated, err := scanBrand(r.pool.QueryRow(ctx, `
		UPDATE brands SET name = $2, slug = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+brandColumns, b.ID, b.Name, b.Slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return Brand{}, shared.ErrNotFound
	}
	if err != nil {
		return Brand{}, db.MapUniqueViolation(err)
	}
	return updated, nil
}

// EnsureBrand returns the brand with the given slug, creating it when absent.
// A trashed brand with the slug is revived.
func (r *Repository) EnsureBrand(ctx context.Context, name, slug string) (Brand, error) {
	b, err := scanBrand(r.pool.QueryRow(ctx, `
		INSERT INTO brands (id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, deleted_at = NULL, updated_at = NOW()
		RETURNING `+brandColumns, uuid.New(), name, slug))
	if err != nil {
		return Brand{}, err
	}
	return b, nil
}

// SoftDeleteBrand moves a brand to the trash.
func (r *Repository) SoftDeleteBrand(ctx context.Context, id uuid.UUID) error {
	return r.softDelete(ctx, "brands", id)
}

// RestoreBrand brings a trashed brand back.
func (r *Repository) RestoreBrand(ctx context.Context, id uuid.UUID) error {
	return r.restore(ctx, "brands", id)
}

// HardDeleteBrand removes a trashed brand permanently.
func (r *Repository) HardDeleteBrand(ctx context.Context, id uuid.UUID) error {
	return r.hardDelete(ctx, "brands", id)
}

const categoryColumns = `id, name, slug, parent_id, created_at, updated_at, deleted_at`

func scanCategory(row pgx.Row) (Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	return c, err
}

// ListCategories returns all live categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE deleted_at IS NULL ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateCategory inserts a category.
func (r *Repository) CreateCategory(ctx context.Context, c Category) (Category, error) {
	created, err := scanCategory(r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, name, slug, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING `+categoryColumns, c.ID, c.Name, c.Slug, c.ParentID))
	if err != nil {
		return Category{}, db.MapUniqueViolation(err)
	}
	return created, nil
}

// UpdateCategory updates a live category.
func (r *Repository) UpdateCategory(ctx context.Context, c Category) (Category, error) {
	updated, err := scanCategory(r.pool.QueryRow(ctx, `
		UPDATE categories SET name = $2, slug = $3, parent_id = $4, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+categoryColumns, c.ID, c.Name, c.Slug, c.ParentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, shared.ErrNotFound
	}
	if err != nil {
		return Category{}, db.MapUniqueViolation(err)
	}
	return updated, nil
}

// EnsureCategory returns the category with the given slug, creating it when
// absent. A trashed category with the slug is revived.
func (r *Repository) EnsureCategory(ctx context.Context, name, slug string) (Category, error) {
	c, err := scanCategory(r.pool.QueryRow(ctx, `
		INSERT INTO categories (id, name, slug, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, deleted_at = NULL, updated_at = NOW()
		RETURNING `+categoryColumns, uuid.New(), name, slug))
	if err != nil {
		return Category{}, err
	}
	return c, nil
}

// SoftDeleteCategory moves a category to the trash.
func (r *Repository) SoftDeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.softDelete(ctx, "categories", id)
}

// RestoreCategory brings a trashed category back.
func (r *Repository) RestoreCategory(ctx context.Context, id uuid.UUID) error {
	return r.restore(ctx, "categories", id)
}

// HardDeleteCategory removes a trashed category permanently.
func (r *Repository) HardDeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.hardDelete(ctx, "categories", id)
}

// table names below are package constants, never request input.

func (r *Repository) softDelete(ctx context.Context, table string, id uuid.UUID) error {
	return r.affectOne(ctx, fmt.Sprintf(
		`UPDATE %s SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, table), id)
}

func (r *Repository) restore(ctx context.Context, table string, id uuid.UUID) error {
	return r.affectOne(ctx, fmt.Sprintf(
		`UPDATE %s SET deleted_at = NULL, updated_at = NOW() WHERE id = $1 AND deleted_at IS NOT NULL`, table), id)
}

func (r *Repository) hardDelete(ctx context.Context, table string, id uuid.UUID) error {
	return r.affectOne(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE id = $1 AND deleted_at IS NOT NULL`, table), id)
}

func (r *Repository) affectOne(ctx context.Context, sql string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, sql, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
