package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// RepositoryPort defines the data access the service needs.
type RepositoryPort interface {
	ListProducts(ctx context.Context, limit, offset int) ([]Product, int, error)
	ListTrashedProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (Product, error)
	CreateProduct(ctx context.Context, p Product) (Product, error)
	UpdateProduct(ctx context.Context, p Product) (Product, error)
	SoftDeleteProduct(ctx context.Context, id uuid.UUID) error
	RestoreProduct(ctx context.Context, id uuid.UUID) error
	HardDeleteProduct(ctx context.Context, id uuid.UUID) error

	ListBrands(ctx context.Context) ([]Brand, error)
	CreateBrand(ctx context.Context, b Brand) (Brand, error)
	UpdateBrand(ctx context.Context, b Brand) (Brand, error)
	SoftDeleteBrand(ctx context.Context, id uuid.UUID) error
	RestoreBrand(ctx context.Context, id uuid.UUID) error
	HardDeleteBrand(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c Category) (Category, error)
	UpdateCategory(ctx context.Context, c Category) (Category, error)
	SoftDeleteCategory(ctx context.Context, id uuid.UUID) error
	RestoreCategory(ctx context.Context, id uuid.UUID) error
	HardDeleteCategory(ctx context.Context, id uuid.UUID) error
}

// Service handles catalog business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListProducts returns a page of live products plus the total count.
func (s *Service) ListProducts(ctx context.Context, limit, offset int) ([]Product, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListProducts(ctx, limit, offset)
}

// ListTrashedProducts returns the product trash.
func (s *Service) ListTrashedProducts(ctx context.Context) ([]Product, error) {
	return s.repo.ListTrashedProducts(ctx)
}

// GetProduct fetches a live product.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// CreateProduct assigns an ID, derives a slug when none is given and stores
// the product.
func (s *Service) CreateProduct(ctx context.Context, p Product) (Product, error) {
	p.ID = uuid.New()
	p.Slug = slugOrDerive(p.Slug, p.Name)
	return s.repo.CreateProduct(ctx, p)
}

// UpdateProduct applies changes to a live product.
func (s *Service) UpdateProduct(ctx context.Context, p Product) (Product, error) {
	p.Slug = slugOrDerive(p.Slug, p.Name)
	return s.repo.UpdateProduct(ctx, p)
}

// DeleteProduct moves a product to the trash.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDeleteProduct(ctx, id)
}

// RestoreProduct brings a trashed product back.
func (s *Service) RestoreProduct(ctx context.Context, id uuid.UUID) error {
	return s.repo.RestoreProduct(ctx, id)
}

// HardDeleteProduct purges a trashed product.
func (s *Service) HardDeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.repo.HardDeleteProduct(ctx, id)
}

// ListBrands returns all live brands.
func (s *Service) ListBrands(ctx context.Context) ([]Brand, error) {
	return s.repo.ListBrands(ctx)
}

// CreateBrand assigns an ID, derives a slug when none is given and stores
// the brand.
func (s *Service) CreateBrand(ctx context.Context, b Brand) (Brand, error) {
	b.ID = uuid.New()
	b.Slug = slugOrDerive(b.Slug, b.Name)
	return s.repo.CreateBrand(ctx, b)
}

// UpdateBrand applies changes to a live brand.
func (s *Service) UpdateBrand(ctx context.Context, b Brand) (Brand, error) {
	b.Slug = slugOrDerive(b.Slug, b.Name)
	return s.repo.UpdateBrand(ctx, b)
}

// DeleteBrand moves a brand to the trash.
func (s *Service) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDeleteBrand(ctx, id)
}

// RestoreBrand brings a trashed brand back.
func (s *Service) RestoreBrand(ctx context.Context, id uuid.UUID) error {
	return s.repo.RestoreBrand(ctx, id)
}

// HardDeleteBrand purges a trashed brand.
func (s *Service) HardDeleteBrand(ctx context.Context, id uuid.UUID) error {
	return s.repo.HardDeleteBrand(ctx, id)
}

// ListCategories returns all live categories.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

// CreateCategory assigns an ID, derives a slug when none is given and
// stores the category.
func (s *Service) CreateCategory(ctx context.Context, c Category) (Category, error) {
	c.ID = uuid.New()
	c.Slug = slugOrDerive(c.Slug, c.Name)
	return s.repo.CreateCategory(ctx, c)
}

// UpdateCategory applies changes to a live category.
func (s *Service) UpdateCategory(ctx context.Context, c Category) (Category, error) {
	c.Slug = slugOrDerive(c.Slug, c.Name)
	return s.repo.UpdateCategory(ctx, c)
}

// DeleteCategory moves a category to the trash.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDeleteCategory(ctx, id)
}

// RestoreCategory brings a trashed category back.
func (s *Service) RestoreCategory(ctx context.Context, id uuid.UUID) error {
	return s.repo.RestoreCategory(ctx, id)
}

// HardDeleteCategory purges a trashed category.
func (s *Service) HardDeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.repo.HardDeleteCategory(ctx, id)
}

func slugOrDerive(slug, name string) string {
	if s := strings.TrimSpace(slug); s != "" {
		return Slugify(s)
	}
	return Slugify(name)
}
