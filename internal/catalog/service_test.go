package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo records the last entity passed in; only the methods a test
// exercises matter.
type stubRepo struct {
	product  Product
	brand    Brand
	category Category
	restored []uuid.UUID
	purged   []uuid.UUID
}

func (s *stubRepo) ListProducts(context.Context, int, int) ([]Product, int, error) {
	return nil, 0, nil
}
func (s *stubRepo) ListTrashedProducts(context.Context) ([]Product, error) { return nil, nil }
func (s *stubRepo) GetProduct(context.Context, uuid.UUID) (Product, error) { return Product{}, nil }
func (s *stubRepo) CreateProduct(_ context.Context, p Product) (Product, error) {
	s.product = p
	return p, nil
}
func (s *stubRepo) UpdateProduct(_ context.Context, p Product) (Product, error) {
	s.product = p
	return p, nil
}
func (s *stubRepo) SoftDeleteProduct(context.Context, uuid.UUID) error { return nil }
func (s *stubRepo) RestoreProduct(_ context.Context, id uuid.UUID) error {
	s.restored = append(s.restored, id)
	return nil
}
func (s *stubRepo) HardDeleteProduct(_ context.Context, id uuid.UUID) error {
	s.purged = append(s.purged, id)
	return nil
}

func (s *stubRepo) ListBrands(context.Context) ([]Brand, error) { return nil, nil }
func (s *stubRepo) CreateBrand(_ context.Context, b Brand) (Brand, error) {
	s.brand = b
	return b, nil
}
func (s *stubRepo) UpdateBrand(_ context.Context, b Brand) (Brand, error) {
	s.brand = b
	return b, nil
}
func (s *stubRepo) SoftDeleteBrand(context.Context, uuid.UUID) error { return nil }
func (s *stubRepo) RestoreBrand(context.Context, uuid.UUID) error    { return nil }
func (s *stubRepo) HardDeleteBrand(context.Context, uuid.UUID) error { return nil }

func (s *stubRepo) ListCategories(context.Context) ([]Category, error) { return nil, nil }
func (s *stubRepo) CreateCategory(_ context.Context, c Category) (Category, error) {
	s.category = c
	return c, nil
}
func (s *stubRepo) UpdateCategory(_ context.Context, c Category) (Category, error) {
	s.category = c
	return c, nil
}
func (s *stubRepo) SoftDeleteCategory(context.Context, uuid.UUID) error { return nil }
func (s *stubRepo) RestoreCategory(context.Context, uuid.UUID) error    { return nil }
func (s *stubRepo) HardDeleteCategory(context.Context, uuid.UUID) error { return nil }

func TestCreateProductDerivesSlug(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	created, err := svc.CreateProduct(context.Background(), Product{Name: "Café Crème Maker", SKU: "CCM-1"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "cafe-creme-maker", repo.product.Slug)
}

func TestCreateProductKeepsExplicitSlug(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	_, err := svc.CreateProduct(context.Background(), Product{Name: "Anything", SKU: "A-1", Slug: "My Custom Slug"})
	require.NoError(t, err)

	// An explicit slug is still normalized, not trusted verbatim.
	assert.Equal(t, "my-custom-slug", repo.product.Slug)
}

func TestCreateBrandAndCategoryDeriveSlugs(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)

	_, err := svc.CreateBrand(context.Background(), Brand{Name: "Über Audio"})
	require.NoError(t, err)
	assert.Equal(t, "uber-audio", repo.brand.Slug)

	_, err = svc.CreateCategory(context.Background(), Category{Name: "Home & Garden"})
	require.NoError(t, err)
	assert.Equal(t, "home-garden", repo.category.Slug)
}

func TestRestoreAndHardDeletePassThrough(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo)
	id := uuid.New()

	require.NoError(t, svc.RestoreProduct(context.Background(), id))
	require.NoError(t, svc.HardDeleteProduct(context.Background(), id))
	assert.Equal(t, []uuid.UUID{id}, repo.restored)
	assert.Equal(t, []uuid.UUID{id}, repo.purged)
}
