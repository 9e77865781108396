package wooimport

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopvima/shopvima/internal/catalog"
)

func newID() uuid.UUID { return uuid.New() }

type memoryStore struct {
	products   map[string]catalog.Product
	brands     map[string]catalog.Brand
	categories map[string]catalog.Category
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		products:   map[string]catalog.Product{},
		brands:     map[string]catalog.Brand{},
		categories: map[string]catalog.Category{},
	}
}

func (m *memoryStore) UpsertProductBySKU(_ context.Context, p catalog.Product) (catalog.Product, error) {
	if existing, ok := m.products[p.SKU]; ok {
		p.ID = existing.ID
	}
	m.products[p.SKU] = p
	return p, nil
}

func (m *memoryStore) EnsureBrand(_ context.Context, name, slug string) (catalog.Brand, error) {
	if b, ok := m.brands[slug]; ok {
		return b, nil
	}
	b := catalog.Brand{ID: newID(), Name: name, Slug: slug}
	m.brands[slug] = b
	return b, nil
}

func (m *memoryStore) EnsureCategory(_ context.Context, name, slug string) (catalog.Category, error) {
	if c, ok := m.categories[slug]; ok {
		return c, nil
	}
	c := catalog.Category{ID: newID(), Name: name, Slug: slug}
	m.categories[slug] = c
	return c, nil
}

func newWooServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/wp-json/wc/v3/products", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ck_test" || pass != "cs_test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprintf(w, `[
				{"id":11,"name":"Café Grinder","slug":"cafe-grinder","sku":"CG-1","price":"129.90","status":"publish",
				 "categories":[{"id":3,"name":"Kitchen","slug":"kitchen"}],
				 "brands":[{"id":7,"name":"BrewCo","slug":"brewco"}],
				 "images":[{"id":201,"src":"%s/media/grinder.jpg?v=2"}]},
				{"id":12,"name":"No SKU Item","slug":"no-sku","sku":"","price":"5.00","status":"publish"},
				{"id":13,"name":"Bad Price","slug":"bad-price","sku":"BP-1","price":"not-a-number","status":"publish"}
			]`, "http://"+r.Host)
		case "2":
			fmt.Fprintf(w, `[
				{"id":14,"name":"Drip Kettle","slug":"drip-kettle","sku":"DK-1","price":"49.00","status":"publish",
				 "categories":[{"id":3,"name":"Kitchen","slug":"kitchen"}],
				 "images":[{"id":202,"src":"%s/media/missing.jpg"}]}
			]`, "http://"+r.Host)
		default:
			fmt.Fprint(w, `[]`)
		}
	})
	mux.HandleFunc("/media/grinder.jpg", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("jpegbytes"))
	})
	mux.HandleFunc("/media/missing.jpg", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	return httptest.NewServer(mux)
}

func TestImporterRun(t *testing.T) {
	server := newWooServer(t)
	defer server.Close()

	store := newMemoryStore()
	mediaDir := t.TempDir()
	client := NewClient(server.URL, "ck_test", "cs_test")
	importer := NewImporter(nil, client, store, mediaDir)

	report, err := importer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Fetched)
	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 2, report.Skipped)
	assert.Len(t, report.Errors, 2)

	grinder, ok := store.products["CG-1"]
	require.True(t, ok)
	assert.Equal(t, "Café Grinder", grinder.Name)
	assert.Equal(t, "cafe-grinder", grinder.Slug)
	assert.InDelta(t, 129.90, grinder.Price, 1e-9)
	require.NotNil(t, grinder.BrandID)
	require.NotNil(t, grinder.CategoryID)
	assert.Equal(t, store.brands["brewco"].ID, *grinder.BrandID)
	assert.Equal(t, store.categories["kitchen"].ID, *grinder.CategoryID)

	// Both page-1 and page-2 products share one category.
	assert.Len(t, store.categories, 1)

	assert.Equal(t, 1, report.MediaSaved)
	assert.Equal(t, 1, report.MediaFailed)

	// The ?v=2 cache-buster must not leak into the filename.
	data, err := os.ReadFile(filepath.Join(mediaDir, "grinder.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpegbytes", string(data))
}

func TestMediaTargets(t *testing.T) {
	targets := mediaTargets([]string{
		"https://cdn.example.test/2024/photo.jpg?v=2",
		"https://cdn.example.test/2025/photo.jpg",
		"https://cdn.example.test/2024/photo.jpg?v=2",
		"https://cdn.example.test/banner.png#hero",
	})

	assert.Equal(t, "photo.jpg", targets["https://cdn.example.test/2024/photo.jpg?v=2"])
	assert.Equal(t, "photo-1.jpg", targets["https://cdn.example.test/2025/photo.jpg"])
	assert.Equal(t, "banner.png", targets["https://cdn.example.test/banner.png#hero"])
	assert.Len(t, targets, 3)
}

func TestImporterRerunIsIdempotent(t *testing.T) {
	server := newWooServer(t)
	defer server.Close()

	store := newMemoryStore()
	client := NewClient(server.URL, "ck_test", "cs_test")
	importer := NewImporter(nil, client, store, "")

	first, err := importer.Run(context.Background())
	require.NoError(t, err)
	grinderID := store.products["CG-1"].ID

	second, err := importer.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Imported, second.Imported)
	assert.Equal(t, grinderID, store.products["CG-1"].ID)
	assert.Zero(t, second.MediaSaved)
}

func TestClientRejectsBadCredentials(t *testing.T) {
	server := newWooServer(t)
	defer server.Close()

	client := NewClient(server.URL, "ck_test", "wrong")
	_, err := client.ListProducts(context.Background(), 1)
	assert.Error(t, err)
}
