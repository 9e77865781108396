package wooimport

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shopvima/shopvima/internal/catalog"
)

const mediaWorkers = 4

// Source lists store products and fetches media.
type Source interface {
	ListProducts(ctx context.Context, page int) ([]WooProduct, error)
	FetchMedia(ctx context.Context, src string) ([]byte, error)
}

// CatalogStore is the slice of the catalog repository the importer writes to.
type CatalogStore interface {
	UpsertProductBySKU(ctx context.Context, p catalog.Product) (catalog.Product, error)
	EnsureBrand(ctx context.Context, name, slug string) (catalog.Brand, error)
	EnsureCategory(ctx context.Context, name, slug string) (catalog.Category, error)
}

// ImportReport summarizes one import run.
type ImportReport struct {
	Fetched     int      `json:"fetched"`
	Imported    int      `json:"imported"`
	Skipped     int      `json:"skipped"`
	MediaSaved  int      `json:"media_saved"`
	MediaFailed int      `json:"media_failed"`
	Errors      []string `json:"errors,omitempty"`
}

// Importer drives a full product import.
type Importer struct {
	logger   *slog.Logger
	source   Source
	store    CatalogStore
	mediaDir string
}

// NewImporter builds Importer instance. mediaDir may be empty to skip
// media downloads.
func NewImporter(logger *slog.Logger, source Source, store CatalogStore, mediaDir string) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{logger: logger, source: source, store: store, mediaDir: mediaDir}
}

// Run walks the store page by page, upserting each product. A product that
// fails to map or persist is skipped and recorded; the run always covers
// the whole store. Media downloads happen afterwards in a bounded pool.
func (imp *Importer) Run(ctx context.Context) (ImportReport, error) {
	var report ImportReport
	var mediaSrcs []string

	for page := 1; ; page++ {
		products, err := imp.source.ListProducts(ctx, page)
		if err != nil {
			return report, err
		}
		if len(products) == 0 {
			break
		}
		report.Fetched += len(products)

		for _, wp := range products {
			if err := imp.importOne(ctx, wp); err != nil {
				report.Skipped++
				report.Errors = append(report.Errors, fmt.Sprintf("product %d (%s): %v", wp.ID, wp.SKU, err))
				imp.logger.Warn("skipping product", slog.Int64("woo_id", wp.ID), slog.Any("error", err))
				continue
			}
			report.Imported++
			for _, img := range wp.Images {
				if img.Src != "" {
					mediaSrcs = append(mediaSrcs, img.Src)
				}
			}
		}
	}

	if imp.mediaDir != "" {
		saved, failed := imp.downloadMedia(ctx, mediaSrcs)
		report.MediaSaved = saved
		report.MediaFailed = failed
	}
	return report, nil
}

func (imp *Importer) importOne(ctx context.Context, wp WooProduct) error {
	if strings.TrimSpace(wp.SKU) == "" {
		return fmt.Errorf("missing sku")
	}

	price := 0.0
	if wp.Price != "" {
		parsed, err := strconv.ParseFloat(wp.Price, 64)
		if err != nil {
			return fmt.Errorf("unparsable price %q", wp.Price)
		}
		price = parsed
	}

	p := catalog.Product{
		ID:          uuid.New(),
		Name:        wp.Name,
		Slug:        catalog.Slugify(firstNonEmpty(wp.Slug, wp.Name)),
		SKU:         wp.SKU,
		Description: wp.Description,
		Price:       price,
		IsPublished: wp.Status == "publish",
	}

	if len(wp.Brands) > 0 {
		brand, err := imp.store.EnsureBrand(ctx, wp.Brands[0].Name, catalog.Slugify(firstNonEmpty(wp.Brands[0].Slug, wp.Brands[0].Name)))
		if err != nil {
			return fmt.Errorf("ensure brand: %w", err)
		}
		p.BrandID = &brand.ID
	}
	if len(wp.Categories) > 0 {
		category, err := imp.store.EnsureCategory(ctx, wp.Categories[0].Name, catalog.Slugify(firstNonEmpty(wp.Categories[0].Slug, wp.Categories[0].Name)))
		if err != nil {
			return fmt.Errorf("ensure category: %w", err)
		}
		p.CategoryID = &category.ID
	}

	if _, err := imp.store.UpsertProductBySKU(ctx, p); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

// downloadMedia fetches images concurrently. A failed download is counted
// and dropped; it never fails the import.
func (imp *Importer) downloadMedia(ctx context.Context, srcs []string) (saved, failed int) {
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(mediaWorkers)

	for src, name := range mediaTargets(srcs) {
		g.Go(func() error {
			data, err := imp.source.FetchMedia(ctx, src)
			if err == nil {
				err = os.WriteFile(filepath.Join(imp.mediaDir, name), data, 0o644)
			}
			mu.Lock()
			if err != nil {
				failed++
				imp.logger.Warn("media download failed", slog.String("src", src), slog.Any("error", err))
			} else {
				saved++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return saved, failed
}

// mediaTargets assigns every distinct source URL a local filename. Query
// strings and fragments are dropped, repeated sources are fetched once,
// and distinct sources sharing a basename get a numeric suffix instead of
// overwriting each other.
func mediaTargets(srcs []string) map[string]string {
	targets := make(map[string]string, len(srcs))
	used := make(map[string]bool, len(srcs))
	for _, src := range srcs {
		if _, seen := targets[src]; seen {
			continue
		}
		name := path.Base(src)
		if u, err := url.Parse(src); err == nil && u.Path != "" {
			name = path.Base(u.Path)
		}
		if name == "." || name == "/" {
			name = "media"
		}
		ext := path.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s-%d%s", stem, n, ext)
		}
		used[name] = true
		targets[src] = name
	}
	return targets
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
