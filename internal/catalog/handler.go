package catalog

import (
	"net/http"
	"strconv"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shopvima/shopvima/internal/platform/httpx"
	"github.com/shopvima/shopvima/internal/shared"
)

// Handler exposes the catalog endpoints. Authorization comes from the
// route-derived permission gate; every route here maps cleanly onto the
// resource.action convention, including trash, restore and hard delete.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountProducts registers product routes.
func (h *Handler) MountProducts(r chi.Router) {
	r.Get("/", h.listProducts)
	r.Get("/trash", h.listProductTrash)
	r.Post("/", h.createProduct)
	r.Get("/{id}", h.getProduct)
	r.Put("/{id}", h.updateProduct)
	// Admin panel form submissions update via POST to the entity URL.
	r.Post("/{id}", h.updateProduct)
	r.Delete("/{id}", h.deleteProduct)
	r.Post("/{id}/restore", h.restoreProduct)
	r.Delete("/{id}/hard", h.hardDeleteProduct)
}

// MountBrands registers brand routes.
func (h *Handler) MountBrands(r chi.Router) {
	r.Get("/", h.listBrands)
	r.Post("/", h.createBrand)
	r.Put("/{id}", h.updateBrand)
	r.Post("/{id}", h.updateBrand)
	r.Delete("/{id}", h.deleteBrand)
	r.Post("/{id}/restore", h.restoreBrand)
	r.Delete("/{id}/hard", h.hardDeleteBrand)
}

// MountCategories registers category routes.
func (h *Handler) MountCategories(r chi.Router) {
	r.Get("/", h.listCategories)
	r.Post("/", h.createCategory)
	r.Put("/{id}", h.updateCategory)
	r.Post("/{id}", h.updateCategory)
	r.Delete("/{id}", h.deleteCategory)
	r.Post("/{id}/restore", h.restoreCategory)
	r.Delete("/{id}/hard", h.hardDeleteCategory)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

type productForm struct {
	Name        string     `json:"name" validate:"required,min=2,max=255"`
	Slug        string     `json:"slug" validate:"max=255"`
	SKU         string     `json:"sku" validate:"required,max=64"`
	Description string     `json:"description"`
	Price       float64    `json:"price" validate:"gte=0"`
	BrandID     *uuid.UUID `json:"brand_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	IsPublished bool       `json:"is_published"`
}

type productResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	SKU         string     `json:"sku"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	BrandID     *uuid.UUID `json:"brand_id,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	IsPublished bool       `json:"is_published"`
	DeletedAt   *string    `json:"deleted_at,omitempty"`
}

func toProductResponse(p Product) productResponse {
	out := productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		SKU:         p.SKU,
		Description: p.Description,
		Price:       p.Price,
		BrandID:     p.BrandID,
		CategoryID:  p.CategoryID,
		IsPublished: p.IsPublished,
	}
	if p.DeletedAt != nil {
		s := p.DeletedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		out.DeletedAt = &s
	}
	return out
}

func (h *Handler) decodeProductForm(w http.ResponseWriter, r *http.Request) (productForm, bool) {
	var form productForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return form, false
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return form, false
	}
	return form, true
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	pagination := shared.NewPagination(page, perPage, 0)

	products, total, err := h.service.ListProducts(r.Context(), pagination.PerPage, (pagination.Page-1)*pagination.PerPage)
	if err != nil {
		h.logger.Error("list products", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"products":   out,
		"pagination": shared.NewPagination(pagination.Page, pagination.PerPage, total),
	})
}

func (h *Handler) listProductTrash(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListTrashedProducts(r.Context())
	if err != nil {
		h.logger.Error("list product trash", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"products": out})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponse(p))
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeProductForm(w, r)
	if !ok {
		return
	}
	p, err := h.service.CreateProduct(r.Context(), Product{
		Name:        form.Name,
		Slug:        form.Slug,
		SKU:         form.SKU,
		Description: form.Description,
		Price:       form.Price,
		BrandID:     form.BrandID,
		CategoryID:  form.CategoryID,
		IsPublished: form.IsPublished,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toProductResponse(p))
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	form, ok := h.decodeProductForm(w, r)
	if !ok {
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), Product{
		ID:          id,
		Name:        form.Name,
		Slug:        form.Slug,
		SKU:         form.SKU,
		Description: form.Description,
		Price:       form.Price,
		BrandID:     form.BrandID,
		CategoryID:  form.CategoryID,
		IsPublished: form.IsPublished,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponse(p))
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) restoreProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.RestoreProduct(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) hardDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.HardDeleteProduct(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type brandForm struct {
	Name string `json:"name" validate:"required,min=2,max=128"`
	Slug string `json:"slug" validate:"max=128"`
}

type brandResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

func (h *Handler) listBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.ListBrands(r.Context())
	if err != nil {
		h.logger.Error("list brands", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]brandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, brandResponse{ID: b.ID, Name: b.Name, Slug: b.Slug})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"brands": out})
}

func (h *Handler) createBrand(w http.ResponseWriter, r *http.Request) {
	var form brandForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	b, err := h.service.CreateBrand(r.Context(), Brand{Name: form.Name, Slug: form.Slug})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, brandResponse{ID: b.ID, Name: b.Name, Slug: b.Slug})
}

func (h *Handler) updateBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var form brandForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	b, err := h.service.UpdateBrand(r.Context(), Brand{ID: id, Name: form.Name, Slug: form.Slug})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, brandResponse{ID: b.ID, Name: b.Name, Slug: b.Slug})
}

func (h *Handler) deleteBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteBrand(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) restoreBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.RestoreBrand(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) hardDeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.HardDeleteBrand(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type categoryForm struct {
	Name     string     `json:"name" validate:"required,min=2,max=128"`
	Slug     string     `json:"slug" validate:"max=128"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type categoryResponse struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("list categories", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug, ParentID: c.ParentID})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var form categoryForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	c, err := h.service.CreateCategory(r.Context(), Category{Name: form.Name, Slug: form.Slug, ParentID: form.ParentID})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, categoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug, ParentID: c.ParentID})
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var form categoryForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	c, err := h.service.UpdateCategory(r.Context(), Category{ID: id, Name: form.Name, Slug: form.Slug, ParentID: form.ParentID})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, categoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug, ParentID: c.ParentID})
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) restoreCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.RestoreCategory(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) hardDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.HardDeleteCategory(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
