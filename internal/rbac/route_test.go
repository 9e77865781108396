package rbac

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConventionMapperDerivation(t *testing.T) {
	mapper := ConventionMapper{Prefix: "/api"}
	id := "2e9c0c6e-7e6f-4a59-9f53-1f9a4f6d1c11"

	cases := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/products", "products.view"},
		{http.MethodPost, "/api/products", "products.create"},
		{http.MethodPost, "/api/products/" + id, "products.update"},
		{http.MethodPost, "/api/products/not-a-uuid", "products.create"},
		{http.MethodPut, "/api/products/" + id, "products.update"},
		{http.MethodPatch, "/api/products/" + id, "products.update"},
		{http.MethodDelete, "/api/products/" + id, "products.delete"},
		{http.MethodGet, "/api/products/" + id + "/trash", "products.trash.view"},
		{http.MethodGet, "/api/products/trash", "products.trash.view"},
		{http.MethodPost, "/api/products/" + id + "/restore", "products.restore"},
		{http.MethodDelete, "/api/products/" + id + "/hard", "products.hardDelete"},
		{http.MethodGet, "/api/brands", "brands.view"},
		{http.MethodHead, "/api/brands", "brands.view"},
		{http.MethodOptions, "/api/brands", "brands.view"},
		{http.MethodGet, "/api/categories/" + id + "/children", "categories.view"},
	}
	for _, tc := range cases {
		got, ok := mapper.RequiredPermission(tc.method, tc.path)
		assert.True(t, ok, "%s %s", tc.method, tc.path)
		assert.Equal(t, tc.want, got, "%s %s", tc.method, tc.path)
	}
}

func TestConventionMapperTrashWinsOverRestore(t *testing.T) {
	mapper := ConventionMapper{Prefix: "/api"}
	got, ok := mapper.RequiredPermission(http.MethodPost, "/api/products/trash/restore")
	assert.True(t, ok)
	assert.Equal(t, "products.trash.view", got)
}

func TestConventionMapperEmptyPath(t *testing.T) {
	mapper := ConventionMapper{Prefix: "/api"}
	for _, path := range []string{"/api", "/api/", "/api//"} {
		_, ok := mapper.RequiredPermission(http.MethodGet, path)
		assert.False(t, ok, "path %q must require no permission", path)
	}
}

func TestConventionMapperExclusions(t *testing.T) {
	mapper := ConventionMapper{
		Prefix:     "/api",
		Exclusions: []string{"/api/auth", "/healthz", "/metrics"},
	}

	assert.True(t, mapper.Excluded("/api/auth/login"))
	assert.True(t, mapper.Excluded("/healthz"))
	assert.True(t, mapper.Excluded("/metrics"))
	assert.False(t, mapper.Excluded("/api/products"))
}
