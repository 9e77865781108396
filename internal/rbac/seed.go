package rbac

import (
	"context"
	"fmt"
	"strings"
)

// CatalogResources are the resources whose permissions are derived from the
// route convention and seeded at startup.
var CatalogResources = []string{"products", "brands", "categories"}

var conventionActions = []string{"view", "create", "update", "delete", "trash.view", "restore", "hardDelete"}

// SeedPermissions upserts the permission catalog: one entry per resource
// and convention action, plus the explicitly named extras. Soft-deleted
// entries are revived so a re-seed always restores a working catalog.
func SeedPermissions(ctx context.Context, repo *PGRepository, extras []string) error {
	for _, resource := range CatalogResources {
		for _, action := range conventionActions {
			name := resource + "." + action
			if _, err := repo.EnsurePermission(ctx, name, describePermission(name)); err != nil {
				return fmt.Errorf("rbac: seed %s: %w", name, err)
			}
		}
	}
	for _, name := range extras {
		if _, err := repo.EnsurePermission(ctx, name, describePermission(name)); err != nil {
			return fmt.Errorf("rbac: seed %s: %w", name, err)
		}
	}
	return nil
}

func describePermission(name string) string {
	resource, action, ok := strings.Cut(name, ".")
	if !ok {
		return name
	}
	return strings.ReplaceAll(action, ".", " ") + " on " + resource
}
