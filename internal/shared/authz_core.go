package shared

// Core platform permissions. Names follow the resource.action convention so
// the route-derived gate and explicit checks agree on spelling.
const (
	PermUsersView   = "users.view"
	PermUsersCreate = "users.create"
	PermUsersUpdate = "users.update"
	PermUsersDelete = "users.delete"

	PermRolesView   = "roles.view"
	PermRolesCreate = "roles.create"
	PermRolesUpdate = "roles.update"
	PermRolesDelete = "roles.delete"

	PermPermissionsView = "permissions.view"

	PermJobsView       = "jobs.view"
	PermProductsImport = "products.import"
)

// CoreScopes lists the platform permissions that are not derived from the
// catalog resource seeding.
func CoreScopes() []string {
	return []string{
		PermUsersView,
		PermUsersCreate,
		PermUsersUpdate,
		PermUsersDelete,
		PermRolesView,
		PermRolesCreate,
		PermRolesUpdate,
		PermRolesDelete,
		PermPermissionsView,
		PermJobsView,
		PermProductsImport,
	}
}
