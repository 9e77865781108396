package rbac

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Mapper derives the permission required for an inbound request. Isolated
// behind an interface so explicit per-route declarations can replace the
// naming convention without touching the gate.
type Mapper interface {
	// RequiredPermission returns the permission name for the method/path
	// pair. ok is false when the request needs no permission at all.
	RequiredPermission(method, path string) (permission string, ok bool)
	// Excluded reports whether the path bypasses permission checking
	// entirely (auth endpoints, health checks, API docs).
	Excluded(path string) bool
}

// ConventionMapper maps "{prefix}/{resource}/..." to "{resource}.{action}"
// by the HTTP method and a few literal path segments. It is a pure function
// of the request shape and performs no I/O.
type ConventionMapper struct {
	// Prefix is stripped before deriving segments, e.g. "/api".
	Prefix string
	// Exclusions are path prefixes that bypass permission checking.
	Exclusions []string
}

// Excluded implements Mapper.
func (m ConventionMapper) Excluded(path string) bool {
	for _, prefix := range m.Exclusions {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RequiredPermission implements Mapper.
//
// Paths with no segments after the prefix require no permission. This is a
// deliberate fail-open for unmatched routes; the gate is not the layer that
// hardens against route spoofing.
func (m ConventionMapper) RequiredPermission(method, path string) (string, bool) {
	path = strings.TrimPrefix(path, m.Prefix)
	segments := splitPath(path)
	if len(segments) == 0 {
		return "", false
	}

	resource := segments[0]
	return resource + "." + deriveAction(method, segments), true
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// deriveAction applies the ordered naming rules; the first match wins.
func deriveAction(method string, segments []string) string {
	for _, s := range segments {
		if s == "trash" {
			return "trash.view"
		}
	}
	for _, s := range segments {
		if s == "restore" {
			return "restore"
		}
	}
	for _, s := range segments {
		if s == "hard" {
			return "hardDelete"
		}
	}

	switch method {
	case http.MethodGet:
		return "view"
	case http.MethodPut, http.MethodPatch:
		return "update"
	case http.MethodDelete:
		return "delete"
	case http.MethodPost:
		// POSTing to an entity URL is an update; POSTing to the collection
		// creates. The admin panel posts form submissions both ways.
		if len(segments) > 1 {
			if _, err := uuid.Parse(segments[1]); err == nil {
				return "update"
			}
		}
		return "create"
	default:
		return "view"
	}
}
