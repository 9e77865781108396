package rbac

import (
	"net/http"

	"log/slog"

	"github.com/google/uuid"

	"github.com/shopvima/shopvima/internal/platform/httpx"
	"github.com/shopvima/shopvima/internal/shared"
)

// Gate enforces route-derived permissions on every API request.
type Gate struct {
	Resolver *Resolver
	Mapper   Mapper
	Logger   *slog.Logger
}

// Middleware checks the permission derived from the request route. Requests
// on excluded paths, anonymous requests and requests whose principal ID is
// unparsable pass through unchanged; authentication is an earlier gate.
func (g Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.Mapper.Excluded(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		principalID, ok := g.currentPrincipal(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		permission, required := g.Mapper.RequiredPermission(r.Method, r.URL.Path)
		if !required {
			next.ServeHTTP(w, r)
			return
		}

		allowed, err := g.Resolver.HasPermission(r.Context(), principalID, permission)
		if err != nil {
			if g.Logger != nil {
				g.Logger.Error("permission gate", slog.String("permission", permission), slog.Any("error", err))
			}
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			return
		}
		if !allowed {
			if g.Logger != nil {
				g.Logger.Warn("permission denied",
					slog.String("principal", principalID.String()),
					slog.String("permission", permission),
					slog.String("path", r.URL.Path))
			}
			httpx.Denied(w, permission)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAny ensures the current principal holds at least one of the given
// permissions. Used on admin route groups that do not follow the naming
// convention.
func (g Gate) RequireAny(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principalID, ok := g.currentPrincipal(r)
			if !ok {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "")
				return
			}
			allowed, err := g.Resolver.HasAnyPermission(r.Context(), principalID, permissions)
			if err != nil {
				if g.Logger != nil {
					g.Logger.Error("rbac require any", slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if !allowed {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (g Gate) currentPrincipal(r *http.Request) (uuid.UUID, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return uuid.Nil, false
	}
	id := sess.Principal()
	if id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
