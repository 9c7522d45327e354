package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/puentehua/centro-admin/internal/database/models"
	"github.com/puentehua/centro-admin/internal/rbac"
	"gorm.io/gorm"
)

const profileKey contextKey = "profile"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// LoadProfile fetches the caller's profile row. Authorization always
// re-reads the store so a demotion or deactivation is effective on the
// very next request; roles are never trusted from the session token.
func LoadProfile(ctx context.Context, db *gorm.DB) (*models.Profile, error) {
	userID := GetUserID(ctx)
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	var profile models.Profile
	if err := db.WithContext(ctx).First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	if !profile.IsActive {
		return nil, ErrForbidden
	}

	return &profile, nil
}

// RequireRole gates a route to the given roles, loading the profile
// fresh from the store and stashing it on the context for the handler.
func RequireRole(db *gorm.DB, roles ...rbac.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, err := LoadProfile(r.Context(), db)
			if err != nil {
				writeGuardError(w, err)
				return
			}

			for _, role := range roles {
				if rbac.Role(profile.Role) == role {
					ctx := context.WithValue(r.Context(), profileKey, profile)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			http.Error(w, "Forbidden", http.StatusForbidden)
		})
	}
}

// RequirePermission gates a route through the resource permission table.
func RequirePermission(db *gorm.DB, resource rbac.Resource, action rbac.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, err := LoadProfile(r.Context(), db)
			if err != nil {
				writeGuardError(w, err)
				return
			}

			if !rbac.HasResourcePermission(rbac.Role(profile.Role), resource, action) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), profileKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetProfile returns the profile loaded by RequireRole/RequirePermission.
func GetProfile(ctx context.Context) *models.Profile {
	if p, ok := ctx.Value(profileKey).(*models.Profile); ok {
		return p
	}
	return nil
}

func writeGuardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
