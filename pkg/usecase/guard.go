package usecase

import (
	"slices"

	"github.com/cherish-app/cherish/pkg/domain/model"
)

// AdminGuard holds the immutable allow-list of administrator user IDs
type AdminGuard struct {
	admins map[model.UserID]struct{}
}

func NewAdminGuard(ids []model.UserID) *AdminGuard {
	admins := make(map[model.UserID]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			admins[id] = struct{}{}
		}
	}
	return &AdminGuard{admins: admins}
}

// IsAdmin reports whether userID is on the allow-list
func (g *AdminGuard) IsAdmin(userID model.UserID) bool {
	if g == nil || userID == "" {
		return false
	}
	_, ok := g.admins[userID]
	return ok
}

// Len returns the number of administrators
func (g *AdminGuard) Len() int {
	if g == nil {
		return 0
	}
	return len(g.admins)
}

// IDs returns the administrator IDs in sorted order
func (g *AdminGuard) IDs() []model.UserID {
	if g == nil {
		return nil
	}
	ids := make([]model.UserID, 0, len(g.admins))
	for id := range g.admins {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
