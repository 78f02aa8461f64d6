// internal/app/policy/clubpolicy/clubpolicy.go

// Package clubpolicy holds the single authorization predicate for
// admin-gated club mutations. It is pure: the caller has already loaded
// the club, and the acting user comes from the session layer.
package clubpolicy

import (
	"errors"

	"github.com/dalemusser/clubhub/internal/domain/models"
)

// ErrNotAuthenticated is returned when no acting user was supplied where
// one is required.
var ErrNotAuthenticated = errors.New("user not logged in")

// IsClubAdmin reports whether the acting user may mutate the given club:
// super-admins always can, otherwise the user's id must be in the club's
// admin list. A nil actor means the request carried no identity at all,
// which is an error rather than a plain "no".
func IsClubAdmin(club models.Club, actor *models.User) (bool, error) {
	if actor == nil {
		return false, ErrNotAuthenticated
	}
	if actor.SuperAdmin {
		return true, nil
	}
	return club.HasAdmin(actor.ID), nil
}
