package guard

import (
	"slices"

	"github.com/mcmarket/mcmarket-client/models"
)

// RouteRequirement is the declarative annotation attached to a navigable
// path. It is not a runtime entity: gates evaluate it per navigation.
type RouteRequirement struct {
	// Authenticated requires a live identity. When false the path is
	// public and the other fields are ignored.
	Authenticated bool

	// Roles narrows the path to a subset of roles. An empty set admits
	// any authenticated identity.
	Roles []models.Role

	// Verified additionally requires a verified identity (admins bypass).
	Verified bool
}

// Public is the requirement of paths anyone may visit.
func Public() RouteRequirement {
	return RouteRequirement{}
}

// Authenticated admits any authenticated identity.
func Authenticated() RouteRequirement {
	return RouteRequirement{Authenticated: true}
}

// Roles admits authenticated identities whose role is in the given set.
func Roles(roles ...models.Role) RouteRequirement {
	return RouteRequirement{Authenticated: true, Roles: roles}
}

// Verified admits authenticated identities that passed identity
// verification, narrowed to roles when the set is non-empty.
func Verified(roles ...models.Role) RouteRequirement {
	return RouteRequirement{Authenticated: true, Roles: roles, Verified: true}
}

func (r RouteRequirement) permits(role models.Role) bool {
	if len(r.Roles) == 0 {
		return true
	}
	return slices.Contains(r.Roles, role)
}
