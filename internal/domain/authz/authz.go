// Package authz provides the ownership predicates gating property and
// request mutations. All functions are pure checks over already-loaded
// entities; callers resolve the entities first.
package authz

import (
	"github.com/rentora/rentora/internal/domain/property"
)

// IsPropertyOwner reports whether userID is the landlord who owns p.
func IsPropertyOwner(p *property.Property, userID string) bool {
	return p != nil && userID != "" && p.LandlordID == userID
}

// IsOwnerOfRequestProperty reports whether userID owns the property a
// request refers to. The request's property must already be resolved;
// permission on a request derives transitively from it.
func IsOwnerOfRequestProperty(requestProperty *property.Property, userID string) bool {
	return IsPropertyOwner(requestProperty, userID)
}
