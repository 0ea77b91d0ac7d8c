package domain

import "errors"

const (
	PermProductsRead  = "products:read"
	PermProductsWrite = "products:write"
	PermSellersRead   = "sellers:read"
	PermOrdersCreate  = "orders:create"
	PermOrdersRead    = "orders:read"
)

var (
	ErrUnknownRole            = errors.New("unknown role")
	ErrInsufficientPermission = errors.New("insufficient permission")
)

// RoleTable maps a role name to the set of permissions it grants.
// It is built once at startup and never mutated afterwards.
type RoleTable map[string]map[string]struct{}

// NewRoleTable builds a RoleTable from role → permission list pairs.
func NewRoleTable(grants map[string][]string) RoleTable {
	t := make(RoleTable, len(grants))
	for role, perms := range grants {
		set := make(map[string]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		t[role] = set
	}
	return t
}

// Authorize reports whether role holds every permission in required.
// The admin role passes unconditionally, even when absent from the table.
func (t RoleTable) Authorize(role string, required ...string) error {
	if role == RoleAdmin {
		return nil
	}
	granted, ok := t[role]
	if !ok {
		return ErrUnknownRole
	}
	for _, p := range required {
		if _, ok := granted[p]; !ok {
			return ErrInsufficientPermission
		}
	}
	return nil
}
