package entity

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
)

// Role is the access role carried by an authenticated actor
type Role string

// Roles
const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleRAF        Role = "raf"
	RoleComptable  Role = "comptable"
	RoleCabinet    Role = "cabinet"
	RoleAuditeur   Role = "auditeur"
)

// AllRoles lists every role in a stable order
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleAdmin,
	RoleRAF,
	RoleComptable,
	RoleCabinet,
	RoleAuditeur,
}

// ParseRole converts a raw role name into a Role
func ParseRole(raw string) (Role, error) {
	role := Role(strings.TrimSpace(raw))
	if !role.IsValid() {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidRole, raw)
	}
	return role, nil
}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleRAF, RoleComptable, RoleCabinet, RoleAuditeur:
		return true
	}
	return false
}

// IsObserver reports whether the role is read-only (external accountant or auditor)
func (r Role) IsObserver() bool {
	return r == RoleCabinet || r == RoleAuditeur
}

// CanWrite reports whether the role may create or edit bookkeeping records
func (r Role) CanWrite() bool {
	return r.IsValid() && !r.IsObserver()
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated user performing an operation
type Actor struct {
	ID   string
	Role Role
}

// NewActor builds an actor from identity claims
func NewActor(id string, role string) (Actor, error) {
	r, err := ParseRole(role)
	if err != nil {
		return Actor{}, err
	}
	a := Actor{ID: strings.TrimSpace(id), Role: r}
	if err := a.Validate(); err != nil {
		return Actor{}, err
	}
	return a, nil
}

// Validate checks that the actor carries an identifier and a known role
func (a Actor) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: empty actor id", errs.ErrInvalidActor)
	}
	if !a.Role.IsValid() {
		return fmt.Errorf("%w: %q", errs.ErrInvalidRole, a.Role)
	}
	return nil
}
