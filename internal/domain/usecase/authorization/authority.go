package authorization

import (
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/entity"
)

// rule binds an action to the roles allowed to perform it and the statuses it may start from
type rule struct {
	roles    map[entity.Role]bool
	statuses map[entity.ValidationStatus]bool
}

// Authority decides whether a role may perform an action from a status.
// It is the only source of workflow permissions and is evaluated server side on every transition.
type Authority struct {
	rules map[entity.Action]rule
}

// NewAuthority creates the authority holding the fixed validation policy
func NewAuthority() *Authority {
	writers := make([]entity.Role, 0, len(entity.AllRoles))
	for _, r := range entity.AllRoles {
		if r.CanWrite() {
			writers = append(writers, r)
		}
	}

	return &Authority{
		rules: map[entity.Action]rule{
			entity.ActionSubmit: newRule(
				writers,
				entity.StatusDraft,
			),
			entity.ActionValidateRAF: newRule(
				[]entity.Role{entity.RoleRAF, entity.RoleAdmin, entity.RoleSuperAdmin},
				entity.StatusSubmitted,
			),
			entity.ActionValidateDG: newRule(
				[]entity.Role{entity.RoleSuperAdmin},
				entity.StatusRAFValidated,
			),
			entity.ActionLock: newRule(
				[]entity.Role{entity.RoleAdmin, entity.RoleSuperAdmin},
				entity.StatusDGValidated,
			),
			entity.ActionReject: newRule(
				[]entity.Role{entity.RoleRAF, entity.RoleAdmin, entity.RoleSuperAdmin},
				entity.StatusSubmitted, entity.StatusRAFValidated,
			),
		},
	}
}

func newRule(roles []entity.Role, statuses ...entity.ValidationStatus) rule {
	r := rule{
		roles:    make(map[entity.Role]bool, len(roles)),
		statuses: make(map[entity.ValidationStatus]bool, len(statuses)),
	}
	for _, role := range roles {
		r.roles[role] = true
	}
	for _, s := range statuses {
		r.statuses[s] = true
	}
	return r
}

// Authorize reports whether role may perform action on a transaction in status.
// Any combination outside the policy is denied.
func (a *Authority) Authorize(role entity.Role, status entity.ValidationStatus, action entity.Action) bool {
	r, ok := a.rules[action]
	if !ok {
		return false
	}
	return r.roles[role] && r.statuses[status]
}

// AllowedActions lists, in workflow order, the actions role may perform from status
func (a *Authority) AllowedActions(role entity.Role, status entity.ValidationStatus) []entity.Action {
	actions := make([]entity.Action, 0, 2)
	for _, action := range entity.AllActions {
		if a.Authorize(role, status, action) {
			actions = append(actions, action)
		}
	}
	return actions
}
