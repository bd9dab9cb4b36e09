// Package authz evaluates whether an authenticated principal may perform a
// protected operation. Decisions are pure functions of the principal's
// scope authorities and the operation's requirement; no state is consulted.
package authz

import (
	"strings"

	"github.com/RachelRYuan/Blogen/internal/models"
)

// ScopePrefix is prepended to role claims when they become authorities,
// so a token scope ROLE_ADMIN is matched as SCOPE_ROLE_ADMIN.
const ScopePrefix = "SCOPE_"

// Authorities checked by the API surface.
var (
	AuthorityUser  = AuthorityForRole(models.RoleUser)
	AuthorityAdmin = AuthorityForRole(models.RoleAdmin)
	AuthorityAPI   = AuthorityForRole(models.RoleAPI)
)

// AuthorityForRole converts a role claim into its authority form.
func AuthorityForRole(role string) string {
	return ScopePrefix + strings.ToUpper(role)
}

// Principal is the resolved identity attached to a request after token
// verification.
type Principal struct {
	SubjectID   string   // Identity id, as carried in the token subject
	Authorities []string // SCOPE_-prefixed claims
}

// HasAuthority returns true if the principal carries the given authority.
func (p *Principal) HasAuthority(authority string) bool {
	if p == nil {
		return false
	}
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// Decision is the outcome of evaluating a requirement.
type Decision int

const (
	Deny Decision = iota
	Permit
)

func (d Decision) Permitted() bool { return d == Permit }

type requirementKind int

const (
	reqPublic requirementKind = iota
	reqAnyAuthenticated
	reqScope
	reqSelfOrScope
)

// Requirement is the access rule a protected operation declares.
type Requirement struct {
	kind    requirementKind
	scope   string
	ownerID string
}

// Public permits every caller, authenticated or not.
func Public() Requirement {
	return Requirement{kind: reqPublic}
}

// AnyAuthenticated permits any caller with a verified identity.
func AnyAuthenticated() Requirement {
	return Requirement{kind: reqAnyAuthenticated}
}

// RequireScope permits callers carrying the given authority.
func RequireScope(scope string) Requirement {
	return Requirement{kind: reqScope, scope: scope}
}

// SelfOrScope permits the owner of the resource regardless of scope, and
// callers carrying the given authority regardless of ownership.
func SelfOrScope(ownerID, scope string) Requirement {
	return Requirement{kind: reqSelfOrScope, scope: scope, ownerID: ownerID}
}

// Evaluate decides whether the principal satisfies the requirement.
// A nil principal represents an unauthenticated caller.
func Evaluate(p *Principal, req Requirement) Decision {
	switch req.kind {
	case reqPublic:
		return Permit
	case reqAnyAuthenticated:
		if p != nil && p.SubjectID != "" {
			return Permit
		}
	case reqScope:
		if p.HasAuthority(req.scope) {
			return Permit
		}
	case reqSelfOrScope:
		if p == nil {
			return Deny
		}
		// Self access wins even without the scope; the scope wins even
		// for a non-owner.
		if req.ownerID != "" && p.SubjectID == req.ownerID {
			return Permit
		}
		if p.HasAuthority(req.scope) {
			return Permit
		}
	}
	return Deny
}
