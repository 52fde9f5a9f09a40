package claims

import "errors"

// ErrForbidden means the token is valid but carries none of the
// required roles.
var ErrForbidden = errors.New("forbidden")

// Principal is the authenticated identity every downstream operation
// receives. Tenant scoping is not the guard's job: data access always
// takes Principal.CompanyID as a mandatory filter and cross-tenant
// primary-key fetches surface NotFound, never Forbidden.
type Principal struct {
	UserID    uint
	CompanyID uint
	Role      Role
}

// Authorize checks the claim set against the required role set and
// returns the Principal on a match. An empty required set admits any
// authenticated caller.
func Authorize(cs *ClaimSet, required ...Role) (*Principal, error) {
	if cs == nil || len(cs.Roles) == 0 {
		return nil, ErrForbidden
	}
	p := &Principal{UserID: cs.UserID, CompanyID: cs.CompanyID, Role: cs.Roles[0]}
	if len(required) == 0 {
		return p, nil
	}
	for _, want := range required {
		if cs.HasRole(want) {
			p.Role = want
			return p, nil
		}
	}
	return nil, ErrForbidden
}
