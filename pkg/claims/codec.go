// Package claims is the shared authorization library of the platform.
// Every service validates bearer tokens and derives its Principal
// through this package instead of re-deriving claim semantics locally,
// so the independently deployed services cannot drift apart.
package claims

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers signature failures, malformed tokens,
	// expiry and issuer/audience mismatches. Callers treat it as
	// "unauthenticated".
	ErrInvalidToken = errors.New("invalid token")

	// ErrMalformedClaims means the token verified but required claims
	// (userId, companyId, role/roles) are absent or unusable. Kept
	// distinct from ErrInvalidToken so callers can tell a bad token
	// from a badly issued one.
	ErrMalformedClaims = errors.New("malformed claims")
)

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleEmployee   Role = "EMPLOYEE"
)

// ClaimSet is the decoded, verified payload of a bearer token.
type ClaimSet struct {
	Subject   string
	UserID    uint
	CompanyID uint
	Roles     []Role
	Issuer    string
	Audience  []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports membership in the claim set's role list.
func (c *ClaimSet) HasRole(r Role) bool {
	for _, have := range c.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// Codec decodes and verifies HS256 tokens. Issuer and Audience are
// enforced only when configured. Now is injectable for tests; it
// defaults to time.Now.
type Codec struct {
	Secret   string
	Issuer   string
	Audience string
	Now      func() time.Time
}

func NewCodec(secret, issuer, audience string) *Codec {
	return &Codec{Secret: secret, Issuer: issuer, Audience: audience, Now: time.Now}
}

func (c *Codec) timeFunc() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Decode verifies the token and extracts the claim set.
func (c *Codec) Decode(token string) (*ClaimSet, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.timeFunc),
	}
	if c.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.Issuer))
	}
	if c.Audience != "" {
		opts = append(opts, jwt.WithAudience(c.Audience))
	}

	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		return []byte(c.Secret), nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	cs := &ClaimSet{}
	if sub, err := mc.GetSubject(); err == nil {
		cs.Subject = sub
	}
	if iss, err := mc.GetIssuer(); err == nil {
		cs.Issuer = iss
	}
	if aud, err := mc.GetAudience(); err == nil {
		cs.Audience = aud
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		cs.IssuedAt = iat.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		cs.ExpiresAt = exp.Time
	}

	uid, err := numericClaim(mc, "userId")
	if err != nil {
		return nil, err
	}
	cid, err := numericClaim(mc, "companyId")
	if err != nil {
		return nil, err
	}
	roles, err := extractRoles(mc)
	if err != nil {
		return nil, err
	}

	cs.UserID = uid
	cs.CompanyID = cid
	cs.Roles = roles
	return cs, nil
}

func numericClaim(mc jwt.MapClaims, name string) (uint, error) {
	v, ok := mc[name]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: %s missing in token", ErrMalformedClaims, name)
	}
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0, fmt.Errorf("%w: %s negative", ErrMalformedClaims, name)
		}
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %s not an integer", ErrMalformedClaims, name)
		}
		return uint(n), nil
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s not numeric", ErrMalformedClaims, name)
		}
		return uint(parsed), nil
	default:
		return 0, fmt.Errorf("%w: %s not numeric", ErrMalformedClaims, name)
	}
}

// extractRoles accepts either a "roles" list or a single "role" string
// and strips the ROLE_ prefix some issuers add.
func extractRoles(mc jwt.MapClaims) ([]Role, error) {
	if v, ok := mc["roles"]; ok {
		if list, ok := v.([]interface{}); ok && len(list) > 0 {
			roles := make([]Role, 0, len(list))
			for _, item := range list {
				roles = append(roles, normalizeRole(fmt.Sprint(item)))
			}
			return roles, nil
		}
	}
	if v, ok := mc["role"]; ok && v != nil {
		if s := fmt.Sprint(v); s != "" {
			return []Role{normalizeRole(s)}, nil
		}
	}
	return nil, fmt.Errorf("%w: role/roles missing in token", ErrMalformedClaims)
}

func normalizeRole(s string) Role {
	return Role(strings.TrimPrefix(s, "ROLE_"))
}
