// Package claimstest holds the conformance suite every service-side
// token guard must pass. Services embed pkg/claims rather than
// re-deriving claim semantics; this suite is the contract check that
// keeps any alternate implementation behaviorally identical.
package claimstest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onlinetest_backend/pkg/claims"
)

// Decoder is the surface a service implementation must expose.
type Decoder interface {
	Decode(token string) (*claims.ClaimSet, error)
}

// Factory builds the implementation under test.
type Factory func(secret, issuer, audience string, now func() time.Time) Decoder

const testSecret = "conformance-suite-secret-0123456789abcdef"

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// Sign issues an HS256 token for suite scenarios.
func Sign(t *testing.T, secret string, mc jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func baseClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":       "user@example.com",
		"userId":    float64(7),
		"companyId": float64(3),
		"roles":     []string{"ROLE_ADMIN"},
		"exp":       fixedNow.Add(time.Hour).Unix(),
		"iat":       fixedNow.Add(-time.Minute).Unix(),
	}
}

// Run exercises the full decode/authorize contract against the given
// factory.
func Run(t *testing.T, build Factory) {
	now := func() time.Time { return fixedNow }

	t.Run("decodes valid token", func(t *testing.T) {
		d := build(testSecret, "", "", now)
		cs, err := d.Decode(Sign(t, testSecret, baseClaims()))
		require.NoError(t, err)
		assert.Equal(t, uint(7), cs.UserID)
		assert.Equal(t, uint(3), cs.CompanyID)
		assert.Equal(t, []claims.Role{claims.RoleAdmin}, cs.Roles)
	})

	t.Run("rejects bad signature as invalid token", func(t *testing.T) {
		d := build(testSecret, "", "", now)
		_, err := d.Decode(Sign(t, "some-other-secret-that-is-wrong!!", baseClaims()))
		assert.ErrorIs(t, err, claims.ErrInvalidToken)
	})

	t.Run("rejects garbage as invalid token", func(t *testing.T) {
		d := build(testSecret, "", "", now)
		_, err := d.Decode("not.a.token")
		assert.ErrorIs(t, err, claims.ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		d := build(testSecret, "", "", now)
		mc := baseClaims()
		mc["exp"] = fixedNow.Add(-time.Minute).Unix()
		_, err := d.Decode(Sign(t, testSecret, mc))
		assert.ErrorIs(t, err, claims.ErrInvalidToken)
	})

	t.Run("missing userId fails distinctly from bad signature", func(t *testing.T) {
		d := build(testSecret, "", "", now)
		mc := baseClaims()
		delete(mc, "userId")
		_, err := d.Decode(Sign(t, testSecret, mc))
		assert.ErrorIs(t, err, claims.ErrMalformedClaims)
		assert.NotErrorIs(t, err, claims.ErrInvalidToken)
	})

	t.Run("missing companyId fails distinctly from bad signature", func(t *testing.T) {
		d := build(testSecret, "", "", now)
		mc := baseClaims()
		delete(mc, "companyId")
		_, err := d.Decode(Sign(t, testSecret, mc))
		assert.ErrorIs(t, err, claims.ErrMalformedClaims)
	})

	t.Run("missing role and roles fails", func(t *testing.T) {
		d := build(testSecret, "", "", now)
		mc := baseClaims()
		delete(mc, "roles")
		_, err := d.Decode(Sign(t, testSecret, mc))
		assert.ErrorIs(t, err, claims.ErrMalformedClaims)
	})

	t.Run("accepts single role claim with prefix", func(t *testing.T) {
		d := build(testSecret, "", "", now)
		mc := baseClaims()
		delete(mc, "roles")
		mc["role"] = "ROLE_EMPLOYEE"
		cs, err := d.Decode(Sign(t, testSecret, mc))
		require.NoError(t, err)
		assert.Equal(t, []claims.Role{claims.RoleEmployee}, cs.Roles)
	})

	t.Run("enforces issuer when configured", func(t *testing.T) {
		d := build(testSecret, "auth-service", "", now)
		mc := baseClaims()
		mc["iss"] = "someone-else"
		_, err := d.Decode(Sign(t, testSecret, mc))
		assert.ErrorIs(t, err, claims.ErrInvalidToken)

		mc["iss"] = "auth-service"
		_, err = d.Decode(Sign(t, testSecret, mc))
		assert.NoError(t, err)
	})

	t.Run("enforces audience in string and list form", func(t *testing.T) {
		d := build(testSecret, "", "exam-service", now)

		mc := baseClaims()
		mc["aud"] = "exam-service"
		_, err := d.Decode(Sign(t, testSecret, mc))
		assert.NoError(t, err)

		mc["aud"] = []string{"gateway", "exam-service"}
		_, err = d.Decode(Sign(t, testSecret, mc))
		assert.NoError(t, err)

		mc["aud"] = []string{"gateway"}
		_, err = d.Decode(Sign(t, testSecret, mc))
		assert.ErrorIs(t, err, claims.ErrInvalidToken)
	})

	t.Run("guard intersects roles", func(t *testing.T) {
		cs := &claims.ClaimSet{UserID: 7, CompanyID: 3, Roles: []claims.Role{claims.RoleEmployee}}

		p, err := claims.Authorize(cs, claims.RoleEmployee)
		require.NoError(t, err)
		assert.Equal(t, uint(7), p.UserID)
		assert.Equal(t, uint(3), p.CompanyID)

		_, err = claims.Authorize(cs, claims.RoleAdmin, claims.RoleSuperAdmin)
		assert.ErrorIs(t, err, claims.ErrForbidden)
	})
}
