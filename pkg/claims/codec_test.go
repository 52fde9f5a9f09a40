package claims_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onlinetest_backend/pkg/claims"
	"onlinetest_backend/pkg/claims/claimstest"
)

func TestCodecConformance(t *testing.T) {
	claimstest.Run(t, func(secret, issuer, audience string, now func() time.Time) claimstest.Decoder {
		c := claims.NewCodec(secret, issuer, audience)
		c.Now = now
		return c
	})
}

func TestCodecNumericClaimForms(t *testing.T) {
	c := claims.NewCodec("numeric-forms-secret-0123456789abcdef", "", "")
	c.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	token := claimstest.Sign(t, c.Secret, jwt.MapClaims{
		"sub":       "42",
		"userId":    "42",
		"companyId": float64(9),
		"role":      "EMPLOYEE",
		"exp":       c.Now().Add(time.Hour).Unix(),
	})

	cs, err := c.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), cs.UserID)
	assert.Equal(t, uint(9), cs.CompanyID)
}

func TestCodecRejectsFractionalNumericClaim(t *testing.T) {
	c := claims.NewCodec("numeric-forms-secret-0123456789abcdef", "", "")
	c.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	token := claimstest.Sign(t, c.Secret, jwt.MapClaims{
		"userId":    7.9,
		"companyId": float64(9),
		"role":      "EMPLOYEE",
		"exp":       c.Now().Add(time.Hour).Unix(),
	})

	_, err := c.Decode(token)
	assert.ErrorIs(t, err, claims.ErrMalformedClaims)
}

func TestCodecRejectsNonNumericUserID(t *testing.T) {
	c := claims.NewCodec("numeric-forms-secret-0123456789abcdef", "", "")
	c.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	token := claimstest.Sign(t, c.Secret, jwt.MapClaims{
		"userId":    "not-a-number",
		"companyId": float64(9),
		"role":      "EMPLOYEE",
		"exp":       c.Now().Add(time.Hour).Unix(),
	})

	_, err := c.Decode(token)
	assert.ErrorIs(t, err, claims.ErrMalformedClaims)
}

func TestAuthorizeEmptyRequiredAdmitsAnyAuthenticated(t *testing.T) {
	cs := &claims.ClaimSet{UserID: 1, CompanyID: 2, Roles: []claims.Role{claims.RoleSuperAdmin}}

	p, err := claims.Authorize(cs)
	require.NoError(t, err)
	assert.Equal(t, claims.RoleSuperAdmin, p.Role)
}

func TestAuthorizeNilClaimSet(t *testing.T) {
	_, err := claims.Authorize(nil, claims.RoleAdmin)
	assert.ErrorIs(t, err, claims.ErrForbidden)
}
