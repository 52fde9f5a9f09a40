package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"onlinetest_backend/pkg/claims"
	"onlinetest_backend/pkg/claims/claimstest"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret-0123456789abcdef"

func tokenFor(t *testing.T, userID, companyID uint, roles ...string) string {
	t.Helper()
	return claimstest.Sign(t, secret, jwt.MapClaims{
		"sub":       "someone@example.com",
		"userId":    float64(userID),
		"companyId": float64(companyID),
		"roles":     roles,
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
}

func testRouter(requiredRoles ...claims.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	codec := claims.NewCodec(secret, "", "")
	group := router.Group("/")
	group.Use(AuthMiddleware(codec), RoleMiddleware(requiredRoles...))
	group.GET("/probe", func(c *gin.Context) {
		p := GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID, "companyId": p.CompanyID, "role": p.Role})
	})
	return router
}

func probe(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingOrBadTokens(t *testing.T) {
	router := testRouter()

	assert.Equal(t, http.StatusUnauthorized, probe(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, probe(router, "Bearer garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, probe(router, "Basic abc").Code)

	expired := claimstest.Sign(t, secret, jwt.MapClaims{
		"sub": "x", "userId": float64(1), "companyId": float64(1),
		"roles": []string{"EMPLOYEE"},
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusUnauthorized, probe(router, "Bearer "+expired).Code)
}

func TestRoleMiddlewareEnforcesIntersection(t *testing.T) {
	adminOnly := testRouter(claims.RoleAdmin, claims.RoleSuperAdmin)

	w := probe(adminOnly, "Bearer "+tokenFor(t, 7, 3, "ADMIN"))
	require.Equal(t, http.StatusOK, w.Code)

	w = probe(adminOnly, "Bearer "+tokenFor(t, 8, 3, "EMPLOYEE"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// ROLE_ prefix from the issuer normalizes away
	w = probe(adminOnly, "Bearer "+tokenFor(t, 9, 3, "ROLE_SUPER_ADMIN"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddlewareEmptyRequiredAdmitsAnyAuthenticated(t *testing.T) {
	anyRole := testRouter()
	w := probe(anyRole, "Bearer "+tokenFor(t, 7, 3, "EMPLOYEE"))
	assert.Equal(t, http.StatusOK, w.Code)
}
