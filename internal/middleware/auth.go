package middleware

import (
	"errors"
	"strings"

	"onlinetest_backend/internal/util"
	"onlinetest_backend/pkg/claims"
	"onlinetest_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	claimSetKey  = "claimSet"
	principalKey = "principal"
)

// AuthMiddleware decodes the bearer token through the shared claims
// codec. A missing, garbled or expired token is 401; a verified token
// with unusable claims is 401 as well, but logged distinctly so issuer
// bugs are visible.
func AuthMiddleware(codec *claims.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		cs, err := codec.Decode(tokenString)
		if err != nil {
			if errors.Is(err, claims.ErrMalformedClaims) {
				logger.Log.Warn("token verified but claims unusable", zap.Error(err))
			}
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(claimSetKey, cs)
		c.Set("token", tokenString)
		c.Next()
	}
}

// RoleMiddleware applies the authorization guard: role intersection
// against the required set, 403 on no match.
func RoleMiddleware(roles ...claims.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		cs := GetClaimSet(c)
		if cs == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		principal, err := claims.Authorize(cs, roles...)
		if err != nil {
			util.Forbidden(c)
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func GetClaimSet(c *gin.Context) *claims.ClaimSet {
	v, exists := c.Get(claimSetKey)
	if !exists {
		return nil
	}
	cs, ok := v.(*claims.ClaimSet)
	if !ok {
		return nil
	}
	return cs
}

func GetPrincipal(c *gin.Context) *claims.Principal {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	p, ok := v.(*claims.Principal)
	if !ok {
		return nil
	}
	return p
}

// GetToken returns the raw bearer token for peer-service calls made on
// behalf of the caller.
func GetToken(c *gin.Context) string {
	return c.GetString("token")
}
