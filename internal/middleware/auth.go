package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/gabrielpiriz/hackathon-nova-backend/internal/apierror"
)

const ClaimsKey = "claims"

const denylistPrefix = "auth:denylist:"

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route. Tokens revoked
// by logout live in a Redis denylist until their natural expiry; a nil rdb
// skips that check (unit tests).
func JWTAuth(secret string, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticación requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token inválido o expirado"))
			return
		}

		if rdb != nil {
			if n, err := rdb.Exists(c.Request.Context(), denylistPrefix+tokenStr).Result(); err == nil && n > 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token revocado"))
				return
			}
		}

		c.Set(ClaimsKey, claims)
		c.Set("token", tokenStr)
		c.Next()
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}

// GetToken returns the raw bearer token stored by JWTAuth.
func GetToken(c *gin.Context) string {
	return c.GetString("token")
}
