package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/transitpass/concession-backend-go/pkg/response"
)

// UserIDKey is the gin context key carrying the authenticated user id.
const UserIDKey = "user_id"

// Auth validates the Bearer token on incoming requests and stores the token
// subject as the user id. Session issuance and refresh live elsewhere; this
// middleware only verifies.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			response.Error(c, http.StatusUnauthorized, "Missing bearer token", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, prefix), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid token", err)
			c.Abort()
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			response.Error(c, http.StatusUnauthorized, "Token has no subject", err)
			c.Abort()
			return
		}

		c.Set(UserIDKey, subject)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
