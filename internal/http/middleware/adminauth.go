// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements a minimal shared-secret guard for admin-only routes.
// Clients present the secret via the X-Admin-Token request header; requests
// without a matching token are rejected with 401 before the handler runs.
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HeaderAdminToken is the request header carrying the admin shared secret.
const HeaderAdminToken = "X-Admin-Token"

// AdminAuth returns middleware that rejects requests whose X-Admin-Token
// header does not match the configured token.
//
// When token is empty the guard fails closed: every request is rejected,
// so a deployment that forgets to configure the secret does not silently
// expose its admin surface.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(HeaderAdminToken)
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "unauthorized",
				"message": "admin token required",
			})
			return
		}
		c.Next()
	}
}
