// Package middleware provides gin middleware for the partner API surface.
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BearerAuth guards the partner endpoints with a single shared bearer secret.
// Comparison is constant-time; any mismatch or absent header yields the
// partner contract's 401 body.
func BearerAuth(secret string) gin.HandlerFunc {
	expected := []byte("Bearer " + secret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if secret == "" ||
			subtle.ConstantTimeCompare([]byte(header), expected) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
