package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// subjectKey is the gin context key under which the verified subject is stored.
const subjectKey = "auth.subject"

// Middleware verifies the request's bearer token and stores the subject in
// the gin context. Requests without a valid token are rejected with 401.
func Middleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := SubjectFromHeader(secret, c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
			return
		}
		c.Set(subjectKey, subject)
		c.Next()
	}
}

// Subject returns the verified subject stored by Middleware.
func Subject(c *gin.Context) string {
	return c.GetString(subjectKey)
}
