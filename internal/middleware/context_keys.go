package middleware

import "github.com/gin-gonic/gin"

// subjectKey is the key used to store the authenticated token subject in the request context.
const subjectKey = contextKey("subject")

// GetSubjectFromContext retrieves the authenticated token subject.
// It returns false when auth is disabled or the request is anonymous.
func GetSubjectFromContext(c *gin.Context) (string, bool) {
	subject, ok := c.Request.Context().Value(subjectKey).(string)
	if !ok || subject == "" {
		return "", false
	}
	return subject, true
}
