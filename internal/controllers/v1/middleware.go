package v1

import (
	"strings"

	"github.com/credence-finance/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// contextUser is the context key the session middleware stores the
// authenticated user under.
const contextUser = "credence-user"

// SessionMiddleware resolves the bearer token of the request to a user and
// aborts with 401 when it cannot.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" || token == c.GetHeader("Authorization") {
			c.AbortWithStatusJSON(status(errUnauthorized), httpError{Error: errUnauthorized.Error()})
			return
		}

		user, err := models.SessionUser(models.DB, token)
		if err != nil {
			c.AbortWithStatusJSON(status(err), httpError{Error: err.Error()})
			return
		}

		c.Set(contextUser, user)
		c.Next()
	}
}

// currentUser returns the user the session middleware resolved.
func currentUser(c *gin.Context) models.User {
	return c.MustGet(contextUser).(models.User)
}
