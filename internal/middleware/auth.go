package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/rishanreddy/habitmind/internal/auth"
	"github.com/rishanreddy/habitmind/internal/constants"
	apierrors "github.com/rishanreddy/habitmind/internal/errors"
)

// TokenParser resolves a bearer token to a user id.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// RequireAuth checks if the user is authenticated via a bearer token or
// the session. The user id is stored in the gin context and in the request
// context for the services.
func RequireAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userFromBearer(c, tokens)
		if !ok {
			userID, ok = userFromSession(c)
		}

		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Request = c.Request.WithContext(auth.WithOwner(c.Request.Context(), userID))
		c.Next()
	}
}

func userFromBearer(c *gin.Context, tokens TokenParser) (string, bool) {
	if tokens == nil {
		return "", false
	}

	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}

	userID, err := tokens.ParseToken(strings.TrimSpace(token))
	if err != nil {
		return "", false
	}
	return userID, true
}

func userFromSession(c *gin.Context) (string, bool) {
	session := sessions.Default(c)
	userID, ok := session.Get(constants.ContextKeyUserID).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
