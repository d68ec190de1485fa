package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipeshare/internal/apperr"
	"recipeshare/internal/logging"
	"recipeshare/internal/models"
	"recipeshare/internal/services"
)

const (
	CheckUserKey = "user"
	authErrorKey = "auth_error"
)

// LoadUser attaches the user named by a valid bearer token. Requests
// without a token pass through anonymously; a bad token is remembered so
// AuthRequired can report it.
func LoadUser(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.Set(authErrorKey, err)
			if !apperr.Is(err, apperr.KindUnauthenticated) {
				logging.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to authenticate request")
			}
			c.Next()
			return
		}

		c.Set(CheckUserKey, user)
		ctx := logging.ContextWithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AuthRequired rejects requests that LoadUser did not authenticate.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); exists {
			c.Next()
			return
		}

		message := "Not authorized, no token"
		status := http.StatusUnauthorized
		if v, ok := c.Get(authErrorKey); ok {
			err, _ := v.(error)
			message = apperr.Message(err)
			if !apperr.Is(err, apperr.KindUnauthenticated) {
				status = apperr.HTTPStatus(apperr.KindOf(err))
			}
		}
		c.AbortWithStatusJSON(status, gin.H{"message": message})
	}
}

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CheckUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// CurrentUserID returns 0 for anonymous requests.
func CurrentUserID(c *gin.Context) uint {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
