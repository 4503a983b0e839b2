package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/opercredits/quiz-api/internal/dto"
	"github.com/opercredits/quiz-api/internal/model"
	"github.com/opercredits/quiz-api/internal/repository"
)

const userContextKey = "current_user"

// TokenAuth authenticates requests carrying "Authorization: Token <key>" and
// stores the resolved user in the gin context. Anything else is a 401.
func TokenAuth(tokens repository.TokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication credentials were not provided"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Token" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid authorization header"})
			return
		}

		token, err := tokens.FindByKey(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid token"})
			return
		}

		user := token.User
		c.Set(userContextKey, &user)
		c.Next()
	}
}

// RequireRole gates a route to one role. Runs after TokenAuth.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication credentials were not provided"})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "You do not have permission to perform this action"})
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*model.User)
	return user, ok
}
