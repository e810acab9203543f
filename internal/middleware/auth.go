package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pmihealth/cardiology-api/internal/models"
	"github.com/pmihealth/cardiology-api/internal/repository"
	"github.com/pmihealth/cardiology-api/internal/utils"
)

// PrincipalKey is where the resolved user is stored in the gin context.
const PrincipalKey = "principal"

// RequireUser verifies the bearer token and resolves it to a stored user.
// The token is re-verified and the user re-fetched on every request.
func RequireUser(users repository.UserRepository, tokens *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolve(c, users, tokens)
		if !ok {
			return
		}
		c.Set(PrincipalKey, user)
		c.Next()
	}
}

// RequireAdmin verifies the bearer token and additionally requires the
// resolved user to hold the admin role.
func RequireAdmin(users repository.UserRepository, tokens *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolve(c, users, tokens)
		if !ok {
			return
		}
		if user.Role != models.RoleAdmin {
			utils.JSONAbort(c, http.StatusForbidden, "Access denied. Admin privileges required.")
			return
		}
		c.Set(PrincipalKey, user)
		c.Next()
	}
}

func resolve(c *gin.Context, users repository.UserRepository, tokens *utils.JWTManager) (*models.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		utils.JSONAbort(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return nil, false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := tokens.Validate(token)
	if err != nil {
		utils.JSONAbort(c, http.StatusUnauthorized, "Invalid token.")
		return nil, false
	}

	user, err := users.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		utils.JSONAbort(c, http.StatusForbidden, "Access denied. User not found.")
		return nil, false
	}
	return user, true
}

// Principal returns the user attached by RequireUser/RequireAdmin.
func Principal(c *gin.Context) *models.User {
	if v, ok := c.Get(PrincipalKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
