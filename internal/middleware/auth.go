package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/animgen/internal/config"
	"github.com/localnerve/animgen/internal/services"
	"github.com/localnerve/animgen/internal/types"
	"gorm.io/gorm"
)

// AuthUser validates that the request carries a valid Authorizer session
// with the user role, creates the profile row on first reference, and
// stores the Authorizer user in request Locals.
func AuthUser(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, cfg, db, []string{"user"}, "authorization.user")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, cfg *config.Config, db *gorm.DB, roles []string, errorType string) error {
	if !services.IsAuthorizerInitialized() {
		if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
			return &types.CustomError{
				Code:    fiber.StatusBadGateway,
				Message: fmt.Sprintf("Authorizer unavailable: %v", err),
				Type:    errorType,
			}
		}
	}

	// Get session cookie
	session := c.Cookies("cookie_session")
	if session == "" {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "Authorizer cookie \"cookie_session\" not found",
			Type:    errorType,
		}
	}

	// Validate session
	data, err := services.ValidateSession(session, roles)
	if err != nil {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Invalid session: %v", err),
			Type:    errorType,
		}
	}

	user, ok := data["user"]
	if !ok {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: "No user in session",
			Type:    errorType,
		}
	}
	c.Locals("user", user)

	// Create-if-absent profile row keyed on the Authorizer id
	if userMap, ok := user.(map[string]interface{}); ok {
		id, _ := userMap["id"].(string)
		email, _ := userMap["email"].(string)
		name, _ := userMap["given_name"].(string)
		image, _ := userMap["picture"].(string)
		if id != "" {
			if _, err := services.CreateUser(db, id, email, name, image); err != nil {
				return &types.CustomError{
					Code:    fiber.StatusInternalServerError,
					Message: fmt.Sprintf("Failed to sync user: %v", err),
					Type:    errorType,
				}
			}
		}
	}

	return c.Next()
}
