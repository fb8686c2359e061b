package server

import (
	"microblog/internal/middleware"
	"microblog/internal/models"

	"github.com/gofiber/fiber/v2"
)

const authErrorMessage = "User authorization error"

// APIKeyRequired resolves the caller from the api key header and stores the
// user in locals ("user", "userID") and the request context.
func (s *Server) APIKeyRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(s.config.APIKeyHeader)
		if key == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(authErrorMessage))
		}

		user, err := s.userService.GetByCredential(c.UserContext(), key)
		if err != nil {
			return respondError(c, err)
		}
		if user == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(authErrorMessage))
		}

		c.Locals("user", user)
		c.Locals("userID", user.ID)
		c.SetUserContext(middleware.WithUserID(c.UserContext(), user.ID))
		return c.Next()
	}
}
