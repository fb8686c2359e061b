package server

import (
	"microblog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMe handles GET /api/users/me
// @Summary Current user profile
// @Tags users
// @Produce json
// @Param api-key header string true "User api key"
// @Success 200 {object} UserResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me [get]
func (s *Server) GetMe(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError(authErrorMessage))
	}
	return c.JSON(UserResponse{Result: true, User: toUserProfile(user, s.config.MediaURLPrefix)})
}

// GetUser handles GET /api/users/:id
// @Summary User profile
// @Tags users
// @Produce json
// @Param api-key header string true "User api key"
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetByIDOrError(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(UserResponse{Result: true, User: toUserProfile(user, s.config.MediaURLPrefix)})
}

// FollowUser handles POST /api/users/:id/follow
// @Summary Follow a user
// @Tags follows
// @Produce json
// @Param api-key header string true "User api key"
// @Param id path int true "User ID"
// @Success 201 {object} ResultResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 423 {object} models.ErrorResponse
// @Router /users/{id}/follow [post]
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.CreateFollow(c.UserContext(), currentUserID(c), targetID); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ResultResponse{Result: true})
}

// UnfollowUser handles DELETE /api/users/:id/follow
// @Summary Unfollow a user
// @Tags follows
// @Produce json
// @Param api-key header string true "User api key"
// @Param id path int true "User ID"
// @Success 200 {object} ResultResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /users/{id}/follow [delete]
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.DeleteFollow(c.UserContext(), currentUserID(c), targetID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(ResultResponse{Result: true})
}
