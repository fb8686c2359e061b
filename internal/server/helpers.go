package server

import (
	"errors"

	"microblog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter as a positive uint.
// On failure it writes a 422 JSON response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid "+param+": must be a positive integer"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user's id set by APIKeyRequired.
// currentUser is the caller resolved by APIKeyRequired, follow lists included.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// statusForError maps an AppError code to its HTTP status.
// Ownership and duplicate conflicts are reported as 423 Locked.
func statusForError(err error) int {
	switch models.ErrorCode(err) {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeDuplicate, models.CodeOwnership:
		return fiber.StatusLocked
	case models.CodeSelfReference, models.CodeValidation:
		return fiber.StatusUnprocessableEntity
	case models.CodeUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return models.CodeNotFound
	case fiber.StatusUnauthorized:
		return models.CodeUnauthorized
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge, fiber.StatusMethodNotAllowed:
		return models.CodeValidation
	default:
		return models.CodeInternal
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}
