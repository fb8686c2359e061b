package server

import (
	"io"

	"microblog/internal/models"

	"github.com/gofiber/fiber/v2"
)

const missingFileMessage = "The image was not attached to the request"

// readUpload reads the multipart "file" field. On failure it writes a 400
// and returns errResponseWritten.
func readUpload(c *fiber.Ctx) (string, []byte, error) {
	file, err := c.FormFile("file")
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(missingFileMessage))
		return "", nil, errResponseWritten
	}

	src, err := file.Open()
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
		return "", nil, errResponseWritten
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
		return "", nil, errResponseWritten
	}
	return file.Filename, content, nil
}

// UploadMedia handles POST /api/medias
// @Summary Upload tweet media
// @Description Store an image that can later be attached to a tweet
// @Tags medias
// @Accept mpfd
// @Produce json
// @Param api-key header string true "User api key"
// @Param file formData file true "Image file (png, jpg, jpeg, gif)"
// @Success 201 {object} MediaCreatedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /medias [post]
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	filename, content, err := readUpload(c)
	if err != nil {
		return nil
	}

	img, err := s.mediaService.Upload(c.UserContext(), currentUserID(c), filename, content)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(MediaCreatedResponse{Result: true, MediaID: img.ID})
}

// UploadAvatar handles POST /api/users/me/avatar
// @Summary Replace avatar
// @Description Upload a new avatar, cropped to a square and stored as webp
// @Tags users
// @Accept mpfd
// @Produce json
// @Param api-key header string true "User api key"
// @Param file formData file true "Image file"
// @Success 200 {object} AvatarResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /users/me/avatar [post]
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	filename, content, err := readUpload(c)
	if err != nil {
		return nil
	}

	path, err := s.mediaService.UpdateAvatar(c.UserContext(), currentUserID(c), filename, content)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(AvatarResponse{Result: true, Avatar: mediaURL(s.config.MediaURLPrefix, path)})
}
