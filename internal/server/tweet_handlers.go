package server

import (
	"microblog/internal/models"
	"microblog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/tweets
// @Summary Home feed
// @Description Tweets by users the caller follows, newest first
// @Tags tweets
// @Produce json
// @Param api-key header string true "User api key"
// @Success 200 {object} FeedResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /tweets [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	tweets, err := s.feedService.GetFeed(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	out := make([]TweetResponse, 0, len(tweets))
	for i := range tweets {
		out = append(out, toTweetResponse(&tweets[i], s.config.MediaURLPrefix))
	}
	return c.JSON(FeedResponse{Result: true, Tweets: out})
}

// CreateTweet handles POST /api/tweets
// @Summary Post a tweet
// @Tags tweets
// @Accept json
// @Produce json
// @Param api-key header string true "User api key"
// @Param request body CreateTweetRequest true "Tweet"
// @Success 201 {object} TweetCreatedResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /tweets [post]
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req CreateTweetRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("Invalid request body"))
	}
	if req.TweetData == nil {
		return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
			models.NewValidationError("tweet_data is required"))
	}

	tweet, err := s.tweetService.Create(c.UserContext(), currentUserID(c), service.CreateTweetInput{
		Content:  *req.TweetData,
		MediaIDs: req.TweetMediaIDs,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(TweetCreatedResponse{Result: true, TweetID: tweet.ID})
}

// DeleteTweet handles DELETE /api/tweets/:id
// @Summary Delete own tweet
// @Tags tweets
// @Produce json
// @Param api-key header string true "User api key"
// @Param id path int true "Tweet ID"
// @Success 200 {object} ResultResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 423 {object} models.ErrorResponse
// @Router /tweets/{id} [delete]
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.tweetService.Delete(c.UserContext(), currentUserID(c), tweetID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(ResultResponse{Result: true})
}

// LikeTweet handles POST /api/tweets/:id/likes
// @Summary Like a tweet
// @Tags likes
// @Produce json
// @Param api-key header string true "User api key"
// @Param id path int true "Tweet ID"
// @Success 201 {object} ResultResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 423 {object} models.ErrorResponse
// @Router /tweets/{id}/likes [post]
func (s *Server) LikeTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.Like(c.UserContext(), currentUserID(c), tweetID); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ResultResponse{Result: true})
}

// UnlikeTweet handles DELETE /api/tweets/:id/likes
// @Summary Remove a like
// @Tags likes
// @Produce json
// @Param api-key header string true "User api key"
// @Param id path int true "Tweet ID"
// @Success 200 {object} ResultResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 423 {object} models.ErrorResponse
// @Router /tweets/{id}/likes [delete]
func (s *Server) UnlikeTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.Unlike(c.UserContext(), currentUserID(c), tweetID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(ResultResponse{Result: true})
}
