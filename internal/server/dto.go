package server

import (
	"strings"

	"microblog/internal/models"
)

// ResultResponse is the body of a successful call with no payload.
type ResultResponse struct {
	Result bool `json:"result"`
}

// UserRef identifies a user in nested payloads.
type UserRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// LikeRef is one like on a tweet.
type LikeRef struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
}

// TweetResponse is one feed entry.
type TweetResponse struct {
	ID          uint      `json:"id"`
	Content     string    `json:"content"`
	Author      UserRef   `json:"author"`
	Likes       []LikeRef `json:"likes"`
	Attachments []string  `json:"attachments"`
}

// FeedResponse is the body of GET /api/tweets.
type FeedResponse struct {
	Result bool            `json:"result"`
	Tweets []TweetResponse `json:"tweets"`
}

// UserProfile is a user with both follow views.
type UserProfile struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	Following []UserRef `json:"following"`
	Followers []UserRef `json:"followers"`
}

// UserResponse is the body of the user lookup endpoints.
type UserResponse struct {
	Result bool        `json:"result"`
	User   UserProfile `json:"user"`
}

// TweetCreatedResponse is the body of POST /api/tweets.
type TweetCreatedResponse struct {
	Result  bool `json:"result"`
	TweetID uint `json:"tweet_id"`
}

// MediaCreatedResponse is the body of POST /api/medias.
type MediaCreatedResponse struct {
	Result  bool `json:"result"`
	MediaID uint `json:"media_id"`
}

// AvatarResponse is the body of POST /api/users/me/avatar.
type AvatarResponse struct {
	Result bool   `json:"result"`
	Avatar string `json:"avatar"`
}

// CreateTweetRequest is the body of POST /api/tweets.
type CreateTweetRequest struct {
	TweetData     *string `json:"tweet_data"`
	TweetMediaIDs []uint  `json:"tweet_media_ids"`
}

// mediaURL joins the public prefix and a stored relative path.
func mediaURL(prefix, rel string) string {
	if rel == "" {
		return ""
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(rel, "/")
}

func toUserRefs(users []models.User) []UserRef {
	refs := make([]UserRef, 0, len(users))
	for _, u := range users {
		refs = append(refs, UserRef{ID: u.ID, Name: u.Username})
	}
	return refs
}

func toUserProfile(u *models.User, prefix string) UserProfile {
	return UserProfile{
		ID:        u.ID,
		Name:      u.Username,
		Avatar:    mediaURL(prefix, u.Avatar),
		Following: toUserRefs(u.Following),
		Followers: toUserRefs(u.Followers),
	}
}

func toTweetResponse(t *models.Tweet, prefix string) TweetResponse {
	likes := make([]LikeRef, 0, len(t.Likes))
	for _, l := range t.Likes {
		likes = append(likes, LikeRef{UserID: l.User.ID, Name: l.User.Username})
	}
	attachments := make([]string, 0, len(t.Images))
	for _, img := range t.Images {
		attachments = append(attachments, mediaURL(prefix, img.Path))
	}
	return TweetResponse{
		ID:          t.ID,
		Content:     t.Content,
		Author:      UserRef{ID: t.Author.ID, Name: t.Author.Username},
		Likes:       likes,
		Attachments: attachments,
	}
}
