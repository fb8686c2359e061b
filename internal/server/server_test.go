package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"microblog/internal/config"
	"microblog/internal/models"
	"microblog/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	cfg := &config.Config{
		Port:                 "0",
		Env:                  "test",
		APIKeyHeader:         "api-key",
		MediaRoot:            t.TempDir(),
		MediaURLPrefix:       "/media",
		MediaMaxUploadSizeMB: 1,
	}
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)
	return &testEnv{app: s.NewApp(), db: db, cfg: cfg}
}

func (e *testEnv) do(t *testing.T, method, path, apiKey string, body io.Reader, contentType string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if apiKey != "" {
		req.Header.Set(e.cfg.APIKeyHeader, apiKey)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (e *testEnv) doJSON(t *testing.T, method, path, apiKey string, payload any) (int, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	return e.do(t, method, path, apiKey, body, fiber.MIMEApplicationJSON)
}

func (e *testEnv) upload(t *testing.T, path, apiKey, field, filename string, data []byte) (int, map[string]any) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return e.do(t, http.MethodPost, path, apiKey, &body, w.FormDataContentType())
}

func TestAuth_MissingAndUnknownKey(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.doJSON(t, http.MethodGet, "/api/tweets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["result"])
	assert.Equal(t, models.CodeUnauthorized, body["error_type"])
	assert.Equal(t, "User authorization error", body["error_message"])

	status, _ = env.doJSON(t, http.MethodGet, "/api/tweets", "nobody", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRoutes_UnknownAPIPathIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "alice")

	status, body := env.doJSON(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, status, "no key needed to learn a route does not exist")
	assert.Equal(t, models.CodeNotFound, body["error_type"])

	status, _ = env.doJSON(t, http.MethodPost, "/api/nope", "alice", nil)
	assert.Equal(t, http.StatusNotFound, status)

	for _, path := range []string{"/api/tweets", "/api/users/me", "/api/medias"} {
		status, _ = env.doJSON(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}
}

func TestGetMe_UsesResolvedCaller(t *testing.T) {
	db := testutil.NewTestDB(t)
	cfg := &config.Config{Env: "test", APIKeyHeader: "api-key", MediaRoot: t.TempDir(), MediaURLPrefix: "/media"}
	s, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	// Without APIKeyRequired in front there is no caller to report.
	app := fiber.New()
	app.Get("/me", s.GetMe)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.db, "alice")
	bob := testutil.CreateUser(t, env.db, "bob")
	testutil.CreateFollow(t, env.db, bob.ID, alice.ID)

	status, body := env.doJSON(t, http.MethodGet, "/api/users/me", "alice", nil)
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.EqualValues(t, alice.ID, user["id"])
	followers := user["followers"].([]any)
	require.Len(t, followers, 1)
	assert.Equal(t, "bob", followers[0].(map[string]any)["name"])
	assert.Empty(t, user["following"])
}

func TestHealthLive(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.doJSON(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "up", body["status"])

	status, body = env.doJSON(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "disabled", checks["redis"])
}

func TestFollowEndpoints(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.db, "alice")
	bob := testutil.CreateUser(t, env.db, "bob")
	followPath := fmt.Sprintf("/api/users/%d/follow", bob.ID)

	status, body := env.doJSON(t, http.MethodPost, followPath, "alice", nil)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, body["result"])

	status, body = env.doJSON(t, http.MethodPost, followPath, "alice", nil)
	assert.Equal(t, http.StatusLocked, status)
	assert.Equal(t, models.CodeDuplicate, body["error_type"])

	status, body = env.doJSON(t, http.MethodPost, fmt.Sprintf("/api/users/%d/follow", alice.ID), "alice", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, models.CodeSelfReference, body["error_type"])

	status, _ = env.doJSON(t, http.MethodPost, "/api/users/999/follow", "alice", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = env.doJSON(t, http.MethodGet, "/api/users/me", "alice", nil)
	require.Equal(t, http.StatusOK, status)
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["name"])
	following := user["following"].([]any)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].(map[string]any)["name"])

	status, body = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/users/%d", bob.ID), "alice", nil)
	require.Equal(t, http.StatusOK, status)
	followers := body["user"].(map[string]any)["followers"].([]any)
	require.Len(t, followers, 1)

	status, _ = env.doJSON(t, http.MethodDelete, followPath, "alice", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = env.doJSON(t, http.MethodDelete, followPath, "alice", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "The user is not among the subscribers", body["error_message"])
}

func TestGetUser_NotFoundAndBadID(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "alice")

	status, body := env.doJSON(t, http.MethodGet, "/api/users/999", "alice", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.CodeNotFound, body["error_type"])

	status, body = env.doJSON(t, http.MethodGet, "/api/users/abc", "alice", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, models.CodeValidation, body["error_type"])
}

func TestTweetLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.db, "alice")
	bob := testutil.CreateUser(t, env.db, "bob")
	testutil.CreateFollow(t, env.db, alice.ID, bob.ID)

	status, body := env.upload(t, "/api/medias", "bob", "file", "pic.png", testutil.TinyPNG(8, 8))
	require.Equal(t, http.StatusCreated, status, body)
	mediaID := body["media_id"].(float64)

	status, body = env.doJSON(t, http.MethodPost, "/api/tweets", "bob", map[string]any{
		"tweet_data":      "hello world",
		"tweet_media_ids": []float64{mediaID},
	})
	require.Equal(t, http.StatusCreated, status, body)
	tweetID := uint(body["tweet_id"].(float64))

	status, body = env.doJSON(t, http.MethodGet, "/api/tweets", "alice", nil)
	require.Equal(t, http.StatusOK, status)
	tweets := body["tweets"].([]any)
	require.Len(t, tweets, 1)
	tw := tweets[0].(map[string]any)
	assert.Equal(t, "hello world", tw["content"])
	assert.Equal(t, "bob", tw["author"].(map[string]any)["name"])
	attachments := tw["attachments"].([]any)
	require.Len(t, attachments, 1)
	url := attachments[0].(string)
	assert.True(t, strings.HasPrefix(url, "/media/tweets/"), url)

	status, _ = env.do(t, http.MethodGet, url, "", nil, "")
	assert.Equal(t, http.StatusOK, status, "stored media is served statically")

	tweetPath := fmt.Sprintf("/api/tweets/%d", tweetID)
	status, body = env.doJSON(t, http.MethodDelete, tweetPath, "alice", nil)
	assert.Equal(t, http.StatusLocked, status)
	assert.Equal(t, "The tweet that is being accessed is locked", body["error_message"])

	status, _ = env.doJSON(t, http.MethodDelete, tweetPath, "bob", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(0), testutil.Count(t, env.db, &models.Image{}))

	status, _ = env.doJSON(t, http.MethodDelete, tweetPath, "bob", nil)
	assert.Equal(t, http.StatusNotFound, status)

	_, statErr := os.Stat(filepath.Join(env.cfg.MediaRoot, strings.TrimPrefix(url, "/media/")))
	assert.True(t, os.IsNotExist(statErr), "file removed with the tweet")
}

func TestCreateTweet_Validation(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "alice")

	status, body := env.doJSON(t, http.MethodPost, "/api/tweets", "alice", map[string]any{
		"tweet_data": strings.Repeat("x", models.MaxTweetLength+1),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body["error_message"], "Current value: 281")

	status, _ = env.doJSON(t, http.MethodPost, "/api/tweets", "alice", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, body = env.doJSON(t, http.MethodPost, "/api/tweets", "alice", map[string]any{
		"tweet_data":      "with someone else's media",
		"tweet_media_ids": []int{42},
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.CodeNotFound, body["error_type"])
	assert.Equal(t, int64(0), testutil.Count(t, env.db, &models.Tweet{}))
}

func TestLikeEndpoints(t *testing.T) {
	env := newTestEnv(t)
	alice := testutil.CreateUser(t, env.db, "alice")
	tw := testutil.CreateTweet(t, env.db, alice.ID, "likeable")
	likes := fmt.Sprintf("/api/tweets/%d/likes", tw.ID)

	status, _ := env.doJSON(t, http.MethodPost, likes, "alice", nil)
	assert.Equal(t, http.StatusCreated, status)

	status, body := env.doJSON(t, http.MethodPost, likes, "alice", nil)
	assert.Equal(t, http.StatusLocked, status)
	assert.Equal(t, "The user has already liked this tweet", body["error_message"])

	status, _ = env.doJSON(t, http.MethodDelete, likes, "alice", nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = env.doJSON(t, http.MethodDelete, likes, "alice", nil)
	assert.Equal(t, http.StatusLocked, status)
	assert.Equal(t, models.CodeDuplicate, body["error_type"])

	status, _ = env.doJSON(t, http.MethodPost, "/api/tweets/999/likes", "alice", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUploadMedia_Rejections(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "alice")

	status, body := env.upload(t, "/api/medias", "alice", "", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "The image was not attached to the request", body["error_message"])

	status, body = env.upload(t, "/api/medias", "alice", "file", "notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, models.CodeValidation, body["error_type"])
}

func TestUploadAvatar(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "alice")

	status, body := env.upload(t, "/api/users/me/avatar", "alice", "file", "me.png", testutil.TinyPNG(64, 32))
	require.Equal(t, http.StatusOK, status, body)
	avatar := body["avatar"].(string)
	assert.True(t, strings.HasPrefix(avatar, "/media/avatars/"), avatar)
	assert.True(t, strings.HasSuffix(avatar, ".webp"), avatar)

	status, body = env.doJSON(t, http.MethodGet, "/api/users/me", "alice", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, avatar, body["user"].(map[string]any)["avatar"])
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.NewNotFoundError("Tweet", 1), http.StatusNotFound},
		{models.NewDuplicateError("dup"), http.StatusLocked},
		{models.NewOwnershipError("locked"), http.StatusLocked},
		{models.NewSelfReferenceError("self"), http.StatusUnprocessableEntity},
		{models.NewValidationError("bad"), http.StatusUnprocessableEntity},
		{models.NewUnauthorizedError("who"), http.StatusUnauthorized},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), tt.err.Error())
	}
}
