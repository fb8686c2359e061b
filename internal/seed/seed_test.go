package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"microblog/internal/models"
	"microblog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoFixture_Parses(t *testing.T) {
	f, err := DemoFixture()
	require.NoError(t, err)
	assert.Len(t, f.Users, 3)
	assert.Len(t, f.Follows, 5)
	assert.Len(t, f.Tweets, 3)
	assert.Len(t, f.Likes, 5)
}

func TestParseFixture_RejectsBadReferences(t *testing.T) {
	_, err := ParseFixture([]byte(`
users:
  - {name: a, api_key: a}
follows:
  - {follower: a, followee: ghost}
`))
	assert.Error(t, err)

	_, err = ParseFixture([]byte(`
users:
  - {name: a, api_key: a}
follows:
  - {follower: a, followee: a}
`))
	assert.Error(t, err)

	_, err = ParseFixture([]byte("users: [oops"))
	assert.Error(t, err)
}

func TestParseFixture_ValidatesUsers(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		wantErr string
	}{
		{"sixty chars", "{name: " + strings.Repeat("n", 60) + ", api_key: k}", ""},
		{"sixty one chars", "{name: " + strings.Repeat("n", 61) + ", api_key: k}", "at most 60 characters"},
		{"blank name", `{name: "  ", api_key: k}`, "must not be empty"},
		{"missing key", "{name: a}", "api key"},
		{"padded key", `{name: a, api_key: " k"}`, "api key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture([]byte("users:\n  - " + tt.user + "\n"))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDemo_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	root := t.TempDir()
	ctx := context.Background()

	require.NoError(t, Demo(ctx, db, root))
	require.NoError(t, Demo(ctx, db, root))

	assert.Equal(t, int64(3), testutil.Count(t, db, &models.User{}))
	assert.Equal(t, int64(5), testutil.Count(t, db, &models.Follow{}))
	assert.Equal(t, int64(3), testutil.Count(t, db, &models.Tweet{}))
	assert.Equal(t, int64(2), testutil.Count(t, db, &models.Image{}))
	assert.Equal(t, int64(5), testutil.Count(t, db, &models.Like{}))

	var u models.User
	require.NoError(t, db.Where("api_key = ?", "test").First(&u).Error)
	assert.Equal(t, "Владимир", u.Username)

	for _, p := range []string{"tweets/demo/1.png", "tweets/demo/2.png"} {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(p)))
		assert.NoError(t, err, p)
	}
}

func TestRandom_CreatesGraph(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	sum, err := Random(ctx, db, RandomOptions{Users: 5, TweetsPerUser: 3, FollowsPerUser: 2, LikesPerUser: 4, Seed: 42})
	require.NoError(t, err)
	assert.Len(t, sum.Users, 5)
	assert.Equal(t, 15, sum.Tweets)
	assert.Equal(t, int64(15), testutil.Count(t, db, &models.Tweet{}))

	var selfEdges int64
	require.NoError(t, db.Model(&models.Follow{}).Where("follower_id = followee_id").Count(&selfEdges).Error)
	assert.Zero(t, selfEdges)

	var tweets []models.Tweet
	require.NoError(t, db.Find(&tweets).Error)
	for _, tw := range tweets {
		assert.LessOrEqual(t, models.ContentLength(tw.Content), models.MaxTweetLength)
	}

	require.NoError(t, Clear(ctx, db))
	assert.Zero(t, testutil.Count(t, db, &models.User{}))
	assert.Zero(t, testutil.Count(t, db, &models.Tweet{}))
}
