package database

import (
	"testing"

	modelspkg "microblog/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesFollowEdgeTable(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.Follow); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include Follow")
}

func TestPersistentModels_UsersFirst(t *testing.T) {
	models := PersistentModels()
	require.NotEmpty(t, models)
	_, ok := models[0].(*modelspkg.User)
	require.True(t, ok, "users must migrate before tables referencing them")
}
