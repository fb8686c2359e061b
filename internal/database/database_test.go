package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"microblog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}

	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// sqlite is pinned to a single connection regardless of config.
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestSQLVerb(t *testing.T) {
	tests := map[string]string{
		"SELECT * FROM users":                   "select",
		"  insert INTO likes (user_id) VALUES":  "insert",
		"UPDATE images SET tweet_id = 1":        "update",
		"DELETE FROM follows WHERE":             "delete",
		"WITH picked AS (SELECT 1) SELECT 1":    "with",
		"CREATE TABLE IF NOT EXISTS users (id)": "other",
		"":                                      "other",
	}
	for sql, want := range tests {
		assert.Equal(t, want, sqlVerb(sql), sql)
	}
}

func TestCustomGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(slog.New(slog.NewTextHandler(&buf, nil)), logger.Warn)

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String(), "record not found is not an error")

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT broken", 0
	}, errors.New("syntax error"))
	assert.Contains(t, buf.String(), "GORM query error")

	buf.Reset()
	l.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT slow", 3
	}, nil)
	assert.Contains(t, buf.String(), "GORM slow query")

	buf.Reset()
	silent := l.LogMode(logger.Silent)
	silent.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT broken", 0
	}, errors.New("syntax error"))
	assert.Empty(t, buf.String())
}

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.Config
		dialect     string
		wantSQL     bool
		wantAuto    bool
		expectError bool
	}{
		{"hybrid dev", config.Config{Env: "development"}, "postgres", true, true, false},
		{"hybrid prod", config.Config{Env: "production", DBSchemaMode: "hybrid"}, "postgres", true, false, false},
		{"sql only", config.Config{Env: "development", DBSchemaMode: "sql"}, "postgres", true, false, false},
		{"auto prod refused", config.Config{Env: "prod", DBSchemaMode: "auto"}, "postgres", false, false, true},
		{"auto prod allowed", config.Config{Env: "prod", DBSchemaMode: "auto", DBAutoMigrateAllowDestructive: true}, "postgres", false, true, false},
		{"unknown mode", config.Config{DBSchemaMode: "magic"}, "postgres", false, false, true},
		{"sqlite always auto", config.Config{DBSchemaMode: "sql"}, "sqlite", false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			runSQL, runAuto, err := schemaPolicy(&cfg, tt.dialect)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, runSQL)
			assert.Equal(t, tt.wantAuto, runAuto)
		})
	}
}

func TestApplySchema_SQLiteAutoMigrates(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, configurePool(db, &config.Config{}))

	require.NoError(t, ApplySchema(context.Background(), db, &config.Config{Env: "test"}))

	for _, table := range []string{"users", "follows", "tweets", "images", "likes"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	status, err := GetSchemaStatus(context.Background(), db, &config.Config{Env: "test"})
	require.NoError(t, err)
	assert.False(t, status.WillRunSQL)
	assert.True(t, status.WillRunAutoMigrate)
	assert.Equal(t, "sqlite", status.Dialect)
	assert.Equal(t, "auto", status.Plan(), "sqlite ignores the sql mode")
}

func TestSchemaStatus_Plan(t *testing.T) {
	assert.Equal(t, "sql+auto", (&SchemaStatus{WillRunSQL: true, WillRunAutoMigrate: true}).Plan())
	assert.Equal(t, "sql", (&SchemaStatus{WillRunSQL: true}).Plan())
	assert.Equal(t, "auto", (&SchemaStatus{WillRunAutoMigrate: true}).Plan())
	assert.Equal(t, "none", (&SchemaStatus{}).Plan())
}

func TestEmbeddedMigrations(t *testing.T) {
	all := GetMigrations()
	require.NotEmpty(t, all)
	assert.Equal(t, 1, all[0].Version)
	assert.Equal(t, "init_schema", all[0].Name)
	assert.Contains(t, all[0].UpScript, "CREATE TABLE IF NOT EXISTS follows")
	assert.Contains(t, all[0].DownScript, "DROP TABLE IF EXISTS likes")
	assert.Equal(t, "000001_init_schema", all[0].String())
	assert.Nil(t, GetMigrationByVersion(999))
}

func TestLoadMigrations(t *testing.T) {
	t.Run("sorted pairs", func(t *testing.T) {
		fsys := fstest.MapFS{
			"migrations/000002_second.up.sql":   {Data: []byte("B")},
			"migrations/000002_second.down.sql": {Data: []byte("b")},
			"migrations/000001_first.up.sql":    {Data: []byte("A")},
			"migrations/000001_first.down.sql":  {Data: []byte("a")},
		}
		got, err := LoadMigrations(fsys)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "first", got[0].Name)
		assert.Equal(t, "b", got[1].DownScript)
	})

	t.Run("missing down script", func(t *testing.T) {
		fsys := fstest.MapFS{
			"migrations/000001_first.up.sql": {Data: []byte("A")},
		}
		_, err := LoadMigrations(fsys)
		assert.Error(t, err)
	})

	t.Run("bad version", func(t *testing.T) {
		fsys := fstest.MapFS{
			"migrations/abc_first.up.sql":   {Data: []byte("A")},
			"migrations/abc_first.down.sql": {Data: []byte("a")},
		}
		_, err := LoadMigrations(fsys)
		assert.Error(t, err)
	})
}

type migrationStoreStub struct {
	applied  []int
	ran      []int
	reverted []int
	failOn   int
}

func (s *migrationStoreStub) GetAppliedMigrations(context.Context) ([]int, error) {
	return s.applied, nil
}

func (s *migrationStoreStub) ApplyMigration(_ context.Context, m Migration) error {
	if m.Version == s.failOn {
		return errors.New("boom")
	}
	s.ran = append(s.ran, m.Version)
	return nil
}

func (s *migrationStoreStub) RevertMigration(_ context.Context, m Migration) error {
	s.reverted = append(s.reverted, m.Version)
	return nil
}

func TestApplyPending(t *testing.T) {
	registered := []Migration{{Version: 1, Name: "a"}, {Version: 2, Name: "b"}, {Version: 3, Name: "c"}}

	t.Run("skips applied", func(t *testing.T) {
		store := &migrationStoreStub{applied: []int{1}}
		require.NoError(t, applyPending(context.Background(), store, registered))
		assert.Equal(t, []int{2, 3}, store.ran)
	})

	t.Run("stops on failure", func(t *testing.T) {
		store := &migrationStoreStub{failOn: 2}
		assert.Error(t, applyPending(context.Background(), store, registered))
		assert.Equal(t, []int{1}, store.ran)
	})

	t.Run("unknown applied version", func(t *testing.T) {
		store := &migrationStoreStub{applied: []int{1, 42}}
		err := applyPending(context.Background(), store, registered)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "000042")
		assert.Empty(t, store.ran)
	})
}

func TestRollback(t *testing.T) {
	store := &migrationStoreStub{applied: []int{1}}
	require.NoError(t, rollback(context.Background(), store, 1))
	assert.Equal(t, []int{1}, store.reverted)

	assert.Error(t, rollback(context.Background(), &migrationStoreStub{}, 1), "not applied")
	assert.Error(t, rollback(context.Background(), store, 77), "unknown version")
}
