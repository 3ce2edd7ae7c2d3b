package session_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"hostel-client/internal/session"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("success set get clear", func(t *testing.T) {
		storage := session.NewMemoryStorage()

		_, ok, err := storage.Get(ctx, "token")
		assert.NoError(t, err)
		assert.False(t, ok)

		assert.NoError(t, storage.Set(ctx, "token", "student-token"))

		value, ok, err := storage.Get(ctx, "token")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "student-token", value)

		assert.NoError(t, storage.Clear(ctx))

		_, ok, err = storage.Get(ctx, "token")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("success overwrite keeps latest", func(t *testing.T) {
		storage := session.NewMemoryStorage()

		assert.NoError(t, storage.Set(ctx, "role", "student"))
		assert.NoError(t, storage.Set(ctx, "role", "warden"))

		value, ok, err := storage.Get(ctx, "role")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "warden", value)
	})
}

func TestSQLiteStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("success round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.db")
		storage, err := session.NewSQLiteStorage(path)
		assert.NoError(t, err)

		assert.NoError(t, storage.Set(ctx, "token", "warden-token"))
		assert.NoError(t, storage.Set(ctx, "role", "warden"))

		value, ok, err := storage.Get(ctx, "token")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "warden-token", value)
	})

	t.Run("success upsert replaces value", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.db")
		storage, err := session.NewSQLiteStorage(path)
		assert.NoError(t, err)

		assert.NoError(t, storage.Set(ctx, "token", "student-token"))
		assert.NoError(t, storage.Set(ctx, "token", "warden-token"))

		value, _, err := storage.Get(ctx, "token")
		assert.NoError(t, err)
		assert.Equal(t, "warden-token", value)
	})

	t.Run("success survives reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.db")

		first, err := session.NewSQLiteStorage(path)
		assert.NoError(t, err)
		assert.NoError(t, first.Set(ctx, "role", "student"))

		second, err := session.NewSQLiteStorage(path)
		assert.NoError(t, err)

		value, ok, err := second.Get(ctx, "role")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "student", value)
	})

	t.Run("success clear removes everything", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.db")
		storage, err := session.NewSQLiteStorage(path)
		assert.NoError(t, err)

		assert.NoError(t, storage.Set(ctx, "token", "student-token"))
		assert.NoError(t, storage.Set(ctx, "role", "student"))
		assert.NoError(t, storage.Clear(ctx))

		_, ok, err := storage.Get(ctx, "token")
		assert.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = storage.Get(ctx, "role")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("negative missing key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.db")
		storage, err := session.NewSQLiteStorage(path)
		assert.NoError(t, err)

		value, ok, err := storage.Get(ctx, "warden")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})
}
