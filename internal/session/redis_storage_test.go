package session_test

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"hostel-client/internal/session"
)

func TestRedisStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("success get existing key", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("hostel:session:token").SetVal("student-token")
		storage := session.NewRedisStorage(rdb, "")

		value, ok, err := storage.Get(ctx, "token")

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "student-token", value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success missing key is not an error", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("hostel:session:token").RedisNil()
		storage := session.NewRedisStorage(rdb, "")

		value, ok, err := storage.Get(ctx, "token")

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success set uses prefix", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectSet("terminal-7:role", "warden", 0).SetVal("OK")
		storage := session.NewRedisStorage(rdb, "terminal-7:")

		assert.NoError(t, storage.Set(ctx, "role", "warden"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success clear deletes all session keys", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectDel(
			"hostel:session:token",
			"hostel:session:role",
			"hostel:session:student",
			"hostel:session:warden",
		).SetVal(4)
		storage := session.NewRedisStorage(rdb, "")

		assert.NoError(t, storage.Clear(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative backend failure propagates", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet("hostel:session:token").SetErr(redis.ErrClosed)
		storage := session.NewRedisStorage(rdb, "")

		_, ok, err := storage.Get(ctx, "token")

		assert.Error(t, err)
		assert.False(t, ok)
	})
}
