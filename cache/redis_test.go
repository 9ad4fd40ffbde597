package cache

import (
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func newMockedCache(t *testing.T, ttl int, prefix string) (*RedisCache, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	t.Cleanup(func() { db.Close() })
	return NewRedisCacheFromClient(db, ttl, prefix), mock
}

func assertExpectations(t *testing.T, mock redismock.ClientMock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet redis expectations: %v", err)
	}
}

func TestRedisCacheGet(t *testing.T) {
	t.Run("hit", func(t *testing.T) {
		cache, mock := newMockedCache(t, 3600, "test:")
		mock.ExpectGet("test:mykey").SetVal("myvalue")

		val, ok := cache.Get("mykey")
		if !ok || val != "myvalue" {
			t.Errorf("expected hit with 'myvalue', got %q (ok=%v)", val, ok)
		}
		assertExpectations(t, mock)
	})

	t.Run("miss", func(t *testing.T) {
		cache, mock := newMockedCache(t, 3600, "test:")
		mock.ExpectGet("test:mykey").RedisNil()

		val, ok := cache.Get("mykey")
		if ok || val != "" {
			t.Errorf("expected miss, got %q (ok=%v)", val, ok)
		}
		assertExpectations(t, mock)
	})

	t.Run("connection error reads as miss", func(t *testing.T) {
		cache, mock := newMockedCache(t, 3600, "test:")
		mock.ExpectGet("test:mykey").SetErr(redisDownErr{})

		val, ok := cache.Get("mykey")
		if ok || val != "" {
			t.Errorf("connection error should degrade to a miss, got %q (ok=%v)", val, ok)
		}
	})
}

type redisDownErr struct{}

func (redisDownErr) Error() string { return "connection refused" }

func TestRedisCacheSet(t *testing.T) {
	t.Run("with ttl", func(t *testing.T) {
		cache, mock := newMockedCache(t, 3600, "test:")
		mock.ExpectSet("test:mykey", "myvalue", 3600*time.Second).SetVal("OK")

		if err := cache.Set("mykey", "myvalue"); err != nil {
			t.Errorf("Set failed: %v", err)
		}
		assertExpectations(t, mock)
	})

	t.Run("without ttl", func(t *testing.T) {
		cache, mock := newMockedCache(t, 0, "test:")
		mock.ExpectSet("test:mykey", "myvalue", 0).SetVal("OK")

		if err := cache.Set("mykey", "myvalue"); err != nil {
			t.Errorf("Set failed: %v", err)
		}
		assertExpectations(t, mock)
	})
}

func TestRedisCacheDefaultKeyPrefix(t *testing.T) {
	cache, mock := newMockedCache(t, 3600, "")
	mock.ExpectGet("translio:hash123").SetVal("translated")

	val, ok := cache.Get("hash123")
	if !ok || val != "translated" {
		t.Errorf("expected 'translated' under the default prefix, got %q (ok=%v)", val, ok)
	}
	assertExpectations(t, mock)
}

func TestRedisCachePing(t *testing.T) {
	cache, mock := newMockedCache(t, 3600, "test:")
	mock.ExpectPing().SetVal("PONG")

	if err := cache.Ping(); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
	assertExpectations(t, mock)
}

func TestRedisCacheClose(t *testing.T) {
	db, _ := redismock.NewClientMock()
	cache := NewRedisCacheFromClient(db, 3600, "test:")

	if err := cache.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
