package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"
)

func TestRedis_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "cache:k")).
		Return(mock.Result(mock.RedisString("v")))

	r := NewRedisForTest(c, "cache:")
	got, ok := r.Get(context.Background(), "k")
	if !ok || !bytes.Equal(got, []byte("v")) {
		t.Errorf("got (%q, %v), want (v, true)", got, ok)
	}
}

func TestRedis_GetMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "cache:k")).
		Return(mock.Result(mock.RedisNil()))

	r := NewRedisForTest(c, "cache:")
	if _, ok := r.Get(context.Background(), "k"); ok {
		t.Error("nil reply must be a miss")
	}
}

func TestRedis_GetErrorIsMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "cache:k")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	r := NewRedisForTest(c, "cache:")
	if _, ok := r.Get(context.Background(), "k"); ok {
		t.Error("redis failure must degrade to a miss")
	}
}

func TestRedis_SetWithExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "cache:k", "v", "EX", "300")).
		Return(mock.Result(mock.RedisString("OK")))

	r := NewRedisForTest(c, "cache:")
	r.Set(context.Background(), "k", []byte("v"), 5*time.Minute)
}

func TestRedis_SetErrorIsSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "cache:k", "v", "EX", "300")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	// Best effort: must not panic or surface the error.
	r := NewRedisForTest(c, "cache:")
	r.Set(context.Background(), "k", []byte("v"), 5*time.Minute)
}

func TestRedis_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "cache:k")).
		Return(mock.Result(mock.RedisInt64(1)))

	r := NewRedisForTest(c, "cache:")
	r.Delete(context.Background(), "k")
}
