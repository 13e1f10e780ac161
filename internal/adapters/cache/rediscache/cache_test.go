package rediscache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis guarda strings en un map; suficiente para GET/SET/INCR.
type fakeRedis struct {
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	v, ok := f.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "incr", key)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	cmd.SetVal(n)
	return cmd
}

func TestCache_GetSetPurge(t *testing.T) {
	ctx := context.Background()
	r := newFakeRedis()
	c := New(r, "")

	if _, ok, err := c.Get(ctx, "coi:a"); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	v, err := c.Version(ctx)
	if err != nil || v != 0 {
		t.Fatalf("version = %d, %v", v, err)
	}
	if err := c.Set(ctx, v, "coi:a", []byte(`{"x":1}`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if r.ttls["pedigree:cache:0:coi:a"] != time.Minute {
		t.Fatalf("ttl not forwarded: %+v", r.ttls)
	}

	got, ok, err := c.Get(ctx, "coi:a")
	if err != nil || !ok || string(got) != `{"x":1}` {
		t.Fatalf("get = %q ok=%v err=%v", got, ok, err)
	}

	if err := c.Purge(ctx); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "coi:a"); ok {
		t.Fatalf("entry should be unreachable after purge")
	}
}

func TestCache_Errors(t *testing.T) {
	ctx := context.Background()
	r := newFakeRedis()
	r.err = errors.New("conn refused")
	c := New(r, "x")

	if _, _, err := c.Get(ctx, "k"); err == nil {
		t.Fatalf("expected get error")
	}
	if _, err := c.Version(ctx); err == nil {
		t.Fatalf("expected version error")
	}
	if err := c.Set(ctx, 0, "k", []byte("v"), 0); err == nil {
		t.Fatalf("expected set error")
	}
	if err := c.Purge(ctx); err == nil {
		t.Fatalf("expected purge error")
	}
}

func TestCache_SetUnderOldEpochIsUnreachable(t *testing.T) {
	ctx := context.Background()
	r := newFakeRedis()
	c := New(r, "")

	v, _ := c.Version(ctx)
	if err := c.Purge(ctx); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if err := c.Set(ctx, v, "coi:a", []byte("viejo"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := r.data["pedigree:cache:0:coi:a"]; !ok {
		t.Fatalf("write should land under the epoch read before purge: %+v", r.data)
	}
	if _, ok, _ := c.Get(ctx, "coi:a"); ok {
		t.Fatalf("value from old epoch must not be served")
	}
}
