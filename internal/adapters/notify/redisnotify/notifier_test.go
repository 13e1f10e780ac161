package redisnotify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"pedigree-registry/internal/ports/notify"
)

type published struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	sent []published
	err  error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message any) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "publish", channel, message)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.sent = append(f.sent, published{channel: channel, payload: message.([]byte)})
	cmd.SetVal(1)
	return cmd
}

func TestNotify_PublishesTenantAndGlobal(t *testing.T) {
	pub := &fakePublisher{}
	n := New(pub, "")

	err := n.Notify(context.Background(), notify.Notification{
		Kind:              notify.KindLinkRequested,
		RecipientTenantID: "kennel-b",
		SubjectID:         "req-1",
		OccurredAt:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(pub.sent) != 2 {
		t.Fatalf("published %d messages, want 2", len(pub.sent))
	}
	if pub.sent[0].channel != "pedigree:notifications:kennel-b" || pub.sent[1].channel != DefaultChannel {
		t.Fatalf("channels = %s, %s", pub.sent[0].channel, pub.sent[1].channel)
	}

	var got notify.Notification
	if err := json.Unmarshal(pub.sent[0].payload, &got); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if got.Kind != notify.KindLinkRequested || got.SubjectID != "req-1" {
		t.Fatalf("payload = %+v", got)
	}
}

func TestNotify_PublishError(t *testing.T) {
	boom := errors.New("down")
	n := New(&fakePublisher{err: boom}, "x")

	err := n.Notify(context.Background(), notify.Notification{Kind: notify.KindLinkRevoked, RecipientTenantID: "t"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected publish error, got %v", err)
	}
}
