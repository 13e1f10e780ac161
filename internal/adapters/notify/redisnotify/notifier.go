// Package redisnotify publica notificaciones en Redis pub/sub.
// Cada notificación sale por el canal del tenant destinatario y por el canal global.
package redisnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"pedigree-registry/internal/ports/notify"
)

const DefaultChannel = "pedigree:notifications"

// Publisher es el subconjunto de *redis.Client que usamos.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

type Notifier struct {
	pub     Publisher
	channel string
}

func New(pub Publisher, channel string) *Notifier {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = DefaultChannel
	}
	return &Notifier{pub: pub, channel: channel}
}

// TenantChannel es el canal al que se suscribe un tenant.
func (n *Notifier) TenantChannel(tenantID string) string {
	return n.channel + ":" + tenantID
}

func (n *Notifier) Notify(ctx context.Context, msg notify.Notification) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("redisnotify: marshal: %w", err)
	}
	if msg.RecipientTenantID != "" {
		if err := n.pub.Publish(ctx, n.TenantChannel(msg.RecipientTenantID), raw).Err(); err != nil {
			return fmt.Errorf("redisnotify: publish tenant: %w", err)
		}
	}
	if err := n.pub.Publish(ctx, n.channel, raw).Err(); err != nil {
		return fmt.Errorf("redisnotify: publish: %w", err)
	}
	return nil
}
