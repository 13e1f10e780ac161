// Package lognotify entrega notificaciones al log estructurado. Es el notifier por defecto sin Redis.
package lognotify

import (
	"context"
	"time"

	"pedigree-registry/internal/platform/logger"
	"pedigree-registry/internal/ports/notify"
)

type Notifier struct {
	log logger.Logger
}

func New(log logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{log: log.With(map[string]any{"component": "notify"})}
}

func (n *Notifier) Notify(_ context.Context, msg notify.Notification) error {
	fields := map[string]any{
		"kind":      string(msg.Kind),
		"recipient": msg.RecipientTenantID,
		"subject":   msg.SubjectID,
		"at":        msg.OccurredAt.Format(time.RFC3339),
	}
	for k, v := range msg.Data {
		fields["data."+k] = v
	}
	n.log.Info("notification", fields)
	return nil
}
