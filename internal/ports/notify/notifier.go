package notify

import (
	"context"
	"time"
)

type Kind string

const (
	KindLinkRequested Kind = "link_request.created"
	KindLinkApproved  Kind = "link_request.approved"
	KindLinkDenied    Kind = "link_request.denied"
	KindLinkRevoked   Kind = "link.revoked"
)

type Notification struct {
	Kind              Kind              `json:"kind"`
	RecipientTenantID string            `json:"recipient_tenant_id"`
	SubjectID         string            `json:"subject_id"`
	Data              map[string]string `json:"data,omitempty"`
	OccurredAt        time.Time         `json:"occurred_at"`
}

// Notifier entrega notificaciones; el mecanismo (email, push, pub/sub) queda fuera del dominio.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
