package links

import (
	"context"
	"time"

	"pedigree-registry/internal/domain/animals"
)

// Repository persiste requests y links. Los errores siguen la taxonomía de apperr:
// not found para ids inexistentes y conflict cuando falla una condición de estado.
type Repository interface {
	CreateRequest(ctx context.Context, r LinkRequest) error
	GetRequest(ctx context.Context, id string) (LinkRequest, error)
	FindPendingRequest(ctx context.Context, sourceAnimalID string, pt animals.ParentType, targetAnimalID string) (LinkRequest, bool, error)
	ListRequestsByTenant(ctx context.Context, tenantID string, dir Direction) ([]LinkRequest, error)

	// ResolveRequest guarda un estado terminal sólo si la request sigue PENDING.
	ResolveRequest(ctx context.Context, r LinkRequest) error
	// DeleteRequest borra una request PENDING (cancelación del requester).
	DeleteRequest(ctx context.Context, id string) error
	// ExpirePending pasa a EXPIRED toda request PENDING con expiresAt <= now.
	ExpirePending(ctx context.Context, now time.Time) ([]LinkRequest, error)

	// Approve es una única transacción: request PENDING -> APPROVED y alta del link
	// ACTIVE. Si ya existe un ACTIVE para (source, parentType) devuelve conflict.
	Approve(ctx context.Context, r LinkRequest, l CrossTenantLink) error

	GetLink(ctx context.Context, id string) (CrossTenantLink, error)
	GetActiveLink(ctx context.Context, sourceAnimalID string, pt animals.ParentType) (CrossTenantLink, bool, error)
	// ListLinksByAnimal devuelve links donde el animal es hijo o padre.
	ListLinksByAnimal(ctx context.Context, animalID string) ([]CrossTenantLink, error)
	// RevokeLink sólo afecta links ACTIVE; si ya estaba REVOKED devuelve conflict.
	RevokeLink(ctx context.Context, id string, at time.Time, reason, byTenantID string) (CrossTenantLink, error)
}
