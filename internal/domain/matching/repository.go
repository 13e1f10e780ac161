package matching

import (
	"context"
	"time"
)

// CodeRepository guarda exchange codes por hash.
// Consume debe ser condicional: sólo marca si no estaba consumido y no expiró;
// si no, devuelve un error de tipo expired.
type CodeRepository interface {
	Create(ctx context.Context, c ExchangeCode) error
	GetByHash(ctx context.Context, hash string) (ExchangeCode, error)
	Consume(ctx context.Context, id, consumerTenantID string, at time.Time) (ExchangeCode, error)
	ListByAnimal(ctx context.Context, animalID string) ([]ExchangeCode, error)
}
