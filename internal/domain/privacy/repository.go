package privacy

import "context"

// Repository devuelve not found cuando el animal nunca tuvo settings propios.
type Repository interface {
	Get(ctx context.Context, animalID string) (Settings, error)
	Upsert(ctx context.Context, s Settings) error
}
