package animals

import "context"

// Repository es el AnimalRecordStore. Create devuelve un error de tipo conflict
// si el GAID ya existe; GetBy* devuelven not found.
type Repository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	GetByGAID(ctx context.Context, gaid string) (Animal, error)
	FindByRegistry(ctx context.Context, registryID, number string) ([]Animal, error)
	List(ctx context.Context, f Filter) ([]Animal, error)
}
