package cache

import (
	"context"
	"time"
)

// Cache guarda resultados serializados. Purge invalida todo lo previo de una vez.
//
// Version devuelve la generación vigente. Set recibe la generación leída antes
// de calcular el valor: si hubo un Purge en el medio, el valor no queda visible.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Version(ctx context.Context) (int64, error)
	Set(ctx context.Context, version int64, key string, value []byte, ttl time.Duration) error
	Purger
}

// Purger es lo único que necesitan los servicios que mutan aristas o privacidad.
type Purger interface {
	Purge(ctx context.Context) error
}
