package directory

import (
	"context"
	"errors"
)

var ErrTenantNotFound = errors.New("tenant not found")

// Tenant es la metadata pública de una organización para mostrar en solicitudes y búsquedas.
type Tenant struct {
	ID           string
	Name         string
	ContactEmail string
	Country      string
}

// Directory resuelve tenants. Search puede devolver un superset: el matching fino lo hace el dominio.
type Directory interface {
	Get(ctx context.Context, tenantID string) (Tenant, error)
	Search(ctx context.Context, query string) ([]Tenant, error)
}
