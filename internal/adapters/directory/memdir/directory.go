// Package memdir es un directorio de tenants en memoria, sembrado al arrancar.
package memdir

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pedigree-registry/internal/ports/directory"
)

type Directory struct {
	mu      sync.RWMutex
	tenants map[string]directory.Tenant
}

func New(seed ...directory.Tenant) *Directory {
	d := &Directory{tenants: make(map[string]directory.Tenant)}
	for _, t := range seed {
		d.Put(t)
	}
	return d
}

// Put agrega o reemplaza un tenant.
func (d *Directory) Put(t directory.Tenant) {
	t.ID = strings.TrimSpace(t.ID)
	if t.ID == "" {
		return
	}
	d.mu.Lock()
	d.tenants[t.ID] = t
	d.mu.Unlock()
}

func (d *Directory) Get(_ context.Context, tenantID string) (directory.Tenant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	t, ok := d.tenants[strings.TrimSpace(tenantID)]
	if !ok {
		return directory.Tenant{}, directory.ErrTenantNotFound
	}
	return t, nil
}

// Search devuelve todos los tenants; el puntaje fuzzy lo calcula el dominio.
func (d *Directory) Search(_ context.Context, _ string) ([]directory.Tenant, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]directory.Tenant, 0, len(d.tenants))
	for _, t := range d.tenants {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
