// Package memory implementa los repositorios en memoria (modo dev y tests de router).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/platform/apperr"
)

type animalRepo struct {
	mu     sync.RWMutex
	byID   map[string]animals.Animal
	byGAID map[string]string
}

func NewAnimalRepo() animals.Repository {
	return &animalRepo{
		byID:   make(map[string]animals.Animal),
		byGAID: make(map[string]string),
	}
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return apperr.Validation("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return apperr.Conflict("animal already exists")
	}
	if _, taken := r.byGAID[a.GAID]; taken {
		return apperr.Conflict("gaid already assigned")
	}
	r.byID[a.ID] = cloneAnimal(a)
	r.byGAID[a.GAID] = a.ID
	return nil
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[a.ID]
	if !exists {
		return apperr.NotFound("animal %s not found", a.ID)
	}
	// El GAID es inmutable.
	a.GAID = cur.GAID
	r.byID[a.ID] = cloneAnimal(a)
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, apperr.NotFound("animal %s not found", id)
	}
	return cloneAnimal(a), nil
}

func (r *animalRepo) GetByGAID(ctx context.Context, gaid string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byGAID[gaid]
	if !ok {
		return animals.Animal{}, apperr.NotFound("gaid not found")
	}
	return cloneAnimal(r.byID[id]), nil
}

func (r *animalRepo) FindByRegistry(ctx context.Context, registryID, number string) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if a.RegistryID == registryID && a.RegistryNumber == number {
			out = append(out, cloneAnimal(a))
		}
	}
	sortByCreated(out)
	return out, nil
}

func (r *animalRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tenants := make(map[string]struct{}, len(f.TenantIDs))
	for _, t := range f.TenantIDs {
		tenants[t] = struct{}{}
	}

	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if len(tenants) > 0 {
			if _, ok := tenants[a.TenantID]; !ok {
				continue
			}
		}
		if f.Sex != "" && a.Sex != f.Sex {
			continue
		}
		if f.Species != "" && !strings.EqualFold(a.Species, f.Species) {
			continue
		}
		out = append(out, cloneAnimal(a))
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sortByCreated(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func sortByCreated(out []animals.Animal) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
}

// cloneAnimal evita que quien llama comparta punteros/slices con el store.
func cloneAnimal(a animals.Animal) animals.Animal {
	if a.BirthDate != nil {
		bd := *a.BirthDate
		a.BirthDate = &bd
	}
	if a.SireID != nil {
		s := *a.SireID
		a.SireID = &s
	}
	if a.DamID != nil {
		d := *a.DamID
		a.DamID = &d
	}
	a.Titles = append([]animals.Title(nil), a.Titles...)
	a.Competitions = append([]animals.Competition(nil), a.Competitions...)
	return a
}
