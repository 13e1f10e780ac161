package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pedigree-registry/internal/domain/matching"
	"pedigree-registry/internal/platform/apperr"
)

type codeRepo struct {
	mu     sync.Mutex
	byID   map[string]matching.ExchangeCode
	byHash map[string]string
}

func NewCodeRepo() matching.CodeRepository {
	return &codeRepo{
		byID:   make(map[string]matching.ExchangeCode),
		byHash: make(map[string]string),
	}
}

func (r *codeRepo) Create(ctx context.Context, c matching.ExchangeCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" || c.CodeHash == "" {
		return apperr.Validation("code id and hash required")
	}
	if _, exists := r.byHash[c.CodeHash]; exists {
		return apperr.Conflict("exchange code collision")
	}
	r.byID[c.ID] = c
	r.byHash[c.CodeHash] = c.ID
	return nil
}

func (r *codeRepo) GetByHash(ctx context.Context, hash string) (matching.ExchangeCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byHash[hash]
	if !ok {
		return matching.ExchangeCode{}, apperr.NotFound("exchange code not found")
	}
	return r.byID[id], nil
}

// Consume chequea y marca bajo el mismo lock: dos consumos simultáneos no pueden ganar ambos.
func (r *codeRepo) Consume(ctx context.Context, id, consumerTenantID string, at time.Time) (matching.ExchangeCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return matching.ExchangeCode{}, apperr.NotFound("exchange code not found")
	}
	if c.ConsumedAt != nil || !at.Before(c.ExpiresAt) {
		return matching.ExchangeCode{}, apperr.Expired("exchange code no longer valid")
	}
	c.ConsumedAt = &at
	c.ConsumedByTenantID = consumerTenantID
	r.byID[id] = c
	return c, nil
}

func (r *codeRepo) ListByAnimal(ctx context.Context, animalID string) ([]matching.ExchangeCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]matching.ExchangeCode, 0)
	for _, c := range r.byID {
		if c.AnimalID == animalID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
