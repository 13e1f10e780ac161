package memory

import (
	"context"
	"sync"

	"pedigree-registry/internal/domain/privacy"
	"pedigree-registry/internal/platform/apperr"
)

type privacyRepo struct {
	mu         sync.RWMutex
	byAnimalID map[string]privacy.Settings
}

func NewPrivacyRepo() privacy.Repository {
	return &privacyRepo{byAnimalID: make(map[string]privacy.Settings)}
}

func (r *privacyRepo) Get(ctx context.Context, animalID string) (privacy.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byAnimalID[animalID]
	if !ok {
		return privacy.Settings{}, apperr.NotFound("no settings for animal %s", animalID)
	}
	return s, nil
}

func (r *privacyRepo) Upsert(ctx context.Context, s privacy.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.AnimalID == "" {
		return apperr.Validation("animal id required")
	}
	r.byAnimalID[s.AnimalID] = s
	return nil
}
