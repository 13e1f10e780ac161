package privacy

import (
	"context"
	"errors"
	"strings"
	"time"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/platform/apperr"
	"pedigree-registry/internal/platform/logger"
	"pedigree-registry/internal/ports/cache"
)

// AnimalLookup es lo mínimo que privacy necesita del store de animales.
type AnimalLookup interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
}

type Service struct {
	repo    Repository
	animals AnimalLookup
	now     func() time.Time
	log     logger.Logger
	purger  cache.Purger
}

func NewService(repo Repository, lookup AnimalLookup, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		animals: lookup,
		now:     time.Now,
		log:     log.With(map[string]any{"component": "privacy"}),
	}
}

func (s *Service) SetPurger(p cache.Purger) { s.purger = p }

// Settings sin chequeo de ownership (uso interno: resolver, matching, links).
func (s *Service) Settings(ctx context.Context, animalID string) (Settings, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return Settings{}, apperr.Validation("animal id required")
	}
	st, err := s.repo.Get(ctx, animalID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Defaults(animalID), nil
		}
		return Settings{}, err
	}
	return st, nil
}

func (s *Service) Discoverable(ctx context.Context, animalID string) (bool, error) {
	st, err := s.Settings(ctx, animalID)
	if err != nil {
		return false, err
	}
	return st.AllowCrossTenantMatching, nil
}

// Get: sólo el tenant dueño puede leer sus settings.
func (s *Service) Get(ctx context.Context, tenantID, animalID string) (Settings, error) {
	if err := s.requireOwner(ctx, tenantID, animalID); err != nil {
		return Settings{}, err
	}
	return s.Settings(ctx, animalID)
}

func (s *Service) Update(ctx context.Context, tenantID, animalID string, p Patch) (Settings, error) {
	if err := s.requireOwner(ctx, tenantID, animalID); err != nil {
		return Settings{}, err
	}
	if p.Empty() {
		return Settings{}, apperr.Validation("nothing to update")
	}

	current, err := s.Settings(ctx, animalID)
	if err != nil {
		return Settings{}, err
	}

	next := p.Apply(current)
	next.AnimalID = strings.TrimSpace(animalID)
	next.UpdatedAt = s.now()

	if err := s.repo.Upsert(ctx, next); err != nil {
		return Settings{}, err
	}

	if current.AllowCrossTenantMatching != next.AllowCrossTenantMatching {
		s.log.Info("cross-tenant matching toggled", map[string]any{
			"animal_id": next.AnimalID,
			"enabled":   next.AllowCrossTenantMatching,
		})
	}

	if s.purger != nil {
		if err := s.purger.Purge(ctx); err != nil {
			s.log.Error("coi cache purge failed", map[string]any{"err": err})
		}
	}
	return next, nil
}

// View resuelve settings y redacta el animal para viewerTenantID.
func (s *Service) View(ctx context.Context, a animals.Animal, viewerTenantID string) (View, error) {
	if a.TenantID == viewerTenantID {
		return Redact(a, Settings{}, viewerTenantID), nil
	}
	st, err := s.Settings(ctx, a.ID)
	if err != nil {
		return View{}, err
	}
	return Redact(a, st, viewerTenantID), nil
}

func (s *Service) requireOwner(ctx context.Context, tenantID, animalID string) error {
	a, err := s.animals.GetByID(ctx, strings.TrimSpace(animalID))
	if err != nil {
		return err
	}
	if a.TenantID != strings.TrimSpace(tenantID) {
		return apperr.PermissionDenied("only the owning tenant can manage privacy settings")
	}
	return nil
}
