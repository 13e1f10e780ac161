package pedigree

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/platform/apperr"
	"pedigree-registry/internal/platform/logger"
	"pedigree-registry/internal/ports/cache"
)

const DefaultCacheTTL = 10 * time.Minute

type Service struct {
	resolver *Resolver
	cache    cache.Cache
	bands    RiskBands
	ttl      time.Duration
	log      logger.Logger
}

// NewService: cache puede ser nil (sin cache de COI).
func NewService(resolver *Resolver, c cache.Cache, bands RiskBands, ttl time.Duration, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if bands.Validate() != nil {
		bands = DefaultRiskBands()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Service{resolver: resolver, cache: c, bands: bands, ttl: ttl, log: log}
}

func (s *Service) GetPedigree(ctx context.Context, viewer, animalID string, depth int) (Pedigree, error) {
	return s.resolver.Resolve(ctx, viewer, animalID, depth)
}

// ComputeCOI resuelve el pedigrí con generations de profundidad y calcula el
// COI. El resultado se cachea por (animal, generaciones, viewer).
func (s *Service) ComputeCOI(ctx context.Context, viewer, animalID string, generations int) (COIResult, error) {
	gens, err := s.resolver.Generations(generations)
	if err != nil {
		return COIResult{}, err
	}
	animalID = strings.TrimSpace(animalID)
	key := fmt.Sprintf("coi:%s:%d:%s", animalID, gens, viewer)

	// La versión se toma antes de leer el grafo; un purge posterior descarta el Set.
	ver, cacheable := s.version(ctx)
	if cacheable {
		if res, ok := s.cached(ctx, key); ok {
			return res, nil
		}
	}

	p, err := s.resolver.Resolve(ctx, viewer, animalID, gens)
	if err != nil {
		return COIResult{}, err
	}
	res := ComputeCOI(p.Root, gens, s.bands)
	if cacheable {
		s.store(ctx, ver, key, res)
	}
	return res, nil
}

// ComputeTrialMating calcula el COI de una cría hipotética de sireID x damID.
// Cada progenitor se resuelve como raíz con una generación menos, así la
// ventana queda alineada con la de la cría.
func (s *Service) ComputeTrialMating(ctx context.Context, viewer, sireID, damID string, generations int) (COIResult, error) {
	gens, err := s.resolver.Generations(generations)
	if err != nil {
		return COIResult{}, err
	}
	sireID, damID = strings.TrimSpace(sireID), strings.TrimSpace(damID)
	if sireID == "" || damID == "" {
		return COIResult{}, apperr.Validation("sire_id and dam_id are required")
	}
	if sireID == damID {
		return COIResult{}, apperr.Validation("sire and dam must be different animals")
	}

	key := fmt.Sprintf("coi:trial:%s:%s:%d:%s", sireID, damID, gens, viewer)
	ver, cacheable := s.version(ctx)
	if cacheable {
		if res, ok := s.cached(ctx, key); ok {
			return res, nil
		}
	}

	sire, err := s.parentTree(ctx, viewer, sireID, animals.ParentSire, gens)
	if err != nil {
		return COIResult{}, err
	}
	dam, err := s.parentTree(ctx, viewer, damID, animals.ParentDam, gens)
	if err != nil {
		return COIResult{}, err
	}

	offspring := &Node{Edge: EdgeRoot, Sire: sire, Dam: dam}
	res := ComputeCOI(offspring, gens, s.bands)
	if cacheable {
		s.store(ctx, ver, key, res)
	}
	return res, nil
}

func (s *Service) parentTree(ctx context.Context, viewer, id string, pt animals.ParentType, gens int) (*Node, error) {
	p, err := s.resolver.resolve(ctx, viewer, id, gens-1)
	if err != nil {
		return nil, err
	}
	if p.Root.Sex != pt.RequiredSex() {
		return nil, apperr.Validation("%s must be %s", strings.ToLower(string(pt)), pt.RequiredSex())
	}
	p.Root.Edge = EdgeLocal
	if p.Root.TenantID != viewer {
		p.Root.Edge = EdgeCrossTenant
	}
	return p.Root, nil
}

func (s *Service) version(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	v, err := s.cache.Version(ctx)
	if err != nil {
		s.log.Warn("coi cache version failed", map[string]any{"error": err.Error()})
		return 0, false
	}
	return v, true
}

func (s *Service) cached(ctx context.Context, key string) (COIResult, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("coi cache read failed", map[string]any{"key": key, "error": err.Error()})
		return COIResult{}, false
	}
	if !ok {
		return COIResult{}, false
	}
	var res COIResult
	if err := json.Unmarshal(raw, &res); err != nil {
		s.log.Warn("coi cache entry corrupt", map[string]any{"key": key, "error": err.Error()})
		return COIResult{}, false
	}
	return res, true
}

func (s *Service) store(ctx context.Context, version int64, key string, res COIResult) {
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, version, key, raw, s.ttl); err != nil {
		s.log.Warn("coi cache write failed", map[string]any{"key": key, "error": err.Error()})
	}
}
