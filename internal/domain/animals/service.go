package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pedigree-registry/internal/platform/apperr"
	"pedigree-registry/internal/platform/logger"
	"pedigree-registry/internal/ports/cache"
	"pedigree-registry/internal/ports/graphlock"
)

const (
	gaidAttempts = 5

	// Tope duro del walk de ancestros para validar aciclicidad.
	maxAncestryDepth = 64
)

// ExternalEdges expone las aristas cross-tenant ACTIVE sin importar el paquete links (rompe ciclos).
type ExternalEdges interface {
	ActiveParent(ctx context.Context, childID string, pt ParentType) (string, bool, error)
}

type Service struct {
	repo   Repository
	now    func() time.Time
	log    logger.Logger
	edges  ExternalEdges
	purger cache.Purger
	lock   graphlock.Locker
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		now:  time.Now,
		log:  log.With(map[string]any{"component": "animals"}),
	}
}

func (s *Service) SetExternalEdges(e ExternalEdges) { s.edges = e }
func (s *Service) SetPurger(p cache.Purger)         { s.purger = p }

// SetEdgeLock comparte el lock de aristas con links; sin lock no hay serialización.
func (s *Service) SetEdgeLock(l graphlock.Locker) { s.lock = l }

// LockEdges toma el lock de aristas si hay uno configurado.
func (s *Service) LockEdges(ctx context.Context) (func(), error) {
	if s.lock == nil {
		return func() {}, nil
	}
	return s.lock.Lock(ctx)
}

type CreateInput struct {
	Name            string
	Species         string
	Breed           string
	Sex             string
	BirthDate       *time.Time
	PhotoURL        string
	RegistryID      string
	RegistryNumber  string
	BreederName     string
	Titles          []Title
	Competitions    []Competition
	HealthSummary   string
	GeneticsSummary string
}

func (s *Service) Create(ctx context.Context, tenantID string, in CreateInput) (Animal, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return Animal{}, apperr.Validation("tenant id required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return Animal{}, apperr.Validation("name required")
	}
	sex, ok := ParseSex(in.Sex)
	if !ok {
		return Animal{}, apperr.Validation("sex must be MALE or FEMALE")
	}
	if in.BirthDate != nil && in.BirthDate.After(s.now()) {
		return Animal{}, apperr.Validation("birth date in the future")
	}

	now := s.now()
	a := Animal{
		ID:              uuid.NewString(),
		TenantID:        tenantID,
		Name:            strings.TrimSpace(in.Name),
		Species:         strings.ToLower(strings.TrimSpace(in.Species)),
		Breed:           strings.TrimSpace(in.Breed),
		Sex:             sex,
		BirthDate:       in.BirthDate,
		PhotoURL:        strings.TrimSpace(in.PhotoURL),
		RegistryID:      NormalizeRegistryID(in.RegistryID),
		RegistryNumber:  NormalizeRegistryNumber(in.RegistryNumber),
		BreederName:     strings.TrimSpace(in.BreederName),
		Titles:          in.Titles,
		Competitions:    in.Competitions,
		HealthSummary:   strings.TrimSpace(in.HealthSummary),
		GeneticsSummary: strings.TrimSpace(in.GeneticsSummary),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// El GAID nunca se reutiliza: ante colisión se genera otro.
	for attempt := 0; ; attempt++ {
		gaid, err := NewGAID()
		if err != nil {
			return Animal{}, err
		}
		a.GAID = gaid

		err = s.repo.Create(ctx, a)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, apperr.ErrConflict) || attempt+1 >= gaidAttempts {
			return Animal{}, err
		}
		s.log.Warn("gaid collision, regenerating", map[string]any{"attempt": attempt + 1})
	}
}

// GetByID no valida ownership: lo usan resolver y matching, que aplican privacidad aparte.
func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, apperr.Validation("animal id required")
	}
	return s.repo.GetByID(ctx, id)
}

// Get devuelve el registro sólo a su tenant dueño.
func (s *Service) Get(ctx context.Context, tenantID, id string) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}
	if a.TenantID != tenantID {
		return Animal{}, apperr.PermissionDenied("animal %s belongs to another tenant", id)
	}
	return a, nil
}

func (s *Service) OwnerOf(ctx context.Context, id string) (string, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return a.TenantID, nil
}

func (s *Service) GetByGAID(ctx context.Context, gaid string) (Animal, error) {
	gaid = NormalizeGAID(gaid)
	if !ValidGAID(gaid) {
		return Animal{}, apperr.Validation("malformed GAID")
	}
	return s.repo.GetByGAID(ctx, gaid)
}

func (s *Service) FindByRegistry(ctx context.Context, registryID, number string) ([]Animal, error) {
	registryID = NormalizeRegistryID(registryID)
	number = NormalizeRegistryNumber(number)
	if registryID == "" || number == "" {
		return nil, apperr.Validation("registry id and number required")
	}
	return s.repo.FindByRegistry(ctx, registryID, number)
}

func (s *Service) ListByTenant(ctx context.Context, tenantID string, f Filter) ([]Animal, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, apperr.Validation("tenant id required")
	}
	f.TenantIDs = []string{tenantID}
	return s.repo.List(ctx, f)
}

func (s *Service) Search(ctx context.Context, f Filter) ([]Animal, error) {
	return s.repo.List(ctx, f)
}

// ParentsInput: nil = no tocar, "" = limpiar el slot.
type ParentsInput struct {
	SireID *string
	DamID  *string
}

// SetParents sólo maneja aristas locales; las cross-tenant pasan por links.
func (s *Service) SetParents(ctx context.Context, tenantID, animalID string, in ParentsInput) (Animal, error) {
	unlock, err := s.LockEdges(ctx)
	if err != nil {
		return Animal{}, err
	}
	defer unlock()

	a, err := s.Get(ctx, tenantID, animalID)
	if err != nil {
		return Animal{}, err
	}

	if in.SireID != nil {
		id, err := s.validateParent(ctx, a, ParentSire, *in.SireID)
		if err != nil {
			return Animal{}, err
		}
		a.SireID = id
	}
	if in.DamID != nil {
		id, err := s.validateParent(ctx, a, ParentDam, *in.DamID)
		if err != nil {
			return Animal{}, err
		}
		a.DamID = id
	}
	if a.SireID != nil && a.DamID != nil && *a.SireID == *a.DamID {
		return Animal{}, apperr.Validation("sire and dam must be different animals")
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}

	s.purge(ctx)
	return a, nil
}

func (s *Service) validateParent(ctx context.Context, child Animal, pt ParentType, rawID string) (*string, error) {
	parentID := strings.TrimSpace(rawID)
	if parentID == "" {
		return nil, nil
	}
	if parentID == child.ID {
		return nil, apperr.Conflict("animal cannot be its own %s", strings.ToLower(string(pt)))
	}

	parent, err := s.repo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.TenantID != child.TenantID {
		return nil, apperr.Validation("local %s must belong to the same tenant; use a link request", strings.ToLower(string(pt)))
	}
	if parent.Sex != pt.RequiredSex() {
		return nil, apperr.Validation("%s must be %s", strings.ToLower(string(pt)), pt.RequiredSex())
	}

	if s.edges != nil {
		if _, ok, err := s.edges.ActiveParent(ctx, child.ID, pt); err != nil {
			return nil, err
		} else if ok {
			return nil, apperr.Conflict("animal already has an active cross-tenant %s; revoke it first", strings.ToLower(string(pt)))
		}
	}

	cyclic, err := s.IsAncestor(ctx, child.ID, parent.ID)
	if err != nil {
		return nil, err
	}
	if cyclic {
		return nil, apperr.Conflict("assigning %s as %s would make the animal its own ancestor", parent.ID, strings.ToLower(string(pt)))
	}

	return &parentID, nil
}

// IsAncestor responde si candidateID aparece entre los ancestros de ofID,
// siguiendo aristas locales y cross-tenant ACTIVE. Acotado en profundidad.
func (s *Service) IsAncestor(ctx context.Context, candidateID, ofID string) (bool, error) {
	visited := map[string]struct{}{ofID: {}}
	frontier := []string{ofID}

	for depth := 0; depth < maxAncestryDepth && len(frontier) > 0; depth++ {
		next := make([]string, 0, len(frontier)*2)
		for _, id := range frontier {
			parents, err := s.parentsOf(ctx, id)
			if err != nil {
				return false, err
			}
			for _, p := range parents {
				if p == candidateID {
					return true, nil
				}
				if _, seen := visited[p]; seen {
					continue
				}
				visited[p] = struct{}{}
				next = append(next, p)
			}
		}
		frontier = next
	}
	return false, nil
}

func (s *Service) parentsOf(ctx context.Context, id string) ([]string, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]string, 0, 2)
	for _, pt := range []ParentType{ParentSire, ParentDam} {
		if pid, ok := a.LocalParent(pt); ok {
			out = append(out, pid)
			continue
		}
		if s.edges == nil {
			continue
		}
		pid, ok, err := s.edges.ActiveParent(ctx, id, pt)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, pid)
		}
	}
	return out, nil
}

func (s *Service) purge(ctx context.Context) {
	if s.purger == nil {
		return
	}
	if err := s.purger.Purge(ctx); err != nil {
		s.log.Error("coi cache purge failed", map[string]any{"err": err})
	}
}
