package matching

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/domain/privacy"
	"pedigree-registry/internal/platform/apperr"
	"pedigree-registry/internal/platform/logger"
	"pedigree-registry/internal/ports/directory"
)

const (
	DefaultCodeTTL = 14 * 24 * time.Hour
	maxCodeTTL     = 90 * 24 * time.Hour

	defaultBreederLimit = 20
	codeAttempts        = 3
)

type AnimalFinder interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
	GetByGAID(ctx context.Context, gaid string) (animals.Animal, error)
	FindByRegistry(ctx context.Context, registryID, number string) ([]animals.Animal, error)
	Search(ctx context.Context, f animals.Filter) ([]animals.Animal, error)
}

type SettingsReader interface {
	Settings(ctx context.Context, animalID string) (privacy.Settings, error)
}

type Service struct {
	animals  AnimalFinder
	settings SettingsReader
	codes    CodeRepository
	dir      directory.Directory

	now     func() time.Time
	log     logger.Logger
	codeTTL time.Duration
}

func NewService(finder AnimalFinder, settings SettingsReader, codes CodeRepository, dir directory.Directory, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		animals:  finder,
		settings: settings,
		codes:    codes,
		dir:      dir,
		now:      time.Now,
		log:      log.With(map[string]any{"component": "matching"}),
		codeTTL:  DefaultCodeTTL,
	}
}

func (s *Service) SetCodeTTL(d time.Duration) {
	if d > 0 {
		s.codeTTL = d
	}
}

// SearchByGaid: lookup exacto. Animales propios o no descubribles dan not found.
func (s *Service) SearchByGaid(ctx context.Context, viewerTenantID, gaid string) (Candidate, error) {
	if err := requireViewer(viewerTenantID); err != nil {
		return Candidate{}, err
	}
	a, err := s.animals.GetByGAID(ctx, gaid)
	if err != nil {
		return Candidate{}, err
	}
	c, ok, err := s.visible(ctx, viewerTenantID, a, MethodGAID)
	if err != nil {
		return Candidate{}, err
	}
	if !ok {
		return Candidate{}, apperr.NotFound("no animal found for GAID")
	}
	return c, nil
}

// SearchByExchangeCode consume el código (un solo uso). Si el candidato no es
// visible para el viewer el código queda intacto.
func (s *Service) SearchByExchangeCode(ctx context.Context, viewerTenantID, code string) (Candidate, error) {
	if err := requireViewer(viewerTenantID); err != nil {
		return Candidate{}, err
	}
	code = NormalizeExchangeCode(code)
	if !ValidExchangeCode(code) {
		return Candidate{}, apperr.Validation("malformed exchange code")
	}

	ec, err := s.codes.GetByHash(ctx, HashExchangeCode(code))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Candidate{}, apperr.NotFound("exchange code not found")
		}
		return Candidate{}, err
	}
	if ec.TenantID == viewerTenantID {
		return Candidate{}, apperr.NotFound("exchange code not found")
	}

	now := s.now()
	if ec.ConsumedAt != nil {
		return Candidate{}, apperr.Expired("exchange code already used")
	}
	if !now.Before(ec.ExpiresAt) {
		return Candidate{}, apperr.Expired("exchange code expired")
	}

	a, err := s.animals.GetByID(ctx, ec.AnimalID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Candidate{}, apperr.NotFound("exchange code not found")
		}
		return Candidate{}, err
	}
	c, ok, err := s.visible(ctx, viewerTenantID, a, MethodExchangeCode)
	if err != nil {
		return Candidate{}, err
	}
	if !ok {
		return Candidate{}, apperr.NotFound("exchange code not found")
	}

	if _, err := s.codes.Consume(ctx, ec.ID, viewerTenantID, now); err != nil {
		return Candidate{}, err
	}
	s.log.Info("exchange code consumed", map[string]any{
		"code_id":   ec.ID,
		"animal_id": ec.AnimalID,
		"consumer":  viewerTenantID,
	})
	return c, nil
}

// SearchByRegistry: match exacto sobre (registry, número normalizado).
func (s *Service) SearchByRegistry(ctx context.Context, viewerTenantID, registryID, number string) ([]Candidate, error) {
	if err := requireViewer(viewerTenantID); err != nil {
		return nil, err
	}
	found, err := s.animals.FindByRegistry(ctx, registryID, number)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(found))
	for _, a := range found {
		c, ok, err := s.visible(ctx, viewerTenantID, a, MethodRegistry)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type BreederFilter struct {
	Sex     animals.Sex
	Species string
	Limit   int
}

// SearchByBreeder busca tenants por nombre/email (fuzzy) y devuelve sus animales compartibles.
func (s *Service) SearchByBreeder(ctx context.Context, viewerTenantID, query string, f BreederFilter) ([]BreederMatch, error) {
	if err := requireViewer(viewerTenantID); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil, apperr.Validation("query must have at least 2 characters")
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultBreederLimit
	}

	tenants, err := s.dir.Search(ctx, query)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "tenant directory unavailable")
	}

	matches := make([]BreederMatch, 0)
	for _, t := range tenants {
		if t.ID == viewerTenantID {
			continue
		}
		score := breederScore(query, t.Name, t.ContactEmail)
		if score < breederMatchThreshold {
			continue
		}

		list, err := s.animals.Search(ctx, animals.Filter{
			TenantIDs: []string{t.ID},
			Sex:       f.Sex,
			Species:   strings.ToLower(strings.TrimSpace(f.Species)),
		})
		if err != nil {
			return nil, err
		}

		m := BreederMatch{Tenant: t, Score: score, Animals: make([]Candidate, 0)}
		for _, a := range list {
			c, ok, err := s.visible(ctx, viewerTenantID, a, MethodBreederSearch)
			if err != nil {
				return nil, err
			}
			if ok {
				m.Animals = append(m.Animals, c)
			}
		}
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Tenant.Name < matches[j].Tenant.Name
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

type IssuedCode struct {
	Code string // en claro, sólo en esta respuesta
	ExchangeCode
}

// IssueExchangeCode: sólo el dueño emite códigos para su animal.
func (s *Service) IssueExchangeCode(ctx context.Context, tenantID, animalID string, ttl time.Duration) (IssuedCode, error) {
	if err := requireViewer(tenantID); err != nil {
		return IssuedCode{}, err
	}
	a, err := s.animals.GetByID(ctx, strings.TrimSpace(animalID))
	if err != nil {
		return IssuedCode{}, err
	}
	if a.TenantID != tenantID {
		return IssuedCode{}, apperr.PermissionDenied("only the owning tenant can issue exchange codes")
	}
	if ttl == 0 {
		ttl = s.codeTTL
	}
	if ttl < 0 || ttl > maxCodeTTL {
		return IssuedCode{}, apperr.Validation("ttl must be between 0 and %s", maxCodeTTL)
	}

	now := s.now()
	for attempt := 0; ; attempt++ {
		code, err := NewExchangeCode()
		if err != nil {
			return IssuedCode{}, err
		}
		ec := ExchangeCode{
			ID:         uuid.NewString(),
			AnimalID:   a.ID,
			TenantID:   tenantID,
			CodeHash:   HashExchangeCode(code),
			CodePrefix: code[:codeGroup],
			CreatedAt:  now,
			ExpiresAt:  now.Add(ttl),
		}
		err = s.codes.Create(ctx, ec)
		if err == nil {
			return IssuedCode{Code: code, ExchangeCode: ec}, nil
		}
		if !errors.Is(err, apperr.ErrConflict) || attempt+1 >= codeAttempts {
			return IssuedCode{}, err
		}
	}
}

func (s *Service) visible(ctx context.Context, viewerTenantID string, a animals.Animal, via Method) (Candidate, bool, error) {
	if a.TenantID == viewerTenantID {
		return Candidate{}, false, nil
	}
	st, err := s.settings.Settings(ctx, a.ID)
	if err != nil {
		return Candidate{}, false, err
	}
	if !st.AllowCrossTenantMatching {
		return Candidate{}, false, nil
	}
	return Candidate{View: privacy.Redact(a, st, viewerTenantID), Via: via}, true, nil
}

func requireViewer(tenantID string) error {
	if strings.TrimSpace(tenantID) == "" {
		return apperr.Validation("viewer tenant id required")
	}
	return nil
}
