package links

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/platform/apperr"
	"pedigree-registry/internal/platform/logger"
	"pedigree-registry/internal/ports/cache"
	"pedigree-registry/internal/ports/directory"
	"pedigree-registry/internal/ports/notify"
)

const (
	DefaultRequestTTL = 30 * 24 * time.Hour

	maxMessageLen = 1000
	maxReasonLen  = 500
)

// AnimalGraph es lo que links necesita del store de animales (evita importar el servicio).
// LockEdges es el mismo lock que toma SetParents.
type AnimalGraph interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
	IsAncestor(ctx context.Context, candidateID, ofID string) (bool, error)
	LockEdges(ctx context.Context) (func(), error)
}

type DiscoverabilityChecker interface {
	Discoverable(ctx context.Context, animalID string) (bool, error)
}

type Service struct {
	repo     Repository
	animals  AnimalGraph
	privacy  DiscoverabilityChecker
	dir      directory.Directory
	notifier notify.Notifier
	purger   cache.Purger

	now        func() time.Time
	log        logger.Logger
	requestTTL time.Duration
}

type Deps struct {
	Repo      Repository
	Animals   AnimalGraph
	Privacy   DiscoverabilityChecker
	Directory directory.Directory // opcional
	Notifier  notify.Notifier     // opcional
	Purger    cache.Purger        // opcional
	Logger    logger.Logger
}

func NewService(d Deps) *Service {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:       d.Repo,
		animals:    d.Animals,
		privacy:    d.Privacy,
		dir:        d.Directory,
		notifier:   d.Notifier,
		purger:     d.Purger,
		now:        time.Now,
		log:        log.With(map[string]any{"component": "links"}),
		requestTTL: DefaultRequestTTL,
	}
}

func (s *Service) SetRequestTTL(d time.Duration) {
	if d > 0 {
		s.requestTTL = d
	}
}

type CreateInput struct {
	SourceAnimalID   string
	RelationshipType string
	TargetAnimalID   string
	TargetTenantID   string // opcional; si viene debe coincidir con el dueño real
	Method           string // vacío = GAID
	Message          string
}

// Create abre una LinkRequest PENDING. Nunca se reintenta automáticamente.
func (s *Service) Create(ctx context.Context, tenantID string, in CreateInput) (LinkRequest, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return LinkRequest{}, apperr.Validation("tenant id required")
	}
	pt, ok := animals.ParseParentType(in.RelationshipType)
	if !ok {
		return LinkRequest{}, apperr.Validation("relationship_type must be SIRE or DAM")
	}
	method, ok := MethodGAID, true
	if strings.TrimSpace(in.Method) != "" {
		method, ok = ParseLinkMethod(in.Method)
	}
	if !ok {
		return LinkRequest{}, apperr.Validation("method must be GAID, EXCHANGE_CODE, REGISTRY or BREEDER_SEARCH")
	}
	msg := strings.TrimSpace(in.Message)
	if len([]rune(msg)) > maxMessageLen {
		return LinkRequest{}, apperr.Validation("message too long")
	}

	source, err := s.animals.GetByID(ctx, strings.TrimSpace(in.SourceAnimalID))
	if err != nil {
		return LinkRequest{}, err
	}
	if source.TenantID != tenantID {
		return LinkRequest{}, apperr.PermissionDenied("only the owner of the child animal can request a link")
	}

	target, err := s.animals.GetByID(ctx, strings.TrimSpace(in.TargetAnimalID))
	if err != nil {
		return LinkRequest{}, err
	}
	if tt := strings.TrimSpace(in.TargetTenantID); tt != "" && tt != target.TenantID {
		return LinkRequest{}, apperr.Validation("target tenant does not own the target animal")
	}
	if target.TenantID == tenantID {
		return LinkRequest{}, apperr.Validation("target belongs to the same tenant; set local parents instead")
	}
	if target.Sex != pt.RequiredSex() {
		return LinkRequest{}, apperr.Validation("%s must be %s", strings.ToLower(string(pt)), pt.RequiredSex())
	}

	if err := s.ensureSlotFree(ctx, source, pt); err != nil {
		return LinkRequest{}, err
	}

	discoverable, err := s.privacy.Discoverable(ctx, target.ID)
	if err != nil {
		return LinkRequest{}, err
	}
	if !discoverable {
		return LinkRequest{}, apperr.PrivacyBlocked("target animal does not allow cross-tenant matching")
	}

	if err := s.ensureAcyclic(ctx, source.ID, target.ID); err != nil {
		return LinkRequest{}, err
	}

	if _, dup, err := s.repo.FindPendingRequest(ctx, source.ID, pt, target.ID); err != nil {
		return LinkRequest{}, err
	} else if dup {
		return LinkRequest{}, apperr.Conflict("an identical request is already pending")
	}

	now := s.now()
	req := LinkRequest{
		ID:                 uuid.NewString(),
		RequestingTenantID: tenantID,
		SourceAnimalID:     source.ID,
		RelationshipType:   pt,
		TargetAnimalID:     target.ID,
		TargetTenantID:     target.TenantID,
		Method:             method,
		Status:             RequestPending,
		Message:            msg,
		CreatedAt:          now,
		ExpiresAt:          now.Add(s.requestTTL),
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		return LinkRequest{}, err
	}

	s.log.Info("link request created", map[string]any{
		"request_id": req.ID,
		"source":     req.SourceAnimalID,
		"target":     req.TargetAnimalID,
		"type":       string(pt),
	})
	s.notify(ctx, notify.KindLinkRequested, req.TargetTenantID, req.ID, map[string]string{
		"requesting_tenant_id": tenantID,
		"source_animal_id":     req.SourceAnimalID,
		"target_animal_id":     req.TargetAnimalID,
		"relationship_type":    string(pt),
	})
	return req, nil
}

type ApproveInput struct {
	// Opcional: el dueño puede resolver la request a otro animal propio.
	TargetAnimalID string
	Message        string
}

// Approve: sólo el tenant dueño del padre ofrecido. Crea exactamente un link ACTIVE.
func (s *Service) Approve(ctx context.Context, tenantID, requestID string, in ApproveInput) (LinkRequest, CrossTenantLink, error) {
	req, err := s.pendingForTarget(ctx, tenantID, requestID)
	if err != nil {
		return LinkRequest{}, CrossTenantLink{}, err
	}
	msg := strings.TrimSpace(in.Message)
	if len([]rune(msg)) > maxMessageLen {
		return LinkRequest{}, CrossTenantLink{}, apperr.Validation("message too long")
	}

	if resolved := strings.TrimSpace(in.TargetAnimalID); resolved != "" && resolved != req.TargetAnimalID {
		t, err := s.animals.GetByID(ctx, resolved)
		if err != nil {
			return LinkRequest{}, CrossTenantLink{}, err
		}
		if t.TenantID != req.TargetTenantID {
			return LinkRequest{}, CrossTenantLink{}, apperr.PermissionDenied("resolved target must belong to the approving tenant")
		}
		if t.Sex != req.RelationshipType.RequiredSex() {
			return LinkRequest{}, CrossTenantLink{}, apperr.Validation("%s must be %s", strings.ToLower(string(req.RelationshipType)), req.RelationshipType.RequiredSex())
		}
		req.TargetAnimalID = t.ID
	}

	// Slot libre, aciclicidad y alta del link bajo el lock de aristas.
	unlock, err := s.animals.LockEdges(ctx)
	if err != nil {
		return LinkRequest{}, CrossTenantLink{}, err
	}
	defer unlock()

	source, err := s.animals.GetByID(ctx, req.SourceAnimalID)
	if err != nil {
		return LinkRequest{}, CrossTenantLink{}, err
	}
	if _, ok := source.LocalParent(req.RelationshipType); ok {
		return LinkRequest{}, CrossTenantLink{}, apperr.Conflict("child already has a local %s", strings.ToLower(string(req.RelationshipType)))
	}
	if err := s.ensureAcyclic(ctx, req.SourceAnimalID, req.TargetAnimalID); err != nil {
		return LinkRequest{}, CrossTenantLink{}, err
	}

	now := s.now()
	link := CrossTenantLink{
		ID:             uuid.NewString(),
		SourceAnimalID: req.SourceAnimalID,
		SourceTenantID: source.TenantID,
		TargetAnimalID: req.TargetAnimalID,
		TargetTenantID: req.TargetTenantID,
		ParentType:     req.RelationshipType,
		Method:         req.Method,
		Status:         LinkActive,
		RequestID:      req.ID,
		CreatedAt:      now,
	}
	req.Status = RequestApproved
	req.ResponseMessage = msg
	req.RespondedAt = &now
	req.LinkID = link.ID

	// Sin reintentos: un approve repetido podría duplicar el link.
	if err := s.repo.Approve(ctx, req, link); err != nil {
		return LinkRequest{}, CrossTenantLink{}, err
	}

	s.log.Info("link request approved", map[string]any{
		"request_id": req.ID,
		"link_id":    link.ID,
	})
	s.purge(ctx)
	s.notify(ctx, notify.KindLinkApproved, req.RequestingTenantID, req.ID, map[string]string{
		"link_id":          link.ID,
		"source_animal_id": link.SourceAnimalID,
		"target_animal_id": link.TargetAnimalID,
	})
	return req, link, nil
}

// Deny: sólo el tenant dueño del padre ofrecido.
func (s *Service) Deny(ctx context.Context, tenantID, requestID, reason string) (LinkRequest, error) {
	req, err := s.pendingForTarget(ctx, tenantID, requestID)
	if err != nil {
		return LinkRequest{}, err
	}
	reason = strings.TrimSpace(reason)
	if len([]rune(reason)) > maxReasonLen {
		return LinkRequest{}, apperr.Validation("reason too long")
	}

	now := s.now()
	req.Status = RequestDenied
	req.DenialReason = reason
	req.RespondedAt = &now
	if err := s.repo.ResolveRequest(ctx, req); err != nil {
		return LinkRequest{}, err
	}

	s.log.Info("link request denied", map[string]any{"request_id": req.ID})
	s.notify(ctx, notify.KindLinkDenied, req.RequestingTenantID, req.ID, map[string]string{
		"reason": reason,
	})
	return req, nil
}

// Cancel: el requester retira una request PENDING sin efectos laterales.
func (s *Service) Cancel(ctx context.Context, tenantID, requestID string) error {
	req, err := s.repo.GetRequest(ctx, strings.TrimSpace(requestID))
	if err != nil {
		return err
	}
	if req.RequestingTenantID != strings.TrimSpace(tenantID) {
		return apperr.PermissionDenied("only the requesting tenant can cancel")
	}
	if req.Status != RequestPending {
		return apperr.Conflict("request is %s", strings.ToLower(string(req.Status)))
	}
	return s.repo.DeleteRequest(ctx, req.ID)
}

// Revoke: cualquiera de los dos tenants corta un link ACTIVE. Revocar dos veces es conflict.
func (s *Service) Revoke(ctx context.Context, tenantID, linkID, reason string) (CrossTenantLink, error) {
	tenantID = strings.TrimSpace(tenantID)
	l, err := s.repo.GetLink(ctx, strings.TrimSpace(linkID))
	if err != nil {
		return CrossTenantLink{}, err
	}
	if tenantID != l.SourceTenantID && tenantID != l.TargetTenantID {
		return CrossTenantLink{}, apperr.PermissionDenied("only the tenants on either side can revoke a link")
	}
	if l.Status == LinkRevoked {
		return CrossTenantLink{}, apperr.Conflict("already revoked")
	}
	reason = strings.TrimSpace(reason)
	if len([]rune(reason)) > maxReasonLen {
		return CrossTenantLink{}, apperr.Validation("reason too long")
	}

	revoked, err := s.repo.RevokeLink(ctx, l.ID, s.now(), reason, tenantID)
	if err != nil {
		return CrossTenantLink{}, err
	}

	s.log.Info("link revoked", map[string]any{"link_id": l.ID, "by": tenantID})
	s.purge(ctx)

	other := l.TargetTenantID
	if tenantID == l.TargetTenantID {
		other = l.SourceTenantID
	}
	s.notify(ctx, notify.KindLinkRevoked, other, l.ID, map[string]string{
		"reason":           reason,
		"source_animal_id": l.SourceAnimalID,
		"target_animal_id": l.TargetAnimalID,
	})
	return revoked, nil
}

// ExpireStale corre desde el sweeper: PENDING vencidas pasan a EXPIRED.
func (s *Service) ExpireStale(ctx context.Context) (int, error) {
	expired, err := s.repo.ExpirePending(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if len(expired) > 0 {
		s.log.Info("link requests expired", map[string]any{"count": len(expired)})
	}
	return len(expired), nil
}

// RequestDetails acompaña la request con la metadata de ambos tenants.
type RequestDetails struct {
	LinkRequest
	Requester directory.Tenant
	Target    directory.Tenant
}

func (s *Service) GetRequest(ctx context.Context, tenantID, requestID string) (RequestDetails, error) {
	req, err := s.repo.GetRequest(ctx, strings.TrimSpace(requestID))
	if err != nil {
		return RequestDetails{}, err
	}
	if tenantID != req.RequestingTenantID && tenantID != req.TargetTenantID {
		return RequestDetails{}, apperr.PermissionDenied("request belongs to other tenants")
	}
	return s.details(ctx, req), nil
}

func (s *Service) ListRequests(ctx context.Context, tenantID string, dir Direction) ([]RequestDetails, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, apperr.Validation("tenant id required")
	}
	items, err := s.repo.ListRequestsByTenant(ctx, tenantID, dir)
	if err != nil {
		return nil, err
	}
	out := make([]RequestDetails, 0, len(items))
	for _, r := range items {
		out = append(out, s.details(ctx, r))
	}
	return out, nil
}

// ListLinks: links (ACTIVE y REVOKED) de un animal propio, como hijo o como padre.
func (s *Service) ListLinks(ctx context.Context, tenantID, animalID string) ([]CrossTenantLink, error) {
	a, err := s.animals.GetByID(ctx, strings.TrimSpace(animalID))
	if err != nil {
		return nil, err
	}
	if a.TenantID != strings.TrimSpace(tenantID) {
		return nil, apperr.PermissionDenied("animal belongs to another tenant")
	}
	return s.repo.ListLinksByAnimal(ctx, a.ID)
}

// ActiveParent implementa animals.ExternalEdges.
func (s *Service) ActiveParent(ctx context.Context, childID string, pt animals.ParentType) (string, bool, error) {
	l, ok, err := s.repo.GetActiveLink(ctx, childID, pt)
	if err != nil || !ok {
		return "", false, err
	}
	return l.TargetAnimalID, true, nil
}

// ActiveLink es la variante que usa el resolver de pedigrí (necesita el id del link).
func (s *Service) ActiveLink(ctx context.Context, childID string, pt animals.ParentType) (CrossTenantLink, bool, error) {
	return s.repo.GetActiveLink(ctx, childID, pt)
}

func (s *Service) pendingForTarget(ctx context.Context, tenantID, requestID string) (LinkRequest, error) {
	req, err := s.repo.GetRequest(ctx, strings.TrimSpace(requestID))
	if err != nil {
		return LinkRequest{}, err
	}
	if req.TargetTenantID != strings.TrimSpace(tenantID) {
		return LinkRequest{}, apperr.PermissionDenied("only the tenant owning the offered parent can respond")
	}
	if req.Status != RequestPending {
		return LinkRequest{}, apperr.Conflict("request is %s", strings.ToLower(string(req.Status)))
	}

	// Vencida pero el sweeper todavía no pasó.
	now := s.now()
	if req.ExpiredAt(now) {
		req.Status = RequestExpired
		req.RespondedAt = &now
		if err := s.repo.ResolveRequest(ctx, req); err != nil && !errors.Is(err, apperr.ErrConflict) {
			return LinkRequest{}, err
		}
		return LinkRequest{}, apperr.Expired("link request expired")
	}
	return req, nil
}

func (s *Service) ensureSlotFree(ctx context.Context, source animals.Animal, pt animals.ParentType) error {
	if _, ok := source.LocalParent(pt); ok {
		return apperr.Conflict("animal already has a local %s", strings.ToLower(string(pt)))
	}
	_, ok, err := s.repo.GetActiveLink(ctx, source.ID, pt)
	if err != nil {
		return err
	}
	if ok {
		return apperr.Conflict("animal already has an active cross-tenant %s", strings.ToLower(string(pt)))
	}
	return nil
}

// ensureAcyclic: el hijo no puede terminar siendo ancestro de su nuevo padre.
func (s *Service) ensureAcyclic(ctx context.Context, childID, parentID string) error {
	if childID == parentID {
		return apperr.Validation("an animal cannot be its own parent")
	}
	cyclic, err := s.animals.IsAncestor(ctx, childID, parentID)
	if err != nil {
		return err
	}
	if cyclic {
		return apperr.Conflict("link would make the animal its own ancestor")
	}
	return nil
}

func (s *Service) details(ctx context.Context, r LinkRequest) RequestDetails {
	return RequestDetails{
		LinkRequest: r,
		Requester:   s.tenant(ctx, r.RequestingTenantID),
		Target:      s.tenant(ctx, r.TargetTenantID),
	}
}

func (s *Service) tenant(ctx context.Context, id string) directory.Tenant {
	if s.dir == nil {
		return directory.Tenant{ID: id}
	}
	t, err := s.dir.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, directory.ErrTenantNotFound) {
			s.log.Warn("tenant directory lookup failed", map[string]any{"tenant_id": id, "err": err})
		}
		return directory.Tenant{ID: id}
	}
	return t
}

func (s *Service) notify(ctx context.Context, kind notify.Kind, recipient, subjectID string, data map[string]string) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.Notify(ctx, notify.Notification{
		Kind:              kind,
		RecipientTenantID: recipient,
		SubjectID:         subjectID,
		Data:              data,
		OccurredAt:        s.now(),
	})
	if err != nil {
		s.log.Warn("notification failed", map[string]any{"kind": string(kind), "subject_id": subjectID, "err": err})
	}
}

func (s *Service) purge(ctx context.Context) {
	if s.purger == nil {
		return
	}
	if err := s.purger.Purge(ctx); err != nil {
		s.log.Error("coi cache purge failed", map[string]any{"err": err})
	}
}
