package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/domain/links"
	"pedigree-registry/internal/platform/apperr"
)

// linkRepo guarda requests y links bajo un único lock para que Approve sea
// atómico respecto de la exclusividad por (source, parentType).
type linkRepo struct {
	mu       sync.RWMutex
	requests map[string]links.LinkRequest
	links    map[string]links.CrossTenantLink
}

func NewLinkRepo() links.Repository {
	return &linkRepo{
		requests: make(map[string]links.LinkRequest),
		links:    make(map[string]links.CrossTenantLink),
	}
}

func (r *linkRepo) CreateRequest(ctx context.Context, req links.LinkRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.ID == "" {
		return apperr.Validation("request id required")
	}
	if _, exists := r.requests[req.ID]; exists {
		return apperr.Conflict("request already exists")
	}
	r.requests[req.ID] = req
	return nil
}

func (r *linkRepo) GetRequest(ctx context.Context, id string) (links.LinkRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return links.LinkRequest{}, apperr.NotFound("link request %s not found", id)
	}
	return req, nil
}

func (r *linkRepo) FindPendingRequest(ctx context.Context, sourceAnimalID string, pt animals.ParentType, targetAnimalID string) (links.LinkRequest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.Status == links.RequestPending &&
			req.SourceAnimalID == sourceAnimalID &&
			req.RelationshipType == pt &&
			req.TargetAnimalID == targetAnimalID {
			return req, true, nil
		}
	}
	return links.LinkRequest{}, false, nil
}

func (r *linkRepo) ListRequestsByTenant(ctx context.Context, tenantID string, dir links.Direction) ([]links.LinkRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]links.LinkRequest, 0)
	for _, req := range r.requests {
		switch dir {
		case links.DirectionOutgoing:
			if req.RequestingTenantID != tenantID {
				continue
			}
		default:
			if req.TargetTenantID != tenantID {
				continue
			}
		}
		out = append(out, req)
	}

	// Más recientes primero
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *linkRepo) ResolveRequest(ctx context.Context, req links.LinkRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.requests[req.ID]
	if !ok {
		return apperr.NotFound("link request %s not found", req.ID)
	}
	if cur.Status != links.RequestPending {
		return apperr.Conflict("request already %s", cur.Status)
	}
	r.requests[req.ID] = req
	return nil
}

func (r *linkRepo) DeleteRequest(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.requests[id]
	if !ok {
		return apperr.NotFound("link request %s not found", id)
	}
	if cur.Status != links.RequestPending {
		return apperr.Conflict("request already %s", cur.Status)
	}
	delete(r.requests, id)
	return nil
}

func (r *linkRepo) ExpirePending(ctx context.Context, now time.Time) ([]links.LinkRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]links.LinkRequest, 0)
	for id, req := range r.requests {
		if !req.ExpiredAt(now) {
			continue
		}
		at := now
		req.Status = links.RequestExpired
		req.RespondedAt = &at
		r.requests[id] = req
		out = append(out, req)
	}
	return out, nil
}

func (r *linkRepo) Approve(ctx context.Context, req links.LinkRequest, l links.CrossTenantLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.requests[req.ID]
	if !ok {
		return apperr.NotFound("link request %s not found", req.ID)
	}
	if cur.Status != links.RequestPending {
		return apperr.Conflict("request already %s", cur.Status)
	}
	if _, taken := r.activeLocked(l.SourceAnimalID, l.ParentType); taken {
		return apperr.Conflict("animal already has an active %s link", l.ParentType)
	}

	r.links[l.ID] = l
	r.requests[req.ID] = req
	return nil
}

func (r *linkRepo) GetLink(ctx context.Context, id string) (links.CrossTenantLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.links[id]
	if !ok {
		return links.CrossTenantLink{}, apperr.NotFound("link %s not found", id)
	}
	return l, nil
}

func (r *linkRepo) GetActiveLink(ctx context.Context, sourceAnimalID string, pt animals.ParentType) (links.CrossTenantLink, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.activeLocked(sourceAnimalID, pt)
	return l, ok, nil
}

func (r *linkRepo) ListLinksByAnimal(ctx context.Context, animalID string) ([]links.CrossTenantLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]links.CrossTenantLink, 0)
	for _, l := range r.links {
		if l.SourceAnimalID == animalID || l.TargetAnimalID == animalID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *linkRepo) RevokeLink(ctx context.Context, id string, at time.Time, reason, byTenantID string) (links.CrossTenantLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.links[id]
	if !ok {
		return links.CrossTenantLink{}, apperr.NotFound("link %s not found", id)
	}
	if l.Status == links.LinkRevoked {
		return links.CrossTenantLink{}, apperr.Conflict("already revoked")
	}
	l.Status = links.LinkRevoked
	l.RevokedAt = &at
	l.RevokedReason = reason
	l.RevokedByTenantID = byTenantID
	r.links[id] = l
	return l, nil
}

// activeLocked asume r.mu tomado.
func (r *linkRepo) activeLocked(sourceAnimalID string, pt animals.ParentType) (links.CrossTenantLink, bool) {
	for _, l := range r.links {
		if l.Status == links.LinkActive && l.SourceAnimalID == sourceAnimalID && l.ParentType == pt {
			return l, true
		}
	}
	return links.CrossTenantLink{}, false
}
