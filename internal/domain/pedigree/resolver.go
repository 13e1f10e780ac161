// Package pedigree resuelve árboles de ancestros (aristas locales y links entre
// tenants) y calcula el coeficiente de consanguinidad sobre ellos.
package pedigree

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/domain/links"
	"pedigree-registry/internal/domain/privacy"
	"pedigree-registry/internal/platform/apperr"
	"pedigree-registry/internal/platform/logger"
	"pedigree-registry/internal/platform/retry"
)

const (
	DefaultGenerations = 3
	MaxGenerations     = 10
	DefaultFanOut      = 16
)

type AnimalReader interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
}

// LinkReader devuelve el link ACTIVE de un slot, si existe.
type LinkReader interface {
	ActiveLink(ctx context.Context, childID string, pt animals.ParentType) (links.CrossTenantLink, bool, error)
}

type SettingsReader interface {
	Settings(ctx context.Context, animalID string) (privacy.Settings, error)
}

type Options struct {
	DefaultGenerations int
	MaxGenerations     int
	// FanOut limita las ramas resueltas en paralelo entre todas las llamadas.
	FanOut int64
	Retry  retry.Policy
}

type Resolver struct {
	animals  AnimalReader
	links    LinkReader
	settings SettingsReader
	log      logger.Logger
	policy   retry.Policy
	sem      *semaphore.Weighted
	now      func() time.Time

	defaultGenerations int
	maxGenerations     int
}

func NewResolver(a AnimalReader, l LinkReader, s SettingsReader, log logger.Logger, opts Options) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	if opts.MaxGenerations <= 0 {
		opts.MaxGenerations = MaxGenerations
	}
	if opts.DefaultGenerations <= 0 {
		opts.DefaultGenerations = DefaultGenerations
	}
	if opts.DefaultGenerations > opts.MaxGenerations {
		opts.DefaultGenerations = opts.MaxGenerations
	}
	if opts.FanOut <= 0 {
		opts.FanOut = DefaultFanOut
	}
	if opts.Retry.MaxRetries == 0 && opts.Retry.InitialInterval == 0 {
		opts.Retry = retry.DefaultPolicy()
	}
	return &Resolver{
		animals:            a,
		links:              l,
		settings:           s,
		log:                log,
		policy:             opts.Retry,
		sem:                semaphore.NewWeighted(opts.FanOut),
		now:                time.Now,
		defaultGenerations: opts.DefaultGenerations,
		maxGenerations:     opts.MaxGenerations,
	}
}

// Generations normaliza la profundidad pedida: 0 usa el default.
func (r *Resolver) Generations(requested int) (int, error) {
	if requested == 0 {
		return r.defaultGenerations, nil
	}
	if requested < 0 || requested > r.maxGenerations {
		return 0, apperr.Validation("generations must be between 1 and %d", r.maxGenerations)
	}
	return requested, nil
}

// Resolve arma el árbol de animalID visto por viewer.
// La raíz inexistente es NotFound; una raíz ajena con matching deshabilitado es
// PrivacyBlocked. Ancestros faltantes o bloqueados se degradan a stubs.
func (r *Resolver) Resolve(ctx context.Context, viewer, animalID string, generations int) (Pedigree, error) {
	gens, err := r.Generations(generations)
	if err != nil {
		return Pedigree{}, err
	}
	return r.resolve(ctx, viewer, animalID, gens)
}

// resolve acepta gens == 0 (sólo la raíz).
func (r *Resolver) resolve(ctx context.Context, viewer, animalID string, gens int) (Pedigree, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return Pedigree{}, apperr.Validation("animal id is required")
	}

	res := r.newResolution(viewer)

	root, err := res.animal(ctx, animalID)
	if err != nil {
		return Pedigree{}, err
	}
	if root.TenantID != viewer {
		s, err := res.settingsOf(ctx, root.ID)
		if err != nil {
			return Pedigree{}, err
		}
		if !s.AllowCrossTenantMatching {
			return Pedigree{}, apperr.PrivacyBlocked("animal %s is not shared", root.ID)
		}
	}

	tree := res.build(ctx, parentRef{id: root.ID, edge: EdgeRoot}, 0, gens, nil)

	return Pedigree{
		Root:        tree,
		Generations: gens,
		Anomalies:   res.sortedAnomalies(),
		ResolvedAt:  r.now().UTC(),
	}, nil
}

// -------------------------
// Estado por llamada
// -------------------------

type parentRef struct {
	id     string
	edge   EdgeKind
	linkID string
}

type fetchResult struct {
	v   any
	err error
}

type subtreeKey struct {
	id        string
	remaining int
}

type subtree struct {
	node *Node
	ids  map[string]struct{}
}

// resolution vive lo que dura un Resolve: memo de lecturas, de subárboles y
// las anomalías detectadas.
type resolution struct {
	r      *Resolver
	viewer string
	group  singleflight.Group

	mu        sync.Mutex
	fetched   map[string]fetchResult
	subtrees  map[subtreeKey]subtree
	anomalies []Anomaly
}

func (r *Resolver) newResolution(viewer string) *resolution {
	return &resolution{
		r:        r,
		viewer:   viewer,
		fetched:  map[string]fetchResult{},
		subtrees: map[subtreeKey]subtree{},
	}
}

// load deduplica lecturas concurrentes de la misma clave y memoiza el resultado
// (incluido el error) por el resto de la llamada.
func load[T any](ctx context.Context, res *resolution, key string, fn func(context.Context) (T, error)) (T, error) {
	res.mu.Lock()
	if f, ok := res.fetched[key]; ok {
		res.mu.Unlock()
		v, _ := f.v.(T)
		return v, f.err
	}
	res.mu.Unlock()

	v, err, _ := res.group.Do(key, func() (any, error) {
		// Otra llamada pudo terminar entre el chequeo de arriba y el Do.
		res.mu.Lock()
		if f, ok := res.fetched[key]; ok {
			res.mu.Unlock()
			return f.v, f.err
		}
		res.mu.Unlock()

		v, err := retry.Read(ctx, res.r.policy, fn)
		res.mu.Lock()
		res.fetched[key] = fetchResult{v: v, err: err}
		res.mu.Unlock()
		return v, err
	})
	out, _ := v.(T)
	return out, err
}

func (res *resolution) animal(ctx context.Context, id string) (animals.Animal, error) {
	return load(ctx, res, "animal:"+id, func(ctx context.Context) (animals.Animal, error) {
		return res.r.animals.GetByID(ctx, id)
	})
}

func (res *resolution) settingsOf(ctx context.Context, id string) (privacy.Settings, error) {
	return load(ctx, res, "privacy:"+id, func(ctx context.Context) (privacy.Settings, error) {
		return res.r.settings.Settings(ctx, id)
	})
}

type activeLink struct {
	link links.CrossTenantLink
	ok   bool
}

func (res *resolution) link(ctx context.Context, childID string, pt animals.ParentType) (activeLink, error) {
	return load(ctx, res, "link:"+childID+":"+string(pt), func(ctx context.Context) (activeLink, error) {
		l, ok, err := res.r.links.ActiveLink(ctx, childID, pt)
		return activeLink{link: l, ok: ok}, err
	})
}

// -------------------------
// Construcción del árbol
// -------------------------

func (res *resolution) build(ctx context.Context, ref parentRef, generation, remaining int, path []string) *Node {
	if slices.Contains(path, ref.id) {
		res.cycle(ref.id, path)
		return &Node{
			ID:         ref.id,
			Edge:       ref.edge,
			LinkID:     ref.linkID,
			Generation: generation,
			Unknown:    true,
			StubReason: StubCycle,
			Truncated:  true,
		}
	}
	if sub, ok := res.cached(ref.id, remaining, path); ok {
		n := *sub
		n.Edge, n.LinkID = ref.edge, ref.linkID
		return &n
	}

	a, err := res.animal(ctx, ref.id)
	if err != nil {
		return res.stub(ref, generation, err)
	}

	view := privacy.Redact(a, privacy.Settings{}, res.viewer)
	if a.TenantID != res.viewer {
		s, err := res.settingsOf(ctx, a.ID)
		if err != nil {
			return res.stub(ref, generation, err)
		}
		view = privacy.Redact(a, s, res.viewer)
		if view.Blocked {
			// No se expone identidad: sólo el sexo que ya implica el slot.
			return &Node{
				Sex:        view.Sex,
				Edge:       ref.edge,
				Generation: generation,
				Unknown:    true,
				StubReason: StubPrivacyBlocked,
			}
		}
	}

	n := nodeFromView(view, ref, generation)
	if remaining > 0 {
		res.expand(ctx, n, a, generation, remaining, append(path[:len(path):len(path)], a.ID))
	}
	res.remember(a.ID, remaining, n)
	return n
}

// expand resuelve sire y dam. Cada rama va en su goroutine si hay cupo en el
// semáforo; si no, se resuelve en línea (nunca bloquea esperando cupo).
func (res *resolution) expand(ctx context.Context, n *Node, a animals.Animal, generation, remaining int, path []string) {
	slots := []struct {
		pt  animals.ParentType
		dst **Node
	}{
		{animals.ParentSire, &n.Sire},
		{animals.ParentDam, &n.Dam},
	}

	var wg sync.WaitGroup
	for _, slot := range slots {
		ref, ok, err := res.parent(ctx, a, slot.pt)
		if err != nil {
			*slot.dst = res.stub(parentRef{edge: EdgeCrossTenant}, generation+1, err)
			continue
		}
		if !ok {
			continue
		}

		resolve := func() {
			*slot.dst = res.build(ctx, ref, generation+1, remaining-1, path)
		}
		if res.r.sem.TryAcquire(1) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer res.r.sem.Release(1)
				resolve()
			}()
			continue
		}
		resolve()
	}
	wg.Wait()
}

// parent: la arista local tiene prioridad; si no hay, se busca el link ACTIVE.
func (res *resolution) parent(ctx context.Context, a animals.Animal, pt animals.ParentType) (parentRef, bool, error) {
	if id, ok := a.LocalParent(pt); ok {
		return parentRef{id: id, edge: EdgeLocal}, true, nil
	}
	l, err := res.link(ctx, a.ID, pt)
	if err != nil {
		return parentRef{}, false, err
	}
	if !l.ok {
		return parentRef{}, false, nil
	}
	return parentRef{id: l.link.TargetAnimalID, edge: EdgeCrossTenant, linkID: l.link.ID}, true, nil
}

func (res *resolution) stub(ref parentRef, generation int, err error) *Node {
	n := &Node{
		ID:         ref.id,
		Edge:       ref.edge,
		LinkID:     ref.linkID,
		Generation: generation,
		Unknown:    true,
		StubReason: StubNotFound,
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		n.StubReason = StubUnavailable
		res.r.log.Warn("pedigree ancestor unavailable", map[string]any{
			"animal_id": ref.id,
			"viewer":    res.viewer,
			"error":     err.Error(),
		})
	}
	return n
}

func (res *resolution) cycle(id string, path []string) {
	p := append(slices.Clone(path), id)
	res.mu.Lock()
	res.anomalies = append(res.anomalies, Anomaly{Kind: AnomalyCycle, AnimalID: id, Path: p})
	res.mu.Unlock()

	res.r.log.Warn("pedigree cycle detected, branch truncated", map[string]any{
		"animal_id": id,
		"path":      strings.Join(p, ">"),
		"viewer":    res.viewer,
	})
}

// cached devuelve un subárbol ya resuelto con la misma profundidad restante,
// salvo que contenga algún id del camino actual.
func (res *resolution) cached(id string, remaining int, path []string) (*Node, bool) {
	res.mu.Lock()
	sub, ok := res.subtrees[subtreeKey{id: id, remaining: remaining}]
	res.mu.Unlock()
	if !ok {
		return nil, false
	}
	for _, p := range path {
		if _, hit := sub.ids[p]; hit {
			return nil, false
		}
	}
	return sub.node, true
}

// remember guarda subárboles sin ramas truncadas: un corte por ciclo depende
// del camino por el que se llegó.
func (res *resolution) remember(id string, remaining int, n *Node) {
	ids := map[string]struct{}{}
	if !collectIDs(n, ids) {
		return
	}
	res.mu.Lock()
	res.subtrees[subtreeKey{id: id, remaining: remaining}] = subtree{node: n, ids: ids}
	res.mu.Unlock()
}

func collectIDs(n *Node, into map[string]struct{}) bool {
	if n == nil {
		return true
	}
	if n.Truncated {
		return false
	}
	if n.ID != "" {
		into[n.ID] = struct{}{}
	}
	return collectIDs(n.Sire, into) && collectIDs(n.Dam, into)
}

func (res *resolution) sortedAnomalies() []Anomaly {
	res.mu.Lock()
	defer res.mu.Unlock()
	out := slices.Clone(res.anomalies)
	sort.Slice(out, func(i, j int) bool {
		if out[i].AnimalID != out[j].AnimalID {
			return out[i].AnimalID < out[j].AnimalID
		}
		return strings.Join(out[i].Path, ">") < strings.Join(out[j].Path, ">")
	})
	return out
}

func nodeFromView(v privacy.View, ref parentRef, generation int) *Node {
	return &Node{
		ID:             v.AnimalID,
		GAID:           v.GAID,
		TenantID:       v.TenantID,
		Name:           v.Name,
		Sex:            v.Sex,
		Species:        v.Species,
		Breed:          v.Breed,
		BirthDate:      v.BirthDate,
		BirthYear:      v.BirthYear,
		PhotoURL:       v.PhotoURL,
		RegistryNumber: v.RegistryNumber,
		BreederName:    v.BreederName,
		Titles:         v.Titles,
		Competitions:   v.Competitions,
		Health:         v.HealthSummary,
		Genetics:       v.GeneticsSummary,
		Edge:           ref.edge,
		LinkID:         ref.linkID,
		Generation:     generation,
	}
}
