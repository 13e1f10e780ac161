package animals

import (
	"context"
	"errors"
	"testing"
	"time"

	"pedigree-registry/internal/platform/apperr"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID       map[string]Animal
	createErrs []error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Animal{}}
}

func (r *testRepo) Create(ctx context.Context, a Animal) error {
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		return err
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return apperr.NotFound("animal %s not found", a.ID)
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, apperr.NotFound("animal %s not found", id)
	}
	return a, nil
}

func (r *testRepo) GetByGAID(ctx context.Context, gaid string) (Animal, error) {
	for _, a := range r.byID {
		if a.GAID == gaid {
			return a, nil
		}
	}
	return Animal{}, apperr.NotFound("gaid %s not found", gaid)
}

func (r *testRepo) FindByRegistry(ctx context.Context, registryID, number string) ([]Animal, error) {
	out := make([]Animal, 0)
	for _, a := range r.byID {
		if a.RegistryID == registryID && a.RegistryNumber == number {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) List(ctx context.Context, f Filter) ([]Animal, error) {
	out := make([]Animal, 0)
	for _, a := range r.byID {
		if len(f.TenantIDs) > 0 && a.TenantID != f.TenantIDs[0] {
			continue
		}
		if f.Sex != "" && a.Sex != f.Sex {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeEdges map[string]string // childID|pt -> parentID

func (f fakeEdges) ActiveParent(ctx context.Context, childID string, pt ParentType) (string, bool, error) {
	p, ok := f[childID+"|"+string(pt)]
	return p, ok, nil
}

type countingPurger struct{ n int }

func (c *countingPurger) Purge(context.Context) error { c.n++; return nil }

func seed(repo *testRepo, id, tenant string, sex Sex) {
	repo.byID[id] = Animal{ID: id, TenantID: tenant, Sex: sex, Name: id}
}

func strp(s string) *string { return &s }

// -------------------------
// Tests
// -------------------------

func TestService_Create_AssignsGAIDAndNormalizes(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	a, err := svc.Create(context.Background(), "kennel-a", CreateInput{
		Name:           "  Rex ",
		Species:        "Dog",
		Sex:            "m",
		RegistryID:     "akc",
		RegistryNumber: "ws-123.456",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !ValidGAID(a.GAID) {
		t.Fatalf("expected valid GAID, got %q", a.GAID)
	}
	if a.Name != "Rex" || a.Species != "dog" || a.Sex != SexMale {
		t.Fatalf("unexpected normalization: %+v", a)
	}
	if a.RegistryID != "AKC" || a.RegistryNumber != "WS123456" {
		t.Fatalf("unexpected registry normalization: %s %s", a.RegistryID, a.RegistryNumber)
	}
	if a.CreatedAt != now {
		t.Fatalf("expected CreatedAt to be now")
	}
}

func TestService_Create_RetriesOnGAIDCollision(t *testing.T) {
	repo := newTestRepo()
	repo.createErrs = []error{apperr.Conflict("gaid taken"), apperr.Conflict("gaid taken")}
	svc := NewService(repo, nil)

	a, err := svc.Create(context.Background(), "kennel-a", CreateInput{Name: "Luna", Sex: "FEMALE"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, ok := repo.byID[a.ID]; !ok {
		t.Fatalf("expected animal stored after retries")
	}
}

func TestService_Create_RejectsBadSex(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	_, err := svc.Create(context.Background(), "kennel-a", CreateInput{Name: "X", Sex: "unknown"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_Get_OtherTenantIsDenied(t *testing.T) {
	repo := newTestRepo()
	seed(repo, "a1", "kennel-a", SexMale)
	svc := NewService(repo, nil)

	if _, err := svc.Get(context.Background(), "kennel-b", "a1"); !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestService_SetParents_AssignsAndPurges(t *testing.T) {
	repo := newTestRepo()
	seed(repo, "pup", "kennel-a", SexFemale)
	seed(repo, "sire", "kennel-a", SexMale)
	seed(repo, "dam", "kennel-a", SexFemale)

	svc := NewService(repo, nil)
	p := &countingPurger{}
	svc.SetPurger(p)

	a, err := svc.SetParents(context.Background(), "kennel-a", "pup", ParentsInput{
		SireID: strp("sire"),
		DamID:  strp("dam"),
	})
	if err != nil {
		t.Fatalf("SetParents error: %v", err)
	}
	if a.SireID == nil || *a.SireID != "sire" || a.DamID == nil || *a.DamID != "dam" {
		t.Fatalf("expected both parents set, got %+v", a)
	}
	if p.n != 1 {
		t.Fatalf("expected one purge, got %d", p.n)
	}

	// "" limpia, nil no toca.
	a, err = svc.SetParents(context.Background(), "kennel-a", "pup", ParentsInput{SireID: strp("")})
	if err != nil {
		t.Fatalf("SetParents clear error: %v", err)
	}
	if a.SireID != nil {
		t.Fatalf("expected sire cleared")
	}
	if a.DamID == nil || *a.DamID != "dam" {
		t.Fatalf("expected dam untouched")
	}
}

func TestService_SetParents_SexMismatchIsValidation(t *testing.T) {
	repo := newTestRepo()
	seed(repo, "pup", "kennel-a", SexMale)
	seed(repo, "female", "kennel-a", SexFemale)
	svc := NewService(repo, nil)

	_, err := svc.SetParents(context.Background(), "kennel-a", "pup", ParentsInput{SireID: strp("female")})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error assigning a female as sire, got %v", err)
	}
}

func TestService_SetParents_RequiresOwnership(t *testing.T) {
	repo := newTestRepo()
	seed(repo, "pup", "kennel-a", SexMale)
	seed(repo, "sire", "kennel-b", SexMale)
	svc := NewService(repo, nil)

	_, err := svc.SetParents(context.Background(), "kennel-b", "pup", ParentsInput{SireID: strp("sire")})
	if !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected permission denied on foreign animal, got %v", err)
	}

	_, err = svc.SetParents(context.Background(), "kennel-a", "pup", ParentsInput{SireID: strp("sire")})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error on cross-tenant local edge, got %v", err)
	}
}

func TestService_SetParents_RejectsCycle(t *testing.T) {
	repo := newTestRepo()
	seed(repo, "grand", "kennel-a", SexMale)
	seed(repo, "father", "kennel-a", SexMale)
	seed(repo, "son", "kennel-a", SexMale)
	svc := NewService(repo, nil)
	ctx := context.Background()

	if _, err := svc.SetParents(ctx, "kennel-a", "father", ParentsInput{SireID: strp("grand")}); err != nil {
		t.Fatalf("setup error: %v", err)
	}
	if _, err := svc.SetParents(ctx, "kennel-a", "son", ParentsInput{SireID: strp("father")}); err != nil {
		t.Fatalf("setup error: %v", err)
	}

	// grand <- son cerraría el ciclo grand -> father -> son -> grand.
	_, err := svc.SetParents(ctx, "kennel-a", "grand", ParentsInput{SireID: strp("son")})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict on ancestry cycle, got %v", err)
	}

	_, err = svc.SetParents(ctx, "kennel-a", "son", ParentsInput{SireID: strp("son")})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict on self parent, got %v", err)
	}
}

func TestService_SetParents_SlotTakenByCrossTenantLink(t *testing.T) {
	repo := newTestRepo()
	seed(repo, "pup", "kennel-a", SexMale)
	seed(repo, "sire", "kennel-a", SexMale)
	svc := NewService(repo, nil)
	svc.SetExternalEdges(fakeEdges{"pup|SIRE": "remote-sire"})

	_, err := svc.SetParents(context.Background(), "kennel-a", "pup", ParentsInput{SireID: strp("sire")})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict with active cross-tenant sire, got %v", err)
	}
}

func TestService_IsAncestor_FollowsExternalEdges(t *testing.T) {
	repo := newTestRepo()
	seed(repo, "pup", "kennel-a", SexMale)
	seed(repo, "remote-sire", "kennel-b", SexMale)
	seed(repo, "remote-grand", "kennel-b", SexMale)
	repo.byID["remote-sire"] = Animal{ID: "remote-sire", TenantID: "kennel-b", Sex: SexMale, SireID: strp("remote-grand")}

	svc := NewService(repo, nil)
	svc.SetExternalEdges(fakeEdges{"pup|SIRE": "remote-sire"})

	ok, err := svc.IsAncestor(context.Background(), "remote-grand", "pup")
	if err != nil {
		t.Fatalf("IsAncestor error: %v", err)
	}
	if !ok {
		t.Fatalf("expected remote-grand to be an ancestor of pup")
	}

	ok, _ = svc.IsAncestor(context.Background(), "pup", "remote-grand")
	if ok {
		t.Fatalf("pup must not be an ancestor of remote-grand")
	}
}

func TestGAID_NormalizeAndValidate(t *testing.T) {
	g, err := NewGAID()
	if err != nil {
		t.Fatalf("NewGAID error: %v", err)
	}
	if !ValidGAID(g) {
		t.Fatalf("generated GAID invalid: %s", g)
	}

	body := g[len("GAID-"):]
	if got := NormalizeGAID(" " + body + " "); got != g {
		t.Fatalf("expected prefix restored, got %q", got)
	}
	if ValidGAID("GAID-ILOU00000000") {
		t.Fatalf("ambiguous symbols must be rejected")
	}
}
