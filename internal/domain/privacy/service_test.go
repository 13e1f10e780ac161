package privacy

import (
	"context"
	"errors"
	"testing"
	"time"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/platform/apperr"
)

type testRepo struct {
	byAnimal map[string]Settings
}

func newTestRepo() *testRepo {
	return &testRepo{byAnimal: map[string]Settings{}}
}

func (r *testRepo) Get(ctx context.Context, animalID string) (Settings, error) {
	s, ok := r.byAnimal[animalID]
	if !ok {
		return Settings{}, apperr.NotFound("settings for %s not found", animalID)
	}
	return s, nil
}

func (r *testRepo) Upsert(ctx context.Context, s Settings) error {
	r.byAnimal[s.AnimalID] = s
	return nil
}

type lookup map[string]animals.Animal

func (l lookup) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	a, ok := l[id]
	if !ok {
		return animals.Animal{}, apperr.NotFound("animal %s not found", id)
	}
	return a, nil
}

type countingPurger struct{ n int }

func (c *countingPurger) Purge(context.Context) error { c.n++; return nil }

func boolp(b bool) *bool { return &b }

func TestService_Settings_DefaultsWhenMissing(t *testing.T) {
	svc := NewService(newTestRepo(), lookup{}, nil)

	st, err := svc.Settings(context.Background(), "a1")
	if err != nil {
		t.Fatalf("Settings error: %v", err)
	}
	if st.AllowCrossTenantMatching {
		t.Fatalf("matching must be disabled by default")
	}
	if !st.ShowName || !st.ShowPhoto || !st.ShowBreeder || !st.ShowTitles {
		t.Fatalf("expected name/photo/breeder/titles visible by default: %+v", st)
	}
	if st.ShowFullBirthDate || st.ShowFullRegistryNumber || st.ShareHealth || st.ShareGenetics {
		t.Fatalf("expected restrictive defaults: %+v", st)
	}
}

func TestService_Update_OwnerOnly_AndPurges(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, lookup{"a1": {ID: "a1", TenantID: "kennel-a"}}, nil)
	p := &countingPurger{}
	svc.SetPurger(p)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.Update(context.Background(), "kennel-b", "a1", Patch{AllowCrossTenantMatching: boolp(true)})
	if !errors.Is(err, apperr.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for non-owner, got %v", err)
	}

	st, err := svc.Update(context.Background(), "kennel-a", "a1", Patch{AllowCrossTenantMatching: boolp(true), ShowName: boolp(false)})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !st.AllowCrossTenantMatching || st.ShowName {
		t.Fatalf("patch not applied: %+v", st)
	}
	if !st.ShowPhoto {
		t.Fatalf("untouched flag must keep its default")
	}
	if st.UpdatedAt != now {
		t.Fatalf("expected UpdatedAt = now")
	}
	if p.n != 1 {
		t.Fatalf("expected cache purge, got %d", p.n)
	}

	ok, _ := svc.Discoverable(context.Background(), "a1")
	if !ok {
		t.Fatalf("expected a1 discoverable after update")
	}
}

func TestService_Update_EmptyPatchIsValidation(t *testing.T) {
	svc := NewService(newTestRepo(), lookup{"a1": {ID: "a1", TenantID: "kennel-a"}}, nil)

	_, err := svc.Update(context.Background(), "kennel-a", "a1", Patch{})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRedact(t *testing.T) {
	bd := time.Date(2021, 5, 17, 0, 0, 0, 0, time.UTC)
	a := animals.Animal{
		ID:              "a1",
		TenantID:        "kennel-a",
		Name:            "Rex",
		Sex:             animals.SexMale,
		BirthDate:       &bd,
		RegistryID:      "AKC",
		RegistryNumber:  "WS12345678",
		BreederName:     "Casa Rex",
		Titles:          []animals.Title{{Code: "CH", Name: "Champion", Detail: "2023 Nationals"}},
		HealthSummary:   "OFA good",
		GeneticsSummary: "clear",
	}

	t.Run("owner sees everything", func(t *testing.T) {
		v := Redact(a, Settings{}, "kennel-a")
		if v.Blocked || v.Name != "Rex" || v.RegistryNumber != "WS12345678" || v.HealthSummary == "" {
			t.Fatalf("owner view redacted: %+v", v)
		}
	})

	t.Run("matching disabled blocks", func(t *testing.T) {
		v := Redact(a, Defaults("a1"), "kennel-b")
		if !v.Blocked {
			t.Fatalf("expected blocked view")
		}
		if v.AnimalID != "" || v.Name != "" || v.GAID != "" {
			t.Fatalf("blocked view must not carry identity: %+v", v)
		}
		if v.Sex != animals.SexMale {
			t.Fatalf("blocked view keeps sex")
		}
	})

	t.Run("defaults truncate", func(t *testing.T) {
		s := Defaults("a1")
		s.AllowCrossTenantMatching = true
		v := Redact(a, s, "kennel-b")
		if v.BirthDate != nil || v.BirthYear != 2021 {
			t.Fatalf("expected year only, got %v / %d", v.BirthDate, v.BirthYear)
		}
		if v.RegistryNumber != "****5678" {
			t.Fatalf("expected last 4, got %q", v.RegistryNumber)
		}
		if len(v.Titles) != 1 || v.Titles[0].Detail != "" {
			t.Fatalf("expected title without detail, got %+v", v.Titles)
		}
		if v.HealthSummary != "" || v.GeneticsSummary != "" {
			t.Fatalf("health/genetics must not be shared by default")
		}
	})

	t.Run("does not mutate the record", func(t *testing.T) {
		s := Defaults("a1")
		s.AllowCrossTenantMatching = true
		_ = Redact(a, s, "kennel-b")
		if a.Titles[0].Detail != "2023 Nationals" {
			t.Fatalf("record mutated by Redact")
		}
	})
}
