package pedigree

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/platform/apperr"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gen  int64
	sets int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Version(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *mapCache) Set(_ context.Context, version int64, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version != c.gen {
		return nil
	}
	c.data[key] = value
	c.sets++
	return nil
}

func (c *mapCache) Purge(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = map[string][]byte{}
	c.gen++
	return nil
}

func newServiceFixture(t *testing.T) (*fixture, *Service, *mapCache) {
	t.Helper()
	f := newFixture(t, nil)
	f.add(animal("fs", "kennel-a", animals.SexMale, "gs", "gd"))
	f.add(animal("fd", "kennel-a", animals.SexFemale, "gs", "gd"))
	f.add(animal("inbred", "kennel-a", animals.SexMale, "fs", "fd"))

	c := newMapCache()
	return f, NewService(f.resolver, c, DefaultRiskBands(), time.Minute, nil), c
}

func TestService_ComputeCOI_CachesPerViewerUntilPurge(t *testing.T) {
	f, svc, c := newServiceFixture(t)
	ctx := context.Background()

	res, err := svc.ComputeCOI(ctx, "kennel-a", "inbred", 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, res.Coefficient, 1e-12)
	assert.Equal(t, RiskCritical, res.RiskLevel)
	assert.Equal(t, 1, c.sets)
	_, ok, _ := c.Get(ctx, "coi:inbred:3:kennel-a")
	assert.True(t, ok)

	// fd deja de compartir abuelos: sin purge el resultado sigue cacheado.
	f.add(animal("fd", "kennel-a", animals.SexFemale, "", ""))
	res, err = svc.ComputeCOI(ctx, "kennel-a", "inbred", 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, res.Coefficient, 1e-12)
	require.Len(t, res.CommonAncestors, 2)

	require.NoError(t, c.Purge(ctx))
	res, err = svc.ComputeCOI(ctx, "kennel-a", "inbred", 3)
	require.NoError(t, err)
	assert.Zero(t, res.Coefficient)
	assert.Equal(t, RiskLow, res.RiskLevel)
}

func TestService_ComputeCOI_PurgeDuringResolveIsNotCached(t *testing.T) {
	f, svc, c := newServiceFixture(t)
	ctx := context.Background()

	// Mientras se lee gd, otro request quita el sire de inbred y purga.
	var once sync.Once
	f.animals.setHook(func(id string) {
		if id != "gd" {
			return
		}
		once.Do(func() {
			f.add(animal("inbred", "kennel-a", animals.SexMale, "", "fd"))
			assert.NoError(t, c.Purge(ctx))
		})
	})

	res, err := svc.ComputeCOI(ctx, "kennel-a", "inbred", 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, res.Coefficient, 1e-12)
	assert.Zero(t, c.sets)

	res, err = svc.ComputeCOI(ctx, "kennel-a", "inbred", 3)
	require.NoError(t, err)
	assert.Zero(t, res.Coefficient)
	assert.Equal(t, RiskLow, res.RiskLevel)
	assert.Equal(t, 1, c.sets)
}

func TestService_ComputeCOI_Errors(t *testing.T) {
	_, svc, _ := newServiceFixture(t)
	ctx := context.Background()

	_, err := svc.ComputeCOI(ctx, "kennel-a", "missing", 3)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.ComputeCOI(ctx, "kennel-c", "bgs", 3)
	assert.ErrorIs(t, err, apperr.ErrPrivacyBlocked)

	_, err = svc.ComputeCOI(ctx, "kennel-a", "inbred", 99)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestService_TrialMating(t *testing.T) {
	_, svc, _ := newServiceFixture(t)
	ctx := context.Background()

	res, err := svc.ComputeTrialMating(ctx, "kennel-a", "fs", "fd", 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, res.Coefficient, 1e-12)
	assert.Equal(t, 3, res.GenerationsAnalyzed)
	require.Len(t, res.CommonAncestors, 2)

	// Con una sola generación sólo entran los progenitores.
	res, err = svc.ComputeTrialMating(ctx, "kennel-a", "fs", "fd", 1)
	require.NoError(t, err)
	assert.Zero(t, res.Coefficient)

	// Cruza con la madre compartida de kennel-b.
	res, err = svc.ComputeTrialMating(ctx, "kennel-a", "sire", "dam-b", 3)
	require.NoError(t, err)
	assert.Zero(t, res.Coefficient)
	assert.Equal(t, 1, res.UnknownAncestors)
}

func TestService_TrialMating_Validation(t *testing.T) {
	_, svc, _ := newServiceFixture(t)
	ctx := context.Background()

	_, err := svc.ComputeTrialMating(ctx, "kennel-a", "fd", "fs", 3)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.ComputeTrialMating(ctx, "kennel-a", "fs", "fs", 3)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.ComputeTrialMating(ctx, "kennel-a", "", "fd", 3)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.ComputeTrialMating(ctx, "kennel-c", "bgs", "dam-b", 3)
	assert.ErrorIs(t, err, apperr.ErrPrivacyBlocked)
}
