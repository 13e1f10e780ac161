package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"pedigree-registry/internal/domain/animals"
	"pedigree-registry/internal/domain/links"
	"pedigree-registry/internal/domain/matching"
	"pedigree-registry/internal/platform/apperr"
)

func pending(id, target string, now time.Time) links.LinkRequest {
	return links.LinkRequest{
		ID:                 id,
		RequestingTenantID: "kennel-a",
		SourceAnimalID:     "pup",
		RelationshipType:   animals.ParentSire,
		TargetAnimalID:     target,
		TargetTenantID:     "kennel-b",
		Status:             links.RequestPending,
		CreatedAt:          now,
		ExpiresAt:          now.Add(time.Hour),
	}
}

func TestLinkRepo_ConcurrentApprovalsYieldOneActiveLink(t *testing.T) {
	repo := NewLinkRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	const n = 8
	for i := 0; i < n; i++ {
		if err := repo.CreateRequest(ctx, pending(fmt.Sprintf("req-%d", i), fmt.Sprintf("stud-%d", i), now)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req, _ := repo.GetRequest(ctx, fmt.Sprintf("req-%d", i))
			req.Status = links.RequestApproved
			link := links.CrossTenantLink{
				ID:             fmt.Sprintf("link-%d", i),
				SourceAnimalID: req.SourceAnimalID,
				TargetAnimalID: req.TargetAnimalID,
				ParentType:     req.RelationshipType,
				Status:         links.LinkActive,
			}
			err := repo.Approve(ctx, req, link)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, apperr.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if wins != 1 || conflicts != n-1 {
		t.Fatalf("expected 1 win and %d conflicts, got %d / %d", n-1, wins, conflicts)
	}
	if _, ok, _ := repo.GetActiveLink(ctx, "pup", animals.ParentSire); !ok {
		t.Fatalf("expected an active link")
	}
}

func TestLinkRepo_RevokeTwiceIsConflict(t *testing.T) {
	repo := NewLinkRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	req := pending("req-1", "stud", now)
	_ = repo.CreateRequest(ctx, req)
	req.Status = links.RequestApproved
	if err := repo.Approve(ctx, req, links.CrossTenantLink{ID: "l1", SourceAnimalID: "pup", ParentType: animals.ParentSire, Status: links.LinkActive}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if _, err := repo.RevokeLink(ctx, "l1", now, "typo", "kennel-a"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := repo.RevokeLink(ctx, "l1", now, "again", "kennel-a"); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, ok, _ := repo.GetActiveLink(ctx, "pup", animals.ParentSire); ok {
		t.Fatalf("revoked link still active")
	}
}

func TestLinkRepo_ExpirePending(t *testing.T) {
	repo := NewLinkRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	_ = repo.CreateRequest(ctx, pending("old", "stud", now.Add(-2*time.Hour)))
	_ = repo.CreateRequest(ctx, pending("fresh", "stud2", now))

	expired, err := repo.ExpirePending(ctx, now)
	if err != nil {
		t.Fatalf("expire: %v", err)
	}
	if len(expired) != 1 || expired[0].ID != "old" {
		t.Fatalf("unexpected expired set: %+v", expired)
	}

	got, _ := repo.GetRequest(ctx, "old")
	if got.Status != links.RequestExpired {
		t.Fatalf("status = %s", got.Status)
	}
	if err := repo.ResolveRequest(ctx, got); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict resolving an expired request, got %v", err)
	}
}

func TestCodeRepo_ConsumeOnce(t *testing.T) {
	repo := NewCodeRepo()
	ctx := context.Background()
	now := time.Now().UTC()

	c := matching.ExchangeCode{ID: "c1", AnimalID: "stud", CodeHash: "h1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, matching.ExchangeCode{ID: "c2", CodeHash: "h1"}); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict on duplicate hash, got %v", err)
	}

	var wg sync.WaitGroup
	results := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Consume(ctx, "c1", "kennel-a", now)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	ok := 0
	for err := range results {
		if err == nil {
			ok++
		} else if !errors.Is(err, apperr.ErrExpired) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("expected exactly one consumption, got %d", ok)
	}
}
