package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"pet-foster-homes/internal/domain/stayrequests"
)

func seedPending(t *testing.T, repo stayrequests.Repository, id string) {
	t.Helper()
	err := repo.Create(context.Background(), stayrequests.StayRequest{
		ID:         id,
		HomeID:     "home-1",
		HostEmail:  "host@x.com",
		TutorEmail: "tutor@x.com",
		PetName:    "Rex",
		PetType:    stayrequests.PetTypeDog,
		Status:     stayrequests.StatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		t.Fatalf("seed error: %v", err)
	}
}

// Muchas decisiones en carrera sobre el mismo request pending: gana
// exactamente una, el resto ve ErrBadState.
func TestUpdateStatusIfPending_Race(t *testing.T) {
	repo := NewStayRequestsRepo()
	seedPending(t, repo, "req-1")

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			status := stayrequests.StatusApproved
			if i%2 == 1 {
				status = stayrequests.StatusRejected
			}
			errs[i] = repo.UpdateStatusIfPending(context.Background(), "req-1", status, time.Now())
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		switch err {
		case nil:
			wins++
		case stayrequests.ErrBadState:
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning write, got %d", wins)
	}

	sr, err := repo.GetByID(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if sr.Status == stayrequests.StatusPending {
		t.Fatalf("status must have left pending")
	}
}

func TestDeleteIfPending_StateErrors(t *testing.T) {
	repo := NewStayRequestsRepo()
	seedPending(t, repo, "req-1")

	if err := repo.UpdateStatusIfPending(context.Background(), "req-1", stayrequests.StatusApproved, time.Now()); err != nil {
		t.Fatalf("approve error: %v", err)
	}
	if err := repo.DeleteIfPending(context.Background(), "req-1"); err != stayrequests.ErrBadState {
		t.Fatalf("expected ErrBadState deleting approved, got %v", err)
	}
	if err := repo.DeleteIfPending(context.Background(), "ghost"); err != stayrequests.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	seedPending(t, repo, "req-2")
	if err := repo.DeleteIfPending(context.Background(), "req-2"); err != nil {
		t.Fatalf("delete pending error: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "req-2"); err != stayrequests.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
