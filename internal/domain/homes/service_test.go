package homes

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Home
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Home{}}
}

func (r *testRepo) Create(ctx context.Context, h Home) error {
	if h.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[h.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[h.ID] = h
	return nil
}

func (r *testRepo) Update(ctx context.Context, h Home) error {
	if _, ok := r.byID[h.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[h.ID] = h
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Home, error) {
	h, ok := r.byID[id]
	if !ok {
		return Home{}, errRepoNotFound
	}
	return h, nil
}

func (r *testRepo) ListActive(ctx context.Context) ([]Home, error) {
	out := make([]Home, 0)
	for _, h := range r.byID {
		if h.Active {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *testRepo) ListByCity(ctx context.Context, city string) ([]Home, error) {
	out := make([]Home, 0)
	for _, h := range r.byID {
		if h.City == city {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *testRepo) ListByHost(ctx context.Context, hostEmail string) ([]Home, error) {
	out := make([]Home, 0)
	for _, h := range r.byID {
		if h.HostEmail == hostEmail {
			out = append(out, h)
		}
	}
	return out, nil
}

func validCreateInput() CreateInput {
	return CreateInput{
		HostName:     "Helena",
		Address:      "Rua das Flores 123",
		City:         "Curitiba",
		State:        "pr",
		Capacity:     2,
		HasYard:      true,
		AvailableFor: []string{AcceptsDogs, AcceptsCats},
	}
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// -------------------------
// Tests
// -------------------------

func TestCreate_SetsDefaults(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	h, err := svc.Create(context.Background(), "H@X.com", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if h.ID == "" {
		t.Fatalf("expected id assigned")
	}
	if !h.Active {
		t.Fatalf("expected home to start active")
	}
	if h.HostEmail != "h@x.com" {
		t.Fatalf("expected normalized host email, got %q", h.HostEmail)
	}
	if h.State != "PR" {
		t.Fatalf("expected uppercased state, got %q", h.State)
	}
	if h.CreatedAt != now || h.UpdatedAt != now {
		t.Fatalf("expected timestamps = now")
	}
}

func TestCreate_CapacityBounds(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	for _, capacity := range []int{0, -1, 21, 100} {
		in := validCreateInput()
		in.Capacity = capacity
		if _, err := svc.Create(context.Background(), "h@x.com", in); err != ErrInvalidInput {
			t.Fatalf("capacity=%d: expected ErrInvalidInput, got %v", capacity, err)
		}
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected no homes created")
	}

	for _, capacity := range []int{1, 20} {
		in := validCreateInput()
		in.Capacity = capacity
		if _, err := svc.Create(context.Background(), "h@x.com", in); err != nil {
			t.Fatalf("capacity=%d: unexpected error %v", capacity, err)
		}
	}
}

func TestCreate_RequiresAvailableFor(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	in := validCreateInput()
	in.AvailableFor = []string{"  ", ""}
	if _, err := svc.Create(context.Background(), "h@x.com", in); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty availableFor, got %v", err)
	}
}

func TestUpdate_OwnershipIsCaseInsensitive(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	h, err := svc.Create(context.Background(), "h@x.com", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.Update(context.Background(), h.ID, "H@X.COM", UpdateInput{
		Description: strPtr("quintal grande"),
	}); err != nil {
		t.Fatalf("owner (case-insensitive) should edit: %v", err)
	}
}

func TestUpdate_ForbiddenLeavesRecordUnchanged(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	h, err := svc.Create(context.Background(), "h@x.com", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	_, err = svc.Update(context.Background(), h.ID, "intruder@x.com", UpdateInput{
		Capacity: intPtr(5),
	})
	if err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	stored := repo.byID[h.ID]
	if stored.Capacity != 2 {
		t.Fatalf("record must be unchanged after forbidden edit, capacity=%d", stored.Capacity)
	}
}

func TestUpdate_PartialKeepsOmittedFields(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now1 := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	now2 := now1.Add(time.Hour)
	svc.now = func() time.Time { return now1 }

	h, err := svc.Create(context.Background(), "h@x.com", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	svc.now = func() time.Time { return now2 }
	updated, err := svc.Update(context.Background(), h.ID, "h@x.com", UpdateInput{
		Capacity: intPtr(3),
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if updated.Capacity != 3 {
		t.Fatalf("expected capacity updated, got %d", updated.Capacity)
	}
	if updated.Address != h.Address || updated.City != h.City || len(updated.AvailableFor) != 2 {
		t.Fatalf("omitted fields must keep prior values: %#v", updated)
	}
	if updated.UpdatedAt != now2 || updated.CreatedAt != now1 {
		t.Fatalf("expected UpdatedAt bumped, CreatedAt untouched")
	}
}

func TestUpdate_CapacityBoundHoldsOnEdit(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	h, err := svc.Create(context.Background(), "h@x.com", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.Update(context.Background(), h.ID, "h@x.com", UpdateInput{
		Capacity: intPtr(21),
	}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for capacity 21 on edit, got %v", err)
	}
	if repo.byID[h.ID].Capacity != 2 {
		t.Fatalf("record must be unchanged after invalid edit")
	}
}

func TestToggleActive(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	h, err := svc.Create(context.Background(), "h@x.com", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.ToggleActive(context.Background(), h.ID, "other@x.com"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner toggle, got %v", err)
	}

	off, err := svc.ToggleActive(context.Background(), h.ID, "h@x.com")
	if err != nil {
		t.Fatalf("ToggleActive error: %v", err)
	}
	if off.Active {
		t.Fatalf("expected inactive after toggle")
	}

	// Desactivado desaparece del listado, pero sigue en la vista del host.
	active, _ := svc.ListActive(context.Background(), "")
	if len(active) != 0 {
		t.Fatalf("inactive home must be hidden from discovery")
	}
	mine, _ := svc.ListByHost(context.Background(), "h@x.com")
	if len(mine) != 1 {
		t.Fatalf("inactive home must still show for its host")
	}

	on, err := svc.ToggleActive(context.Background(), h.ID, "h@x.com")
	if err != nil {
		t.Fatalf("ToggleActive #2 error: %v", err)
	}
	if !on.Active {
		t.Fatalf("expected active after second toggle")
	}
}

func TestListCities_DistinctActiveSorted(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	for _, city := range []string{"Curitiba", "Belo Horizonte", "Curitiba"} {
		in := validCreateInput()
		in.City = city
		if _, err := svc.Create(context.Background(), "h@x.com", in); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}
	in := validCreateInput()
	in.City = "Recife"
	hidden, err := svc.Create(context.Background(), "h@x.com", in)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := svc.ToggleActive(context.Background(), hidden.ID, "h@x.com"); err != nil {
		t.Fatalf("ToggleActive error: %v", err)
	}

	cities, err := svc.ListCities(context.Background())
	if err != nil {
		t.Fatalf("ListCities error: %v", err)
	}
	want := []string{"Belo Horizonte", "Curitiba"}
	if len(cities) != len(want) || cities[0] != want[0] || cities[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, cities)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.GetByID(context.Background(), "stale-id"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
