package stayrequests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pet-foster-homes/internal/domain/homes"
)

// -------------------------
// Test doubles
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

// testRepo replica la semántica CAS del store real: el check de pending
// y el write pasan bajo el mismo lock.
type testRepo struct {
	mu   sync.Mutex
	byID map[string]StayRequest
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]StayRequest{}}
}

func (r *testRepo) Create(ctx context.Context, sr StayRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[sr.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[sr.ID] = sr
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (StayRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sr, ok := r.byID[id]
	if !ok {
		return StayRequest{}, errRepoNotFound
	}
	return sr, nil
}

func (r *testRepo) ListByEmail(ctx context.Context, email string) ([]StayRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]StayRequest, 0)
	for _, sr := range r.byID {
		if sr.TutorEmail == email || sr.HostEmail == email {
			out = append(out, sr)
		}
	}
	return out, nil
}

func (r *testRepo) UpdateStatusIfPending(ctx context.Context, id string, status Status, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sr, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if sr.Status != StatusPending {
		return ErrBadState
	}
	sr.Status = status
	sr.UpdatedAt = updatedAt
	r.byID[id] = sr
	return nil
}

func (r *testRepo) DeleteIfPending(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sr, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if sr.Status != StatusPending {
		return ErrBadState
	}
	delete(r.byID, id)
	return nil
}

type testHomes struct {
	byID map[string]homes.Home
}

func (h *testHomes) GetByID(ctx context.Context, id string) (homes.Home, error) {
	home, ok := h.byID[id]
	if !ok {
		return homes.Home{}, homes.ErrNotFound
	}
	return home, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []StayRequest
}

func (n *recordingNotifier) StatusChanged(ctx context.Context, sr StayRequest) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, sr)
}

func newFixture() (*Service, *testRepo) {
	repo := newTestRepo()
	lookup := &testHomes{byID: map[string]homes.Home{
		"home-1": {ID: "home-1", HostEmail: "host@x.com", Active: true},
	}}
	return NewService(repo, lookup), repo
}

func validCreateInput() CreateInput {
	return CreateInput{
		HomeID:    "home-1",
		TutorName: "Ana",
		PetName:   "Rex",
		PetType:   "dog",
		Duration:  "7 dias",
	}
}

func mustCreate(t *testing.T, svc *Service) StayRequest {
	t.Helper()
	sr, err := svc.Create(context.Background(), "tutor@x.com", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	return sr
}

// -------------------------
// Tests
// -------------------------

func TestCreate_SnapshotsHostEmail(t *testing.T) {
	svc, _ := newFixture()

	sr := mustCreate(t, svc)
	if sr.HostEmail != "host@x.com" {
		t.Fatalf("expected host snapshot, got %q", sr.HostEmail)
	}
	if sr.Status != StatusPending {
		t.Fatalf("expected pending, got %q", sr.Status)
	}
	if sr.TutorEmail != "tutor@x.com" {
		t.Fatalf("expected tutor email, got %q", sr.TutorEmail)
	}
}

func TestCreate_UnknownHome(t *testing.T) {
	svc, repo := newFixture()

	in := validCreateInput()
	in.HomeID = "gone"
	if _, err := svc.Create(context.Background(), "tutor@x.com", in); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for stale home id, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestCreate_InvalidPetType(t *testing.T) {
	svc, _ := newFixture()

	for _, petType := range []string{"", "bird", "hamster"} {
		in := validCreateInput()
		in.PetType = petType
		if _, err := svc.Create(context.Background(), "tutor@x.com", in); err != ErrInvalidInput {
			t.Fatalf("petType=%q: expected ErrInvalidInput, got %v", petType, err)
		}
	}

	// Case-insensitive: "Dog" vale.
	in := validCreateInput()
	in.PetType = "Dog"
	sr, err := svc.Create(context.Background(), "tutor@x.com", in)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if sr.PetType != PetTypeDog {
		t.Fatalf("expected normalized pet type, got %q", sr.PetType)
	}
}

func TestApprove_OnlySnapshottedHost(t *testing.T) {
	svc, _ := newFixture()
	sr := mustCreate(t, svc)

	if _, err := svc.Approve(context.Background(), sr.ID, "tutor@x.com"); err != ErrForbidden {
		t.Fatalf("tutor must not approve, got %v", err)
	}
	if _, err := svc.Approve(context.Background(), sr.ID, "other@x.com"); err != ErrForbidden {
		t.Fatalf("stranger must not approve, got %v", err)
	}

	approved, err := svc.Approve(context.Background(), sr.ID, "HOST@x.com")
	if err != nil {
		t.Fatalf("host approve error: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Fatalf("expected approved, got %q", approved.Status)
	}
}

func TestDecide_TerminalStatesStayPut(t *testing.T) {
	svc, _ := newFixture()
	sr := mustCreate(t, svc)

	if _, err := svc.Reject(context.Background(), sr.ID, "host@x.com"); err != nil {
		t.Fatalf("reject error: %v", err)
	}

	// Rejected es terminal: ni approve, ni re-reject, ni cancel.
	if _, err := svc.Approve(context.Background(), sr.ID, "host@x.com"); err != ErrBadState {
		t.Fatalf("expected ErrBadState approving rejected, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), sr.ID, "host@x.com"); err != ErrBadState {
		t.Fatalf("expected ErrBadState re-rejecting, got %v", err)
	}
	if err := svc.Cancel(context.Background(), sr.ID, "tutor@x.com"); err != ErrBadState {
		t.Fatalf("expected ErrBadState canceling rejected, got %v", err)
	}

	got, err := svc.GetByID(context.Background(), sr.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Status != StatusRejected {
		t.Fatalf("status must stay rejected, got %q", got.Status)
	}
}

func TestCancel_PendingOnly_HardDelete(t *testing.T) {
	svc, repo := newFixture()
	sr := mustCreate(t, svc)

	if err := svc.Cancel(context.Background(), sr.ID, "host@x.com"); err != ErrForbidden {
		t.Fatalf("host must not cancel, got %v", err)
	}

	if err := svc.Cancel(context.Background(), sr.ID, "TUTOR@x.com"); err != nil {
		t.Fatalf("tutor cancel error: %v", err)
	}
	if _, ok := repo.byID[sr.ID]; ok {
		t.Fatalf("cancel must hard-delete the record")
	}
	if _, err := svc.GetByID(context.Background(), sr.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after cancel, got %v", err)
	}

	// Cancelar de nuevo es 404, no 409.
	if err := svc.Cancel(context.Background(), sr.ID, "tutor@x.com"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on double cancel, got %v", err)
	}
}

func TestConcurrentDecisions_ExactlyOneWins(t *testing.T) {
	svc, _ := newFixture()
	sr := mustCreate(t, svc)

	var wg sync.WaitGroup
	results := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, results[0] = svc.Approve(context.Background(), sr.ID, "host@x.com")
	}()
	go func() {
		defer wg.Done()
		_, results[1] = svc.Reject(context.Background(), sr.ID, "host@x.com")
	}()
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch err {
		case nil:
			wins++
		case ErrBadState:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one winner, got wins=%d conflicts=%d", wins, conflicts)
	}

	got, err := svc.GetByID(context.Background(), sr.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Status != StatusApproved && got.Status != StatusRejected {
		t.Fatalf("expected a terminal status, got %q", got.Status)
	}
}

func TestNotifier_FiresOnDecision(t *testing.T) {
	repo := newTestRepo()
	lookup := &testHomes{byID: map[string]homes.Home{
		"home-1": {ID: "home-1", HostEmail: "host@x.com", Active: true},
	}}
	notifier := &recordingNotifier{}
	svc := NewService(repo, lookup).WithNotifier(notifier)

	sr := mustCreate(t, svc)
	if len(notifier.calls) != 0 {
		t.Fatalf("create must not notify")
	}

	if _, err := svc.Approve(context.Background(), sr.ID, "host@x.com"); err != nil {
		t.Fatalf("approve error: %v", err)
	}
	if len(notifier.calls) != 1 || notifier.calls[0].Status != StatusApproved {
		t.Fatalf("expected one approved notification, got %#v", notifier.calls)
	}
}

func TestListByEmail_MatchesBothRoles(t *testing.T) {
	svc, _ := newFixture()
	sr := mustCreate(t, svc)

	asTutor, err := svc.ListByEmail(context.Background(), "Tutor@X.com")
	if err != nil {
		t.Fatalf("ListByEmail error: %v", err)
	}
	asHost, err := svc.ListByEmail(context.Background(), "host@x.com")
	if err != nil {
		t.Fatalf("ListByEmail error: %v", err)
	}
	if len(asTutor) != 1 || asTutor[0].ID != sr.ID {
		t.Fatalf("expected tutor view to include the request")
	}
	if len(asHost) != 1 || asHost[0].ID != sr.ID {
		t.Fatalf("expected host view to include the request")
	}
}
