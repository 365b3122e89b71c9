package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-foster-homes/internal/domain/stayrequests"
)

type stayRequestsRepo struct {
	mu   sync.Mutex
	byID map[string]stayrequests.StayRequest
}

func NewStayRequestsRepo() stayrequests.Repository {
	return &stayRequestsRepo{
		byID: make(map[string]stayrequests.StayRequest),
	}
}

func (r *stayRequestsRepo) Create(ctx context.Context, sr stayrequests.StayRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(sr.ID) == "" {
		return errors.New("request id required")
	}
	if _, exists := r.byID[sr.ID]; exists {
		return errors.New("request already exists")
	}
	r.byID[sr.ID] = sr
	return nil
}

func (r *stayRequestsRepo) GetByID(ctx context.Context, id string) (stayrequests.StayRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sr, ok := r.byID[id]
	if !ok {
		return stayrequests.StayRequest{}, stayrequests.ErrNotFound
	}
	return sr, nil
}

func (r *stayRequestsRepo) ListByEmail(ctx context.Context, email string) ([]stayrequests.StayRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]stayrequests.StayRequest, 0)
	for _, sr := range r.byID {
		if sr.HostEmail == email || sr.TutorEmail == email {
			out = append(out, sr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStatusIfPending: el check y el write pasan bajo el mismo lock,
// que es lo que hace de esto un compare-and-set.
func (r *stayRequestsRepo) UpdateStatusIfPending(ctx context.Context, id string, status stayrequests.Status, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sr, ok := r.byID[id]
	if !ok {
		return stayrequests.ErrNotFound
	}
	if sr.Status != stayrequests.StatusPending {
		return stayrequests.ErrBadState
	}

	sr.Status = status
	sr.UpdatedAt = updatedAt
	r.byID[id] = sr
	return nil
}

func (r *stayRequestsRepo) DeleteIfPending(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sr, ok := r.byID[id]
	if !ok {
		return stayrequests.ErrNotFound
	}
	if sr.Status != stayrequests.StatusPending {
		return stayrequests.ErrBadState
	}

	delete(r.byID, id)
	return nil
}
