package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-foster-homes/internal/domain/homes"
)

type homesRepo struct {
	mu   sync.RWMutex
	byID map[string]homes.Home
}

func NewHomesRepo() homes.Repository {
	return &homesRepo{
		byID: make(map[string]homes.Home),
	}
}

func (r *homesRepo) Create(ctx context.Context, h homes.Home) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(h.ID) == "" {
		return errors.New("home id required")
	}
	if _, exists := r.byID[h.ID]; exists {
		return errors.New("home already exists")
	}
	r.byID[h.ID] = h
	return nil
}

func (r *homesRepo) Update(ctx context.Context, h homes.Home) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[h.ID]; !exists {
		return ErrNotFound
	}
	r.byID[h.ID] = h
	return nil
}

func (r *homesRepo) GetByID(ctx context.Context, id string) (homes.Home, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byID[id]
	if !ok {
		return homes.Home{}, ErrNotFound
	}
	return h, nil
}

func (r *homesRepo) ListActive(ctx context.Context) ([]homes.Home, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]homes.Home, 0)
	for _, h := range r.byID {
		if h.Active {
			out = append(out, h)
		}
	}
	sortByCreatedAt(out)
	return out, nil
}

func (r *homesRepo) ListByCity(ctx context.Context, city string) ([]homes.Home, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]homes.Home, 0)
	for _, h := range r.byID {
		if strings.EqualFold(h.City, city) {
			out = append(out, h)
		}
	}
	sortByCreatedAt(out)
	return out, nil
}

func (r *homesRepo) ListByHost(ctx context.Context, hostEmail string) ([]homes.Home, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]homes.Home, 0)
	for _, h := range r.byID {
		if h.HostEmail == hostEmail {
			out = append(out, h)
		}
	}
	sortByCreatedAt(out)
	return out, nil
}

// Orden estable por created_at asc (consistencia en dev/tests).
func sortByCreatedAt(items []homes.Home) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
