package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-foster-homes/internal/domain/identity"
)

var (
	ErrNotFound = errors.New("not found")
)

type identityRepo struct {
	mu     sync.RWMutex
	hosts  map[string]identity.Host
	tutors map[string]identity.Tutor
}

func NewIdentityRepo() identity.Repository {
	return &identityRepo{
		hosts:  make(map[string]identity.Host),
		tutors: make(map[string]identity.Tutor),
	}
}

func (r *identityRepo) CreateHost(ctx context.Context, h identity.Host) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(h.Email) == "" {
		return errors.New("host email required")
	}
	if _, exists := r.hosts[h.Email]; exists {
		return errors.New("host already exists")
	}
	r.hosts[h.Email] = h
	return nil
}

func (r *identityRepo) GetHostByEmail(ctx context.Context, email string) (identity.Host, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.hosts[email]
	if !ok {
		return identity.Host{}, ErrNotFound
	}
	return h, nil
}

func (r *identityRepo) CreateTutor(ctx context.Context, t identity.Tutor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.Email) == "" {
		return errors.New("tutor email required")
	}
	if _, exists := r.tutors[t.Email]; exists {
		return errors.New("tutor already exists")
	}
	r.tutors[t.Email] = t
	return nil
}

func (r *identityRepo) GetTutorByEmail(ctx context.Context, email string) (identity.Tutor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tutors[email]
	if !ok {
		return identity.Tutor{}, ErrNotFound
	}
	return t, nil
}
