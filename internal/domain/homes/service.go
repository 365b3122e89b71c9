package homes

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"pet-foster-homes/internal/domain/identity"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	HostName     string
	Address      string
	City         string
	State        string
	Capacity     int
	HasYard      bool
	HasFence     bool
	AvailableFor []string
	Experience   string
	Description  string
	ImagePath    string
}

// Create asume que el credential gate ya pasó para hostEmail en este
// request. Nace active.
func (s *Service) Create(ctx context.Context, hostEmail string, in CreateInput) (Home, error) {
	hostEmail = identity.NormalizeEmail(hostEmail)
	if hostEmail == "" {
		return Home{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Address) == "" || strings.TrimSpace(in.City) == "" {
		return Home{}, ErrInvalidInput
	}
	if in.Capacity < MinCapacity || in.Capacity > MaxCapacity {
		return Home{}, ErrInvalidInput
	}

	availableFor := cleanList(in.AvailableFor)
	if len(availableFor) == 0 {
		return Home{}, ErrInvalidInput
	}

	now := s.now()
	h := Home{
		ID:           uuid.NewString(),
		HostEmail:    hostEmail,
		HostName:     strings.TrimSpace(in.HostName),
		Address:      strings.TrimSpace(in.Address),
		City:         strings.TrimSpace(in.City),
		State:        strings.ToUpper(strings.TrimSpace(in.State)),
		Capacity:     in.Capacity,
		HasYard:      in.HasYard,
		HasFence:     in.HasFence,
		AvailableFor: availableFor,
		Experience:   strings.TrimSpace(in.Experience),
		Description:  strings.TrimSpace(in.Description),
		ImagePath:    in.ImagePath,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return Home{}, err
	}
	return h, nil
}

type UpdateInput struct {
	// Punteros para update parcial: nil = no tocar.
	HostName     *string
	Address      *string
	City         *string
	State        *string
	Capacity     *int
	HasYard      *bool
	HasFence     *bool
	AvailableFor *[]string
	Experience   *string
	Description  *string
	ImagePath    *string // imagen nueva reemplaza el path anterior
}

// Update aplica un edit parcial. Falla con ErrForbidden si requesterEmail
// no es el host dueño (comparación case-insensitive vía normalización).
func (s *Service) Update(ctx context.Context, homeID, requesterEmail string, in UpdateInput) (Home, error) {
	h, err := s.repo.GetByID(ctx, homeID)
	if err != nil {
		return Home{}, ErrNotFound
	}

	if identity.NormalizeEmail(requesterEmail) != h.HostEmail {
		return Home{}, ErrForbidden
	}

	if in.HostName != nil {
		h.HostName = strings.TrimSpace(*in.HostName)
	}
	if in.Address != nil {
		if strings.TrimSpace(*in.Address) == "" {
			return Home{}, ErrInvalidInput
		}
		h.Address = strings.TrimSpace(*in.Address)
	}
	if in.City != nil {
		if strings.TrimSpace(*in.City) == "" {
			return Home{}, ErrInvalidInput
		}
		h.City = strings.TrimSpace(*in.City)
	}
	if in.State != nil {
		h.State = strings.ToUpper(strings.TrimSpace(*in.State))
	}
	if in.Capacity != nil {
		if *in.Capacity < MinCapacity || *in.Capacity > MaxCapacity {
			return Home{}, ErrInvalidInput
		}
		h.Capacity = *in.Capacity
	}
	if in.HasYard != nil {
		h.HasYard = *in.HasYard
	}
	if in.HasFence != nil {
		h.HasFence = *in.HasFence
	}
	if in.AvailableFor != nil {
		h.AvailableFor = cleanList(*in.AvailableFor)
	}
	if in.Experience != nil {
		h.Experience = strings.TrimSpace(*in.Experience)
	}
	if in.Description != nil {
		h.Description = strings.TrimSpace(*in.Description)
	}
	if in.ImagePath != nil && strings.TrimSpace(*in.ImagePath) != "" {
		h.ImagePath = *in.ImagePath
	}

	h.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, h); err != nil {
		return Home{}, err
	}
	return h, nil
}

// ToggleActive invierte el flag; mismo check de ownership que Update.
func (s *Service) ToggleActive(ctx context.Context, homeID, requesterEmail string) (Home, error) {
	h, err := s.repo.GetByID(ctx, homeID)
	if err != nil {
		return Home{}, ErrNotFound
	}

	if identity.NormalizeEmail(requesterEmail) != h.HostEmail {
		return Home{}, ErrForbidden
	}

	h.Active = !h.Active
	h.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, h); err != nil {
		return Home{}, err
	}
	return h, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Home, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Home{}, ErrNotFound
	}
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Home{}, ErrNotFound
	}
	return h, nil
}

// ListActive devuelve los lares visibles para tutores; city opcional.
func (s *Service) ListActive(ctx context.Context, city string) ([]Home, error) {
	city = strings.TrimSpace(city)
	if city != "" {
		items, err := s.repo.ListByCity(ctx, city)
		if err != nil {
			return nil, err
		}
		out := make([]Home, 0, len(items))
		for _, h := range items {
			if h.Active {
				out = append(out, h)
			}
		}
		return out, nil
	}
	return s.repo.ListActive(ctx)
}

// ListCities devuelve las ciudades distintas con lares activos (alimenta
// el dropdown de filtro del cliente).
func (s *Service) ListCities(ctx context.Context) ([]string, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, len(items))
	for _, h := range items {
		if _, ok := seen[h.City]; ok {
			continue
		}
		seen[h.City] = struct{}{}
		out = append(out, h.City)
	}
	sort.Strings(out)
	return out, nil
}

// ListByHost incluye inactivos: es la vista de administración del dueño.
func (s *Service) ListByHost(ctx context.Context, hostEmail string) ([]Home, error) {
	hostEmail = identity.NormalizeEmail(hostEmail)
	if hostEmail == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByHost(ctx, hostEmail)
}

func cleanList(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
