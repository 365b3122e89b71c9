package stayrequests

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-foster-homes/internal/domain/homes"
	"pet-foster-homes/internal/domain/identity"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
)

// HomeLookup es lo único que este módulo necesita del módulo de lares:
// resolver el lar target para snapshotear su host.
type HomeLookup interface {
	GetByID(ctx context.Context, id string) (homes.Home, error)
}

// Notifier emite el aviso de cambio de estado (webhook saliente).
// Best-effort: el lifecycle no depende de que llegue.
type Notifier interface {
	StatusChanged(ctx context.Context, sr StayRequest)
}

type Service struct {
	repo     Repository
	homes    HomeLookup
	notifier Notifier // puede ser nil
	now      func() time.Time
}

func NewService(repo Repository, homeLookup HomeLookup) *Service {
	return &Service{
		repo:  repo,
		homes: homeLookup,
		now:   time.Now,
	}
}

// WithNotifier habilita el aviso saliente en approve/reject.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

type CreateInput struct {
	HomeID     string
	TutorName  string
	TutorPhone string

	PetName          string
	PetType          string
	PetAge           string
	PetSize          string
	HealthConditions string
	Behavior         string
	PetImagePath     string

	StartDate *time.Time
	Duration  string
	Message   string
}

// Create asume que el credential gate ya pasó para tutorEmail. Resuelve
// el lar para copiar su host al request; con homeId viejo => ErrNotFound.
func (s *Service) Create(ctx context.Context, tutorEmail string, in CreateInput) (StayRequest, error) {
	tutorEmail = identity.NormalizeEmail(tutorEmail)
	if tutorEmail == "" {
		return StayRequest{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.HomeID) == "" || strings.TrimSpace(in.PetName) == "" {
		return StayRequest{}, ErrInvalidInput
	}

	petType := PetType(strings.ToLower(strings.TrimSpace(in.PetType)))
	if petType != PetTypeDog && petType != PetTypeCat {
		return StayRequest{}, ErrInvalidInput
	}

	home, err := s.homes.GetByID(ctx, strings.TrimSpace(in.HomeID))
	if err != nil {
		return StayRequest{}, ErrNotFound
	}

	now := s.now()
	sr := StayRequest{
		ID:               uuid.NewString(),
		HomeID:           home.ID,
		HostEmail:        home.HostEmail,
		TutorEmail:       tutorEmail,
		TutorName:        strings.TrimSpace(in.TutorName),
		TutorPhone:       strings.TrimSpace(in.TutorPhone),
		PetName:          strings.TrimSpace(in.PetName),
		PetType:          petType,
		PetAge:           strings.TrimSpace(in.PetAge),
		PetSize:          strings.TrimSpace(in.PetSize),
		HealthConditions: strings.TrimSpace(in.HealthConditions),
		Behavior:         strings.TrimSpace(in.Behavior),
		PetImagePath:     in.PetImagePath,
		StartDate:        in.StartDate,
		Duration:         strings.TrimSpace(in.Duration),
		Message:          strings.TrimSpace(in.Message),
		Status:           StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, sr); err != nil {
		return StayRequest{}, err
	}
	return sr, nil
}

// Approve pasa el request a approved. Solo el host snapshoteado puede, y
// solo desde pending; el write va por compare-and-set, así que de dos
// decisiones en carrera persiste exactamente una.
func (s *Service) Approve(ctx context.Context, requestID, requesterEmail string) (StayRequest, error) {
	return s.decide(ctx, requestID, requesterEmail, StatusApproved)
}

// Reject es simétrico a Approve.
func (s *Service) Reject(ctx context.Context, requestID, requesterEmail string) (StayRequest, error) {
	return s.decide(ctx, requestID, requesterEmail, StatusRejected)
}

func (s *Service) decide(ctx context.Context, requestID, requesterEmail string, target Status) (StayRequest, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return StayRequest{}, ErrInvalidInput
	}

	sr, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return StayRequest{}, ErrNotFound
	}

	if identity.NormalizeEmail(requesterEmail) != sr.HostEmail {
		return StayRequest{}, ErrForbidden
	}
	if sr.Status != StatusPending {
		return StayRequest{}, ErrBadState
	}

	now := s.now()
	if err := s.repo.UpdateStatusIfPending(ctx, requestID, target, now); err != nil {
		return StayRequest{}, err
	}

	sr.Status = target
	sr.UpdatedAt = now

	if s.notifier != nil {
		s.notifier.StatusChanged(ctx, sr)
	}
	return sr, nil
}

// Cancel borra el request (hard delete). Solo el tutor, solo en pending:
// un request approved/rejected no se "des-cancela" ni se retira acá.
func (s *Service) Cancel(ctx context.Context, requestID, requesterEmail string) error {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return ErrInvalidInput
	}

	sr, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return ErrNotFound
	}

	if identity.NormalizeEmail(requesterEmail) != sr.TutorEmail {
		return ErrForbidden
	}
	if sr.Status != StatusPending {
		return ErrBadState
	}

	return s.repo.DeleteIfPending(ctx, requestID)
}

func (s *Service) GetByID(ctx context.Context, id string) (StayRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return StayRequest{}, ErrNotFound
	}
	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return StayRequest{}, ErrNotFound
	}
	return sr, nil
}

// ListByEmail devuelve los requests donde el e-mail participa en
// cualquiera de los dos roles.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]StayRequest, error) {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByEmail(ctx, email)
}
