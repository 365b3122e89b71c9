package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredential cubre tanto "cuenta desconocida" como
	// "contraseña incorrecta"; la respuesta no distingue para no
	// habilitar enumeración más allá del check-email.
	ErrInvalidCredential = errors.New("invalid credential")
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

// NormalizeEmail aplica la normalización usada en todo el workflow:
// trim + lowercase. Toda comparación de ownership parte de acá.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) HostExists(ctx context.Context, email string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return false, ErrInvalidInput
	}
	_, err := s.repo.GetHostByEmail(ctx, email)
	if err != nil {
		// E-mail desconocido es un caso normal (usuario nuevo), no un error.
		return false, nil
	}
	return true, nil
}

func (s *Service) TutorExists(ctx context.Context, email string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return false, ErrInvalidInput
	}
	_, err := s.repo.GetTutorByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type EstablishInput struct {
	Email string
	Name  string
	Phone string

	Password string
	// ConfirmPassword es opcional: los clientes legacy validan el match
	// localmente y no lo envían. Si viene, tiene que coincidir.
	ConfirmPassword *string
}

func (in EstablishInput) validate() error {
	if NormalizeEmail(in.Email) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return ErrInvalidInput
	}
	if len(in.Password) < minPasswordLen {
		return ErrInvalidInput
	}
	if in.ConfirmPassword != nil && in.Password != *in.ConfirmPassword {
		return ErrInvalidInput
	}
	return nil
}

// EstablishHost crea la credencial junto con el Host en un único write.
// Solo corre cuando el e-mail es desconocido para el rol host.
func (s *Service) EstablishHost(ctx context.Context, in EstablishInput) (Host, error) {
	if err := in.validate(); err != nil {
		return Host{}, err
	}

	email := NormalizeEmail(in.Email)
	if _, err := s.repo.GetHostByEmail(ctx, email); err == nil {
		return Host{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Host{}, err
	}

	h := Host{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}

	if err := s.repo.CreateHost(ctx, h); err != nil {
		return Host{}, err
	}
	return h, nil
}

func (s *Service) EstablishTutor(ctx context.Context, in EstablishInput) (Tutor, error) {
	if err := in.validate(); err != nil {
		return Tutor{}, err
	}

	email := NormalizeEmail(in.Email)
	if _, err := s.repo.GetTutorByEmail(ctx, email); err == nil {
		return Tutor{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Tutor{}, err
	}

	t := Tutor{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}

	if err := s.repo.CreateTutor(ctx, t); err != nil {
		return Tutor{}, err
	}
	return t, nil
}

// AuthenticateHost es un check puro contra el hash guardado; no muta nada.
func (s *Service) AuthenticateHost(ctx context.Context, email, password string) error {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return ErrInvalidCredential
	}

	h, err := s.repo.GetHostByEmail(ctx, email)
	if err != nil {
		return ErrInvalidCredential
	}
	if bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(password)) != nil {
		return ErrInvalidCredential
	}
	return nil
}

func (s *Service) AuthenticateTutor(ctx context.Context, email, password string) error {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return ErrInvalidCredential
	}

	t, err := s.repo.GetTutorByEmail(ctx, email)
	if err != nil {
		return ErrInvalidCredential
	}
	if bcrypt.CompareHashAndPassword([]byte(t.PasswordHash), []byte(password)) != nil {
		return ErrInvalidCredential
	}
	return nil
}

// GateHost resuelve el flujo autenticar-o-registrar para un e-mail de
// host: si existe, valida la contraseña; si no, establece la credencial
// (y el Host) en el momento. Tiene que completar antes de mutar lares.
func (s *Service) GateHost(ctx context.Context, in EstablishInput) error {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return ErrInvalidInput
	}

	exists, err := s.HostExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return s.AuthenticateHost(ctx, email, in.Password)
	}
	_, err = s.EstablishHost(ctx, in)
	return err
}

// GateTutor es el gemelo de GateHost para solicitudes de estadía.
func (s *Service) GateTutor(ctx context.Context, in EstablishInput) error {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return ErrInvalidInput
	}

	exists, err := s.TutorExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return s.AuthenticateTutor(ctx, email, in.Password)
	}
	_, err = s.EstablishTutor(ctx, in)
	return err
}
