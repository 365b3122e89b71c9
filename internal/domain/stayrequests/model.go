package stayrequests

import "time"

// PetType define los tipos aceptados en una solicitud.
// @Enum dog, cat
type PetType string

const (
	PetTypeDog PetType = "dog"
	PetTypeCat PetType = "cat"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// StayRequest es el pedido de un tutor para hospedar su mascota en un
// lar. HostEmail es un snapshot del dueño del lar al momento de crear:
// los checks de autorización posteriores no dependen de que el lar siga
// existiendo ni de que no haya cambiado.
//
// Transiciones: pending -> approved | rejected (terminales). El tutor
// puede cancelar solo en pending, y cancelar borra el registro (no es un
// estado). Nada reabre un request terminal.
type StayRequest struct {
	ID     string
	HomeID string

	HostEmail  string // dueño de aprobar/rechazar
	TutorEmail string // dueño de cancelar
	TutorName  string
	TutorPhone string

	PetName          string
	PetType          PetType
	PetAge           string
	PetSize          string
	HealthConditions string
	Behavior         string
	PetImagePath     string

	StartDate *time.Time
	Duration  string
	Message   string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}
