package stayrequests

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, sr StayRequest) error
	GetByID(ctx context.Context, id string) (StayRequest, error)

	// ListByEmail matchea el e-mail contra ambos roles (host y tutor).
	ListByEmail(ctx context.Context, email string) ([]StayRequest, error)

	// UpdateStatusIfPending es el compare-and-set del workflow: escribe el
	// status solo si el actual es pending. Si el request existe pero ya no
	// está pending devuelve ErrBadState; si no existe, ErrNotFound. Tiene
	// que ser atómico en el store (dos approve/reject en carrera: gana
	// exactamente uno).
	UpdateStatusIfPending(ctx context.Context, id string, status Status, updatedAt time.Time) error

	// DeleteIfPending borra el request solo si sigue pending (cancelación
	// del tutor). Misma semántica de errores que UpdateStatusIfPending.
	DeleteIfPending(ctx context.Context, id string) error
}
