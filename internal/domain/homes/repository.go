package homes

import "context"

type Repository interface {
	Create(ctx context.Context, h Home) error
	Update(ctx context.Context, h Home) error
	GetByID(ctx context.Context, id string) (Home, error)
	ListActive(ctx context.Context) ([]Home, error)
	ListByCity(ctx context.Context, city string) ([]Home, error)
	ListByHost(ctx context.Context, hostEmail string) ([]Home, error)
}
