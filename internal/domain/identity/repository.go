package identity

import "context"

type Repository interface {
	CreateHost(ctx context.Context, h Host) error
	GetHostByEmail(ctx context.Context, email string) (Host, error)

	CreateTutor(ctx context.Context, t Tutor) error
	GetTutorByEmail(ctx context.Context, email string) (Tutor, error)
}
