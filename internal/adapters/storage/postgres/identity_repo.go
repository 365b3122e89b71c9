package postgres

import (
	"context"
	"database/sql"

	"pet-foster-homes/internal/domain/identity"
)

type IdentityRepo struct {
	db *sql.DB
}

func NewIdentityRepo(db *sql.DB) *IdentityRepo {
	return &IdentityRepo{db: db}
}

func (r *IdentityRepo) CreateHost(ctx context.Context, h identity.Host) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO hosts (email, name, phone, password_hash, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		h.Email,
		h.Name,
		h.Phone,
		h.PasswordHash,
		h.CreatedAt,
	)
	return err
}

func (r *IdentityRepo) GetHostByEmail(ctx context.Context, email string) (identity.Host, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT email, name, phone, password_hash, created_at
		FROM hosts
		WHERE email = $1
	`, email)

	var h identity.Host
	if err := row.Scan(&h.Email, &h.Name, &h.Phone, &h.PasswordHash, &h.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return identity.Host{}, ErrNotFound
		}
		return identity.Host{}, err
	}
	return h, nil
}

func (r *IdentityRepo) CreateTutor(ctx context.Context, t identity.Tutor) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tutors (email, name, phone, password_hash, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		t.Email,
		t.Name,
		t.Phone,
		t.PasswordHash,
		t.CreatedAt,
	)
	return err
}

func (r *IdentityRepo) GetTutorByEmail(ctx context.Context, email string) (identity.Tutor, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT email, name, phone, password_hash, created_at
		FROM tutors
		WHERE email = $1
	`, email)

	var t identity.Tutor
	if err := row.Scan(&t.Email, &t.Name, &t.Phone, &t.PasswordHash, &t.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return identity.Tutor{}, ErrNotFound
		}
		return identity.Tutor{}, err
	}
	return t, nil
}
