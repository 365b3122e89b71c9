package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"pet-foster-homes/internal/domain/homes"
)

type HomesRepo struct {
	db *sql.DB
}

func NewHomesRepo(db *sql.DB) *HomesRepo {
	return &HomesRepo{db: db}
}

const homeColumns = `
	id, host_email, host_name,
	address, city, state,
	capacity, has_yard, has_fence,
	available_for, experience, description,
	image_path, active,
	created_at, updated_at
`

func (r *HomesRepo) Create(ctx context.Context, h homes.Home) error {
	availableFor, err := json.Marshal(h.AvailableFor)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO homes (`+homeColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		h.ID,
		h.HostEmail,
		h.HostName,
		h.Address,
		h.City,
		h.State,
		h.Capacity,
		h.HasYard,
		h.HasFence,
		availableFor, // jsonb
		h.Experience,
		h.Description,
		h.ImagePath,
		h.Active,
		h.CreatedAt,
		h.UpdatedAt,
	)
	return err
}

func (r *HomesRepo) Update(ctx context.Context, h homes.Home) error {
	availableFor, err := json.Marshal(h.AvailableFor)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE homes
		SET
			host_name = $2,
			address = $3,
			city = $4,
			state = $5,
			capacity = $6,
			has_yard = $7,
			has_fence = $8,
			available_for = $9,
			experience = $10,
			description = $11,
			image_path = $12,
			active = $13,
			updated_at = $14
		WHERE id = $1
	`,
		h.ID,
		h.HostName,
		h.Address,
		h.City,
		h.State,
		h.Capacity,
		h.HasYard,
		h.HasFence,
		availableFor,
		h.Experience,
		h.Description,
		h.ImagePath,
		h.Active,
		h.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *HomesRepo) GetByID(ctx context.Context, id string) (homes.Home, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return homes.Home{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+homeColumns+`
		FROM homes
		WHERE id = $1
	`, id)

	h, err := scanHome(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return homes.Home{}, ErrNotFound
		}
		return homes.Home{}, err
	}
	return h, nil
}

func (r *HomesRepo) ListActive(ctx context.Context) ([]homes.Home, error) {
	return r.list(ctx, `
		SELECT `+homeColumns+`
		FROM homes
		WHERE active = TRUE
		ORDER BY created_at ASC
	`)
}

func (r *HomesRepo) ListByCity(ctx context.Context, city string) ([]homes.Home, error) {
	return r.list(ctx, `
		SELECT `+homeColumns+`
		FROM homes
		WHERE LOWER(city) = LOWER($1)
		ORDER BY created_at ASC
	`, city)
}

func (r *HomesRepo) ListByHost(ctx context.Context, hostEmail string) ([]homes.Home, error) {
	return r.list(ctx, `
		SELECT `+homeColumns+`
		FROM homes
		WHERE host_email = $1
		ORDER BY created_at ASC
	`, hostEmail)
}

func (r *HomesRepo) list(ctx context.Context, query string, args ...any) ([]homes.Home, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]homes.Home, 0)
	for rows.Next() {
		h, err := scanHome(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHome(row rowScanner) (homes.Home, error) {
	var h homes.Home
	var availableFor []byte

	if err := row.Scan(
		&h.ID,
		&h.HostEmail,
		&h.HostName,
		&h.Address,
		&h.City,
		&h.State,
		&h.Capacity,
		&h.HasYard,
		&h.HasFence,
		&availableFor,
		&h.Experience,
		&h.Description,
		&h.ImagePath,
		&h.Active,
		&h.CreatedAt,
		&h.UpdatedAt,
	); err != nil {
		return homes.Home{}, err
	}

	if len(availableFor) > 0 {
		if err := json.Unmarshal(availableFor, &h.AvailableFor); err != nil {
			return homes.Home{}, err
		}
	}
	return h, nil
}
