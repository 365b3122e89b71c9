package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-foster-homes/internal/domain/stayrequests"
)

type StayRequestsRepo struct {
	db *sql.DB
}

func NewStayRequestsRepo(db *sql.DB) *StayRequestsRepo {
	return &StayRequestsRepo{db: db}
}

const stayRequestColumns = `
	id, home_id, host_email,
	tutor_email, tutor_name, tutor_phone,
	pet_name, pet_type, pet_age, pet_size,
	health_conditions, behavior, pet_image_path,
	start_date, duration, message,
	status, created_at, updated_at
`

func (r *StayRequestsRepo) Create(ctx context.Context, sr stayrequests.StayRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stay_requests (`+stayRequestColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`,
		sr.ID,
		sr.HomeID,
		sr.HostEmail,
		sr.TutorEmail,
		sr.TutorName,
		sr.TutorPhone,
		sr.PetName,
		string(sr.PetType),
		sr.PetAge,
		sr.PetSize,
		sr.HealthConditions,
		sr.Behavior,
		sr.PetImagePath,
		toNullDate(sr.StartDate),
		sr.Duration,
		sr.Message,
		string(sr.Status),
		sr.CreatedAt,
		sr.UpdatedAt,
	)
	return err
}

func (r *StayRequestsRepo) GetByID(ctx context.Context, id string) (stayrequests.StayRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return stayrequests.StayRequest{}, stayrequests.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+stayRequestColumns+`
		FROM stay_requests
		WHERE id = $1
	`, id)

	sr, err := scanStayRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return stayrequests.StayRequest{}, stayrequests.ErrNotFound
		}
		return stayrequests.StayRequest{}, err
	}
	return sr, nil
}

func (r *StayRequestsRepo) ListByEmail(ctx context.Context, email string) ([]stayrequests.StayRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+stayRequestColumns+`
		FROM stay_requests
		WHERE host_email = $1 OR tutor_email = $1
		ORDER BY created_at ASC
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]stayrequests.StayRequest, 0)
	for rows.Next() {
		sr, err := scanStayRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

// UpdateStatusIfPending: el WHERE sobre status hace el compare-and-set en
// el store; con cero filas afectadas distinguimos "ya decidido" de
// "no existe" con una segunda lectura.
func (r *StayRequestsRepo) UpdateStatusIfPending(ctx context.Context, id string, status stayrequests.Status, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE stay_requests
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4
	`, id, string(status), updatedAt, string(stayrequests.StatusPending))
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err // ErrNotFound
	}
	return stayrequests.ErrBadState
}

func (r *StayRequestsRepo) DeleteIfPending(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM stay_requests
		WHERE id = $1 AND status = $2
	`, id, string(stayrequests.StatusPending))
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		return nil
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return stayrequests.ErrBadState
}

func scanStayRequest(row rowScanner) (stayrequests.StayRequest, error) {
	var sr stayrequests.StayRequest
	var petType, status string
	var startDate sql.NullTime

	if err := row.Scan(
		&sr.ID,
		&sr.HomeID,
		&sr.HostEmail,
		&sr.TutorEmail,
		&sr.TutorName,
		&sr.TutorPhone,
		&sr.PetName,
		&petType,
		&sr.PetAge,
		&sr.PetSize,
		&sr.HealthConditions,
		&sr.Behavior,
		&sr.PetImagePath,
		&startDate,
		&sr.Duration,
		&sr.Message,
		&status,
		&sr.CreatedAt,
		&sr.UpdatedAt,
	); err != nil {
		return stayrequests.StayRequest{}, err
	}

	sr.PetType = stayrequests.PetType(petType)
	sr.Status = stayrequests.Status(status)
	if startDate.Valid {
		t := startDate.Time
		sr.StartDate = &t
	}
	return sr, nil
}

// start_date es DATE; lo pasamos como NullTime para simplificar.
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
