package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/vets"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

const apptCols = `id, date, time, reason, diagnosis, status, pet_id, vet_id, created_at, updated_at`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (`+apptCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		a.ID, a.Date, a.Time, a.Reason, a.Diagnosis, string(a.Status),
		a.PetID, toNullStr(a.VetID), a.CreatedAt, a.UpdatedAt,
	)
	return mapApptWriteErr(err)
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET date = $2, time = $3, reason = $4, diagnosis = $5,
		    status = $6, pet_id = $7, vet_id = $8, updated_at = $9
		WHERE id = $1
	`,
		a.ID, a.Date, a.Time, a.Reason, a.Diagnosis, string(a.Status),
		a.PetID, toNullStr(a.VetID), a.UpdatedAt,
	)
	if err != nil {
		return mapApptWriteErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

// mapApptWriteErr traduce los errores de constraint a errores de dominio:
// la violación del índice único parcial del slot es un conflicto de agenda
// (una carrera que se coló al chequeo del servicio) y la FK indica qué
// entidad referenciada no existe.
func mapApptWriteErr(err error) error {
	switch pgErrCode(err) {
	case pgUniqueViolation:
		return appointments.ErrConflict
	case pgFKViolation:
		if hasConstraint(err, "appointments_vet_id_fkey") {
			return vets.ErrNotFound
		}
		return pets.ErrNotFound
	}
	return err
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+apptCols+` FROM appointments WHERE id = $1
	`, id)

	a, err := scanAppt(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, err
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	return r.query(ctx, `
		SELECT `+apptCols+` FROM appointments ORDER BY date, time, id
	`)
}

func (r *AppointmentsRepo) ListByPet(ctx context.Context, petID string) ([]appointments.Appointment, error) {
	return r.query(ctx, `
		SELECT `+apptCols+` FROM appointments
		WHERE pet_id = $1 ORDER BY date, time, id
	`, petID)
}

func (r *AppointmentsRepo) ListByVet(ctx context.Context, vetID string) ([]appointments.Appointment, error) {
	return r.query(ctx, `
		SELECT `+apptCols+` FROM appointments
		WHERE vet_id = $1 ORDER BY date, time, id
	`, vetID)
}

func (r *AppointmentsRepo) ListByClient(ctx context.Context, clientID string) ([]appointments.Appointment, error) {
	return r.query(ctx, `
		SELECT a.id, a.date, a.time, a.reason, a.diagnosis, a.status,
		       a.pet_id, a.vet_id, a.created_at, a.updated_at
		FROM appointments a
		JOIN pets p ON p.id = a.pet_id
		WHERE p.client_id = $1
		ORDER BY a.date, a.time, a.id
	`, clientID)
}

func (r *AppointmentsRepo) ListByDate(ctx context.Context, date time.Time) ([]appointments.Appointment, error) {
	return r.query(ctx, `
		SELECT `+apptCols+` FROM appointments
		WHERE date = $1 ORDER BY time, id
	`, date)
}

func (r *AppointmentsRepo) ListByStatus(ctx context.Context, st appointments.Status) ([]appointments.Appointment, error) {
	return r.query(ctx, `
		SELECT `+apptCols+` FROM appointments
		WHERE status = $1 ORDER BY date, time, id
	`, string(st))
}

func (r *AppointmentsRepo) ListUpcoming(ctx context.Context, from time.Time, days int) ([]appointments.Appointment, error) {
	until := from.AddDate(0, 0, days)
	return r.query(ctx, `
		SELECT `+apptCols+` FROM appointments
		WHERE status <> $1 AND date BETWEEN $2 AND $3
		ORDER BY date, time, id
	`, string(appointments.StatusCancelled), from, until)
}

func (r *AppointmentsRepo) FindActiveSlot(ctx context.Context, vetID string, date time.Time, hhmm string, excludeID string) (appointments.Appointment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+apptCols+` FROM appointments
		WHERE vet_id = $1 AND date = $2 AND time = $3
		  AND status <> $4
		  AND ($5 = '' OR id <> $5)
		LIMIT 1
	`, vetID, date, hhmm, string(appointments.StatusCancelled), excludeID)

	a, err := scanAppt(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, err
}

func (r *AppointmentsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM appointments`).Scan(&n)
	return n, err
}

func (r *AppointmentsRepo) CountByStatus(ctx context.Context) (map[appointments.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, count(*) FROM appointments GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[appointments.Status]int)
	for rows.Next() {
		var st string
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, err
		}
		out[appointments.Status(st)] = n
	}
	return out, rows.Err()
}

func (r *AppointmentsRepo) CountActiveByVet(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT vet_id, count(*) FROM appointments
		WHERE vet_id IS NOT NULL AND status <> $1
		GROUP BY vet_id
	`, string(appointments.StatusCancelled))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var vetID string
		var n int
		if err := rows.Scan(&vetID, &n); err != nil {
			return nil, err
		}
		out[vetID] = n
	}
	return out, rows.Err()
}

func (r *AppointmentsRepo) query(ctx context.Context, q string, args ...any) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppt(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppt(scan func(...any) error) (appointments.Appointment, error) {
	var a appointments.Appointment
	var status string
	var vetID sql.NullString

	if err := scan(
		&a.ID, &a.Date, &a.Time, &a.Reason, &a.Diagnosis, &status,
		&a.PetID, &vetID, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}

	a.Status = appointments.Status(status)
	if vetID.Valid {
		v := vetID.String
		a.VetID = &v
	}
	return a, nil
}

func toNullStr(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
