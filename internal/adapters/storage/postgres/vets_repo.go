package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic/internal/domain/vets"
)

type VetsRepo struct {
	db *sql.DB
}

func NewVetsRepo(db *sql.DB) *VetsRepo {
	return &VetsRepo{db: db}
}

const vetCols = `id, name, dni, role, specialty, phone, email, created_at, updated_at`

func (r *VetsRepo) Create(ctx context.Context, v vets.Veterinarian) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO veterinarians (`+vetCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		v.ID, v.Name, v.DNI, v.Role, v.Specialty, v.Phone, v.Email, v.CreatedAt, v.UpdatedAt,
	)
	if pgErrCode(err) == pgUniqueViolation {
		return vets.ErrDuplicateDNI
	}
	return err
}

func (r *VetsRepo) Update(ctx context.Context, v vets.Veterinarian) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE veterinarians
		SET name = $2, dni = $3, role = $4, specialty = $5,
		    phone = $6, email = $7, updated_at = $8
		WHERE id = $1
	`,
		v.ID, v.Name, v.DNI, v.Role, v.Specialty, v.Phone, v.Email, v.UpdatedAt,
	)
	if pgErrCode(err) == pgUniqueViolation {
		return vets.ErrDuplicateDNI
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vets.ErrNotFound
	}
	return nil
}

func (r *VetsRepo) GetByID(ctx context.Context, id string) (vets.Veterinarian, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+vetCols+` FROM veterinarians WHERE id = $1
	`, id)
	return scanVet(row)
}

func (r *VetsRepo) GetByDNI(ctx context.Context, dni string) (vets.Veterinarian, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+vetCols+` FROM veterinarians WHERE dni = $1
	`, dni)
	return scanVet(row)
}

func (r *VetsRepo) List(ctx context.Context) ([]vets.Veterinarian, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+vetCols+` FROM veterinarians ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vets.Veterinarian, 0)
	for rows.Next() {
		var v vets.Veterinarian
		if err := rows.Scan(&v.ID, &v.Name, &v.DNI, &v.Role, &v.Specialty, &v.Phone, &v.Email, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Delete conserva las citas: la FK de appointments es ON DELETE SET NULL.
func (r *VetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM veterinarians WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vets.ErrNotFound
	}
	return nil
}

func (r *VetsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM veterinarians`).Scan(&n)
	return n, err
}

func scanVet(row *sql.Row) (vets.Veterinarian, error) {
	var v vets.Veterinarian
	err := row.Scan(&v.ID, &v.Name, &v.DNI, &v.Role, &v.Specialty, &v.Phone, &v.Email, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return vets.Veterinarian{}, vets.ErrNotFound
	}
	if err != nil {
		return vets.Veterinarian{}, err
	}
	return v, nil
}
