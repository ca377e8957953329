package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petCols = `id, name, species, breed, age, weight, sex, client_id, created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		p.ID, p.Name, p.Species, p.Breed,
		toNullInt(p.Age), toNullFloat(p.Weight), p.Sex,
		p.ClientID, p.CreatedAt, p.UpdatedAt,
	)
	if pgErrCode(err) == pgFKViolation {
		return clients.ErrNotFound
	}
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET name = $2, species = $3, breed = $4, age = $5, weight = $6,
		    sex = $7, client_id = $8, updated_at = $9
		WHERE id = $1
	`,
		p.ID, p.Name, p.Species, p.Breed,
		toNullInt(p.Age), toNullFloat(p.Weight), p.Sex,
		p.ClientID, p.UpdatedAt,
	)
	if pgErrCode(err) == pgFKViolation {
		return clients.ErrNotFound
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+petCols+` FROM pets WHERE id = $1
	`, id)

	p, err := scanPet(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petCols+` FROM pets ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	return scanPets(rows)
}

func (r *PetsRepo) ListByClient(ctx context.Context, clientID string) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petCols+` FROM pets WHERE client_id = $1 ORDER BY name, id
	`, clientID)
	if err != nil {
		return nil, err
	}
	return scanPets(rows)
}

// Delete deja la cascada pets -> appointments en manos del schema.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM pets`).Scan(&n)
	return n, err
}

func (r *PetsRepo) CountBySpecies(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT species, count(*) FROM pets GROUP BY species
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var species string
		var n int
		if err := rows.Scan(&species, &n); err != nil {
			return nil, err
		}
		out[species] = n
	}
	return out, rows.Err()
}

func scanPet(scan func(...any) error) (pets.Pet, error) {
	var p pets.Pet
	var age sql.NullInt64
	var weight sql.NullFloat64

	if err := scan(
		&p.ID, &p.Name, &p.Species, &p.Breed,
		&age, &weight, &p.Sex,
		&p.ClientID, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	if weight.Valid {
		v := weight.Float64
		p.Weight = &v
	}
	return p, nil
}

func scanPets(rows *sql.Rows) ([]pets.Pet, error) {
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
