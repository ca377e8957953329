package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic/internal/domain/clients"
)

type ClientsRepo struct {
	db *sql.DB
}

func NewClientsRepo(db *sql.DB) *ClientsRepo {
	return &ClientsRepo{db: db}
}

const clientCols = `id, name, dni, phone, email, created_at, updated_at`

func (r *ClientsRepo) Create(ctx context.Context, c clients.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (`+clientCols+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		c.ID, c.Name, c.DNI, c.Phone, c.Email, c.CreatedAt, c.UpdatedAt,
	)
	if pgErrCode(err) == pgUniqueViolation {
		return clients.ErrDuplicateDNI
	}
	return err
}

func (r *ClientsRepo) Update(ctx context.Context, c clients.Client) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET name = $2, dni = $3, phone = $4, email = $5, updated_at = $6
		WHERE id = $1
	`,
		c.ID, c.Name, c.DNI, c.Phone, c.Email, c.UpdatedAt,
	)
	if pgErrCode(err) == pgUniqueViolation {
		return clients.ErrDuplicateDNI
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clients.ErrNotFound
	}
	return nil
}

func (r *ClientsRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+clientCols+` FROM clients WHERE id = $1
	`, id)
	return scanClient(row)
}

func (r *ClientsRepo) GetByDNI(ctx context.Context, dni string) (clients.Client, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+clientCols+` FROM clients WHERE dni = $1
	`, dni)
	return scanClient(row)
}

func (r *ClientsRepo) SearchByName(ctx context.Context, name string) ([]clients.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+clientCols+` FROM clients
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name, id
	`, name)
	if err != nil {
		return nil, err
	}
	return scanClients(rows)
}

func (r *ClientsRepo) List(ctx context.Context) ([]clients.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+clientCols+` FROM clients ORDER BY name, id
	`)
	if err != nil {
		return nil, err
	}
	return scanClients(rows)
}

// Delete deja que las FKs del schema hagan la cascada:
// clients -> pets (CASCADE) -> appointments (CASCADE).
func (r *ClientsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clients.ErrNotFound
	}
	return nil
}

func (r *ClientsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM clients`).Scan(&n)
	return n, err
}

func scanClient(row *sql.Row) (clients.Client, error) {
	var c clients.Client
	err := row.Scan(&c.ID, &c.Name, &c.DNI, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return clients.Client{}, clients.ErrNotFound
	}
	if err != nil {
		return clients.Client{}, err
	}
	return c, nil
}

func scanClients(rows *sql.Rows) ([]clients.Client, error) {
	defer rows.Close()

	out := make([]clients.Client, 0)
	for rows.Next() {
		var c clients.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.DNI, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
