package vets

import "context"

type Repository interface {
	Create(ctx context.Context, v Veterinarian) error
	Update(ctx context.Context, v Veterinarian) error
	GetByID(ctx context.Context, id string) (Veterinarian, error)
	GetByDNI(ctx context.Context, dni string) (Veterinarian, error)
	List(ctx context.Context) ([]Veterinarian, error)

	// Delete borra el veterinario y deja a null la referencia en sus citas
	// (SET NULL, no cascada: las citas se conservan como histórico).
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int, error)
}
