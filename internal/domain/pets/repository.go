package pets

import "context"

type Repository interface {
	// Create falla con clients.ErrNotFound si ClientID no apunta a un
	// cliente vivo (la FK del storage es la autoridad).
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	ListByClient(ctx context.Context, clientID string) ([]Pet, error)

	// Delete borra la mascota y, en cascada, todas sus citas.
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int, error)
	CountBySpecies(ctx context.Context) (map[string]int, error)
}
