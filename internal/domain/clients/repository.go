package clients

import "context"

type Repository interface {
	Create(ctx context.Context, c Client) error
	Update(ctx context.Context, c Client) error
	GetByID(ctx context.Context, id string) (Client, error)
	GetByDNI(ctx context.Context, dni string) (Client, error)
	SearchByName(ctx context.Context, name string) ([]Client, error)
	List(ctx context.Context) ([]Client, error)

	// Delete borra el cliente en cascada: sus mascotas y las citas de éstas.
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int, error)
}
