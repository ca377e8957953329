package clients

import "time"

// Client es el dueño de una o más mascotas.
// Borrar un cliente arrastra sus mascotas y las citas de éstas.
type Client struct {
	ID   string
	Name string
	DNI  string // identificador nacional: 8 dígitos + letra, único

	Phone string // opcional
	Email string // opcional

	CreatedAt time.Time
	UpdatedAt time.Time
}
