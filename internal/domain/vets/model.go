package vets

import "time"

// Veterinarian es personal de la clínica. Borrarlo NO borra sus citas:
// quedan como registro histórico con el veterinario a null.
type Veterinarian struct {
	ID   string
	Name string
	DNI  string // identificador nacional, único

	Role      string // opcional: "vet", "assistant", ...
	Specialty string // opcional: "surgery", "felines", ...
	Phone     string // opcional
	Email     string // opcional

	CreatedAt time.Time
	UpdatedAt time.Time
}
