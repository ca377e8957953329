package pets

import "time"

// Especies habituales. El campo es texto libre: estas constantes solo
// cubren los valores que usa la UI y el seeder.
const (
	SpeciesDog     = "dog"
	SpeciesCat     = "cat"
	SpeciesBird    = "bird"
	SpeciesRabbit  = "rabbit"
	SpeciesReptile = "reptile"
	SpeciesOther   = "other"
)

const (
	SexMale    = "male"
	SexFemale  = "female"
	SexUnknown = "unknown"
)

// Pet pertenece a exactamente un cliente. Borrar la mascota arrastra sus citas.
type Pet struct {
	ID      string
	Name    string
	Species string

	Breed  string   // opcional
	Age    *int     // opcional, años (0-50)
	Weight *float64 // opcional, kg
	Sex    string   // opcional

	ClientID string // obligatorio, FK a un cliente vivo

	CreatedAt time.Time
	UpdatedAt time.Time
}
