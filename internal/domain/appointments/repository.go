package appointments

import (
	"context"
	"time"
)

type Repository interface {
	// Create falla con pets.ErrNotFound / vets.ErrNotFound si alguna FK
	// no resuelve, y con ErrConflict si el slot ya está ocupado por una
	// cita no cancelada (respaldo del chequeo del servicio).
	Create(ctx context.Context, a Appointment) error
	Update(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	Delete(ctx context.Context, id string) error

	List(ctx context.Context) ([]Appointment, error)
	ListByPet(ctx context.Context, petID string) ([]Appointment, error)
	ListByVet(ctx context.Context, vetID string) ([]Appointment, error)
	ListByClient(ctx context.Context, clientID string) ([]Appointment, error)
	ListByDate(ctx context.Context, date time.Time) ([]Appointment, error)
	ListByStatus(ctx context.Context, st Status) ([]Appointment, error)

	// ListUpcoming devuelve las citas no canceladas con fecha en
	// [from, from+days], ordenadas ascendente por (fecha, hora).
	ListUpcoming(ctx context.Context, from time.Time, days int) ([]Appointment, error)

	// FindActiveSlot busca la cita no cancelada que ocupa el slot
	// (vetID, date, hhmm), ignorando excludeID si no es vacío.
	// Devuelve ErrNotFound si el slot está libre.
	FindActiveSlot(ctx context.Context, vetID string, date time.Time, hhmm string, excludeID string) (Appointment, error)

	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)

	// CountActiveByVet cuenta citas no canceladas por veterinario asignado.
	CountActiveByVet(ctx context.Context) (map[string]int, error)
}
