package analytics

import (
	"context"
	"errors"
	"sort"
	"time"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/vets"
)

// ErrNoData indica que no hay registros sobre los que agregar.
var ErrNoData = errors.New("no data to aggregate")

// Interfaces mínimas de lectura: las satisfacen los repos de cada entidad.
// Analytics no tiene capacidad de mutación.
type ClientCounter interface {
	Count(ctx context.Context) (int, error)
}

type PetStats interface {
	Count(ctx context.Context) (int, error)
	CountBySpecies(ctx context.Context) (map[string]int, error)
}

type VetLister interface {
	List(ctx context.Context) ([]vets.Veterinarian, error)
	Count(ctx context.Context) (int, error)
}

type AppointmentStats interface {
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (map[appointments.Status]int, error)
	CountActiveByVet(ctx context.Context) (map[string]int, error)
	ListUpcoming(ctx context.Context, from time.Time, days int) ([]appointments.Appointment, error)
}

type Service struct {
	clients ClientCounter
	pets    PetStats
	vets    VetLister
	appts   AppointmentStats
	now     func() time.Time
}

func NewService(clients ClientCounter, pets PetStats, vets VetLister, appts AppointmentStats) *Service {
	return &Service{
		clients: clients,
		pets:    pets,
		vets:    vets,
		appts:   appts,
		now:     time.Now,
	}
}

type Summary struct {
	TotalClients      int `json:"total_clients"`
	TotalPets         int `json:"total_pets"`
	TotalVets         int `json:"total_vets"`
	TotalAppointments int `json:"total_appointments"`
	PendingCount      int `json:"pending_appointments"`
	ConfirmedCount    int `json:"confirmed_appointments"`
	DoneCount         int `json:"done_appointments"`
	CancelledCount    int `json:"cancelled_appointments"`
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	var err error

	if sum.TotalClients, err = s.clients.Count(ctx); err != nil {
		return Summary{}, err
	}
	if sum.TotalPets, err = s.pets.Count(ctx); err != nil {
		return Summary{}, err
	}
	if sum.TotalVets, err = s.vets.Count(ctx); err != nil {
		return Summary{}, err
	}
	if sum.TotalAppointments, err = s.appts.Count(ctx); err != nil {
		return Summary{}, err
	}

	byStatus, err := s.appts.CountByStatus(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum.PendingCount = byStatus[appointments.StatusPending]
	sum.ConfirmedCount = byStatus[appointments.StatusConfirmed]
	sum.DoneCount = byStatus[appointments.StatusDone]
	sum.CancelledCount = byStatus[appointments.StatusCancelled]

	return sum, nil
}

// VetLoad es la carga de trabajo de un veterinario: citas no canceladas
// que tiene asignadas.
type VetLoad struct {
	VetID        string `json:"vet_id"`
	Name         string `json:"name"`
	Appointments int    `json:"appointments"`
}

// VetLoads devuelve la carga de cada veterinario, de más a menos cargado.
// Incluye a los veterinarios sin citas, con carga cero.
func (s *Service) VetLoads(ctx context.Context) ([]VetLoad, error) {
	staff, err := s.vets.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.appts.CountActiveByVet(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]VetLoad, 0, len(staff))
	for _, v := range staff {
		out = append(out, VetLoad{
			VetID:        v.ID,
			Name:         v.Name,
			Appointments: counts[v.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Appointments != out[j].Appointments {
			return out[i].Appointments > out[j].Appointments
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// BusiestVet devuelve el veterinario con más citas no canceladas.
func (s *Service) BusiestVet(ctx context.Context) (VetLoad, error) {
	loads, err := s.VetLoads(ctx)
	if err != nil {
		return VetLoad{}, err
	}
	if len(loads) == 0 {
		return VetLoad{}, ErrNoData
	}
	return loads[0], nil
}

func (s *Service) SpeciesDistribution(ctx context.Context) (map[string]int, error) {
	return s.pets.CountBySpecies(ctx)
}

// MostCommonSpecies devuelve la especie más registrada; en caso de empate,
// la primera en orden alfabético (determinista).
func (s *Service) MostCommonSpecies(ctx context.Context) (string, error) {
	dist, err := s.pets.CountBySpecies(ctx)
	if err != nil {
		return "", err
	}
	if len(dist) == 0 {
		return "", ErrNoData
	}

	var best string
	var bestN int
	for species, n := range dist {
		if n > bestN || (n == bestN && (best == "" || species < best)) {
			best, bestN = species, n
		}
	}
	return best, nil
}

// Ventanas de próximas citas: hoy, semana (7 días) y mes (30 días).
// Construidas sobre la misma consulta de rango del planificador.

func (s *Service) UpcomingToday(ctx context.Context) ([]appointments.Appointment, error) {
	return s.appts.ListUpcoming(ctx, s.today(), 0)
}

func (s *Service) UpcomingWeek(ctx context.Context) ([]appointments.Appointment, error) {
	return s.appts.ListUpcoming(ctx, s.today(), 7)
}

func (s *Service) UpcomingMonth(ctx context.Context) ([]appointments.Appointment, error) {
	return s.appts.ListUpcoming(ctx, s.today(), 30)
}

func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
