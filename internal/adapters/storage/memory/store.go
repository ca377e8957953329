package memory

import (
	"sync"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/vets"
)

// Store mantiene las cuatro tablas bajo un único mutex, de modo que los
// borrados en cascada (cliente -> mascotas -> citas) y los SET NULL de
// veterinario sean atómicos frente a cualquier lectura.
//
// Cada repo es una vista sobre el mismo Store; se inyecta uno por test en
// lugar de compartir estado global de proceso.
type Store struct {
	mu           sync.RWMutex
	clients      map[string]clients.Client
	pets         map[string]pets.Pet
	vets         map[string]vets.Veterinarian
	appointments map[string]appointments.Appointment
}

func NewStore() *Store {
	return &Store{
		clients:      make(map[string]clients.Client),
		pets:         make(map[string]pets.Pet),
		vets:         make(map[string]vets.Veterinarian),
		appointments: make(map[string]appointments.Appointment),
	}
}

func (s *Store) Clients() clients.Repository           { return &clientsRepo{st: s} }
func (s *Store) Pets() pets.Repository                 { return &petsRepo{st: s} }
func (s *Store) Vets() vets.Repository                 { return &vetsRepo{st: s} }
func (s *Store) Appointments() appointments.Repository { return &appointmentsRepo{st: s} }
