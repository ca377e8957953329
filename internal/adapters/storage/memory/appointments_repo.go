package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/vets"
	"vet-clinic/internal/validate"
)

type appointmentsRepo struct {
	st *Store
}

func (r *appointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.st.appointments[a.ID]; exists {
		return errors.New("appointment already exists")
	}
	if _, ok := r.st.pets[a.PetID]; !ok {
		return pets.ErrNotFound
	}
	if a.VetID != nil {
		if _, ok := r.st.vets[*a.VetID]; !ok {
			return vets.ErrNotFound
		}
	}
	// Respaldo del índice único parcial sobre el slot.
	if a.Status != appointments.StatusCancelled && a.VetID != nil {
		if _, taken := r.findActiveSlotLocked(*a.VetID, a.Date, a.Time, a.ID); taken {
			return appointments.ErrConflict
		}
	}

	r.st.appointments[a.ID] = a
	return nil
}

func (r *appointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, exists := r.st.appointments[a.ID]; !exists {
		return appointments.ErrNotFound
	}
	if a.Status != appointments.StatusCancelled && a.VetID != nil {
		if _, taken := r.findActiveSlotLocked(*a.VetID, a.Date, a.Time, a.ID); taken {
			return appointments.ErrConflict
		}
	}

	r.st.appointments[a.ID] = a
	return nil
}

func (r *appointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	a, ok := r.st.appointments[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentsRepo) Delete(ctx context.Context, id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, exists := r.st.appointments[id]; !exists {
		return appointments.ErrNotFound
	}
	delete(r.st.appointments, id)
	return nil
}

func (r *appointmentsRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	return r.collect(func(appointments.Appointment) bool { return true })
}

func (r *appointmentsRepo) ListByPet(ctx context.Context, petID string) ([]appointments.Appointment, error) {
	return r.collect(func(a appointments.Appointment) bool { return a.PetID == petID })
}

func (r *appointmentsRepo) ListByVet(ctx context.Context, vetID string) ([]appointments.Appointment, error) {
	return r.collect(func(a appointments.Appointment) bool { return a.AssignedTo(vetID) })
}

func (r *appointmentsRepo) ListByClient(ctx context.Context, clientID string) ([]appointments.Appointment, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	owned := make(map[string]struct{})
	for id, p := range r.st.pets {
		if p.ClientID == clientID {
			owned[id] = struct{}{}
		}
	}

	out := make([]appointments.Appointment, 0)
	for _, a := range r.st.appointments {
		if _, ok := owned[a.PetID]; ok {
			out = append(out, a)
		}
	}
	sortByDateTime(out)
	return out, nil
}

func (r *appointmentsRepo) ListByDate(ctx context.Context, date time.Time) ([]appointments.Appointment, error) {
	return r.collect(func(a appointments.Appointment) bool { return validate.SameDay(a.Date, date) })
}

func (r *appointmentsRepo) ListByStatus(ctx context.Context, st appointments.Status) ([]appointments.Appointment, error) {
	return r.collect(func(a appointments.Appointment) bool { return a.Status == st })
}

func (r *appointmentsRepo) ListUpcoming(ctx context.Context, from time.Time, days int) ([]appointments.Appointment, error) {
	until := from.AddDate(0, 0, days)
	return r.collect(func(a appointments.Appointment) bool {
		if a.Status == appointments.StatusCancelled {
			return false
		}
		day := validate.DateOnly(a.Date)
		return !day.Before(validate.DateOnly(from)) && !day.After(validate.DateOnly(until))
	})
}

func (r *appointmentsRepo) FindActiveSlot(ctx context.Context, vetID string, date time.Time, hhmm string, excludeID string) (appointments.Appointment, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	if a, taken := r.findActiveSlotLocked(vetID, date, hhmm, excludeID); taken {
		return a, nil
	}
	return appointments.Appointment{}, appointments.ErrNotFound
}

func (r *appointmentsRepo) Count(ctx context.Context) (int, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return len(r.st.appointments), nil
}

func (r *appointmentsRepo) CountByStatus(ctx context.Context) (map[appointments.Status]int, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make(map[appointments.Status]int)
	for _, a := range r.st.appointments {
		out[a.Status]++
	}
	return out, nil
}

func (r *appointmentsRepo) CountActiveByVet(ctx context.Context) (map[string]int, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make(map[string]int)
	for _, a := range r.st.appointments {
		if a.VetID == nil || a.Status == appointments.StatusCancelled {
			continue
		}
		out[*a.VetID]++
	}
	return out, nil
}

// findActiveSlotLocked requiere el lock tomado por el llamador.
func (r *appointmentsRepo) findActiveSlotLocked(vetID string, date time.Time, hhmm string, excludeID string) (appointments.Appointment, bool) {
	for _, a := range r.st.appointments {
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		if a.Status == appointments.StatusCancelled {
			continue
		}
		if a.AssignedTo(vetID) && validate.SameDay(a.Date, date) && a.Time == hhmm {
			return a, true
		}
	}
	return appointments.Appointment{}, false
}

func (r *appointmentsRepo) collect(keep func(appointments.Appointment) bool) ([]appointments.Appointment, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.st.appointments {
		if keep(a) {
			out = append(out, a)
		}
	}
	sortByDateTime(out)
	return out, nil
}

func sortByDateTime(items []appointments.Appointment) {
	sort.Slice(items, func(i, j int) bool {
		di, dj := validate.DateOnly(items[i].Date), validate.DateOnly(items[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if items[i].Time != items[j].Time {
			return items[i].Time < items[j].Time
		}
		return items[i].ID < items[j].ID
	})
}
