package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pets"
)

type petsRepo struct {
	st *Store
}

func (r *petsRepo) Create(ctx context.Context, p pets.Pet) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.st.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	// FK: el cliente debe existir.
	if _, ok := r.st.clients[p.ClientID]; !ok {
		return clients.ErrNotFound
	}
	r.st.pets[p.ID] = p
	return nil
}

func (r *petsRepo) Update(ctx context.Context, p pets.Pet) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, exists := r.st.pets[p.ID]; !exists {
		return pets.ErrNotFound
	}
	if _, ok := r.st.clients[p.ClientID]; !ok {
		return clients.ErrNotFound
	}
	r.st.pets[p.ID] = p
	return nil
}

func (r *petsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	p, ok := r.st.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.st.pets))
	for _, p := range r.st.pets {
		out = append(out, p)
	}
	sortPetsByName(out)
	return out, nil
}

func (r *petsRepo) ListByClient(ctx context.Context, clientID string) ([]pets.Pet, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.st.pets {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	sortPetsByName(out)
	return out, nil
}

// Delete borra la mascota y todas sus citas bajo el mismo lock.
func (r *petsRepo) Delete(ctx context.Context, id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, exists := r.st.pets[id]; !exists {
		return pets.ErrNotFound
	}

	for apptID, a := range r.st.appointments {
		if a.PetID == id {
			delete(r.st.appointments, apptID)
		}
	}

	delete(r.st.pets, id)
	return nil
}

func (r *petsRepo) Count(ctx context.Context) (int, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return len(r.st.pets), nil
}

func (r *petsRepo) CountBySpecies(ctx context.Context) (map[string]int, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make(map[string]int)
	for _, p := range r.st.pets {
		out[p.Species]++
	}
	return out, nil
}

func sortPetsByName(items []pets.Pet) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
}
