package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"vet-clinic/internal/domain/vets"
)

type vetsRepo struct {
	st *Store
}

func (r *vetsRepo) Create(ctx context.Context, v vets.Veterinarian) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("veterinarian id required")
	}
	if _, exists := r.st.vets[v.ID]; exists {
		return errors.New("veterinarian already exists")
	}
	for _, other := range r.st.vets {
		if other.DNI == v.DNI {
			return vets.ErrDuplicateDNI
		}
	}
	r.st.vets[v.ID] = v
	return nil
}

func (r *vetsRepo) Update(ctx context.Context, v vets.Veterinarian) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, exists := r.st.vets[v.ID]; !exists {
		return vets.ErrNotFound
	}
	for _, other := range r.st.vets {
		if other.ID != v.ID && other.DNI == v.DNI {
			return vets.ErrDuplicateDNI
		}
	}
	r.st.vets[v.ID] = v
	return nil
}

func (r *vetsRepo) GetByID(ctx context.Context, id string) (vets.Veterinarian, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	v, ok := r.st.vets[id]
	if !ok {
		return vets.Veterinarian{}, vets.ErrNotFound
	}
	return v, nil
}

func (r *vetsRepo) GetByDNI(ctx context.Context, dni string) (vets.Veterinarian, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	for _, v := range r.st.vets {
		if v.DNI == dni {
			return v, nil
		}
	}
	return vets.Veterinarian{}, vets.ErrNotFound
}

func (r *vetsRepo) List(ctx context.Context) ([]vets.Veterinarian, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]vets.Veterinarian, 0, len(r.st.vets))
	for _, v := range r.st.vets {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Delete conserva las citas del veterinario: solo deja su referencia a
// null (SET NULL), bajo el mismo lock que el borrado.
func (r *vetsRepo) Delete(ctx context.Context, id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, exists := r.st.vets[id]; !exists {
		return vets.ErrNotFound
	}

	for apptID, a := range r.st.appointments {
		if a.VetID != nil && *a.VetID == id {
			a.VetID = nil
			r.st.appointments[apptID] = a
		}
	}

	delete(r.st.vets, id)
	return nil
}

func (r *vetsRepo) Count(ctx context.Context) (int, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return len(r.st.vets), nil
}
