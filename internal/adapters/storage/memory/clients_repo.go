package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"vet-clinic/internal/domain/clients"
)

type clientsRepo struct {
	st *Store
}

func (r *clientsRepo) Create(ctx context.Context, c clients.Client) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("client id required")
	}
	if _, exists := r.st.clients[c.ID]; exists {
		return errors.New("client already exists")
	}
	// Respaldo del índice UNIQUE sobre dni.
	for _, other := range r.st.clients {
		if other.DNI == c.DNI {
			return clients.ErrDuplicateDNI
		}
	}
	r.st.clients[c.ID] = c
	return nil
}

func (r *clientsRepo) Update(ctx context.Context, c clients.Client) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, exists := r.st.clients[c.ID]; !exists {
		return clients.ErrNotFound
	}
	for _, other := range r.st.clients {
		if other.ID != c.ID && other.DNI == c.DNI {
			return clients.ErrDuplicateDNI
		}
	}
	r.st.clients[c.ID] = c
	return nil
}

func (r *clientsRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	c, ok := r.st.clients[id]
	if !ok {
		return clients.Client{}, clients.ErrNotFound
	}
	return c, nil
}

func (r *clientsRepo) GetByDNI(ctx context.Context, dni string) (clients.Client, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	for _, c := range r.st.clients {
		if c.DNI == dni {
			return c, nil
		}
	}
	return clients.Client{}, clients.ErrNotFound
}

func (r *clientsRepo) SearchByName(ctx context.Context, name string) ([]clients.Client, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	needle := strings.ToLower(name)
	out := make([]clients.Client, 0)
	for _, c := range r.st.clients {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	sortClientsByName(out)
	return out, nil
}

func (r *clientsRepo) List(ctx context.Context) ([]clients.Client, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]clients.Client, 0, len(r.st.clients))
	for _, c := range r.st.clients {
		out = append(out, c)
	}
	sortClientsByName(out)
	return out, nil
}

// Delete borra el cliente, sus mascotas y las citas de esas mascotas,
// todo bajo el mismo lock.
func (r *clientsRepo) Delete(ctx context.Context, id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, exists := r.st.clients[id]; !exists {
		return clients.ErrNotFound
	}

	for petID, p := range r.st.pets {
		if p.ClientID != id {
			continue
		}
		for apptID, a := range r.st.appointments {
			if a.PetID == petID {
				delete(r.st.appointments, apptID)
			}
		}
		delete(r.st.pets, petID)
	}

	delete(r.st.clients, id)
	return nil
}

func (r *clientsRepo) Count(ctx context.Context) (int, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	return len(r.st.clients), nil
}

func sortClientsByName(items []clients.Client) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
}
