package pets

import (
	"context"
	"errors"
	"testing"

	"vet-clinic/internal/domain/clients"
)

// fakeRepo valida la FK de cliente contra un conjunto fijo, igual que lo
// haría el storage real.
type fakeRepo struct {
	items        map[string]Pet
	knownClients map[string]bool
}

func newFakeRepo(clientIDs ...string) *fakeRepo {
	known := make(map[string]bool, len(clientIDs))
	for _, id := range clientIDs {
		known[id] = true
	}
	return &fakeRepo{items: make(map[string]Pet), knownClients: known}
}

func (r *fakeRepo) Create(_ context.Context, p Pet) error {
	if !r.knownClients[p.ClientID] {
		return clients.ErrNotFound
	}
	r.items[p.ID] = p
	return nil
}

func (r *fakeRepo) Update(_ context.Context, p Pet) error {
	if _, ok := r.items[p.ID]; !ok {
		return ErrNotFound
	}
	r.items[p.ID] = p
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (Pet, error) {
	p, ok := r.items[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) List(_ context.Context) ([]Pet, error) {
	out := make([]Pet, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) ListByClient(_ context.Context, clientID string) ([]Pet, error) {
	var out []Pet
	for _, p := range r.items {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) Count(_ context.Context) (int, error) { return len(r.items), nil }

func (r *fakeRepo) CountBySpecies(_ context.Context) (map[string]int, error) {
	out := make(map[string]int)
	for _, p := range r.items {
		out[p.Species]++
	}
	return out, nil
}

func TestCreatePet(t *testing.T) {
	svc := NewService(newFakeRepo("client-1"))
	ctx := context.Background()

	age := 3
	weight := 12.5
	p, err := svc.Create(ctx, CreateInput{
		Name:     "rocky",
		Species:  "Dog",
		ClientID: "client-1",
		Breed:    "beagle",
		Age:      &age,
		Weight:   &weight,
		Sex:      "Male",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Name != "Rocky" {
		t.Errorf("Name = %q, want capitalized", p.Name)
	}
	if p.Species != SpeciesDog {
		t.Errorf("Species = %q, want lowercased %q", p.Species, SpeciesDog)
	}
	if p.Sex != SexMale {
		t.Errorf("Sex = %q, want %q", p.Sex, SexMale)
	}
}

func TestCreatePetValidation(t *testing.T) {
	svc := NewService(newFakeRepo("client-1"))
	ctx := context.Background()

	badAge := 60
	negWeight := -1.0
	cases := []struct {
		name string
		in   CreateInput
	}{
		{"no name", CreateInput{Species: "dog", ClientID: "client-1"}},
		{"no species", CreateInput{Name: "Rocky", ClientID: "client-1"}},
		{"no client", CreateInput{Name: "Rocky", Species: "dog"}},
		{"age out of range", CreateInput{Name: "Rocky", Species: "dog", ClientID: "client-1", Age: &badAge}},
		{"negative weight", CreateInput{Name: "Rocky", Species: "dog", ClientID: "client-1", Weight: &negWeight}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.in); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreatePetUnknownClient(t *testing.T) {
	svc := NewService(newFakeRepo("client-1"))

	_, err := svc.Create(context.Background(), CreateInput{
		Name: "Rocky", Species: "dog", ClientID: "ghost",
	})
	if !errors.Is(err, clients.ErrNotFound) {
		t.Errorf("err = %v, want clients.ErrNotFound", err)
	}
}

func TestUpdatePet(t *testing.T) {
	svc := NewService(newFakeRepo("client-1"))
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateInput{Name: "Rocky", Species: "dog", ClientID: "client-1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	weight := 14.2
	got, err := svc.Update(ctx, p.ID, UpdateInput{Weight: &weight})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Weight == nil || *got.Weight != 14.2 {
		t.Errorf("Weight = %v, want 14.2", got.Weight)
	}
	if got.Name != "Rocky" {
		t.Errorf("Name = %q, must be untouched", got.Name)
	}

	empty := ""
	if _, err := svc.Update(ctx, p.ID, UpdateInput{Name: &empty}); !errors.Is(err, ErrValidation) {
		t.Errorf("empty name: err = %v, want ErrValidation", err)
	}

	if _, err := svc.Update(ctx, "ghost", UpdateInput{Weight: &weight}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestListByClient(t *testing.T) {
	svc := NewService(newFakeRepo("client-1", "client-2"))
	ctx := context.Background()

	svc.Create(ctx, CreateInput{Name: "Rocky", Species: "dog", ClientID: "client-1"})
	svc.Create(ctx, CreateInput{Name: "Misu", Species: "cat", ClientID: "client-1"})
	svc.Create(ctx, CreateInput{Name: "Piolin", Species: "bird", ClientID: "client-2"})

	got, err := svc.ListByClient(ctx, "client-1")
	if err != nil {
		t.Fatalf("ListByClient: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ListByClient = %d pets, want 2", len(got))
	}
}
