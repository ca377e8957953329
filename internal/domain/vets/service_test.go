package vets

import (
	"context"
	"errors"
	"testing"
)

type fakeRepo struct {
	items map[string]Veterinarian
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]Veterinarian)}
}

func (r *fakeRepo) Create(_ context.Context, v Veterinarian) error {
	r.items[v.ID] = v
	return nil
}

func (r *fakeRepo) Update(_ context.Context, v Veterinarian) error {
	if _, ok := r.items[v.ID]; !ok {
		return ErrNotFound
	}
	r.items[v.ID] = v
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (Veterinarian, error) {
	v, ok := r.items[id]
	if !ok {
		return Veterinarian{}, ErrNotFound
	}
	return v, nil
}

func (r *fakeRepo) GetByDNI(_ context.Context, dni string) (Veterinarian, error) {
	for _, v := range r.items {
		if v.DNI == dni {
			return v, nil
		}
	}
	return Veterinarian{}, ErrNotFound
}

func (r *fakeRepo) List(_ context.Context) ([]Veterinarian, error) {
	out := make([]Veterinarian, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
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

func TestCreateVet(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	v, err := svc.Create(ctx, CreateInput{
		Name:      "marta ruiz",
		DNI:       "12345678z",
		Role:      " veterinarian ",
		Specialty: "surgery",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if v.Name != "Marta Ruiz" {
		t.Errorf("Name = %q, want capitalized", v.Name)
	}
	if v.DNI != "12345678Z" {
		t.Errorf("DNI = %q, want normalized", v.DNI)
	}
	if v.Role != "veterinarian" {
		t.Errorf("Role = %q, want trimmed", v.Role)
	}
}

func TestCreateVetValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{DNI: "12345678Z"}); !errors.Is(err, ErrValidation) {
		t.Errorf("no name: err = %v, want ErrValidation", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Name: "Marta", DNI: "nope"}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad dni: err = %v, want ErrValidation", err)
	}
}

func TestCreateVetDuplicateDNI(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Name: "Marta", DNI: "12345678Z"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Name: "Juan", DNI: "12345678Z"}); !errors.Is(err, ErrDuplicateDNI) {
		t.Errorf("err = %v, want ErrDuplicateDNI", err)
	}
}

func TestUpdateVet(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	v, err := svc.Create(ctx, CreateInput{Name: "Marta", DNI: "12345678Z", Specialty: "general"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	specialty := "dermatology"
	got, err := svc.Update(ctx, v.ID, UpdateInput{Specialty: &specialty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Specialty != "dermatology" {
		t.Errorf("Specialty = %q, want dermatology", got.Specialty)
	}
	if got.Name != "Marta" {
		t.Errorf("Name = %q, must be untouched", got.Name)
	}

	if _, err := svc.Update(ctx, "ghost", UpdateInput{Specialty: &specialty}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}
