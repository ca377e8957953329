package clients

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeRepo struct {
	items map[string]Client
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]Client)}
}

func (r *fakeRepo) Create(_ context.Context, c Client) error {
	r.items[c.ID] = c
	return nil
}

func (r *fakeRepo) Update(_ context.Context, c Client) error {
	if _, ok := r.items[c.ID]; !ok {
		return ErrNotFound
	}
	r.items[c.ID] = c
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (Client, error) {
	c, ok := r.items[id]
	if !ok {
		return Client{}, ErrNotFound
	}
	return c, nil
}

func (r *fakeRepo) GetByDNI(_ context.Context, dni string) (Client, error) {
	for _, c := range r.items {
		if c.DNI == dni {
			return c, nil
		}
	}
	return Client{}, ErrNotFound
}

func (r *fakeRepo) SearchByName(_ context.Context, name string) ([]Client, error) {
	var out []Client
	for _, c := range r.items {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeRepo) List(_ context.Context) ([]Client, error) {
	out := make([]Client, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
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

func TestCreateClient(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateInput{
		Name:  "juan pérez",
		DNI:   "12345678z", // minúscula, debe normalizarse
		Phone: "600-123-456",
		Email: "Juan@Example.COM ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Name != "Juan Pérez" {
		t.Errorf("Name = %q, want capitalized", c.Name)
	}
	if c.DNI != "12345678Z" {
		t.Errorf("DNI = %q, want 12345678Z", c.DNI)
	}
	if c.Phone != "600123456" {
		t.Errorf("Phone = %q, want digits only", c.Phone)
	}
	if c.Email != "juan@example.com" {
		t.Errorf("Email = %q, want lowercased", c.Email)
	}
}

func TestCreateClientValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"empty name", CreateInput{DNI: "12345678Z"}},
		{"empty dni", CreateInput{Name: "Ana"}},
		{"short dni", CreateInput{Name: "Ana", DNI: "1234Z"}},
		{"dni without letter", CreateInput{Name: "Ana", DNI: "123456789"}},
		{"bad phone", CreateInput{Name: "Ana", DNI: "12345678Z", Phone: "12345"}},
		{"bad email", CreateInput{Name: "Ana", DNI: "12345678Z", Email: "not-an-email"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.in); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateClientDuplicateDNI(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Name: "Ana", DNI: "12345678Z"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, CreateInput{Name: "Luis", DNI: "12345678Z"}); !errors.Is(err, ErrDuplicateDNI) {
		t.Errorf("err = %v, want ErrDuplicateDNI", err)
	}
}

func TestUpdateClient(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	a, _ := svc.Create(ctx, CreateInput{Name: "Ana", DNI: "12345678Z", Phone: "600123456"})
	b, _ := svc.Create(ctx, CreateInput{Name: "Luis", DNI: "87654321X"})

	// Update parcial: solo el nombre, el resto intacto.
	name := "ana maría"
	got, err := svc.Update(ctx, a.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != "Ana María" {
		t.Errorf("Name = %q, want Ana María", got.Name)
	}
	if got.Phone != "600123456" {
		t.Errorf("Phone = %q, must be untouched", got.Phone)
	}

	// Limpiar el teléfono con cadena vacía.
	empty := ""
	got, err = svc.Update(ctx, a.ID, UpdateInput{Phone: &empty})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Phone != "" {
		t.Errorf("Phone = %q, want cleared", got.Phone)
	}

	// Cambiar el DNI al de otro cliente: duplicado.
	dup := b.DNI
	if _, err := svc.Update(ctx, a.ID, UpdateInput{DNI: &dup}); !errors.Is(err, ErrDuplicateDNI) {
		t.Errorf("err = %v, want ErrDuplicateDNI", err)
	}

	// Reafirmar el propio DNI no es duplicado.
	own := a.DNI
	if _, err := svc.Update(ctx, a.ID, UpdateInput{DNI: &own}); err != nil {
		t.Errorf("own dni: unexpected err %v", err)
	}

	if _, err := svc.Update(ctx, "ghost", UpdateInput{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestSearchByName(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	svc.Create(ctx, CreateInput{Name: "Ana García", DNI: "12345678Z"})
	svc.Create(ctx, CreateInput{Name: "Luis Pérez", DNI: "87654321X"})

	got, err := svc.SearchByName(ctx, "garcía")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Ana García" {
		t.Errorf("SearchByName = %v, want only Ana García", got)
	}

	// Búsqueda vacía devuelve todos.
	all, err := svc.SearchByName(ctx, "  ")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("empty search = %d items, want 2", len(all))
	}
}
