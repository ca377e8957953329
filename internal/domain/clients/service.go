package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-clinic/internal/validate"
)

var (
	ErrNotFound     = errors.New("client not found")
	ErrDuplicateDNI = errors.New("a client with that national id already exists")
	ErrValidation   = errors.New("invalid client")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name  string
	DNI   string
	Phone string
	Email string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Client, error) {
	name := strings.TrimSpace(in.Name)
	dni := validate.FormatDNI(in.DNI)

	if name == "" || dni == "" {
		return Client{}, fmt.Errorf("%w: name and national id are mandatory fields", ErrValidation)
	}
	if !validate.DNI(dni) {
		return Client{}, fmt.Errorf("%w: national id must be 8 digits followed by an uppercase letter", ErrValidation)
	}

	phone := validate.FormatPhone(in.Phone)
	if phone != "" && !validate.Phone(phone) {
		return Client{}, fmt.Errorf("%w: phone must be 9 digits", ErrValidation)
	}
	email := validate.FormatEmail(in.Email)
	if email != "" && !validate.Email(email) {
		return Client{}, fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	// Unicidad de DNI antes de escribir. El índice UNIQUE del storage
	// actúa de respaldo ante carreras.
	if _, err := s.repo.GetByDNI(ctx, dni); err == nil {
		return Client{}, ErrDuplicateDNI
	} else if !errors.Is(err, ErrNotFound) {
		return Client{}, err
	}

	now := s.now()
	c := Client{
		ID:        uuid.NewString(),
		Name:      validate.FormatName(name),
		DNI:       dni,
		Phone:     phone,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

// UpdateInput usa punteros para update parcial: nil = no tocar,
// cadena vacía = limpiar el campo (solo en los opcionales).
type UpdateInput struct {
	Name  *string
	DNI   *string
	Phone *string
	Email *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Client, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Client{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Client{}, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		c.Name = validate.FormatName(name)
	}

	if in.DNI != nil {
		dni := validate.FormatDNI(*in.DNI)
		if !validate.DNI(dni) {
			return Client{}, fmt.Errorf("%w: national id must be 8 digits followed by an uppercase letter", ErrValidation)
		}
		if dni != c.DNI {
			other, err := s.repo.GetByDNI(ctx, dni)
			if err == nil && other.ID != c.ID {
				return Client{}, ErrDuplicateDNI
			}
			if err != nil && !errors.Is(err, ErrNotFound) {
				return Client{}, err
			}
		}
		c.DNI = dni
	}

	if in.Phone != nil {
		phone := validate.FormatPhone(*in.Phone)
		if phone != "" && !validate.Phone(phone) {
			return Client{}, fmt.Errorf("%w: phone must be 9 digits", ErrValidation)
		}
		c.Phone = phone
	}

	if in.Email != nil {
		email := validate.FormatEmail(*in.Email)
		if email != "" && !validate.Email(email) {
			return Client{}, fmt.Errorf("%w: invalid email format", ErrValidation)
		}
		c.Email = email
	}

	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Client, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

func (s *Service) SearchByName(ctx context.Context, name string) ([]Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.repo.List(ctx)
	}
	return s.repo.SearchByName(ctx, name)
}

// Delete elimina el cliente y, en cascada, sus mascotas y las citas de éstas.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
