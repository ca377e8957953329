package vets

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
	ErrNotFound     = errors.New("veterinarian not found")
	ErrDuplicateDNI = errors.New("a veterinarian with that national id already exists")
	ErrValidation   = errors.New("invalid veterinarian")
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
	Name      string
	DNI       string
	Role      string
	Specialty string
	Phone     string
	Email     string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Veterinarian, error) {
	name := strings.TrimSpace(in.Name)
	dni := validate.FormatDNI(in.DNI)

	if name == "" || dni == "" {
		return Veterinarian{}, fmt.Errorf("%w: name and national id are mandatory fields", ErrValidation)
	}
	if !validate.DNI(dni) {
		return Veterinarian{}, fmt.Errorf("%w: national id must be 8 digits followed by an uppercase letter", ErrValidation)
	}

	phone := validate.FormatPhone(in.Phone)
	if phone != "" && !validate.Phone(phone) {
		return Veterinarian{}, fmt.Errorf("%w: phone must be 9 digits", ErrValidation)
	}
	email := validate.FormatEmail(in.Email)
	if email != "" && !validate.Email(email) {
		return Veterinarian{}, fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	if _, err := s.repo.GetByDNI(ctx, dni); err == nil {
		return Veterinarian{}, ErrDuplicateDNI
	} else if !errors.Is(err, ErrNotFound) {
		return Veterinarian{}, err
	}

	now := s.now()
	v := Veterinarian{
		ID:        uuid.NewString(),
		Name:      validate.FormatName(name),
		DNI:       dni,
		Role:      strings.TrimSpace(in.Role),
		Specialty: strings.TrimSpace(in.Specialty),
		Phone:     phone,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Veterinarian{}, err
	}
	return v, nil
}

type UpdateInput struct {
	Name      *string
	DNI       *string
	Role      *string
	Specialty *string
	Phone     *string
	Email     *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Veterinarian, error) {
	v, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Veterinarian{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Veterinarian{}, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		v.Name = validate.FormatName(name)
	}

	if in.DNI != nil {
		dni := validate.FormatDNI(*in.DNI)
		if !validate.DNI(dni) {
			return Veterinarian{}, fmt.Errorf("%w: national id must be 8 digits followed by an uppercase letter", ErrValidation)
		}
		if dni != v.DNI {
			other, err := s.repo.GetByDNI(ctx, dni)
			if err == nil && other.ID != v.ID {
				return Veterinarian{}, ErrDuplicateDNI
			}
			if err != nil && !errors.Is(err, ErrNotFound) {
				return Veterinarian{}, err
			}
		}
		v.DNI = dni
	}

	if in.Role != nil {
		v.Role = strings.TrimSpace(*in.Role)
	}
	if in.Specialty != nil {
		v.Specialty = strings.TrimSpace(*in.Specialty)
	}
	if in.Phone != nil {
		phone := validate.FormatPhone(*in.Phone)
		if phone != "" && !validate.Phone(phone) {
			return Veterinarian{}, fmt.Errorf("%w: phone must be 9 digits", ErrValidation)
		}
		v.Phone = phone
	}
	if in.Email != nil {
		email := validate.FormatEmail(*in.Email)
		if email != "" && !validate.Email(email) {
			return Veterinarian{}, fmt.Errorf("%w: invalid email format", ErrValidation)
		}
		v.Email = email
	}

	v.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, v); err != nil {
		return Veterinarian{}, err
	}
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Veterinarian, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]Veterinarian, error) {
	return s.repo.List(ctx)
}

// Delete conserva las citas del veterinario, dejando su referencia a null.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
