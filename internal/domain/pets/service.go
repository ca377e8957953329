package pets

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
	ErrNotFound   = errors.New("pet not found")
	ErrValidation = errors.New("invalid pet")
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
	Name     string
	Species  string
	ClientID string
	Breed    string
	Age      *int
	Weight   *float64
	Sex      string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	name := strings.TrimSpace(in.Name)
	species := strings.TrimSpace(in.Species)
	clientID := strings.TrimSpace(in.ClientID)

	if name == "" || species == "" || clientID == "" {
		return Pet{}, fmt.Errorf("%w: name, species and client are mandatory fields", ErrValidation)
	}
	if in.Age != nil && !validate.Age(*in.Age) {
		return Pet{}, fmt.Errorf("%w: age must be between 0 and 50 years", ErrValidation)
	}
	if in.Weight != nil && !validate.Weight(*in.Weight) {
		return Pet{}, fmt.Errorf("%w: weight must be greater than 0", ErrValidation)
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		Name:      validate.FormatName(name),
		Species:   strings.ToLower(species),
		Breed:     strings.TrimSpace(in.Breed),
		Age:       in.Age,
		Weight:    in.Weight,
		Sex:       strings.ToLower(strings.TrimSpace(in.Sex)),
		ClientID:  clientID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// La existencia del cliente la valida la FK del storage
	// (clients.ErrNotFound si no resuelve).
	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

type UpdateInput struct {
	Name    *string
	Species *string
	Breed   *string
	Age     *int
	Weight  *float64
	Sex     *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		p.Name = validate.FormatName(name)
	}
	if in.Species != nil {
		species := strings.TrimSpace(*in.Species)
		if species == "" {
			return Pet{}, fmt.Errorf("%w: species cannot be empty", ErrValidation)
		}
		p.Species = strings.ToLower(species)
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		if !validate.Age(*in.Age) {
			return Pet{}, fmt.Errorf("%w: age must be between 0 and 50 years", ErrValidation)
		}
		p.Age = in.Age
	}
	if in.Weight != nil {
		if !validate.Weight(*in.Weight) {
			return Pet{}, fmt.Errorf("%w: weight must be greater than 0", ErrValidation)
		}
		p.Weight = in.Weight
	}
	if in.Sex != nil {
		p.Sex = strings.ToLower(strings.TrimSpace(*in.Sex))
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByClient(ctx context.Context, clientID string) ([]Pet, error) {
	return s.repo.ListByClient(ctx, strings.TrimSpace(clientID))
}

// Delete elimina la mascota y todas sus citas.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
