package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/vets"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/validate"
)

var (
	ErrNotFound   = errors.New("appointment not found")
	ErrValidation = errors.New("invalid appointment")

	// ErrConflict es un fallo de validación más: el slot ya está ocupado.
	ErrConflict = fmt.Errorf("%w: schedule conflict: veterinarian already booked at that time", ErrValidation)

	errMandatory = fmt.Errorf("%w: pet, veterinarian, date and time are mandatory fields", ErrValidation)
	errPast      = fmt.Errorf("%w: appointment cannot be in the past", ErrValidation)
	errHours     = fmt.Errorf("%w: appointment time must be between %s and %s", ErrValidation, validate.OpeningHour, validate.ClosingHour)
)

// PetDirectory y VetDirectory son lo único que el planificador necesita de
// los servicios de entidades: comprobar existencia. Los satisfacen
// *pets.Service y *vets.Service.
type PetDirectory interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

type VetDirectory interface {
	GetByID(ctx context.Context, id string) (vets.Veterinarian, error)
}

// Service es la única autoridad para crear y mutar citas. Toda invariante
// de agenda se comprueba aquí antes de tocar el storage.
//
// El chequeo de conflicto es lee-y-escribe sin aislamiento transaccional:
// con un único proceso escritor es suficiente, y el índice parcial único
// del storage actúa de respaldo si alguna carrera se colara.
type Service struct {
	repo Repository
	pets PetDirectory
	vets VetDirectory
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, petDir PetDirectory, vetDir VetDirectory, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		pets: petDir,
		vets: vetDir,
		log:  log,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID  string
	VetID  string
	Date   time.Time
	Time   string
	Reason string
	Status Status // vacío = Pending
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, error) {
	petID := strings.TrimSpace(in.PetID)
	vetID := strings.TrimSpace(in.VetID)

	if petID == "" || vetID == "" || in.Date.IsZero() || strings.TrimSpace(in.Time) == "" {
		return Appointment{}, errMandatory
	}

	day := validate.DateOnly(in.Date)
	hhmm, err := s.validateSlot(day, in.Time)
	if err != nil {
		return Appointment{}, err
	}

	status := in.Status
	if status == "" {
		status = StatusPending
	}
	if !status.Valid() {
		return Appointment{}, fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}

	// Existencia de FKs antes del chequeo de conflicto, para que el
	// llamador reciba el not-found correcto.
	if _, err := s.pets.GetByID(ctx, petID); err != nil {
		return Appointment{}, err
	}
	if _, err := s.vets.GetByID(ctx, vetID); err != nil {
		return Appointment{}, err
	}

	if err := s.checkSlotFree(ctx, vetID, day, hhmm, ""); err != nil {
		return Appointment{}, err
	}

	now := s.now()
	a := Appointment{
		ID:        uuid.NewString(),
		Date:      day,
		Time:      hhmm,
		Reason:    strings.TrimSpace(in.Reason),
		Status:    status,
		PetID:     petID,
		VetID:     &vetID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}

	s.log.Info("appointment created", map[string]any{
		"appointment_id": a.ID,
		"vet_id":         vetID,
		"date":           day.Format(validate.DateLayout),
		"time":           hhmm,
	})
	return a, nil
}

// ModifyInput usa punteros para update parcial: nil = no tocar. Para
// limpiar un campo de texto se envía cadena vacía, no nil.
type ModifyInput struct {
	Date      *time.Time
	Time      *string
	Reason    *string
	Status    *Status
	Diagnosis *string
}

// Modify aplica los cambios no nulos de forma atómica: cualquier fallo de
// validación aborta sin escribir nada.
//
// Solo se revalidan fecha/hora y conflicto cuando llega Time. Un cambio de
// fecha a solas no dispara la revalidación; el llamador debe mandar también
// la hora al mover una cita de slot.
func (s *Service) Modify(ctx context.Context, id string, in ModifyInput) (Appointment, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Appointment{}, err
	}

	if in.Time != nil {
		effDate := a.Date
		if in.Date != nil {
			effDate = validate.DateOnly(*in.Date)
		}

		hhmm, err := s.validateSlot(effDate, *in.Time)
		if err != nil {
			return Appointment{}, err
		}

		// Una cita sin veterinario asignado no puede chocar con nadie.
		if a.VetID != nil {
			if err := s.checkSlotFree(ctx, *a.VetID, effDate, hhmm, a.ID); err != nil {
				return Appointment{}, err
			}
		}
		a.Time = hhmm
	}

	if in.Date != nil {
		a.Date = validate.DateOnly(*in.Date)
	}
	if in.Reason != nil {
		a.Reason = strings.TrimSpace(*in.Reason)
	}
	if in.Diagnosis != nil {
		a.Diagnosis = strings.TrimSpace(*in.Diagnosis)
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return Appointment{}, fmt.Errorf("%w: unknown status %q", ErrValidation, *in.Status)
		}
		a.Status = *in.Status
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}

	s.log.Info("appointment updated", map[string]any{
		"appointment_id": a.ID,
		"status":         string(a.Status),
	})
	return a, nil
}

// Cancel marca la cita como cancelada. Es idempotente: cancelar una cita
// ya cancelada devuelve la cita sin error. El slot queda libre para
// nuevas reservas.
func (s *Service) Cancel(ctx context.Context, id string) (Appointment, error) {
	st := StatusCancelled
	return s.Modify(ctx, id, ModifyInput{Status: &st})
}

// MarkDone completa la cita adjuntando el diagnóstico.
func (s *Service) MarkDone(ctx context.Context, id, diagnosis string) (Appointment, error) {
	diagnosis = strings.TrimSpace(diagnosis)
	if diagnosis == "" {
		return Appointment{}, fmt.Errorf("%w: diagnosis is required to mark an appointment as done", ErrValidation)
	}
	st := StatusDone
	return s.Modify(ctx, id, ModifyInput{Status: &st, Diagnosis: &diagnosis})
}

// Delete elimina la fila de forma permanente. A diferencia de Cancel,
// no es reversible.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return err
	}
	s.log.Info("appointment deleted", map[string]any{"appointment_id": id})
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Appointment, error) {
	return s.repo.ListByPet(ctx, strings.TrimSpace(petID))
}

func (s *Service) ListByVet(ctx context.Context, vetID string) ([]Appointment, error) {
	return s.repo.ListByVet(ctx, strings.TrimSpace(vetID))
}

// ListByClient devuelve las citas de todas las mascotas de un cliente.
func (s *Service) ListByClient(ctx context.Context, clientID string) ([]Appointment, error) {
	return s.repo.ListByClient(ctx, strings.TrimSpace(clientID))
}

func (s *Service) ListByDate(ctx context.Context, date time.Time) ([]Appointment, error) {
	return s.repo.ListByDate(ctx, validate.DateOnly(date))
}

func (s *Service) ListByStatus(ctx context.Context, st Status) ([]Appointment, error) {
	if !st.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, st)
	}
	return s.repo.ListByStatus(ctx, st)
}

func (s *Service) ListPending(ctx context.Context) ([]Appointment, error) {
	return s.repo.ListByStatus(ctx, StatusPending)
}

// Upcoming devuelve las citas no canceladas desde hoy hasta N días
// adelante, ordenadas por (fecha, hora). days negativo se trata como 0.
func (s *Service) Upcoming(ctx context.Context, days int) ([]Appointment, error) {
	if days < 0 {
		days = 0
	}
	return s.repo.ListUpcoming(ctx, validate.DateOnly(s.now()), days)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// validateSlot aplica los chequeos puros de creación/reprogramación:
// hora canónica, no-pasado y horario de atención, en ese orden.
func (s *Service) validateSlot(date time.Time, rawTime string) (string, error) {
	hhmm, err := validate.CanonicalHour(rawTime)
	if err != nil {
		return "", fmt.Errorf("%w: time must be in HH:MM format", ErrValidation)
	}
	if !validate.FutureOrNow(date, hhmm, s.now()) {
		return "", errPast
	}
	if !validate.BusinessHour(hhmm) {
		return "", errHours
	}
	return hhmm, nil
}

func (s *Service) checkSlotFree(ctx context.Context, vetID string, date time.Time, hhmm, excludeID string) error {
	taken, err := s.repo.FindActiveSlot(ctx, vetID, date, hhmm, excludeID)
	if err == nil {
		s.log.Warn("schedule conflict", map[string]any{
			"vet_id":   vetID,
			"date":     date.Format(validate.DateLayout),
			"time":     hhmm,
			"taken_by": taken.ID,
		})
		return ErrConflict
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
