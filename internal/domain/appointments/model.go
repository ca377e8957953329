package appointments

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusDone      Status = "Done"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// ParseStatus acepta el estado sin distinguir mayúsculas ("pending" -> Pending).
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "confirmed":
		return StatusConfirmed, nil
	case "done":
		return StatusDone, nil
	case "cancelled":
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Appointment es una consulta veterinaria programada.
//
// Un slot (veterinario, fecha, hora) admite como máximo una cita no
// cancelada. Las citas canceladas no bloquean el slot.
type Appointment struct {
	ID   string
	Date time.Time // solo fecha, hora a cero
	Time string    // "HH:MM"

	Reason    string // opcional
	Diagnosis string // opcional, se rellena al completar
	Status    Status // por defecto Pending

	PetID string  // obligatorio
	VetID *string // nil tras borrar al veterinario

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AssignedTo indica si la cita sigue asignada al veterinario dado.
func (a Appointment) AssignedTo(vetID string) bool {
	return a.VetID != nil && *a.VetID == vetID
}
