package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/vets"
	"vet-clinic/internal/validate"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc))
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Get("/upcoming", upcomingAppointmentsHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Patch("/{appointmentID}", modifyAppointmentHandler(svc))
		ar.Post("/{appointmentID}/cancel", cancelAppointmentHandler(svc))
		ar.Post("/{appointmentID}/done", markDoneHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))
	})

	// Citas vistas desde cada entidad.
	r.Get("/pets/{petID}/appointments", listByPetHandler(svc))
	r.Get("/vets/{vetID}/appointments", listByVetHandler(svc))
	r.Get("/clients/{clientID}/appointments", listByClientHandler(svc))
}

type createAppointmentRequest struct {
	PetID  string `json:"pet_id"`
	VetID  string `json:"vet_id"`
	Date   string `json:"date"` // YYYY-MM-DD
	Time   string `json:"time"` // HH:MM
	Reason string `json:"reason"`
	Status string `json:"status"` // opcional, por defecto Pending
}

type modifyAppointmentRequest struct {
	// Punteros para PATCH real: nil = no tocar, "" = limpiar texto.
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Reason    *string `json:"reason"`
	Status    *string `json:"status"`
	Diagnosis *string `json:"diagnosis"`
}

type markDoneRequest struct {
	Diagnosis string `json:"diagnosis"`
}

type appointmentResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Reason    string    `json:"reason,omitempty"`
	Diagnosis string    `json:"diagnosis,omitempty"`
	Status    string    `json:"status"`
	PetID     string    `json:"pet_id"`
	VetID     *string   `json:"vet_id"` // null tras borrar al veterinario
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var date time.Time
		if req.Date != "" {
			var err error
			date, err = time.ParseInLocation(validate.DateLayout, req.Date, time.Local)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
		}

		var status Status
		if req.Status != "" {
			st, err := ParseStatus(req.Status)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			status = st
		}

		a, err := svc.Create(r.Context(), CreateInput{
			PetID:  req.PetID,
			VetID:  req.VetID,
			Date:   date,
			Time:   req.Time,
			Reason: req.Reason,
			Status: status,
		})
		if err != nil {
			writeAppointmentError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	// Filtros por query: ?status=, ?date=, ?pet_id=, ?vet_id=.
	// Sin filtros devuelve todas.
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var (
			items []Appointment
			err   error
		)
		switch {
		case q.Get("status") != "":
			var st Status
			st, err = ParseStatus(q.Get("status"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			items, err = svc.ListByStatus(r.Context(), st)
		case q.Get("date") != "":
			var date time.Time
			date, err = time.ParseInLocation(validate.DateLayout, q.Get("date"), time.Local)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			items, err = svc.ListByDate(r.Context(), date)
		case q.Get("pet_id") != "":
			items, err = svc.ListByPet(r.Context(), q.Get("pet_id"))
		case q.Get("vet_id") != "":
			items, err = svc.ListByVet(r.Context(), q.Get("vet_id"))
		default:
			items, err = svc.List(r.Context())
		}
		if err != nil {
			writeAppointmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(items))
	}
}

func upcomingAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 7
		if raw := r.URL.Query().Get("days"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				http.Error(w, "days must be a non-negative integer", http.StatusBadRequest)
				return
			}
			days = n
		}

		items, err := svc.Upcoming(r.Context(), days)
		if err != nil {
			writeAppointmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(items))
	}
}

func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeAppointmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func modifyAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req modifyAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var in ModifyInput
		if req.Date != nil {
			date, err := time.ParseInLocation(validate.DateLayout, *req.Date, time.Local)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &date
		}
		in.Time = req.Time
		in.Reason = req.Reason
		in.Diagnosis = req.Diagnosis
		if req.Status != nil {
			st, err := ParseStatus(*req.Status)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			in.Status = &st
		}

		a, err := svc.Modify(r.Context(), chi.URLParam(r, "appointmentID"), in)
		if err != nil {
			writeAppointmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func cancelAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Cancel(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeAppointmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func markDoneHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req markDoneRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.MarkDone(r.Context(), chi.URLParam(r, "appointmentID"), req.Diagnosis)
		if err != nil {
			writeAppointmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "appointmentID")); err != nil {
			writeAppointmentError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPet(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeAppointmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(items))
	}
}

func listByVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByVet(r.Context(), chi.URLParam(r, "vetID"))
		if err != nil {
			writeAppointmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(items))
	}
}

func listByClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByClient(r.Context(), chi.URLParam(r, "clientID"))
		if err != nil {
			writeAppointmentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponses(items))
	}
}

func writeAppointmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound),
		errors.Is(err, pets.ErrNotFound),
		errors.Is(err, vets.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:        a.ID,
		Date:      a.Date.Format(validate.DateLayout),
		Time:      a.Time,
		Reason:    a.Reason,
		Diagnosis: a.Diagnosis,
		Status:    string(a.Status),
		PetID:     a.PetID,
		VetID:     a.VetID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAppointmentResponses(items []Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
