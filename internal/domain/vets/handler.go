package vets

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/vets", func(vr chi.Router) {
		vr.Post("/", createVetHandler(svc))
		vr.Get("/", listVetsHandler(svc))
		vr.Get("/{vetID}", getVetHandler(svc))
		vr.Patch("/{vetID}", updateVetHandler(svc))
		vr.Delete("/{vetID}", deleteVetHandler(svc))
	})
}

type vetRequest struct {
	Name      string `json:"name"`
	DNI       string `json:"dni"`
	Role      string `json:"role"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type updateVetRequest struct {
	Name      *string `json:"name"`
	DNI       *string `json:"dni"`
	Role      *string `json:"role"`
	Specialty *string `json:"specialty"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

type vetResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	DNI       string    `json:"dni"`
	Role      string    `json:"role,omitempty"`
	Specialty string    `json:"specialty,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func createVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req vetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Create(r.Context(), CreateInput{
			Name:      req.Name,
			DNI:       req.DNI,
			Role:      req.Role,
			Specialty: req.Specialty,
			Phone:     req.Phone,
			Email:     req.Email,
		})
		if err != nil {
			writeVetError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toVetResponse(v))
	}
}

func listVetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeVetError(w, err)
			return
		}

		out := make([]vetResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVetResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "vetID"))
		if err != nil {
			writeVetError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toVetResponse(v))
	}
}

func updateVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateVetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Update(r.Context(), chi.URLParam(r, "vetID"), UpdateInput{
			Name:      req.Name,
			DNI:       req.DNI,
			Role:      req.Role,
			Specialty: req.Specialty,
			Phone:     req.Phone,
			Email:     req.Email,
		})
		if err != nil {
			writeVetError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toVetResponse(v))
	}
}

func deleteVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "vetID")); err != nil {
			writeVetError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeVetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrDuplicateDNI):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toVetResponse(v Veterinarian) vetResponse {
	return vetResponse{
		ID:        v.ID,
		Name:      v.Name,
		DNI:       v.DNI,
		Role:      v.Role,
		Specialty: v.Specialty,
		Phone:     v.Phone,
		Email:     v.Email,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
