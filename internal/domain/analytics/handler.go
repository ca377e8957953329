package analytics

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/analytics", func(ar chi.Router) {
		ar.Get("/summary", summaryHandler(svc))
		ar.Get("/vets/load", vetLoadsHandler(svc))
		ar.Get("/vets/busiest", busiestVetHandler(svc))
		ar.Get("/species", speciesHandler(svc))
		ar.Get("/upcoming", upcomingHandler(svc))
	})
}

func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := svc.Summary(r.Context())
		if err != nil {
			writeAnalyticsError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}

func vetLoadsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loads, err := svc.VetLoads(r.Context())
		if err != nil {
			writeAnalyticsError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, loads)
	}
}

func busiestVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		load, err := svc.BusiestVet(r.Context())
		if err != nil {
			writeAnalyticsError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, load)
	}
}

func speciesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dist, err := svc.SpeciesDistribution(r.Context())
		if err != nil {
			writeAnalyticsError(w, err)
			return
		}

		out := struct {
			Distribution map[string]int `json:"distribution"`
			MostCommon   string         `json:"most_common,omitempty"`
		}{Distribution: dist}

		if most, err := svc.MostCommonSpecies(r.Context()); err == nil {
			out.MostCommon = most
		} else if !errors.Is(err, ErrNoData) {
			writeAnalyticsError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func upcomingHandler(svc *Service) http.HandlerFunc {
	// ?window=today|week|month (por defecto week).
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			items any
			err   error
		)
		switch r.URL.Query().Get("window") {
		case "", "week":
			items, err = svc.UpcomingWeek(r.Context())
		case "today":
			items, err = svc.UpcomingToday(r.Context())
		case "month":
			items, err = svc.UpcomingMonth(r.Context())
		default:
			http.Error(w, "window must be today, week or month", http.StatusBadRequest)
			return
		}
		if err != nil {
			writeAnalyticsError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func writeAnalyticsError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNoData) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
