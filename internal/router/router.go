package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"vet-clinic/internal/adapters/storage/memory"
	"vet-clinic/internal/adapters/storage/postgres"
	"vet-clinic/internal/domain/analytics"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/vets"
	"vet-clinic/internal/platform/logger"
)

type Options struct {
	// DB nulo => repos en memoria (dev y tests).
	DB  *sql.DB
	Log logger.Logger
}

// New arma los repos, servicios y rutas de la aplicación.
func New(opts Options) chi.Router {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	var (
		clientsRepo clients.Repository
		petsRepo    pets.Repository
		vetsRepo    vets.Repository
		apptsRepo   appointments.Repository
	)
	if opts.DB != nil {
		clientsRepo = postgres.NewClientsRepo(opts.DB)
		petsRepo = postgres.NewPetsRepo(opts.DB)
		vetsRepo = postgres.NewVetsRepo(opts.DB)
		apptsRepo = postgres.NewAppointmentsRepo(opts.DB)
	} else {
		store := memory.NewStore()
		clientsRepo = store.Clients()
		petsRepo = store.Pets()
		vetsRepo = store.Vets()
		apptsRepo = store.Appointments()
	}

	clientsSvc := clients.NewService(clientsRepo)
	petsSvc := pets.NewService(petsRepo)
	vetsSvc := vets.NewService(vetsRepo)
	apptsSvc := appointments.NewService(apptsRepo, petsSvc, vetsSvc, log)
	analyticsSvc := analytics.NewService(clientsRepo, petsRepo, vetsRepo, apptsRepo)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	clients.RegisterRoutes(r, clientsSvc)
	pets.RegisterRoutes(r, petsSvc)
	vets.RegisterRoutes(r, vetsSvc)
	appointments.RegisterRoutes(r, apptsSvc)
	analytics.RegisterRoutes(r, analyticsSvc)

	return r
}

func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info("http request", map[string]any{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
				"request_id": chimw.GetReqID(r.Context()),
			})
		})
	}
}
