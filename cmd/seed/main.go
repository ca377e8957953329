package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"vet-clinic/internal/adapters/storage/postgres"
	"vet-clinic/internal/config"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/vets"
	"vet-clinic/internal/platform/logger"
)

// Siembra datos de prueba contra Postgres pasando por los servicios,
// de modo que las mismas validaciones de la API apliquen a los datos falsos.
func main() {
	nClients := flag.Int("clients", 10, "number of clients to create")
	nVets := flag.Int("vets", 4, "number of veterinarians to create")
	nAppts := flag.Int("appointments", 20, "number of appointments to create")
	flag.Parse()

	cfg := config.Load()
	log := logger.NewFromEnv()

	if cfg.DBDSN == "" {
		log.Error("DB_DSN is required to seed", nil)
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.DBDSN)
	if err != nil {
		log.Error("cannot connect to postgres", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer db.Close()

	clientsSvc := clients.NewService(postgres.NewClientsRepo(db))
	petsSvc := pets.NewService(postgres.NewPetsRepo(db))
	vetsSvc := vets.NewService(postgres.NewVetsRepo(db))
	apptsSvc := appointments.NewService(postgres.NewAppointmentsRepo(db), petsSvc, vetsSvc, log)

	ctx := context.Background()
	faker := gofakeit.New(0)

	speciesPool := []string{pets.SpeciesDog, pets.SpeciesCat, pets.SpeciesBird, pets.SpeciesRabbit}
	sexPool := []string{pets.SexMale, pets.SexFemale}

	var petIDs []string
	for i := 0; i < *nClients; i++ {
		c, err := clientsSvc.Create(ctx, clients.CreateInput{
			Name:  faker.Name(),
			DNI:   fakeDNI(faker),
			Phone: faker.Numerify("6########"),
			Email: faker.Email(),
		})
		if err != nil {
			log.Warn("skipping client", map[string]any{"error": err.Error()})
			continue
		}

		for j := 0; j < faker.Number(1, 3); j++ {
			age := faker.Number(0, 18)
			weight := faker.Float64Range(0.5, 60)
			p, err := petsSvc.Create(ctx, pets.CreateInput{
				Name:     faker.PetName(),
				Species:  speciesPool[faker.Number(0, len(speciesPool)-1)],
				ClientID: c.ID,
				Breed:    faker.Animal(),
				Age:      &age,
				Weight:   &weight,
				Sex:      sexPool[faker.Number(0, len(sexPool)-1)],
			})
			if err != nil {
				log.Warn("skipping pet", map[string]any{"error": err.Error()})
				continue
			}
			petIDs = append(petIDs, p.ID)
		}
	}

	var vetIDs []string
	specialties := []string{"general", "surgery", "dermatology", "cardiology", "exotics"}
	for i := 0; i < *nVets; i++ {
		v, err := vetsSvc.Create(ctx, vets.CreateInput{
			Name:      faker.Name(),
			DNI:       fakeDNI(faker),
			Role:      "veterinarian",
			Specialty: specialties[faker.Number(0, len(specialties)-1)],
			Phone:     faker.Numerify("6########"),
			Email:     faker.Email(),
		})
		if err != nil {
			log.Warn("skipping vet", map[string]any{"error": err.Error()})
			continue
		}
		vetIDs = append(vetIDs, v.ID)
	}

	if len(petIDs) == 0 || len(vetIDs) == 0 {
		log.Error("no pets or vets seeded, cannot create appointments", nil)
		os.Exit(1)
	}

	created := 0
	reasons := []string{"vacunación", "revisión anual", "desparasitación", "cojera", "control de peso"}
	for i := 0; i < *nAppts; i++ {
		date := time.Now().AddDate(0, 0, faker.Number(1, 30))
		hhmm := fmt.Sprintf("%02d:%02d", faker.Number(9, 16), faker.Number(0, 59))

		_, err := apptsSvc.Create(ctx, appointments.CreateInput{
			PetID:  petIDs[faker.Number(0, len(petIDs)-1)],
			VetID:  vetIDs[faker.Number(0, len(vetIDs)-1)],
			Date:   date,
			Time:   hhmm,
			Reason: reasons[faker.Number(0, len(reasons)-1)],
		})
		if err != nil {
			// Los choques de agenda del generador aleatorio son esperables.
			log.Debug("skipping appointment", map[string]any{"error": err.Error()})
			continue
		}
		created++
	}

	log.Info("seed finished", map[string]any{
		"clients":      *nClients,
		"vets":         len(vetIDs),
		"pets":         len(petIDs),
		"appointments": created,
	})
}

// fakeDNI genera un identificador con el formato esperado: 8 dígitos + letra.
func fakeDNI(f *gofakeit.Faker) string {
	letters := "TRWAGMYFPDXBNJZSQVHLCKE"
	return f.Numerify("########") + string(letters[f.Number(0, len(letters)-1)])
}
