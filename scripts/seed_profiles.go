package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/khoahotran/profile-service/adapters/persistence"
	"github.com/khoahotran/profile-service/internal/application/service"
	profileUC "github.com/khoahotran/profile-service/internal/application/usecase/profile"
	"github.com/khoahotran/profile-service/internal/config"
	"github.com/khoahotran/profile-service/pkg/apperror"
	"github.com/khoahotran/profile-service/pkg/logger"
	"github.com/khoahotran/profile-service/pkg/schema"
)

const sampleProfiles = `[
  {
    "name": "Ada Lovelace",
    "email": "ada@example.com",
    "education": [{"degree": "Mathematics", "institution": "Private tutoring", "startYear": 1830, "endYear": 1835}],
    "skills": ["mathematics", "algorithms", "technical writing"],
    "projects": [{"title": "Analytical Engine notes", "description": "First published algorithm", "links": ["https://example.com/notes"]}],
    "work": [{"company": "Analytical Society", "role": "Analyst", "startDate": "1842-01-01", "endDate": "1843-09-01"}],
    "links": {"github": "https://github.com/ada", "portfolio": "https://ada.example.com"}
  },
  {
    "name": "Grace Hopper",
    "email": "grace@example.com",
    "skills": ["cobol", "compilers", "algorithms"],
    "work": [{"company": "US Navy", "role": "Rear Admiral", "startDate": "1943-12-01"}]
  },
  {
    "name": "Linus Torvalds",
    "email": "linus@example.com",
    "skills": ["c", "kernels", "git"],
    "projects": [{"title": "Linux"}, {"title": "Git", "links": ["https://git-scm.com"]}]
  }
]`

func main() {
	fmt.Println("seeding sample profiles...")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	appLogger := logger.NewZapLogger(logger.Options{Env: cfg.App.Env})

	ctx := context.Background()
	client, err := persistence.NewMongoClient(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer persistence.DisconnectMongo(client, cfg.App.ShutdownTimeout, appLogger)

	repo := persistence.NewMongoProfileRepo(client.Database(cfg.Mongo.Database), appLogger)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("cannot create indexes: %v", err)
	}
	createUC := profileUC.NewCreateProfileUseCase(repo, service.NopEventPublisher{}, appLogger)

	var payloads []schema.Document
	if err := json.Unmarshal([]byte(sampleProfiles), &payloads); err != nil {
		log.Fatalf("cannot parse sample profiles: %v", err)
	}

	created := 0
	for _, payload := range payloads {
		out, err := createUC.Execute(ctx, profileUC.CreateProfileInput{Payload: payload})
		if err != nil {
			if errors.Is(err, apperror.ErrConflict) {
				fmt.Printf("skip '%v': email already exists\n", payload["email"])
				continue
			}
			log.Fatalf("cannot add profile '%v': %v", payload["email"], err)
		}
		created++
		fmt.Printf("added profile '%s' (%s)\n", out.Profile.Email, out.Profile.ID.Hex())
	}

	fmt.Printf("seeded %d of %d profiles successfully!\n", created, len(payloads))
}
