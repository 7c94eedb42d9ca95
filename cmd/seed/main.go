package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-devconnector/config"
	"github.com/oksasatya/go-devconnector/internal/application"
	"github.com/oksasatya/go-devconnector/internal/container"
	"github.com/oksasatya/go-devconnector/internal/router"
	"github.com/oksasatya/go-devconnector/pkg/apperror"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	// the seed never sends mail
	cfg.RabbitMQURL = ""
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	cleanup, err := container.Bootstrap(ctx, cfg, logger)
	if err != nil {
		err = fmt.Errorf("bootstrap: %w", err)
	} else {
		err = seed(ctx)
	}
	// log.Fatal skips deferred calls
	cleanup()
	if err != nil {
		log.Fatal(err)
	}
}

func seed(ctx context.Context) error {
	repos, err := router.BuildRepositories()
	if err != nil {
		return fmt.Errorf("repositories: %w", err)
	}
	svc := router.BuildServices(repos)

	email := "demo@devconnector.dev"
	password := "password123"
	name := "Demo Developer"

	u, _, err := svc.Users.Register(ctx, application.RegisterInput{Name: name, Email: email, Password: password})
	switch {
	case errors.Is(err, apperror.ErrConflict):
		if u, err = svc.Users.FindByEmail(ctx, email); err != nil {
			return fmt.Errorf("lookup demo user: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to seed user: %w", err)
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s password=%s\n", u.ID, email, name, password)

	p, err := svc.Profiles.Upsert(ctx, u.ID, application.ProfileInput{
		Company:        "DevConnector",
		Location:       "Remote",
		Status:         "Developer",
		Skills:         "Go, PostgreSQL, Docker",
		GithubUsername: "devconnector",
		Bio:            "Seeded profile for local development.",
	})
	if err != nil {
		return fmt.Errorf("failed to seed profile: %w", err)
	}
	if len(p.Experience) == 0 {
		from, _ := helpers.ParseDate("2020-01-01")
		if _, err := svc.Profiles.AddExperience(ctx, u.ID, application.ExperienceInput{
			Title: "Backend Engineer", Company: "Acme", From: from, Current: true,
		}); err != nil {
			return fmt.Errorf("failed to seed experience: %w", err)
		}
	}
	fmt.Printf("seeded profile: id=%s skills=%v\n", p.ID, p.Skills)
	return nil
}
