package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/2beens/workouttracker/internal/config"
	"github.com/2beens/workouttracker/internal/db"
	"github.com/2beens/workouttracker/internal/schema"
	"github.com/2beens/workouttracker/internal/users"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("envfile", ".env", "optional file with secrets as env vars")
	password := flag.String("password", "", "admin password, defaults to WT_ADMIN_PASSWORD")
	update := flag.Bool("update", false, "update the password if the admin account already exists")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("failed to load env file [%s]: %s", *envFile, err)
	}

	if *password == "" {
		*password = os.Getenv("WT_ADMIN_PASSWORD")
	}
	if err := users.ValidatePassword(*password); err != nil {
		log.Fatalf("admin password: %s (use -password or WT_ADMIN_PASSWORD)", err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, cfg, *password, *update); err != nil {
		log.Errorf("create admin: %s", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, password string, update bool) error {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("WT_POSTGRES_PASSWORD"),
	})
	if err != nil {
		return fmt.Errorf("new db pool: %w", err)
	}
	defer dbPool.Close()

	if err := schema.NewManager(dbPool).Migrate(ctx); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	admin, created, err := users.NewService(users.NewRepo(dbPool)).EnsureAdmin(ctx, password, update)
	switch {
	case err != nil:
		return err
	case created:
		fmt.Println("Admin user created successfully!")
		fmt.Printf("Username: %s\n", admin.Username)
		fmt.Println("Any existing workouts and sessions have been assigned to the admin account.")
	case update:
		fmt.Println("Admin password updated successfully!")
	default:
		fmt.Println("Admin user already exists! Pass -update to change its password.")
	}
	return nil
}
