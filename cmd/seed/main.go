package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/peopledesk/peopledesk-api/internal/config"
	"github.com/peopledesk/peopledesk-api/internal/pkg/database"
	"github.com/peopledesk/peopledesk-api/internal/repository/postgresql"
	seedService "github.com/peopledesk/peopledesk-api/internal/service/seed"
)

// Seeds the demo roster. Prints a JSON payload to stdout: the created
// identities on success, {"error": ...} on failure. Safe to re-run.
func main() {
	if err := run(); err != nil {
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	svc := seedService.NewSeedService(
		db,
		postgresql.NewIdentityRepository(db),
		postgresql.NewRoleRepository(db),
		postgresql.NewProfileRepository(db),
		postgresql.NewLeaveRepository(db),
		postgresql.NewAttendanceRepository(db),
	)

	result, err := svc.Run(context.Background())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
