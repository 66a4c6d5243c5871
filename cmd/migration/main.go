package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		log.Fatal("DB_URL is required")
	}

	dir, err := migrationsDir()
	if err != nil {
		log.Fatalf("resolve migrations dir: %v", err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), dbURL)
	if err != nil {
		log.Fatalf("create migrator: %v", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Printf("close migration source: %v", srcErr)
		}
		if dbErr != nil {
			log.Printf("close migration db: %v", dbErr)
		}
	}()

	switch cmd := strings.ToLower(strings.TrimSpace(os.Args[1])); cmd {
	case "up":
		reportChange(m.Up())
		log.Printf("migrations applied from %s", dir)
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(strings.TrimSpace(os.Args[2]))
			if err != nil || steps <= 0 {
				log.Fatalf("invalid down steps %q", os.Args[2])
			}
		}
		reportChange(m.Steps(-steps))
		log.Printf("rolled back %d migration(s)", steps)
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			return
		}
		if err != nil {
			log.Fatalf("read version: %v", err)
		}
		fmt.Printf("version: %d\ndirty: %t\n", version, dirty)
	case "force":
		if len(os.Args) < 3 {
			log.Fatal("force requires a version argument")
		}
		version, err := strconv.Atoi(strings.TrimSpace(os.Args[2]))
		if err != nil || version < 0 {
			log.Fatalf("invalid version %q", os.Args[2])
		}
		if err := m.Force(version); err != nil {
			log.Fatalf("force version %d: %v", version, err)
		}
		log.Printf("forced version to %d", version)
	default:
		printUsage()
		os.Exit(2)
	}
}

func reportChange(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Printf("no migration changes")
		return
	}
	log.Fatal(err)
}

func migrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
		"/app/db/migrations",
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force> [args]\n", name)
	fmt.Fprintf(os.Stderr, "  %s up\n  %s down 1\n  %s version\n  %s force 1\n", name, name, name, name)
}
