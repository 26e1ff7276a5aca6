// Command adminctl provisions admin credentials out of band. There is no
// registration endpoint; this is the only way accounts are created.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/saifinance/loan-inquiry-api/internal/admin"
	"github.com/saifinance/loan-inquiry-api/internal/infra"
)

func main() {
	_ = godotenv.Load()

	username := flag.String("username", "", "admin username (required)")
	password := flag.String("password", "", "admin password (required)")
	databaseURL := flag.String("database-url", os.Getenv("DATABASE_URL"), "postgres connection string")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: adminctl -username <name> -password <secret>")
		os.Exit(2)
	}
	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL must be set or passed via -database-url")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := infra.Migrate(*databaseURL); err != nil {
		fmt.Fprintf(os.Stderr, "migrate schema: %v\n", err)
		os.Exit(1)
	}

	db, err := infra.NewPostgresPool(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect postgres: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}

	repo := admin.NewPostgresRepository(db)
	if err := repo.Upsert(ctx, admin.Admin{
		ID:           uuid.NewString(),
		Username:     *username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "store admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("admin %q ready\n", *username)
}
