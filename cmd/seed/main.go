package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/samersoltani/dewini-server/config"
	"github.com/samersoltani/dewini-server/internal/domain/entity"
	"github.com/samersoltani/dewini-server/pkg/helpers"
)

// Seeds the default admin account for a fresh installation.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@dewini.tn"
	password := "admin123"

	var existing entity.User
	err = db.QueryRow(`SELECT id, role FROM users WHERE email = $1`, email).
		Scan(&existing.ID, &existing.Role)
	switch {
	case err == nil:
		if !existing.HasRole("admin") {
			log.Fatalf("user %s exists with role %q, refusing to overwrite", email, existing.Role)
		}
		fmt.Printf("admin already seeded: id=%s email=%s\n", existing.ID, email)
		return
	case !errors.Is(err, sql.ErrNoRows):
		log.Fatalf("failed to check existing admin: %v", err)
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (nom, prenom, email, telephone, date_naissance, grp_sang, password_hash, role)
		VALUES ('Admin', 'Dewini', $1, '', '', '', $2, 'admin')
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", id, email, password)
}
