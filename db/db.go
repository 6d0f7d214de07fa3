package db

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

const (
	maxOpenConns = 10
	maxIdleConns = 5
	connMaxLife  = time.Minute * 15

	MigrationDir = "file://db/migration"
)

func MustMigrate(db *sql.DB, migrationDir string) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		panic(err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationDir, "postgres", driver)
	if err != nil {
		panic(err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		panic(err)
	}
	if dirty {
		panic("database is dirty")
	}
	log.Println("migration version:", version)

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return
		}
		panic(err)
	}
	log.Println("migration successful...")
}

// MustConnectToDb opens the analytics database and brings its schema up to date.
func MustConnectToDb(psqlUrl string) *sql.DB {
	db, err := sql.Open("postgres", psqlUrl)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLife)

	MustMigrate(db, MigrationDir)
	return db
}
