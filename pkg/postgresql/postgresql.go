package postgresql

import (
	"database/sql"
	"log"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/soleterra-wellness/sw-booking/config"
)

var (
	db   *sql.DB
	once sync.Once
)

// GetDatabase returns the shared connection pool backed by the pgx stdlib
// driver.
func GetDatabase() *sql.DB {
	once.Do(func() {
		c := config.Get()

		conn, err := sql.Open("pgx", c.Postgres.DSN)
		if err != nil {
			log.Fatalf("postgresql: %v", err)
		}

		conn.SetMaxOpenConns(c.Postgres.MaxOpenConns)
		conn.SetMaxIdleConns(c.Postgres.MaxIdleConns)
		conn.SetConnMaxLifetime(c.Postgres.ConnMaxLifetime)

		db = conn
	})

	return db
}
