package database

import (
	"fmt"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	_ "github.com/sijms/go-ora/v2"  // Oracle driver
	"go.uber.org/zap"
)

func init() {
	// go-ora registers as "oracle", which sqlx does not know. Queries are
	// written with ? and rebound to :argN.
	sqlx.BindDriver(config.DriverOracle, sqlx.NAMED)
}

// NewDB opens and pings the database selected by cfg.DB.Driver.
func NewDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.DB.Driver, err)
	}

	if cfg.DB.Driver == config.DriverSQLite {
		// One writer at a time; busy_timeout covers readers.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.DB.Driver, err)
	}

	logger.Get().Info("Successfully connected to database", zap.String("driver", cfg.DB.Driver))
	return db, nil
}
