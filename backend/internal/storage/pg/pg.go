package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/itchan-dev/community/shared/config"
	"github.com/itchan-dev/community/shared/logger"
	sharedpg "github.com/itchan-dev/community/shared/storage/pg"
)

//go:embed migrations/init.sql
var initSchema string

type Querier = sharedpg.Querier

type Storage struct {
	db  *sql.DB
	cfg *config.Config
	log *slog.Logger
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	log := logger.Component("storage")
	log.Info("connecting to db", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg, sharedpg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	log.Info("successfully connected to db")

	storage := &Storage{db: db, cfg: cfg, log: log}
	if err := storage.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return storage, nil
}

// migrate creates the shared sequence and post index. Safe to run on every
// start, also from several instances at once.
func (s *Storage) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, initSchema); err != nil && !isAlreadyExists(err) {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}
