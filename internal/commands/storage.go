package commands

import (
	"context"
	"fmt"

	"github.com/hay-kot/chefhat/internal/core/config"
	"github.com/hay-kot/chefhat/internal/core/history"
	"github.com/hay-kot/chefhat/internal/core/language"
	"github.com/hay-kot/chefhat/internal/store/jsonfile"
	"github.com/hay-kot/chefhat/internal/store/redisstore"
	"github.com/hay-kot/chefhat/internal/store/sqlite"
)

// Storage is the opened persistence for the configured driver.
type Storage struct {
	Driver    string
	Location  string
	History   history.Persister
	Languages language.Store

	ping  func(ctx context.Context) error
	close func() error
}

// OpenStorage opens the history and language slots for cfg.Storage.Driver.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DatabaseFile())
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return &Storage{
			Driver:    cfg.Storage.Driver,
			Location:  db.Path(),
			History:   db,
			Languages: db,
			ping:      db.Ping,
			close:     db.Close,
		}, nil

	case config.DriverRedis:
		rc := cfg.Storage.Redis
		rs, err := redisstore.New(ctx, redisstore.Options{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
			Prefix:   rc.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		return &Storage{
			Driver:    cfg.Storage.Driver,
			Location:  rs.Addr(),
			History:   rs,
			Languages: rs,
			ping:      rs.Ping,
			close:     rs.Close,
		}, nil

	case config.DriverJSONFile, "":
		return &Storage{
			Driver:    config.DriverJSONFile,
			Location:  cfg.DataDir,
			History:   jsonfile.NewHistoryFile(cfg.HistoryFile()),
			Languages: jsonfile.NewKVStore(cfg.SettingsFile()),
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Ping verifies the backend is reachable. File storage always succeeds.
func (s *Storage) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases backend resources.
func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
