package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/madhava-poojari/mentorship-api/internal/config"
	"github.com/madhava-poojari/mentorship-api/internal/logging"
	"github.com/madhava-poojari/mentorship-api/internal/store"
)

// runtime is the config, logger and database every command except version needs.
type runtime struct {
	cfg       *config.Config
	log       *slog.Logger
	store     *store.Store
	logCloser io.Closer
}

// loadConfig is replaced in tests.
var loadConfig = config.Load

func openRuntime() (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, closer, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	st, err := store.NewGormStore(cfg)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &runtime{cfg: cfg, log: log, store: st, logCloser: closer}, nil
}

func (rt *runtime) Close() {
	if err := rt.store.Close(); err != nil {
		rt.log.Error("close database", "error", err)
	}
	_ = rt.logCloser.Close()
}
