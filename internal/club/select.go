package club

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pickup-tracker/internal/config"
	"github.com/mauv0809/pickup-tracker/internal/database"
)

// remoteScheme is the URL scheme a Turso primary URL must carry before the
// remote backend is trusted.
const remoteScheme = "libsql://"

// SelectStore picks the persistence backend once at startup. A well-formed
// remote URL plus auth token selects the SQL store against Turso; anything
// else falls back to the flat-file store transparently. The two backends
// honor the same Store contract, so callers never branch on which one they
// received.
func SelectStore(cfg config.Config) (Store, func(), error) {
	if strings.HasPrefix(cfg.Turso.PrimaryURL, remoteScheme) && cfg.Turso.AuthToken != "" {
		db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
		if err != nil {
			return nil, nil, err
		}
		return New(db), teardown, nil
	}

	if cfg.Turso.PrimaryURL != "" {
		log.Warn("Remote storage config is incomplete or malformed, falling back to local store", "url", cfg.Turso.PrimaryURL)
	} else {
		log.Info("Remote storage not configured, using local store", "dir", cfg.DataDir)
	}
	store, err := NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}
