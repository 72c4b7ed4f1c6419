package cli

import (
	"context"
	"path/filepath"

	"draftkit/internal/cache"
	"draftkit/internal/catalog"
	"draftkit/internal/config"
	"draftkit/internal/fetch"
	"draftkit/internal/logging"
	"draftkit/internal/pattern"
	"draftkit/internal/preset"
	"draftkit/internal/session"
)

func newPatternStore() *pattern.Store {
	return pattern.NewStore(config.UserPatternsDir(), config.ProjectPatternsDir())
}

func newPresetStore() *preset.Store {
	store := preset.NewStore(config.UserPresetsDir(), config.ProjectPresetsDir())
	if err := store.LoadActive(); err != nil {
		logging.Warn("Failed to load active preset stack", "error", err)
	}
	return store
}

// intelligencePath is where analyze writes and serve/generate read the
// component intelligence dataset.
func intelligencePath(paths config.DataPaths) string {
	return filepath.Join(paths.Root, "component-intelligence.json")
}

// newFetcher builds an initialized fetch client from the stored session.
// Returns a session load or init error unchanged so callers can relay the
// "run draftkit auth" guidance.
func newFetcher(ctx context.Context, paths config.DataPaths, componentCache *cache.Cache) (*fetch.Client, error) {
	sess, err := session.NewManager(paths).Load()
	if err != nil {
		return nil, err
	}
	if sess.IsExpired() {
		logging.Warn("Stored session is expired; the upstream may reject it")
	}
	client := fetch.New(sess.Cookie, componentCache)
	if err := client.Init(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

func openCatalog(paths config.DataPaths) *catalog.Catalog {
	return catalog.Load(paths.ComponentsDir())
}
