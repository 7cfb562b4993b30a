package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/deckhaven/deckhaven-server/internal/config"
	"github.com/deckhaven/deckhaven-server/internal/logger"
	"github.com/deckhaven/deckhaven-server/internal/search"
	"github.com/deckhaven/deckhaven-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.DeckIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve deck title index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewDeckIndex(search.Options{
		DataPath: cfg.SearchPath(),
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{DeckIndex: index}, nil
}

// TriggerSearchReindexIfNeeded checks if reindexing is needed and triggers it.
// Should be called after all services are wired.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	deckService := do.MustInvoke[*service.DeckService](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := indexHandle.DocumentCount()
	if docCount > 0 {
		return
	}

	// Check if we have decks that need indexing
	ctx := context.Background()
	decks, err := storeHandle.ListDecks(ctx, 1)
	if err != nil || len(decks) == 0 {
		return
	}

	log.Info("Search index is empty but decks exist, triggering initial reindex")

	go func() {
		reindexCtx := context.Background()
		if err := deckService.ReindexAll(reindexCtx); err != nil {
			log.Error("Initial search reindex failed", "error", err)
		} else {
			count, _ := indexHandle.DocumentCount()
			log.Info("Initial search reindex completed", "documents", count)
		}
	}()
}
