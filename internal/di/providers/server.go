package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/deckhaven/deckhaven-server/internal/api"
	"github.com/deckhaven/deckhaven-server/internal/auth"
	"github.com/deckhaven/deckhaven-server/internal/config"
	"github.com/deckhaven/deckhaven-server/internal/logger"
	"github.com/deckhaven/deckhaven-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	authorizer := do.MustInvoke[auth.Authorizer](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Auth:     do.MustInvoke[*service.AuthService](i),
		Cards:    do.MustInvoke[*service.CardService](i),
		Decks:    do.MustInvoke[*service.DeckService](i),
		Comments: do.MustInvoke[*service.CommentService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, authorizer, indexHandle.DeckIndex, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
