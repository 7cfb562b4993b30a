package providers

import (
	"github.com/samber/do/v2"

	"github.com/deckhaven/deckhaven-server/internal/auth"
	"github.com/deckhaven/deckhaven-server/internal/config"
	"github.com/deckhaven/deckhaven-server/internal/logger"
	"github.com/deckhaven/deckhaven-server/internal/service"
	"github.com/deckhaven/deckhaven-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideAuthorizer provides the moderator credential check.
func ProvideAuthorizer(i do.Injector) (auth.Authorizer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Moderator.Username == "" || cfg.Moderator.Password == "" {
		log.Warn("No moderator account configured, moderation endpoints will reject all requests")
	}

	return auth.NewModeratorAuth(cfg.Moderator.Username, cfg.Moderator.Password), nil
}

// ProvideAuthService provides the signup and login service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideCardService provides the card catalog service.
func ProvideCardService(i do.Injector) (*service.CardService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCardService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideDeckService provides the deck service.
func ProvideDeckService(i do.Injector) (*service.DeckService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDeckService(storeHandle.Store, indexHandle.DeckIndex, validator, log.Logger), nil
}

// ProvideCommentService provides the comment service.
func ProvideCommentService(i do.Injector) (*service.CommentService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCommentService(storeHandle.Store, validator, log.Logger), nil
}
