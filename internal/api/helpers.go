package api

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/deckhaven/deckhaven-server/internal/domain"
	domainerrors "github.com/deckhaven/deckhaven-server/internal/errors"
	"github.com/deckhaven/deckhaven-server/internal/store"
)

// resolveUser maps a request username to a stored user. There are no
// session tokens; mutating requests carry the acting username and the
// server resolves it here.
func (s *Server) resolveUser(ctx context.Context, username string) (*domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, domainerrors.Unauthorized("username is required")
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Unauthorized("unknown user")
		}
		return nil, err
	}

	return user, nil
}

// lookupViewer resolves an optional viewer username to a user ID.
// Unknown or empty names read as anonymous rather than failing the request.
func (s *Server) lookupViewer(ctx context.Context, username string) string {
	if username == "" {
		return ""
	}
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return ""
	}
	return user.ID
}

// isModerator reports whether the Authorization header carries valid
// moderator basic credentials.
func (s *Server) isModerator(authorization string) bool {
	username, password, ok := parseBasicAuth(authorization)
	if !ok {
		return false
	}
	return s.authorizer.IsModerator(username, password)
}

// requireModerator rejects requests without valid moderator credentials.
func (s *Server) requireModerator(authorization string) error {
	if !s.isModerator(authorization) {
		return domainerrors.Unauthorized("moderator credentials required")
	}
	return nil
}

// parseBasicAuth decodes an HTTP basic Authorization header value.
func parseBasicAuth(header string) (username, password string, ok bool) {
	const prefix = "Basic "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}

	return strings.Cut(string(decoded), ":")
}
