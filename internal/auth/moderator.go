package auth

import "crypto/subtle"

// Authorizer decides whether a set of basic-auth credentials carries
// moderator privileges.
type Authorizer interface {
	IsModerator(username, password string) bool
}

// ModeratorAuth checks credentials against a single configured
// moderator account.
type ModeratorAuth struct {
	username string
	password string
}

// NewModeratorAuth creates an Authorizer for the configured moderator
// credentials. Empty credentials disable moderator access entirely.
func NewModeratorAuth(username, password string) *ModeratorAuth {
	return &ModeratorAuth{username: username, password: password}
}

// IsModerator reports whether the given credentials match the
// configured moderator account. Comparison is constant-time and
// case-sensitive. Always false when no account is configured.
func (m *ModeratorAuth) IsModerator(username, password string) bool {
	if m.username == "" || m.password == "" {
		return false
	}
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(m.username)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) == 1
	return userMatch && passMatch
}
