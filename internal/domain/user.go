package domain

import "time"

// User is a registered deck author. Usernames are unique and double as
// the request identity on mutating deck and comment operations.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Like marks that a user liked a deck. At most one Like exists per
// (user, deck) pair; toggling off deletes the row outright.
type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	DeckID    string    `json:"deck_id"`
	CreatedAt time.Time `json:"created_at"`
}
