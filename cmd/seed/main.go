// Package main provides a tool to seed the database with development data.
//
// This creates the standard test user and, with --cards, a small starter
// catalog so decks can be built against a fresh database.
//
// Usage:
//
//	DATA_PATH=~/DeckHaven/data go run ./cmd/seed
//	DATA_PATH=~/DeckHaven/data go run ./cmd/seed --cards  # Also seed a starter catalog
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/deckhaven/deckhaven-server/internal/auth"
	"github.com/deckhaven/deckhaven-server/internal/domain"
	"github.com/deckhaven/deckhaven-server/internal/id"
	"github.com/deckhaven/deckhaven-server/internal/store"
	"github.com/deckhaven/deckhaven-server/internal/store/sqlite"
)

var seedCards = flag.Bool("cards", false, "Seed a starter card catalog")

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/DeckHaven/data")
	}
	dbPath := filepath.Join(dataPath, "deckhaven.db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	createTestUser(ctx, s)

	if *seedCards {
		createStarterCatalog(ctx, s)
	}
}

func createTestUser(ctx context.Context, s store.Store) {
	if _, err := s.GetUserByUsername(ctx, "testuser"); err == nil {
		fmt.Println("Test user already exists, skipping")
		return
	}

	hash, err := auth.HashPassword("password123")
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           id.MustGenerate("user"),
		Username:     "testuser",
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.CreateUser(ctx, user); err != nil {
		log.Fatalf("Failed to create test user: %v", err)
	}

	fmt.Printf("Created test user with username: %s\n", user.Username)
}

// starterCatalog gives each color enough distinct cards to fill a deck.
var starterCatalog = map[domain.CardColor][]string{
	domain.CardColorRed:    {"Ember Duelist", "Cinder Hound", "Flare Adept", "Molten Lance", "Ash Rider", "Pyre Warden", "Blaze Herald", "Scorch Imp", "Furnace Golem", "Spark Dancer", "Kindled Brute", "Wildfire Sage", "Crimson Vanguard"},
	domain.CardColorBlue:   {"Tide Scholar", "Mist Weaver", "Current Scout", "Frost Oracle", "Wave Caller", "Deep Sentry", "Ripple Mage", "Brine Spirit", "Gale Navigator", "Harbor Keeper", "Storm Archivist", "Glacier Watch", "Azure Envoy"},
	domain.CardColorGreen:  {"Grove Tender", "Thorn Stalker", "Moss Titan", "Seed Speaker", "Fern Prowler", "Root Guardian", "Bloom Shaman", "Vine Lurker", "Elder Stag", "Canopy Archer", "Wild Sower", "Bramble Knight", "Verdant Scout"},
	domain.CardColorYellow: {"Dawn Herald", "Gilded Sentinel", "Sun Priest", "Radiant Lancer", "Beacon Keeper", "Halo Chanter", "Daybreak Monk", "Lumen Scribe", "Solar Champion", "Gleam Warden", "Aurora Page", "Zenith Guard", "Golden Envoy"},
	domain.CardColorPurple: {"Void Whisperer", "Gloom Stitcher", "Night Courier", "Shade Binder", "Dusk Reaper", "Phantom Duelist", "Umbral Sage", "Occult Scribe", "Veil Dancer", "Twilight Baron", "Hex Carver", "Murk Strider", "Violet Augur"},
	domain.CardColorGrey:   {"Stone Drifter", "Fog Mercenary", "Pale Wanderer", "Slate Golem", "Dust Nomad"},
	domain.CardColorRod:    {"Rod of Embers", "Rod of Tides", "Rod of Thorns", "Rod of Daylight", "Rod of Shadows"},
	domain.CardColorRelic:  {"Shattered Crown", "Sealed Grimoire", "Ancient Standard", "Hollow Idol", "Forgotten Banner"},
}

func createStarterCatalog(ctx context.Context, s store.Store) {
	created := 0
	for color, names := range starterCatalog {
		for _, name := range names {
			card := &domain.Card{
				ID:        id.MustGenerate("card"),
				Name:      name,
				Color:     color,
				CreatedAt: time.Now().UTC(),
			}
			if err := s.CreateCard(ctx, card); err != nil {
				if errors.Is(err, store.ErrAlreadyExists) {
					continue
				}
				log.Fatalf("Failed to create card %q: %v", name, err)
			}
			created++
		}
	}

	fmt.Printf("Seeded %d catalog cards\n", created)
}
