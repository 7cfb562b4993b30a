package sqlite

import (
	"context"
	"testing"
)

func seedEngagementFixtures(t *testing.T, s *Store) {
	t.Helper()
	mustCreateUser(t, s, "user-1", "alice")
	mustCreateDeck(t, s, "deck-1", "Liked Deck", "user-1", nil)
}

func TestToggleLike(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedEngagementFixtures(t, s)

	liked, err := s.ToggleLike(ctx, "user-1", "deck-1")
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !liked {
		t.Fatal("first toggle should like")
	}

	has, err := s.HasLiked(ctx, "user-1", "deck-1")
	if err != nil {
		t.Fatalf("HasLiked: %v", err)
	}
	if !has {
		t.Error("HasLiked should be true after like")
	}

	n, err := s.CountLikes(ctx, "deck-1")
	if err != nil {
		t.Fatalf("CountLikes: %v", err)
	}
	if n != 1 {
		t.Errorf("CountLikes: got %d, want 1", n)
	}

	liked, err = s.ToggleLike(ctx, "user-1", "deck-1")
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if liked {
		t.Fatal("second toggle should unlike")
	}

	n, err = s.CountLikes(ctx, "deck-1")
	if err != nil {
		t.Fatalf("CountLikes: %v", err)
	}
	if n != 0 {
		t.Errorf("CountLikes after unlike: got %d, want 0", n)
	}
}

func TestRecordView_DedupesPerSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedEngagementFixtures(t, s)

	counted, err := s.RecordView(ctx, "deck-1", "sess-1")
	if err != nil {
		t.Fatalf("RecordView: %v", err)
	}
	if !counted {
		t.Fatal("first view should count")
	}

	// Same session again: not counted.
	counted, err = s.RecordView(ctx, "deck-1", "sess-1")
	if err != nil {
		t.Fatalf("RecordView: %v", err)
	}
	if counted {
		t.Fatal("repeat view must not count")
	}

	// A different session counts.
	counted, err = s.RecordView(ctx, "deck-1", "sess-2")
	if err != nil {
		t.Fatalf("RecordView: %v", err)
	}
	if !counted {
		t.Fatal("new session view should count")
	}

	d, err := s.GetDeckByID(ctx, "deck-1")
	if err != nil {
		t.Fatalf("GetDeckByID: %v", err)
	}
	if d.Views != 2 {
		t.Errorf("Views: got %d, want 2", d.Views)
	}
}
