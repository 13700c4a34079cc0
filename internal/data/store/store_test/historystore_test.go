package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/internal/data/redisStore"
	"github.com/anukol/sitechat/internal/data/store"
	"github.com/anukol/sitechat/internal/domain/chatModel"
	"github.com/redis/go-redis/v9"
)

func TestRedisHistoryStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	historyStore := store.TestHistoryStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	sessionID := "session_abc_123"

	t.Run("Append and Recent Roundtrip", func(t *testing.T) {
		turns := []chatModel.ConversationTurn{
			{Role: chatModel.RoleUser, Content: "where should I eat in Tokyo?"},
			{Role: chatModel.RoleAssistant, Content: "The site recommends the ramen guide."},
		}
		for _, turn := range turns {
			if err := historyStore.Append(ctx, sessionID, turn); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
		}

		got, err := historyStore.Recent(ctx, sessionID, config.HistoryWindow)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(got) != len(turns) {
			t.Fatalf("History length got %d, want %d", len(got), len(turns))
		}
		for i := range turns {
			if got[i] != turns[i] {
				t.Errorf("Turn %d got %+v, want %+v", i, got[i], turns[i])
			}
		}
	})

	t.Run("Recent Keeps Only The Window Tail", func(t *testing.T) {
		windowSession := "session_window"
		total := config.HistoryWindow + 4
		for i := 0; i < total; i++ {
			turn := chatModel.ConversationTurn{Role: chatModel.RoleUser, Content: fmt.Sprintf("turn %d", i)}
			if err := historyStore.Append(ctx, windowSession, turn); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
		}

		got, err := historyStore.Recent(ctx, windowSession, config.HistoryWindow)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(got) != config.HistoryWindow {
			t.Fatalf("History length got %d, want %d", len(got), config.HistoryWindow)
		}
		if got[0].Content != fmt.Sprintf("turn %d", total-config.HistoryWindow) {
			t.Errorf("Oldest kept turn got %q, want the window tail", got[0].Content)
		}
		if got[len(got)-1].Content != fmt.Sprintf("turn %d", total-1) {
			t.Errorf("Newest turn got %q, want the last appended", got[len(got)-1].Content)
		}
	})

	t.Run("Append Sets A TTL", func(t *testing.T) {
		if mr.TTL(sessionID) <= 0 {
			t.Error("History key has no TTL, sessions would never expire")
		}
	})

	t.Run("Recent On Unknown Session Is Empty", func(t *testing.T) {
		got, err := historyStore.Recent(ctx, "ghost-session", config.HistoryWindow)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Unknown session has %d turns, want 0", len(got))
		}
	})
}

func TestInMemoryHistoryStore_Window(t *testing.T) {
	s := store.InitInMemoryHistoryStore()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		turn := chatModel.ConversationTurn{Role: chatModel.RoleUser, Content: fmt.Sprintf("turn %d", i)}
		if err := s.Append(ctx, "s1", turn); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := s.Recent(ctx, "s1", 3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 3 || got[0].Content != "turn 4" || got[2].Content != "turn 6" {
		t.Errorf("Window got %+v, want the last 3 turns in order", got)
	}
}
