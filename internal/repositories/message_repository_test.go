package repositories

import (
	"context"
	"testing"

	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/store"
)

func TestMessageRoomIsDirectionless(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewMessageRepository(s)
	ctx := context.Background()

	if _, err := repo.Send(ctx, "u1", "u2", &models.Message{Message: "hi", Author: models.Author{ID: "u1"}}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := repo.Send(ctx, "u2", "u1", &models.Message{Message: "hello back", Author: models.Author{ID: "u2"}}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	forward, err := repo.GetRoom(ctx, "u1", "u2")
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	backward, err := repo.GetRoom(ctx, "u2", "u1")
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if len(forward) != 2 || len(backward) != 2 {
		t.Fatalf("forward=%d backward=%d, want 2 each", len(forward), len(backward))
	}
	if forward[0].Message != "hi" || forward[1].Message != "hello back" {
		t.Fatalf("message order lost: %+v", forward)
	}
}

func TestMessageRoomsAreIsolated(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewMessageRepository(s)
	ctx := context.Background()

	if _, err := repo.Send(ctx, "u1", "u2", &models.Message{Message: "for u2"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if _, err := repo.Send(ctx, "u1", "u3", &models.Message{Message: "for u3"}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	room, err := repo.GetRoom(ctx, "u1", "u3")
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if len(room) != 1 || room[0].Message != "for u3" {
		t.Fatalf("room = %+v", room)
	}
}
