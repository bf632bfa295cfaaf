package repositories

import (
	"context"
	"testing"

	"github.com/solace-app/backend/internal/apperr"
	"github.com/solace-app/backend/internal/models"
	"github.com/solace-app/backend/internal/store"
)

func TestFollowMirrorsBothSides(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewUserRepository(s)
	ctx := context.Background()

	ada := seedUser(t, s, &models.User{Firstname: "Ada"})
	bea := seedUser(t, s, &models.User{Firstname: "Bea"})

	if err := repo.Follow(ctx, ada, bea); err != nil {
		t.Fatalf("Follow: %v", err)
	}

	adaDoc, _ := repo.GetByID(ctx, ada)
	beaDoc, _ := repo.GetByID(ctx, bea)
	if !contains(adaDoc.Following, bea) {
		t.Fatal("follower side not recorded")
	}
	if !contains(beaDoc.Followers, ada) {
		t.Fatal("followee side not recorded")
	}

	err := repo.Follow(ctx, ada, bea)
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("second follow: got %v, want Conflict", err)
	}
}

func TestUnfollow(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewUserRepository(s)
	ctx := context.Background()

	ada := seedUser(t, s, &models.User{Firstname: "Ada"})
	bea := seedUser(t, s, &models.User{Firstname: "Bea"})

	err := repo.Unfollow(ctx, ada, bea)
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("unfollow without follow: got %v, want Conflict", err)
	}

	if err := repo.Follow(ctx, ada, bea); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if err := repo.Unfollow(ctx, ada, bea); err != nil {
		t.Fatalf("Unfollow: %v", err)
	}

	adaDoc, _ := repo.GetByID(ctx, ada)
	beaDoc, _ := repo.GetByID(ctx, bea)
	if contains(adaDoc.Following, bea) || contains(beaDoc.Followers, ada) {
		t.Fatal("unfollow left relation behind")
	}
}

func TestBlockSeversFollows(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewUserRepository(s)
	ctx := context.Background()

	ada := seedUser(t, s, &models.User{Firstname: "Ada"})
	bea := seedUser(t, s, &models.User{Firstname: "Bea"})

	if err := repo.Follow(ctx, ada, bea); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if err := repo.Follow(ctx, bea, ada); err != nil {
		t.Fatalf("Follow back: %v", err)
	}

	if err := repo.Block(ctx, ada, bea); err != nil {
		t.Fatalf("Block: %v", err)
	}

	adaDoc, _ := repo.GetByID(ctx, ada)
	beaDoc, _ := repo.GetByID(ctx, bea)
	if len(adaDoc.Following) != 0 || len(adaDoc.Followers) != 0 {
		t.Fatalf("blocker still has follow edges: %+v", adaDoc)
	}
	if len(beaDoc.Following) != 0 || len(beaDoc.Followers) != 0 {
		t.Fatalf("blocked user still has follow edges: %+v", beaDoc)
	}
	if !contains(adaDoc.BlockedList, bea) {
		t.Fatal("block not recorded on blocker")
	}
	if !contains(beaDoc.BlockedBy, ada) {
		t.Fatal("block not mirrored on blocked user")
	}

	err := repo.Block(ctx, ada, bea)
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("second block: got %v, want Conflict", err)
	}
}

func TestUnblock(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewUserRepository(s)
	ctx := context.Background()

	ada := seedUser(t, s, &models.User{Firstname: "Ada"})
	bea := seedUser(t, s, &models.User{Firstname: "Bea"})

	err := repo.Unblock(ctx, ada, bea)
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("unblock without block: got %v, want Conflict", err)
	}

	if err := repo.Block(ctx, ada, bea); err != nil {
		t.Fatalf("Block: %v", err)
	}
	if err := repo.Unblock(ctx, ada, bea); err != nil {
		t.Fatalf("Unblock: %v", err)
	}

	adaDoc, _ := repo.GetByID(ctx, ada)
	beaDoc, _ := repo.GetByID(ctx, bea)
	if len(adaDoc.BlockedList) != 0 || len(beaDoc.BlockedBy) != 0 {
		t.Fatal("unblock left block behind")
	}
}

func TestGetAdminsAndUnverified(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewUserRepository(s)
	ctx := context.Background()

	seedUser(t, s, &models.User{Firstname: "Ada", UserType: models.RoleUser, Verified: true})
	seedUser(t, s, &models.User{Firstname: "Bea", UserType: models.RoleAdmin, Verified: true})
	seedUser(t, s, &models.User{Firstname: "Cat", UserType: models.RoleUser, Verified: false})

	admins, err := repo.GetAdmins(ctx)
	if err != nil {
		t.Fatalf("GetAdmins: %v", err)
	}
	if len(admins) != 1 || admins[0].Firstname != "Bea" {
		t.Fatalf("admins = %+v", admins)
	}

	unverified, err := repo.GetUnverified(ctx)
	if err != nil {
		t.Fatalf("GetUnverified: %v", err)
	}
	if len(unverified) != 1 || unverified[0].Firstname != "Cat" {
		t.Fatalf("unverified = %+v", unverified)
	}
}

func TestDeleteUser(t *testing.T) {
	s := store.NewMemoryStore()
	repo := NewUserRepository(s)
	ctx := context.Background()

	id := seedUser(t, s, &models.User{Firstname: "Ada"})
	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, id); !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("deleted user still readable: %v", err)
	}
	if err := repo.Delete(ctx, id); !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("second delete: got %v, want NotFound", err)
	}
}
