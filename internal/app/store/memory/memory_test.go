// internal/app/store/memory/memory_test.go
package memory_test

import (
	"context"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/store"
	"github.com/dalemusser/clubhub/internal/app/store/memory"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetManyByIDs_OmitsMissing(t *testing.T) {
	db := memory.NewDB()
	ctx := context.Background()

	u1, err := db.Users().Create(ctx, models.User{FullName: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	u2, err := db.Users().Create(ctx, models.User{FullName: "Ben", Email: "ben@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := db.Users().GetManyByIDs(ctx, []primitive.ObjectID{u1.ID, primitive.NewObjectID(), u2.ID})
	if err != nil {
		t.Fatalf("GetManyByIDs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d users, want 2", len(got))
	}
}

func TestGetByID_ReturnsCopy(t *testing.T) {
	db := memory.NewDB()
	ctx := context.Background()

	c, err := db.Clubs().Create(ctx, models.Club{
		Name:   "Chess Club",
		Admins: []primitive.ObjectID{primitive.NewObjectID()},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, err := db.Clubs().GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	first.Admins[0] = primitive.NewObjectID()

	second, err := db.Clubs().GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if second.Admins[0] != c.Admins[0] {
		t.Fatal("mutating a returned club leaked into the store")
	}
}

func TestGetByEmail_Normalizes(t *testing.T) {
	db := memory.NewDB()
	ctx := context.Background()

	if _, err := db.Users().Create(ctx, models.User{FullName: "Ana", Email: "Ana@Example.COM"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	u, err := db.Users().GetByEmail(ctx, "  ana@example.com ")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u.FullName != "Ana" {
		t.Fatalf("FullName = %q, want Ana", u.FullName)
	}

	if _, err := db.Users().GetByEmail(ctx, "nobody@example.com"); err != store.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPullAdminOfClub(t *testing.T) {
	db := memory.NewDB()
	ctx := context.Background()

	clubID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	u, err := db.Users().Create(ctx, models.User{
		FullName:    "Ana",
		Email:       "ana@example.com",
		AdminOfClub: []primitive.ObjectID{clubID, otherID},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := db.Users().PullAdminOfClub(ctx, []primitive.ObjectID{u.ID, primitive.NewObjectID()}, clubID); err != nil {
		t.Fatalf("PullAdminOfClub: %v", err)
	}

	got, err := db.Users().GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.AdminOfClub) != 1 || got.AdminOfClub[0] != otherID {
		t.Fatalf("AdminOfClub = %v, want [%v]", got.AdminOfClub, otherID)
	}
}
