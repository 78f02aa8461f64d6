package clubpolicy_test

import (
	"testing"

	"github.com/dalemusser/clubhub/internal/app/policy/clubpolicy"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIsClubAdmin_NilActor(t *testing.T) {
	club := models.Club{ID: primitive.NewObjectID()}

	ok, err := clubpolicy.IsClubAdmin(club, nil)
	if err != clubpolicy.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if ok {
		t.Error("nil actor must not be an admin")
	}
}

func TestIsClubAdmin_SuperAdmin(t *testing.T) {
	club := models.Club{ID: primitive.NewObjectID()}
	actor := &models.User{ID: primitive.NewObjectID(), SuperAdmin: true}

	ok, err := clubpolicy.IsClubAdmin(club, actor)
	if err != nil {
		t.Fatalf("IsClubAdmin failed: %v", err)
	}
	if !ok {
		t.Error("super-admin must pass the check for any club")
	}
}

func TestIsClubAdmin_Member(t *testing.T) {
	actor := &models.User{ID: primitive.NewObjectID()}
	club := models.Club{
		ID:     primitive.NewObjectID(),
		Admins: []primitive.ObjectID{primitive.NewObjectID(), actor.ID},
	}

	ok, err := clubpolicy.IsClubAdmin(club, actor)
	if err != nil {
		t.Fatalf("IsClubAdmin failed: %v", err)
	}
	if !ok {
		t.Error("listed admin must pass the check")
	}
}

func TestIsClubAdmin_NonMember(t *testing.T) {
	actor := &models.User{ID: primitive.NewObjectID()}
	club := models.Club{
		ID:     primitive.NewObjectID(),
		Admins: []primitive.ObjectID{primitive.NewObjectID()},
	}

	ok, err := clubpolicy.IsClubAdmin(club, actor)
	if err != nil {
		t.Fatalf("IsClubAdmin failed: %v", err)
	}
	if ok {
		t.Error("non-admin without super-admin flag must fail the check")
	}
}
