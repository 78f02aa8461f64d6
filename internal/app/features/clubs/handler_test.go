package clubs_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/features/clubs"
	"github.com/dalemusser/clubhub/internal/app/relation"
	"github.com/dalemusser/clubhub/internal/app/store/memory"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
	"go.uber.org/zap"
)

func setup(t *testing.T) (http.Handler, *relation.Maintainer, *memory.DB) {
	t.Helper()
	core, db := testutil.NewCore(t)
	h := clubs.NewHandler(core, zap.NewNop())
	return clubs.Routes(h), core, db
}

func TestHandleCreateClub(t *testing.T) {
	router, _, db := setup(t)
	root := testutil.CreateSuperAdmin(t, db, "Root", "root@example.com")
	testutil.CreateUser(t, db, "Alice", "alice@example.com")

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/",
		`{"name":"Chess Club","admin_emails":["alice@example.com"]}`, root)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body = %s", rec.Code, rec.Body.String())
	}
	var club models.Club
	if err := json.Unmarshal(rec.Body.Bytes(), &club); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if club.Name != "Chess Club" || len(club.Admins) != 1 {
		t.Errorf("club = %+v", club)
	}
}

func TestHandleCreateClub_RequiresSuperAdmin(t *testing.T) {
	router, _, db := setup(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")

	req := testutil.NewRequest(http.MethodPost, "/", `{"name":"Chess Club"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", rec.Code)
	}

	req = testutil.NewAuthenticatedRequest(http.MethodPost, "/", `{"name":"Chess Club"}`, alice)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("regular user: status = %d, want 403", rec.Code)
	}
}

func TestServeClubView(t *testing.T) {
	router, core, db := setup(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	club := testutil.CreateClub(t, core, "Chess Club", alice.Email)
	ev := testutil.CreateEvent(t, core, alice, club, "Spring Open")

	req := testutil.NewRequest(http.MethodGet, "/"+club.ID.Hex(), "")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body = %s", rec.Code, rec.Body.String())
	}
	var view relation.ClubView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(view.Admins) != 1 || view.Admins[0].ID != alice.ID {
		t.Errorf("admins = %+v", view.Admins)
	}
	if len(view.Events) != 1 || view.Events[0].ID != ev.ID {
		t.Errorf("events = %+v", view.Events)
	}
}

func TestServeClubView_NotFound(t *testing.T) {
	router, _, _ := setup(t)

	req := testutil.NewRequest(http.MethodGet, "/ffffffffffffffffffffffff", "")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", rec.Code)
	}

	req = testutil.NewRequest(http.MethodGet, "/not-a-hex-id", "")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("malformed id: status = %d, want 404", rec.Code)
	}
}

func TestHandleAddAdmins_Forbidden(t *testing.T) {
	router, core, db := setup(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	mallory := testutil.CreateUser(t, db, "Mallory", "mallory@example.com")
	club := testutil.CreateClub(t, core, "Chess Club", alice.Email)

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/"+club.ID.Hex()+"/admins",
		`{"emails":["mallory@example.com"]}`, mallory)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403; body = %s", rec.Code, rec.Body.String())
	}
}

func TestHandleDeleteClub(t *testing.T) {
	router, core, db := setup(t)
	alice := testutil.CreateUser(t, db, "Alice", "alice@example.com")
	club := testutil.CreateClub(t, core, "Chess Club", alice.Email)
	testutil.CreateEvent(t, core, alice, club, "Spring Open")

	req := testutil.NewAuthenticatedRequest(http.MethodDelete, "/"+club.ID.Hex(), "", alice)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204; body = %s", rec.Code, rec.Body.String())
	}
	events, _ := db.Events().List(req.Context())
	if len(events) != 0 {
		t.Errorf("events remain after club delete: %d", len(events))
	}
}
