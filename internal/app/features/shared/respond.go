// internal/app/features/shared/respond.go

// Package shared holds the small helpers the JSON features have in
// common: response encoding, error-to-status mapping, and resolving the
// session user into an acting user record.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/relation"
	"github.com/dalemusser/clubhub/internal/app/store"
	clubstore "github.com/dalemusser/clubhub/internal/app/store/clubs"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// WriteError maps a domain error to an HTTP status and JSON body.
// Unrecognized errors become a 500 with a generic body; the detail goes to
// the log, not the client.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, relation.ErrNotAuthenticated):
		WriteJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized"})
	case errors.Is(err, relation.ErrForbidden):
		WriteJSON(w, http.StatusForbidden, errorBody{Error: "forbidden"})
	case errors.Is(err, store.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, clubstore.ErrDuplicateClubName):
		WriteJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		log.Error("request failed", zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

// Actor converts the session user on the request into the acting user
// record the relationship maintainer authorizes against. Returns nil for
// anonymous requests, which the maintainer turns into ErrNotAuthenticated.
func Actor(r *http.Request) *models.User {
	su, ok := auth.CurrentUser(r)
	if !ok {
		return nil
	}
	oid, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		return nil
	}
	return &models.User{
		ID:         oid,
		FullName:   su.Name,
		Email:      su.Email,
		SuperAdmin: su.SuperAdmin,
	}
}

// PathID parses a hex object id from a URL path segment. A malformed id
// maps to store.ErrNotFound so handlers treat it like any other missing
// record.
func PathID(raw string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, store.ErrNotFound
	}
	return oid, nil
}
