package indexes

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestKeySig(t *testing.T) {
	tests := []struct {
		name string
		keys bson.D
		want string
	}{
		{"single", bson.D{{Key: "email", Value: 1}}, "email:1"},
		{"compound", bson.D{{Key: "completed_at", Value: 1}, {Key: "started_at", Value: 1}}, "completed_at:1, started_at:1"},
		{"descending", bson.D{{Key: "created_at", Value: -1}}, "created_at:-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keySig(tt.keys); got != tt.want {
				t.Errorf("keySig = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSameBoolPtr(t *testing.T) {
	tr := true
	fa := false
	if !sameBoolPtr(nil, nil) {
		t.Error("nil/nil should match")
	}
	if !sameBoolPtr(nil, &fa) {
		t.Error("nil/false should match")
	}
	if sameBoolPtr(&tr, nil) {
		t.Error("true/nil should not match")
	}
	if !sameBoolPtr(&tr, &tr) {
		t.Error("true/true should match")
	}
}

func TestIsDuplicateKeyErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"generic", errors.New("boom"), false},
		{"command error 11000", mongo.CommandError{Code: 11000, Message: "dup"}, true},
		{"E11000 text", errors.New("E11000 duplicate key error index"), true},
		{"duplicate key text", errors.New("Duplicate Key violation"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDuplicateKeyErr(tt.err); got != tt.want {
				t.Errorf("isDuplicateKeyErr(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
