package repository

import (
	"errors"
	"testing"

	"github.com/lib/pq"
)

func TestTranslate(t *testing.T) {
	fk := &pq.Error{Code: foreignKeyViolation, Constraint: "game_teams_game_id_fkey"}
	if err := translate(fk); !errors.Is(err, ErrReferenceNotFound) {
		t.Errorf("translate(fk) = %v, want ErrReferenceNotFound", err)
	}

	other := &pq.Error{Code: "23505"}
	if err := translate(other); errors.Is(err, ErrReferenceNotFound) {
		t.Errorf("unique violation translated to %v", err)
	}

	plain := errors.New("conn reset")
	if err := translate(plain); err != plain {
		t.Errorf("translate(plain) = %v", err)
	}
}
