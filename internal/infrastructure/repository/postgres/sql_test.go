package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches wrapped 23505", func(t *testing.T) {
		err := fmt.Errorf("insert player: %w", &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected unique violation")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("foreign key violation is not a duplicate")
		}
		if isUniqueViolation(fmt.Errorf("plain error")) {
			t.Fatalf("non-pq errors are not duplicates")
		}
	})
}

func TestIsUndefinedTable(t *testing.T) {
	if !isUndefinedTable(&pq.Error{Code: "42P01"}) {
		t.Fatalf("expected undefined table")
	}
	if isUndefinedTable(&pq.Error{Code: "23505"}) {
		t.Fatalf("unexpected undefined table match")
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
}
