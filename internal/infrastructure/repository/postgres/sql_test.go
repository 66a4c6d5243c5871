package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("expected true for sql.ErrNoRows")
	}
	if !isNotFound(fmt.Errorf("get entry: %w", sql.ErrNoRows)) {
		t.Fatal("expected true for wrapped sql.ErrNoRows")
	}
	if isNotFound(fmt.Errorf("connection refused")) {
		t.Fatal("expected false for unrelated error")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches unique violation code", func(t *testing.T) {
		err := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint \"entries_pool_user_uidx\""}
		if !isUniqueViolation(fmt.Errorf("create entry: %w", err)) {
			t.Fatal("expected true for 23505")
		}
	})

	t.Run("ignores other pq errors", func(t *testing.T) {
		err := &pq.Error{Code: "23503", Message: "foreign key violation"}
		if isUniqueViolation(err) {
			t.Fatal("expected false for non-unique violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fmt.Errorf("connection refused")) {
			t.Fatal("expected false for unrelated error")
		}
	})
}
