package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPostgresErrorClassification(t *testing.T) {
	exclusion := fmt.Errorf("create reservation: %w", &pgconn.PgError{Code: "23P01"})
	unique := fmt.Errorf("create member: %w", &pgconn.PgError{Code: "23505"})

	if !IsExclusionViolation(exclusion) {
		t.Error("23P01 should classify as an exclusion violation")
	}
	if IsExclusionViolation(unique) {
		t.Error("23505 must not classify as an exclusion violation")
	}

	if !IsUniqueViolation(unique) {
		t.Error("23505 should classify as a unique violation")
	}
	if IsUniqueViolation(exclusion) {
		t.Error("23P01 must not classify as a unique violation")
	}

	if IsExclusionViolation(errors.New("connection refused")) ||
		IsUniqueViolation(errors.New("connection refused")) {
		t.Error("plain errors must not classify as constraint violations")
	}
	if IsExclusionViolation(nil) || IsUniqueViolation(nil) {
		t.Error("nil must not classify as a constraint violation")
	}
}
