package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/you/librarysvc/domain"
)

func TestConflictField(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantField string
		wantOK    bool
	}{
		{name: "nil", err: nil},
		{name: "unrelated", err: errors.New("connection refused")},
		{
			name:      "postgres unique",
			err:       fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", Detail: "Key (name)=(Dune) already exists."}),
			wantField: "name",
			wantOK:    true,
		},
		{name: "postgres other code", err: &pgconn.PgError{Code: "23503"}},
		{name: "postgres without detail", err: &pgconn.PgError{Code: "23505"}, wantOK: true},
		{name: "sqlite unique", err: errors.New("UNIQUE constraint failed: users.email"), wantField: "email", wantOK: true},
		{name: "gorm translated", err: gorm.ErrDuplicatedKey, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, ok := conflictField(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantField, field)
		})
	}
}

func TestAsConflict(t *testing.T) {
	err := asConflict(errors.New("UNIQUE constraint failed: books.name"), map[string]string{"name": "Dune"})

	var conflict *domain.FieldConflictError
	if assert.ErrorAs(t, err, &conflict) {
		assert.Equal(t, "Name (Dune) already exists", conflict.Error())
	}

	plain := errors.New("boom")
	assert.Same(t, plain, asConflict(plain, nil))
}
