package repositories

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/you/librarysvc/domain"
)

const pgUniqueViolation = "23505"

var pgKeyDetail = regexp.MustCompile(`Key \(([^)]+)\)=`)

// conflictField reports the column behind a unique-constraint violation.
// It understands PostgreSQL errors and the SQLite driver's message format.
func conflictField(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		if m := pgKeyDetail.FindStringSubmatch(pgErr.Detail); m != nil {
			return m[1], true
		}
		return "", true
	}

	// UNIQUE constraint failed: books.name
	const sqliteUnique = "UNIQUE constraint failed: "
	msg := err.Error()
	if i := strings.Index(msg, sqliteUnique); i >= 0 {
		col := msg[i+len(sqliteUnique):]
		if j := strings.IndexAny(col, ", "); j >= 0 {
			col = col[:j]
		}
		if k := strings.LastIndex(col, "."); k >= 0 {
			col = col[k+1:]
		}
		return col, true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}
	return "", false
}

// asConflict converts a unique violation into a FieldConflictError, filling
// the offending value from values keyed by column name
func asConflict(err error, values map[string]string) error {
	field, ok := conflictField(err)
	if !ok {
		return err
	}
	return &domain.FieldConflictError{Field: field, Value: values[field]}
}

// likePattern builds a case-insensitive substring pattern
func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// listPage runs the page query and the count concurrently.
// scope must build a fresh statement on every call.
func listPage[T any](ctx context.Context, scope func() *gorm.DB, req domain.PageRequest, preload ...string) ([]T, int64, error) {
	var (
		rows  []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q := scope().WithContext(gctx)
		for _, p := range preload {
			q = q.Preload(p)
		}
		return q.Order("created_at DESC").Offset(req.Offset()).Limit(req.Limit).Find(&rows).Error
	})
	g.Go(func() error {
		return scope().WithContext(gctx).Count(&total).Error
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
