package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"modpanel/internal/errs"
	"modpanel/internal/ports"
)

// scopedDB resolves the *gorm.DB to use for a call: the transaction of its
// scope when one is open in ctx, the pooled handle otherwise.
type scopedDB struct {
	db    *gorm.DB
	scope ports.TxScope
}

func (s scopedDB) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx, s.scope)
	if tx == nil {
		return s.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

const (
	mysqlDuplicateEntry     = 1062
	mysqlRowIsReferenced    = 1451
	mysqlNoReferencedRow    = 1452
	postgresUniqueViolation = "23505"
	postgresFKViolation     = "23503"
)

// classifyWriteError turns driver constraint errors into *ports.ConflictError.
// Other errors are returned unchanged.
func classifyWriteError(err error) error {
	if err == nil {
		return nil
	}
	if kind, ok := conflictKind(err); ok {
		return &ports.ConflictError{Kind: kind, Err: err}
	}
	return err
}

func conflictKind(err error) (ports.ConflictKind, bool) {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ports.ConflictDuplicateKey, true
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ports.ConflictForeignKey, true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return ports.ConflictDuplicateKey, true
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return ports.ConflictForeignKey, true
		}
		return 0, false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case postgresUniqueViolation:
			return ports.ConflictDuplicateKey, true
		case postgresFKViolation:
			return ports.ConflictForeignKey, true
		}
		return 0, false
	}

	// The pure-Go sqlite driver only exposes constraint failures through the message.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ports.ConflictDuplicateKey, true
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ports.ConflictForeignKey, true
	}
	return 0, false
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ErrNotFound
	}
	return errs.Wrap(err, msg)
}
