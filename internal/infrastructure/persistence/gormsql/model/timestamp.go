package model

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Timestamp is a unix-seconds column. When Now is set the value is written as
// the store's own current-timestamp expression instead of a client clock.
type Timestamp struct {
	Unix int64
	Now  bool
}

// StoreNow is a Timestamp resolved by the database at write time.
func StoreNow() Timestamp {
	return Timestamp{Now: true}
}

// CurrentTimestamp returns the dialect's unix-seconds "now" expression.
func CurrentTimestamp(db *gorm.DB) clause.Expr {
	switch db.Dialector.Name() {
	case "mysql":
		return gorm.Expr("UNIX_TIMESTAMP()")
	case "postgres":
		return gorm.Expr("CAST(EXTRACT(EPOCH FROM NOW()) AS BIGINT)")
	default:
		return gorm.Expr("CAST(strftime('%s','now') AS INTEGER)")
	}
}

func (t Timestamp) GormValue(_ context.Context, db *gorm.DB) clause.Expr {
	if t.Now {
		return CurrentTimestamp(db)
	}
	return clause.Expr{SQL: "?", Vars: []any{t.Unix}}
}

func (Timestamp) GormDataType() string {
	return "bigint"
}

func (t Timestamp) Value() (driver.Value, error) {
	return t.Unix, nil
}

func (t *Timestamp) Scan(src any) error {
	t.Now = false
	switch v := src.(type) {
	case nil:
		t.Unix = 0
	case int64:
		t.Unix = v
	case int32:
		t.Unix = int64(v)
	case uint64:
		t.Unix = int64(v)
	case float64:
		t.Unix = int64(v)
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("scan timestamp: unsupported type %T", src)
	}
	return nil
}

func (t *Timestamp) parse(s string) error {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("scan timestamp: %w", err)
	}
	t.Unix = n
	return nil
}
