package repository

import (
	"database/sql"
	"fmt"
	"time"
	"unicode/utf8"
)

// Layout of SQLite's CURRENT_TIMESTAMP, which the audit triggers write.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// parseAuditTime parses a trigger-written timestamp. Returns the zero time
// if the value does not parse; audit timestamps are informational and never
// drive control flow.
func parseAuditTime(s string) time.Time {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseNullableAuditTime parses a nullable trigger-written timestamp.
func parseNullableAuditTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(sqliteTimeLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableInt64 converts a sql.NullInt64 to a *int64.
func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

// Mirrors the schema's CHECK(length(name) <= 32). Checked in Go on the
// bulk path because INSERT OR IGNORE would silently skip the row instead
// of failing it. SQLite's length() counts characters, not bytes, so the
// mirror counts runes.
const maxNameLen = 32

func validateNameLen(kind, name string) error {
	if utf8.RuneCountInString(name) > maxNameLen {
		return fmt.Errorf("%s name %q exceeds %d characters", kind, name, maxNameLen)
	}
	return nil
}

// rowsChanged reports whether an exec affected at least one row.
func rowsChanged(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
