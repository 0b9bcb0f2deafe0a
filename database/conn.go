// Package database is a thin statement layer over a gorm handle. Every value is bound as a
// query parameter; nothing is ever formatted into SQL text.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"
)

// ErrNoSequenceValue is returned when the server has no current value for a sequence,
// typically because nothing was inserted through it on this connection yet.
var ErrNoSequenceValue = errors.New("no current sequence value")

// Conn runs statements against one database handle or one transaction.
type Conn struct {
	db *gorm.DB
}

// New returns a Conn over db.
func New(db *gorm.DB) *Conn {
	return &Conn{db: db}
}

// WithTx returns a Conn that issues every statement inside tx.
func (c *Conn) WithTx(tx *gorm.DB) *Conn {
	return &Conn{db: tx}
}

// Gorm exposes the handle the Conn is bound to.
func (c *Conn) Gorm() *gorm.DB {
	return c.db
}

// ExecUpdate runs a mutating statement (INSERT, UPDATE, DELETE, DDL).
func (c *Conn) ExecUpdate(ctx context.Context, query string, args ...interface{}) error {
	if err := c.db.WithContext(ctx).Exec(query, args...).Error; err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}

// QueryRows runs a query and returns every row with each value rendered as text, verbatim.
// Callers reading padded CHAR columns trim them in SQL.
func (c *Conn) QueryRows(ctx context.Context, query string, args ...interface{}) (*Table, error) {
	rows, err := c.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	table := &Table{Columns: cols, Rows: [][]string{}}
	vals := make([]sql.NullString, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		record := make([]string, len(cols))
		for i, v := range vals {
			if v.Valid {
				record[i] = v.String
			}
		}
		table.Rows = append(table.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return table, nil
}

// QueryCount runs a query and returns how many rows it matched.
func (c *Conn) QueryCount(ctx context.Context, query string, args ...interface{}) (int, error) {
	rows, err := c.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("rows: %w", err)
	}
	return n, nil
}

// CurrSeqVal returns the last value handed out by sequence on this connection.
// On sqlite, which has no named sequences, it is the last inserted rowid.
func (c *Conn) CurrSeqVal(ctx context.Context, sequence string) (int64, error) {
	var row *sql.Row
	switch c.db.Dialector.Name() {
	case "sqlite":
		row = c.db.WithContext(ctx).Raw("SELECT last_insert_rowid()").Row()
	default:
		row = c.db.WithContext(ctx).Raw("SELECT currval(?::text::regclass)", sequence).Row()
	}

	var v sql.NullInt64
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoSequenceValue
		}
		return 0, fmt.Errorf("currval %s: %w", sequence, err)
	}
	if !v.Valid || v.Int64 == 0 {
		return 0, ErrNoSequenceValue
	}
	return v.Int64, nil
}

// Table is a query result: column names plus rows of text values exactly as the server
// returned them. NULL renders as "".
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Print writes a tab-separated header followed by one line per row.
// Nothing is written for an empty table.
func (t *Table) Print(w io.Writer) error {
	if len(t.Rows) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, strings.Join(t.Columns, "\t")); err != nil {
		return err
	}
	for _, r := range t.Rows {
		if _, err := fmt.Fprintln(w, strings.Join(r, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// Records returns each row keyed by column name.
func (t *Table) Records() []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rec := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(r) {
				rec[col] = r[i]
			}
		}
		out = append(out, rec)
	}
	return out
}
