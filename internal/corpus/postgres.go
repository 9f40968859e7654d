package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// PostgresTable serves documents from a table with columns (id, body).
// The walk runs inside one read-only repeatable-read transaction so it sees a
// single snapshot even while writers are active.
type PostgresTable struct {
	db    *sql.DB
	query string
}

// NewPostgresTable validates table as a plain or schema-qualified identifier.
func NewPostgresTable(db *sql.DB, table string) (*PostgresTable, error) {
	if !tableName.MatchString(table) {
		return nil, apperrors.Newf(apperrors.ErrInvalidArgument, "invalid table name %q", table)
	}
	return &PostgresTable{
		db:    db,
		query: fmt.Sprintf("SELECT id, body FROM %s ORDER BY id", table),
	}, nil
}

func (p *PostgresTable) Walk(ctx context.Context, fn WalkFunc) error {
	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return ioError("beginning snapshot transaction", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, p.query)
	if err != nil {
		return ioError("querying documents", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Text); err != nil {
			return ioError("scanning document row", err)
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return ioError("iterating document rows", err)
	}
	return nil
}
