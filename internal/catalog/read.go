package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Get returns the snapshot with the given content hash.
// Returns *NotFoundError if no snapshot has that hash.
func (c *Catalog) Get(ctx context.Context, hash string) (Record, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT seq, hash, name, build_id, ir_version, canonical_ir
		FROM schemas
		WHERE hash = ?
	`, hash)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, &NotFoundError{Key: hash}
	}
	if err != nil {
		return Record{}, fmt.Errorf("get snapshot: %w", err)
	}
	return rec, nil
}

// Latest returns the most recently stored snapshot for a schema name.
// Returns *NotFoundError if the name has no stored snapshots.
func (c *Catalog) Latest(ctx context.Context, name string) (Record, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT seq, hash, name, build_id, ir_version, canonical_ir
		FROM schemas
		WHERE name = ?
		ORDER BY seq DESC
		LIMIT 1
	`, name)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, &NotFoundError{Key: name}
	}
	if err != nil {
		return Record{}, fmt.Errorf("latest snapshot: %w", err)
	}
	return rec, nil
}

// List returns every stored snapshot with deterministic ordering:
// ORDER BY seq ASC, hash ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) when the catalog is empty.
func (c *Catalog) List(ctx context.Context) ([]Record, error) {
	return c.listWhere(ctx, "", nil)
}

// History returns every stored snapshot for a schema name, oldest
// first, with the same deterministic ordering as List.
func (c *Catalog) History(ctx context.Context, name string) ([]Record, error) {
	return c.listWhere(ctx, "WHERE name = ?", []any{name})
}

func (c *Catalog) listWhere(ctx context.Context, where string, args []any) ([]Record, error) {
	rows, err := c.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT seq, hash, name, build_id, ir_version, canonical_ir
		FROM schemas
		%s
		ORDER BY seq ASC, hash COLLATE BINARY ASC
	`, where), args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}

	if records == nil {
		records = []Record{}
	}

	return records, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var rec Record
	err := s.Scan(
		&rec.Seq,
		&rec.Hash,
		&rec.Name,
		&rec.BuildID,
		&rec.IRVersion,
		&rec.Canonical,
	)
	return rec, err
}
