package catalog

import (
	"context"
	"fmt"
)

// Put inserts a snapshot record into the catalog.
// Uses ON CONFLICT(hash) DO NOTHING for idempotency - a snapshot that
// is already stored is silently ignored and inserted=false is returned.
// Other constraint violations (e.g. NOT NULL) still return errors.
//
// Seq is assigned by the database; the value in rec is ignored.
func (c *Catalog) Put(ctx context.Context, rec Record) (inserted bool, err error) {
	if rec.Hash == "" {
		return false, fmt.Errorf("put snapshot: hash is required")
	}
	if rec.Name == "" {
		return false, fmt.Errorf("put snapshot: name is required")
	}

	result, err := c.db.ExecContext(ctx, `
		INSERT INTO schemas
		(hash, name, build_id, ir_version, canonical_ir)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`,
		rec.Hash,
		rec.Name,
		rec.BuildID,
		rec.IRVersion,
		rec.Canonical,
	)
	if err != nil {
		return false, fmt.Errorf("put snapshot: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("put snapshot: rows affected: %w", err)
	}

	return n > 0, nil
}
