package catalog

import (
	"fmt"

	"github.com/roach88/typegraph/internal/ir"
	"github.com/roach88/typegraph/internal/resolver"
)

// Record is one stored schema snapshot.
//
// Hash is the content address; two compilations of the same schema
// share a hash regardless of build ID. Seq is assigned by the catalog
// on first insert.
type Record struct {
	Seq       int64
	Hash      string
	Name      string
	BuildID   string
	IRVersion string
	Canonical []byte
}

// RecordFromSnapshot builds a catalog record from a compiled snapshot.
// name identifies the schema in the catalog (snapshots carry no name of
// their own).
func RecordFromSnapshot(name string, snap *resolver.Snapshot) Record {
	return Record{
		Hash:      snap.Hash,
		Name:      name,
		BuildID:   snap.BuildID,
		IRVersion: ir.IRVersion,
		Canonical: snap.Canonical,
	}
}

// NotFoundError reports a lookup that matched no stored snapshot.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no schema snapshot for %q", e.Key)
}
