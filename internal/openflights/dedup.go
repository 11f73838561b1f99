package openflights

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// RouteDeduper collapses exact duplicates on the route composite key
// (source, destination, airline id, equipment). It is used by the merge
// write mode so that MERGE semantics stay row-count-stable within a run;
// the create mode writes every row and never consults it.
//
// Keys are stored as xxh3 hashes rather than strings to keep the seen-set
// small across the full routes file.
type RouteDeduper struct {
	seen map[uint64]struct{}
}

// NewRouteDeduper returns an empty deduper.
func NewRouteDeduper() *RouteDeduper {
	return &RouteDeduper{seen: make(map[uint64]struct{})}
}

// Seen reports whether an identical composite key was already observed,
// recording it as a side effect.
func (d *RouteDeduper) Seen(r Route) bool {
	var airline int64 = -1
	if r.AirlineID != nil {
		airline = *r.AirlineID
	}
	equipment := ""
	if r.Equipment != nil {
		equipment = *r.Equipment
	}

	key := fmt.Sprintf("%d\x00%d\x00%d\x00%s", r.SrcID, r.DstID, airline, equipment)
	h := xxh3.HashString(key)
	if _, ok := d.seen[h]; ok {
		return true
	}
	d.seen[h] = struct{}{}
	return false
}
