// Package rsn implements the Recently Served Name (RSN / C-FIB / SIT) table:
// per-node, bounded mapping from content id to a small set of next-hop hint
// records, with lazy expiration and the freshness queries the off-path trail
// follow algorithm needs.
package rsn

import "github.com/icnsim/icnsim/internal/ids"

// Record is one hint: "content was last seen heading toward NextHop, whose
// trail eventually reaches Destination, Distance hops away, as of Timestamp."
type Record struct {
	NextHop     ids.NodeID
	Destination ids.NodeID
	Distance    uint32
	Timestamp   float64
	UsedBefore  bool
}

// Age returns now - r.Timestamp.
func (r Record) Age(now float64) float64 {
	return now - r.Timestamp
}

// Fresh reports whether the record's age is within the fresh interval F.
func (r Record) Fresh(now, freshInterval float64) bool {
	return r.Age(now) <= freshInterval
}

// Expired reports whether the record's age exceeds the expiration interval X.
func (r Record) Expired(now, expirationInterval float64) bool {
	return r.Age(now) > expirationInterval
}

// UsedAndFresh reports whether the record has been confirmed productive at
// least once and is still fresh.
func (r Record) UsedAndFresh(now, freshInterval float64) bool {
	return r.UsedBefore && r.Fresh(now, freshInterval)
}
