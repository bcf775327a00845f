package rsn

import (
	"sort"

	"github.com/icnsim/icnsim/internal/ids"
)

// Entry is the bounded, per-content set of hint records held at one node.
// Expiration is lazy: every read purges expired records first ("Expired
// hints are removed on access").
type Entry struct {
	records []Record
}

// NewEntry creates an empty entry.
func NewEntry() *Entry {
	return &Entry{}
}

// Empty reports whether the entry has no remaining records.
func (e *Entry) Empty() bool {
	return len(e.records) == 0
}

// Len returns the current (possibly stale, pre-purge) record count.
func (e *Entry) Len() int { return len(e.records) }

// Snapshot returns the raw (possibly stale, pre-purge) record slice, for
// read-only diagnostics. Callers must not mutate the returned slice.
func (e *Entry) Snapshot() []Record { return e.records }

// purgeExpired drops every record whose age exceeds expirationInterval.
func (e *Entry) purgeExpired(now, expirationInterval float64) {
	if len(e.records) == 0 {
		return
	}
	kept := e.records[:0]
	for _, r := range e.records {
		if !r.Expired(now, expirationInterval) {
			kept = append(kept, r)
		}
	}
	e.records = kept
}

// Insert upserts a record by NextHop: an existing record toward the same
// next hop is refreshed in place; otherwise a new record is appended. If the
// entry would exceed maxRecords (the degree of the owning node), the oldest
// record by timestamp is evicted.
func (e *Entry) Insert(now, expirationInterval float64, maxRecords int, nextHop, destination ids.NodeID, distance uint32, used bool) {
	e.purgeExpired(now, expirationInterval)

	for i := range e.records {
		if e.records[i].NextHop == nextHop {
			e.records[i].Destination = destination
			e.records[i].Distance = distance
			e.records[i].Timestamp = now
			e.records[i].UsedBefore = used
			return
		}
	}

	e.records = append(e.records, Record{
		NextHop:     nextHop,
		Destination: destination,
		Distance:    distance,
		Timestamp:   now,
		UsedBefore:  used,
	})

	if maxRecords > 0 && len(e.records) > maxRecords {
		oldest := 0
		for i := range e.records {
			if e.records[i].Timestamp < e.records[oldest].Timestamp {
				oldest = i
			}
		}
		e.records = append(e.records[:oldest], e.records[oldest+1:]...)
	}
}

// DeleteNextHop removes the record toward nextHop, if any.
func (e *Entry) DeleteNextHop(nextHop ids.NodeID) {
	for i := range e.records {
		if e.records[i].NextHop == nextHop {
			e.records = append(e.records[:i], e.records[i+1:]...)
			return
		}
	}
}

// GetNexthop returns the record toward node, if present, after purging
// expired records.
func (e *Entry) GetNexthop(now, expirationInterval float64, node ids.NodeID) (Record, bool) {
	e.purgeExpired(now, expirationInterval)
	for _, r := range e.records {
		if r.NextHop == node {
			return r, true
		}
	}
	return Record{}, false
}

// GetFreshestExcept returns the minimum-age record whose NextHop != exclude,
// after purging expired records.
func (e *Entry) GetFreshestExcept(now, expirationInterval float64, exclude ids.NodeID) (Record, bool) {
	e.purgeExpired(now, expirationInterval)
	var best Record
	found := false
	for _, r := range e.records {
		if r.NextHop == exclude {
			continue
		}
		if !found || r.Timestamp > best.Timestamp {
			best = r
			found = true
		}
	}
	return best, found
}

// GetTopKFreshestExcept returns up to k records whose NextHop != exclude,
// sorted by timestamp descending, after purging expired records.
func (e *Entry) GetTopKFreshestExcept(now, expirationInterval float64, exclude ids.NodeID, k int) []Record {
	e.purgeExpired(now, expirationInterval)
	candidates := make([]Record, 0, len(e.records))
	for _, r := range e.records {
		if r.NextHop != exclude {
			candidates = append(candidates, r)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Timestamp > candidates[j].Timestamp })
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}

// GetBestK returns up to k records excluding selfNode as next hop:
// used-and-fresh records first (timestamp desc), then freshest unused
// records (timestamp desc). Purges expired records first.
func (e *Entry) GetBestK(now, freshInterval, expirationInterval float64, selfNode ids.NodeID, k int) []Record {
	e.purgeExpired(now, expirationInterval)

	var usedFresh, rest []Record
	for _, r := range e.records {
		if r.NextHop == selfNode {
			continue
		}
		if r.UsedAndFresh(now, freshInterval) {
			usedFresh = append(usedFresh, r)
		} else {
			rest = append(rest, r)
		}
	}
	sort.Slice(usedFresh, func(i, j int) bool { return usedFresh[i].Timestamp > usedFresh[j].Timestamp })
	sort.Slice(rest, func(i, j int) bool { return rest[i].Timestamp > rest[j].Timestamp })

	out := append(usedFresh, rest...)
	if len(out) > k {
		out = out[:k]
	}
	return out
}
