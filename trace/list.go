package trace

import (
	"cmp"
	"iter"
	"slices"

	"github.com/arloliu/esync/internal/hash"
	"github.com/arloliu/esync/nstime"
)

// List is the ordered collection of IDs. IDs are kept sorted by source
// identifier, then publication version.
//
// A List is not safe for concurrent use.
type List struct {
	ids   []*ID
	index map[uint64][]*ID
}

// NewList creates an empty List.
func NewList() *List {
	return &List{index: make(map[uint64][]*ID)}
}

// Len returns the number of IDs.
func (l *List) Len() int {
	return len(l.ids)
}

// SegmentCount returns the number of segments across all IDs.
func (l *List) SegmentCount() int {
	n := 0
	for _, id := range l.ids {
		n += len(id.Segments)
	}

	return n
}

// IDs returns the IDs in collection order. The slice is owned by the List and
// must not be modified; the segments it reaches may be.
func (l *List) IDs() []*ID {
	return l.ids
}

// All iterates every segment in collection order, IDs first, then segments
// by start time.
func (l *List) All() iter.Seq2[*ID, *Segment] {
	return func(yield func(*ID, *Segment) bool) {
		for _, id := range l.ids {
			for _, seg := range id.Segments {
				if !yield(id, seg) {
					return
				}
			}
		}
	}
}

// RefreshBounds recomputes Earliest and Latest of every ID. Call it after
// segments were modified in place.
func (l *List) RefreshBounds() {
	for _, id := range l.ids {
		id.updateBounds()
	}
}

// Find returns the ID for sid and pubVersion, or nil.
func (l *List) Find(sid string, pubVersion uint8) *ID {
	for _, id := range l.index[hash.TraceKey(sid, pubVersion)] {
		if id.SID == sid && id.PubVersion == pubVersion {
			return id
		}
	}

	return nil
}

func (l *List) findOrCreate(sid string, pubVersion uint8) *ID {
	if id := l.Find(sid, pubVersion); id != nil {
		return id
	}

	id := &ID{SID: sid, PubVersion: pubVersion, Earliest: nstime.Unset, Latest: nstime.Unset}

	pos, _ := slices.BinarySearchFunc(l.ids, id, compareIDs)
	l.ids = slices.Insert(l.ids, pos, id)

	key := hash.TraceKey(sid, pubVersion)
	l.index[key] = append(l.index[key], id)

	return id
}

func compareIDs(a, b *ID) int {
	if c := cmp.Compare(a.SID, b.SID); c != 0 {
		return c
	}

	return cmp.Compare(a.PubVersion, b.PubVersion)
}
