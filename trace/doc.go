// Package trace holds the identity-keyed collection of sample segments.
//
// A List is an ordered sequence of IDs, one per source identifier and
// publication version. Each ID owns the Segments decoded for it, ordered by
// start time and non-overlapping.
//
// Records produced by a decoder are folded into a List with Add, which joins a
// record to an existing segment when it is contiguous within the configured
// time and sample-rate tolerances, and starts a new segment otherwise:
//
//	list := trace.NewList()
//	for rec := range records {
//	    if err := list.Add(rec, trace.DefaultTolerance()); err != nil {
//	        return err
//	    }
//	}
//
//	for id, seg := range list.All() {
//	    fmt.Println(id.SID, seg.Start, seg.End, seg.SampleCount)
//	}
package trace
