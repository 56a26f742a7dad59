package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Overlap selects the geometric semantics of a range condition.
type Overlap string

const (
	// OverlapAny matches features whose interval intersects the query range:
	// feature.start <= query.end AND feature.end >= query.start.
	OverlapAny Overlap = "any"

	// OverlapWithin matches features fully contained in the query range:
	// feature.start >= query.start AND feature.end <= query.end.
	OverlapWithin Overlap = "within"
)

// GenomicInterval is a closed, 1-based coordinate range on a sequence,
// together with the overlap mode used when matching stored features.
type GenomicInterval struct {
	SeqName string
	Start   int64
	End     int64
	Mode    Overlap
}

// ParseRange parses a genomic range of the exact form "SEQNAME:START-END"
// with non-negative integer coordinates and START <= END. The mode must be
// OverlapAny or OverlapWithin; any other token is a construction error,
// never silently defaulted.
func ParseRange(s string, mode Overlap) (GenomicInterval, error) {
	switch mode {
	case OverlapAny, OverlapWithin:
	default:
		return GenomicInterval{}, &ValueError{Reason: fmt.Sprintf("unknown overlap mode %q (want %q or %q)", mode, OverlapAny, OverlapWithin)}
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return GenomicInterval{}, &ValueError{Reason: fmt.Sprintf("malformed range %q: want SEQNAME:START-END", s)}
	}
	seqName, coords := parts[0], parts[1]
	if seqName == "" {
		return GenomicInterval{}, &ValueError{Reason: fmt.Sprintf("malformed range %q: empty sequence name", s)}
	}

	bounds := strings.Split(coords, "-")
	if len(bounds) != 2 {
		return GenomicInterval{}, &ValueError{Reason: fmt.Sprintf("malformed range %q: want SEQNAME:START-END", s)}
	}

	start, err := strconv.ParseInt(bounds[0], 10, 64)
	if err != nil {
		return GenomicInterval{}, &ValueError{Reason: fmt.Sprintf("malformed range %q: start %q is not an integer", s, bounds[0])}
	}
	end, err := strconv.ParseInt(bounds[1], 10, 64)
	if err != nil {
		return GenomicInterval{}, &ValueError{Reason: fmt.Sprintf("malformed range %q: end %q is not an integer", s, bounds[1])}
	}
	if start > end {
		return GenomicInterval{}, &ValueError{Reason: fmt.Sprintf("malformed range %q: start %d beyond end %d", s, start, end)}
	}

	return GenomicInterval{SeqName: seqName, Start: start, End: end, Mode: mode}, nil
}
