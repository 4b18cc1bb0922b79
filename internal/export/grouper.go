// Package export partitions catalog entries into groups and serializes
// them as CSV rows for marketplace listing.
package export

import (
	"fmt"

	"github.com/heinz1110/photocat/internal/domain"
)

// Partition splits entries into export groups according to mode.
//
// interval is the chunk size for ScanGroupOfX and the stride for
// ScanAlternate; it must be at least 1 for those modes and is ignored for
// all others. An empty input always yields an empty result.
//
// Partition is pure: it never mutates entries, performs no I/O, and is safe
// to call concurrently on independent snapshots. Every entry of the input
// appears in exactly one group, groups preserve input order, and no group
// is ever empty.
func Partition(entries []domain.Entry, mode domain.ScanMode, interval int) ([]domain.Group, error) {
	if mode.RequiresInterval() && interval < 1 {
		return nil, fmt.Errorf("%w: got %d for mode %s", domain.ErrInvalidInterval, interval, mode)
	}

	switch mode {
	case domain.ScanSingle:
		return chunk(entries, 1), nil
	case domain.ScanPair:
		return chunk(entries, 2), nil
	case domain.ScanAll:
		if len(entries) == 0 {
			return nil, nil
		}
		return []domain.Group{{Entries: entries}}, nil
	case domain.ScanGroupOfX:
		return chunk(entries, interval), nil
	case domain.ScanAlternate:
		return alternate(entries, interval), nil
	default:
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownScanMode, int(mode))
	}
}

// chunk partitions entries into consecutive non-overlapping groups of at
// most size entries each; the last group may be shorter.
func chunk(entries []domain.Entry, size int) []domain.Group {
	var groups []domain.Group
	for i := 0; i < len(entries); i += size {
		end := i + size
		if end > len(entries) {
			end = len(entries)
		}
		groups = append(groups, domain.Group{Entries: entries[i:end:end]})
	}
	return groups
}

// alternate builds interval-many stride groups: group k holds the entries
// at indices k, k+interval, k+2*interval, ... Groups past the input length
// would be empty and are omitted. An interval of 1 (or less, though the
// caller rejects that) degrades to a single group holding everything,
// matching the behavior the interval spinner produces at its minimum.
func alternate(entries []domain.Entry, interval int) []domain.Group {
	if interval <= 1 {
		if len(entries) == 0 {
			return nil
		}
		return []domain.Group{{Entries: entries}}
	}

	var groups []domain.Group
	for k := 0; k < interval; k++ {
		var g []domain.Entry
		for i := k; i < len(entries); i += interval {
			g = append(g, entries[i])
		}
		if len(g) > 0 {
			groups = append(groups, domain.Group{Entries: g})
		}
	}
	return groups
}
