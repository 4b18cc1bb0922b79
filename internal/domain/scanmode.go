package domain

import "fmt"

// ScanMode is the policy governing how catalog entries are partitioned
// into export groups.
type ScanMode int

const (
	// ScanSingle exports each entry as its own group.
	ScanSingle ScanMode = iota

	// ScanPair exports consecutive non-overlapping pairs; a trailing odd
	// entry forms a group of one.
	ScanPair

	// ScanAll exports all entries as a single group.
	ScanAll

	// ScanGroupOfX exports consecutive chunks of the configured interval;
	// the last chunk may be shorter.
	ScanGroupOfX

	// ScanAlternate exports interval-many stride groups: group k takes
	// entries k, k+interval, k+2*interval, ...
	ScanAlternate
)

// RequiresInterval reports whether the mode needs an interval parameter.
func (m ScanMode) RequiresInterval() bool {
	return m == ScanGroupOfX || m == ScanAlternate
}

// String returns the canonical spelling used by the CLI and config file.
func (m ScanMode) String() string {
	switch m {
	case ScanSingle:
		return "single"
	case ScanPair:
		return "pair"
	case ScanAll:
		return "all"
	case ScanGroupOfX:
		return "group-of-x"
	case ScanAlternate:
		return "alternate"
	default:
		return fmt.Sprintf("scanmode(%d)", int(m))
	}
}

// ParseScanMode converts a mode spelling to a ScanMode.
// Returns ErrUnknownScanMode for anything else.
func ParseScanMode(s string) (ScanMode, error) {
	switch s {
	case "single":
		return ScanSingle, nil
	case "pair":
		return ScanPair, nil
	case "all":
		return ScanAll, nil
	case "group-of-x":
		return ScanGroupOfX, nil
	case "alternate":
		return ScanAlternate, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownScanMode, s)
	}
}
