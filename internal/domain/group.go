package domain

import "strings"

// Group is an ordered, non-empty run of entries destined for one export row.
// Groups are produced per export invocation and never persisted.
type Group struct {
	// Entries holds the group members in catalog order.
	Entries []Entry
}

// Size returns the number of entries in the group.
func (g Group) Size() int {
	return len(g.Entries)
}

// Lead returns the first entry of the group. The first entry supplies the
// scalar columns (physical size, categories, text, comment, condition) of
// the export row.
func (g Group) Lead() Entry {
	return g.Entries[0]
}

// Filenames joins the member filenames with ", " in group order.
func (g Group) Filenames() string {
	names := make([]string, len(g.Entries))
	for i, e := range g.Entries {
		names[i] = e.Filename
	}
	return strings.Join(names, ", ")
}
