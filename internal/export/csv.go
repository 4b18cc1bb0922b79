package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/heinz1110/photocat/internal/domain"
)

// csvHeader matches the marketplace listing template.
var csvHeader = []string{"Filename(s)", "Physical Size", "Category", "Text", "Comment", "Condition"}

// WriteCSV serializes groups to w, one row per group plus a header row.
// The group's first entry supplies every column except the filename list.
func WriteCSV(w io.Writer, groups []domain.Group) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, g := range groups {
		lead := g.Lead()
		row := []string{
			g.Filenames(),
			lead.PhysicalSize,
			FormatCategories(lead.Categories),
			lead.Text,
			lead.Comment,
			lead.Condition,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", lead.Filename, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatCategories renders category assignments as "Group: v1, v2"
// fragments joined by "; ". Group names are sorted so output is stable
// across runs; values keep assignment order. Empty groups are skipped.
func FormatCategories(categories map[string][]string) string {
	groups := make([]string, 0, len(categories))
	for name := range categories {
		if len(categories[name]) > 0 {
			groups = append(groups, name)
		}
	}
	sort.Strings(groups)

	parts := make([]string, 0, len(groups))
	for _, name := range groups {
		parts = append(parts, name+": "+strings.Join(categories[name], ", "))
	}
	return strings.Join(parts, "; ")
}
