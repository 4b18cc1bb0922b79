package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/heinz1110/photocat/internal/domain"
)

func TestWriteCSV(t *testing.T) {
	groups := []domain.Group{
		{Entries: []domain.Entry{
			{
				Filename:     "front.jpg",
				PhysicalSize: "9.0cm x 14.0cm",
				Categories: map[string][]string{
					"Type": {"Postcard"},
					"Era":  {"1900-1920", "1920-1950"},
				},
				Text:      "Harbor view, Hamburg",
				Comment:   "slight foxing",
				Condition: "Very Good",
			},
			{Filename: "back.jpg", PhysicalSize: "9.0cm x 14.0cm"},
		}},
		{Entries: []domain.Entry{
			{Filename: "cdv-01.jpg", Condition: "Good"},
		}},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, groups); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	if got := strings.Join(records[0], "|"); got != "Filename(s)|Physical Size|Category|Text|Comment|Condition" {
		t.Fatalf("header = %q", got)
	}

	row := records[1]
	if row[0] != "front.jpg, back.jpg" {
		t.Errorf("filenames = %q", row[0])
	}
	if row[1] != "9.0cm x 14.0cm" {
		t.Errorf("physical size = %q", row[1])
	}
	if row[2] != "Era: 1900-1920, 1920-1950; Type: Postcard" {
		t.Errorf("category = %q", row[2])
	}
	if row[3] != "Harbor view, Hamburg" || row[4] != "slight foxing" || row[5] != "Very Good" {
		t.Errorf("scalar columns = %v", row[3:])
	}

	if records[2][0] != "cdv-01.jpg" || records[2][5] != "Good" {
		t.Errorf("second row = %v", records[2])
	}
}

func TestWriteCSV_NoGroups(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back CSV: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want header only", len(records))
	}
}

func TestFormatCategories(t *testing.T) {
	tests := []struct {
		name string
		in   map[string][]string
		want string
	}{
		{"nil map", nil, ""},
		{"single group", map[string][]string{"Type": {"CDV"}}, "Type: CDV"},
		{
			"values keep assignment order",
			map[string][]string{"Theme": {"Travel", "Architecture"}},
			"Theme: Travel, Architecture",
		},
		{
			"groups sorted by name",
			map[string][]string{"Type": {"Tintype"}, "Era": {"1850-1900"}},
			"Era: 1850-1900; Type: Tintype",
		},
		{
			"empty value list skipped",
			map[string][]string{"Type": {}, "Era": {"Pre-1850"}},
			"Era: Pre-1850",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCategories(tt.in); got != tt.want {
				t.Fatalf("FormatCategories = %q, want %q", got, tt.want)
			}
		})
	}
}
