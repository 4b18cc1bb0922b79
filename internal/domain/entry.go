package domain

import "time"

// Entry represents a single cataloged image with its metadata.
// Entries are owned by the catalog; export partitioning only reads them.
type Entry struct {
	// FilePath is the absolute path the image was imported from.
	FilePath string `json:"file_path"`

	// Filename is the base name of FilePath; it identifies the entry in
	// all catalog operations.
	Filename string `json:"filename"`

	// Categories maps a category-group name (e.g. "Era") to the ordered
	// list of values assigned to this entry. Values are unique per group.
	Categories map[string][]string `json:"categories,omitempty"`

	// Text is the free-text description used for listings.
	Text string `json:"text,omitempty"`

	// Comment is an internal note, not shown to buyers.
	Comment string `json:"comment,omitempty"`

	// Condition is one value from the "Condition" category group.
	Condition string `json:"condition,omitempty"`

	// PhysicalSize is the print size, e.g. "10.5cm x 14.8cm".
	PhysicalSize string `json:"physical_size,omitempty"`

	// PixelWidth and PixelHeight are the image dimensions in pixels.
	PixelWidth  int `json:"pixel_width,omitempty"`
	PixelHeight int `json:"pixel_height,omitempty"`

	// DPI is the scan resolution used to derive PhysicalSize.
	DPI int `json:"dpi,omitempty"`

	// AddedAt is when the entry was imported.
	AddedAt time.Time `json:"added_at,omitempty"`

	// Exported records that the entry has been part of a CSV export.
	Exported bool `json:"exported,omitempty"`
}

// AssignCategory appends value to the named category group.
// Returns ErrDuplicateValue if the entry already carries it.
func (e *Entry) AssignCategory(group, value string) error {
	for _, v := range e.Categories[group] {
		if v == value {
			return ErrDuplicateValue
		}
	}
	if e.Categories == nil {
		e.Categories = make(map[string][]string)
	}
	e.Categories[group] = append(e.Categories[group], value)
	return nil
}

// UnassignCategory removes value from the named category group.
// Removing a value the entry does not carry is a no-op.
func (e *Entry) UnassignCategory(group, value string) {
	values := e.Categories[group]
	for i, v := range values {
		if v == value {
			e.Categories[group] = append(values[:i:i], values[i+1:]...)
			if len(e.Categories[group]) == 0 {
				delete(e.Categories, group)
			}
			return
		}
	}
}
