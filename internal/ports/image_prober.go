package ports

// ImageInfo holds what could be read from an image file.
type ImageInfo struct {
	// Width and Height are the pixel dimensions. Zero when unknown.
	Width  int
	Height int

	// DPI is the scan resolution. Zero when the file carries none.
	DPI int
}

// ImageProber extracts pixel dimensions and scan resolution from image
// files. Implementations read EXIF metadata or decode image headers.
type ImageProber interface {
	// Probe inspects the file at path. A file that is readable but
	// carries no usable metadata yields a zero ImageInfo and nil error;
	// errors are reserved for unreadable files.
	Probe(path string) (ImageInfo, error)
}
