// Package exif extracts image dimensions and scan resolution from files,
// preferring EXIF metadata and falling back to decoding the image header.
package exif

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	goexif "github.com/rwcarlsen/goexif/exif"

	"github.com/heinz1110/photocat/internal/ports"
)

// Prober implements ports.ImageProber using goexif with an image-header
// fallback for files that carry no EXIF block (typical for PNG scans).
type Prober struct{}

// NewProber creates a new EXIF prober.
func NewProber() *Prober {
	return &Prober{}
}

// Probe inspects the file at path. Dimension and resolution fields that
// cannot be determined are left zero; only unreadable files return an error.
func (p *Prober) Probe(path string) (ports.ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.ImageInfo{}, err
	}
	defer f.Close()

	var info ports.ImageInfo

	if x, err := goexif.Decode(f); err == nil {
		info.Width = tagInt(x, goexif.PixelXDimension)
		info.Height = tagInt(x, goexif.PixelYDimension)
		info.DPI = tagRatInt(x, goexif.XResolution)
	}

	if info.Width == 0 || info.Height == 0 {
		// Rewind and decode just the header for dimensions.
		if _, err := f.Seek(0, 0); err != nil {
			return info, nil
		}
		if cfg, _, err := image.DecodeConfig(f); err == nil {
			info.Width = cfg.Width
			info.Height = cfg.Height
		}
	}

	return info, nil
}

// tagInt reads an integer EXIF tag, returning 0 when absent or malformed.
func tagInt(x *goexif.Exif, name goexif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return v
}

// tagRatInt reads a rational EXIF tag rounded to the nearest integer,
// returning 0 when absent or malformed.
func tagRatInt(x *goexif.Exif, name goexif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	num, den, err := tag.Rat2(0)
	if err != nil || den == 0 {
		return 0
	}
	return int((num + den/2) / den)
}
