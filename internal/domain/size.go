package domain

import "fmt"

// DefaultDPI is assumed for scans that carry no resolution metadata.
const DefaultDPI = 300

// PhysicalSize derives the print size in centimeters from pixel dimensions
// and scan resolution. Returns "" when any input is unknown.
func PhysicalSize(widthPx, heightPx, dpi int) string {
	if widthPx <= 0 || heightPx <= 0 || dpi <= 0 {
		return ""
	}
	widthCM := float64(widthPx) / float64(dpi) * 2.54
	heightCM := float64(heightPx) / float64(dpi) * 2.54
	return fmt.Sprintf("%.1fcm x %.1fcm", widthCM, heightCM)
}
