package streams

import "strings"

// resolutionBuckets are inclusive per-axis upper bounds, checked in order.
var resolutionBuckets = []struct {
	maxWidth  int
	maxHeight int
	label     string
}{
	{720, 480, "480"},
	{768, 576, "576"}, // PAL, 768 when rescaled to square pixels
	{960, 544, "540"}, // 544 is the nearest multiple of 16
	{1280, 720, "720"},
	{1920, 1080, "1080"},
}

// ResolutionLabel classifies frame dimensions. A zero dimension yields "" and
// anything above 1920×1080 is "4K".
func ResolutionLabel(width, height int) string {
	if width == 0 || height == 0 {
		return ""
	}
	for _, b := range resolutionBuckets {
		if width <= b.maxWidth && height <= b.maxHeight {
			return b.label
		}
	}
	return "4K"
}

// aspectBuckets pair each canonical ratio with the geometric mean of it and
// the next ratio up.
var aspectBuckets = []struct {
	below float32
	label string
}{
	{1.3499, "1.33"},
	{1.5080, "1.37"},
	{1.7190, "1.66"},
	{1.8147, "1.78"},
	{2.0174, "1.85"},
	{2.2738, "2.20"},
	{2.3749, "2.35"},
	{2.4739, "2.40"},
	{2.6529, "2.55"},
}

// AspectLabel snaps an aspect ratio to the nearest common cinema ratio.
func AspectLabel(aspect float32) string {
	if aspect == 0 {
		return ""
	}
	for _, b := range aspectBuckets {
		if aspect < b.below {
			return b.label
		}
	}
	return "2.76"
}

// ResolutionLabel classifies the best video stream.
func (d *Details) ResolutionLabel() string {
	v, _ := d.BestVideo()
	return ResolutionLabel(v.Width, v.Height)
}

// AspectLabel classifies the best video stream's aspect ratio.
func (d *Details) AspectLabel() string {
	v, _ := d.BestVideo()
	return AspectLabel(v.Aspect)
}

// CodecPriority ranks audio codecs for tie-breaking; higher is better.
// Unknown codecs rank 0.
func CodecPriority(codec string) int {
	switch strings.ToLower(strings.TrimSpace(codec)) {
	case "flac":
		return 7
	case "truehd":
		return 6
	case "dtshd_ma":
		return 5
	case "dtshd_hra":
		return 4
	case "eac3":
		return 3
	case "dca", "dts":
		return 2
	case "ac3":
		return 1
	default:
		return 0
	}
}
