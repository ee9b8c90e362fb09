package ffprobe

import (
	"math"
	"strconv"
	"strings"

	"streamdetails/internal/language"
	"streamdetails/internal/streams"
)

// Details converts the report into a stream collection. Streams keep their
// report order within each kind; attachments and data streams are skipped.
func (r Result) Details() *streams.Details {
	details := streams.New()
	containerDuration := roundSeconds(r.DurationSeconds())
	for _, s := range r.Streams {
		switch strings.ToLower(s.CodecType) {
		case "video":
			if isCoverArt(s) {
				continue
			}
			duration := roundSeconds(parseFloat(s.Duration))
			if duration == 0 {
				duration = containerDuration
			}
			details.AddVideo(streams.NewVideo(
				s.Width,
				s.Height,
				parseRatio(s.DisplayAspectRatio),
				duration,
				strings.ToLower(s.CodecName),
				stereoMode(s),
			))
		case "audio":
			details.AddAudio(streams.NewAudio(
				channelCount(s),
				language.ExtractFromTags(s.Tags),
				audioCodec(s),
			))
		case "subtitle":
			details.AddSubtitle(streams.NewSubtitle(language.ExtractFromTags(s.Tags)))
		}
	}
	return details
}

func isCoverArt(s Stream) bool {
	return s.Disposition.AttachedPic != 0
}

func roundSeconds(seconds float64) int {
	if math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}
	return int(math.Round(seconds))
}

// parseRatio parses "16:9" style ratios. Unknown or degenerate values yield 0
// so the aspect is derived from the frame size.
func parseRatio(value string) float32 {
	num, den, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || n <= 0 || d <= 0 {
		return 0
	}
	ratio := float32(n / d)
	if f := float64(ratio); math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return ratio
}

var layoutChannels = map[string]int{
	"mono":      1,
	"stereo":    2,
	"2.1":       3,
	"3.0":       3,
	"quad":      4,
	"4.0":       4,
	"4.1":       5,
	"5.0":       5,
	"5.0(side)": 5,
	"5.1":       6,
	"5.1(side)": 6,
	"6.1":       7,
	"7.1":       8,
	"7.1(wide)": 8,
}

func channelCount(s Stream) int {
	if s.Channels > 0 {
		return s.Channels
	}
	layout := strings.ToLower(strings.TrimSpace(s.ChannelLayout))
	if n, ok := layoutChannels[layout]; ok {
		return n
	}
	if count, ok := strings.CutSuffix(layout, " channels"); ok {
		if n, err := strconv.Atoi(count); err == nil && n > 0 {
			return n
		}
	}
	return streams.UnknownChannels
}

// audioCodec maps DTS profiles onto the codec names used for ranking.
func audioCodec(s Stream) string {
	codec := strings.ToLower(s.CodecName)
	if codec != "dts" && codec != "dca" {
		return codec
	}
	profile := strings.ToLower(s.Profile)
	switch {
	case strings.Contains(profile, "hd ma"):
		return "dtshd_ma"
	case strings.Contains(profile, "hd hra"):
		return "dtshd_hra"
	default:
		return "dca"
	}
}

func stereoMode(s Stream) string {
	if mode := strings.ToLower(strings.TrimSpace(s.Tags["stereo_mode"])); mode != "" {
		return mode
	}
	for _, sd := range s.SideData {
		if !strings.EqualFold(sd.SideDataType, "Stereo 3D") {
			continue
		}
		switch strings.ToLower(sd.Type) {
		case "side by side":
			return "left_right"
		case "top and bottom":
			return "top_bottom"
		case "2d":
			return "mono"
		}
	}
	return ""
}
