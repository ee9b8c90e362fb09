package streams

import (
	"fmt"
	"strings"

	"streamdetails/internal/language"
)

// SubtitlePolicy selects how the best subtitle stream is chosen.
type SubtitlePolicy int

const (
	// SubtitleFirst treats the first inserted subtitle as the best.
	SubtitleFirst SubtitlePolicy = iota
	// SubtitlePreferLanguage favours subtitles in the preferred language and
	// disfavours subtitles without a language.
	SubtitlePreferLanguage
)

func (p SubtitlePolicy) String() string {
	switch p {
	case SubtitleFirst:
		return "first"
	case SubtitlePreferLanguage:
		return "preferred_language"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParseSubtitlePolicy accepts "first" or "preferred_language". Empty input
// selects SubtitleFirst.
func ParseSubtitlePolicy(s string) (SubtitlePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return SubtitleFirst, nil
	case "preferred_language", "preferred-language", "language":
		return SubtitlePreferLanguage, nil
	default:
		return SubtitleFirst, fmt.Errorf("unknown subtitle policy %q", s)
	}
}

// SubtitleRanking carries the caller's subtitle preference into ranking.
type SubtitleRanking struct {
	Policy            SubtitlePolicy
	PreferredLanguage string
}

// worse reports whether a should lose to b. Subtitles in the same language
// never displace each other; otherwise a loses when it has no language or b
// is in the preferred language.
func (r SubtitleRanking) worse(a, b Subtitle) bool {
	if r.Policy != SubtitlePreferLanguage || strings.TrimSpace(r.PreferredLanguage) == "" {
		return false
	}
	if sameLanguage(a.Language, b.Language) {
		return false
	}
	return strings.TrimSpace(a.Language) == "" || language.Match(b.Language, r.PreferredLanguage)
}

func sameLanguage(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) || language.Match(a, b)
}

// champion scans items left to right and replaces the current pick whenever
// it is worse than a later item, so the first of several equal items wins.
func champion[T any](items []T, worse func(a, b T) bool) int {
	if len(items) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(items); i++ {
		if worse(items[best], items[i]) {
			best = i
		}
	}
	return best
}

// BestVideo returns the video stream with the largest pixel area.
func (d *Details) BestVideo() (Video, bool) {
	i := champion(d.videos, Video.Less)
	if i < 0 {
		return Video{}, false
	}
	return d.videos[i], true
}

// BestAudio returns the audio stream with the most channels, breaking ties
// by codec priority.
func (d *Details) BestAudio() (Audio, bool) {
	i := champion(d.audios, Audio.Less)
	if i < 0 {
		return Audio{}, false
	}
	return d.audios[i], true
}

// BestSubtitle returns the best subtitle stream under ranking.
func (d *Details) BestSubtitle(ranking SubtitleRanking) (Subtitle, bool) {
	i := champion(d.subtitles, ranking.worse)
	if i < 0 {
		return Subtitle{}, false
	}
	return d.subtitles[i], true
}

// NthVideo returns the best video stream for idx 0 and the idx-th inserted
// stream (1-based) otherwise.
func (d *Details) NthVideo(idx int) (Video, bool) {
	if idx == 0 {
		return d.BestVideo()
	}
	return nth(d.videos, idx)
}

// NthAudio follows the same indexing as NthVideo.
func (d *Details) NthAudio(idx int) (Audio, bool) {
	if idx == 0 {
		return d.BestAudio()
	}
	return nth(d.audios, idx)
}

// NthSubtitle follows the same indexing as NthVideo, ranking index 0 with
// ranking.
func (d *Details) NthSubtitle(idx int, ranking SubtitleRanking) (Subtitle, bool) {
	if idx == 0 {
		return d.BestSubtitle(ranking)
	}
	return nth(d.subtitles, idx)
}

// Nth dispatches to the accessor for kind.
func (d *Details) Nth(kind Kind, idx int, ranking SubtitleRanking) (Stream, bool) {
	switch kind {
	case KindVideo:
		if v, ok := d.NthVideo(idx); ok {
			return v, true
		}
	case KindAudio:
		if a, ok := d.NthAudio(idx); ok {
			return a, true
		}
	case KindSubtitle:
		if s, ok := d.NthSubtitle(idx, ranking); ok {
			return s, true
		}
	}
	return nil, false
}

func nth[T any](items []T, idx int) (T, bool) {
	var zero T
	if idx < 1 || idx > len(items) {
		return zero, false
	}
	return items[idx-1], true
}

func (d *Details) VideoCodec(idx int) string {
	v, _ := d.NthVideo(idx)
	return v.Codec
}

func (d *Details) VideoAspect(idx int) float32 {
	v, _ := d.NthVideo(idx)
	return v.Aspect
}

func (d *Details) VideoWidth(idx int) int {
	v, _ := d.NthVideo(idx)
	return v.Width
}

func (d *Details) VideoHeight(idx int) int {
	v, _ := d.NthVideo(idx)
	return v.Height
}

func (d *Details) VideoDuration(idx int) int {
	v, _ := d.NthVideo(idx)
	return v.Duration
}

func (d *Details) StereoMode(idx int) string {
	v, _ := d.NthVideo(idx)
	return v.StereoMode
}

func (d *Details) AudioCodec(idx int) string {
	a, _ := d.NthAudio(idx)
	return a.Codec
}

func (d *Details) AudioLanguage(idx int) string {
	a, _ := d.NthAudio(idx)
	return a.Language
}

// AudioChannels returns UnknownChannels when no stream exists at idx.
func (d *Details) AudioChannels(idx int) int {
	a, ok := d.NthAudio(idx)
	if !ok {
		return UnknownChannels
	}
	return a.Channels
}

func (d *Details) SubtitleLanguage(idx int, ranking SubtitleRanking) string {
	s, _ := d.NthSubtitle(idx, ranking)
	return s.Language
}
