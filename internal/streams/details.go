package streams

import (
	"errors"
	"fmt"
	"slices"

	"streamdetails/internal/archive"
	"streamdetails/internal/variant"
)

// ErrOutOfRange reports a descriptor field too large for its wire width.
var ErrOutOfRange = errors.New("value out of range")

// Details is the stream collection of one media item. The zero value is an
// empty collection. It is not safe for concurrent mutation.
type Details struct {
	videos    []Video
	audios    []Audio
	subtitles []Subtitle
}

// New returns an empty collection.
func New() *Details {
	return &Details{}
}

// Add appends a descriptor to the sequence matching its kind.
func (d *Details) Add(s Stream) {
	switch st := s.(type) {
	case Video:
		d.AddVideo(st)
	case *Video:
		d.AddVideo(*st)
	case Audio:
		d.AddAudio(st)
	case *Audio:
		d.AddAudio(*st)
	case Subtitle:
		d.AddSubtitle(st)
	case *Subtitle:
		d.AddSubtitle(*st)
	default:
		panic(fmt.Sprintf("streams: unsupported stream %T", s))
	}
}

func (d *Details) AddVideo(v Video)       { d.videos = append(d.videos, v) }
func (d *Details) AddAudio(a Audio)       { d.audios = append(d.audios, a) }
func (d *Details) AddSubtitle(s Subtitle) { d.subtitles = append(d.subtitles, s) }

// Reset removes every stream.
func (d *Details) Reset() {
	d.videos = nil
	d.audios = nil
	d.subtitles = nil
}

// Clone returns a deep copy.
func (d *Details) Clone() *Details {
	if d == nil {
		return nil
	}
	return &Details{
		videos:    slices.Clone(d.videos),
		audios:    slices.Clone(d.audios),
		subtitles: slices.Clone(d.subtitles),
	}
}

// HasItems reports whether any stream is present.
func (d *Details) HasItems() bool {
	return d != nil && (len(d.videos) > 0 || len(d.audios) > 0 || len(d.subtitles) > 0)
}

func (d *Details) VideoCount() int    { return len(d.videos) }
func (d *Details) AudioCount() int    { return len(d.audios) }
func (d *Details) SubtitleCount() int { return len(d.subtitles) }

// Videos returns a copy of the video streams in insertion order.
func (d *Details) Videos() []Video { return slices.Clone(d.videos) }

// Audios returns a copy of the audio streams in insertion order.
func (d *Details) Audios() []Audio { return slices.Clone(d.audios) }

// Subtitles returns a copy of the subtitle streams in insertion order.
func (d *Details) Subtitles() []Subtitle { return slices.Clone(d.subtitles) }

// Count returns the number of streams of the given kind.
func (d *Details) Count(kind Kind) int {
	switch kind {
	case KindVideo:
		return len(d.videos)
	case KindAudio:
		return len(d.audios)
	case KindSubtitle:
		return len(d.subtitles)
	}
	return 0
}

// Archive encodes or decodes the video, audio and subtitle sequences in that
// order. Loading replaces the current contents.
func (d *Details) Archive(ar *archive.Archive) error {
	if err := archive.ArchiveSlice(ar, &d.videos); err != nil {
		return fmt.Errorf("video streams: %w", err)
	}
	if err := archive.ArchiveSlice(ar, &d.audios); err != nil {
		return fmt.Errorf("audio streams: %w", err)
	}
	if err := archive.ArchiveSlice(ar, &d.subtitles); err != nil {
		return fmt.Errorf("subtitle streams: %w", err)
	}
	return nil
}

// Equal compares the three sequences index by index. Video aspects may
// differ by AspectEpsilon.
func (d *Details) Equal(other *Details) bool {
	if d == nil || other == nil {
		return !d.HasItems() && !other.HasItems()
	}
	return slices.EqualFunc(d.videos, other.videos, Video.Equal) &&
		slices.EqualFunc(d.audios, other.audios, Audio.Equal) &&
		slices.EqualFunc(d.subtitles, other.subtitles, Subtitle.Equal)
}

// Project returns the collection as a value tree with "video", "audio" and
// "subtitle" arrays, each present even when empty.
func (d *Details) Project() variant.Value {
	root := variant.NewObject()
	root.Set("video", projectAll(d.safe().videos))
	root.Set("audio", projectAll(d.safe().audios))
	root.Set("subtitle", projectAll(d.safe().subtitles))
	return root
}

// MarshalJSON encodes the projection.
func (d *Details) MarshalJSON() ([]byte, error) {
	return d.Project().MarshalJSON()
}

func (d *Details) safe() *Details {
	if d == nil {
		return &Details{}
	}
	return d
}

func projectAll[S Stream](items []S) variant.Value {
	list := variant.NewArray()
	for _, item := range items {
		list.Append(item.project())
	}
	return list
}
