package streams

import (
	"fmt"
	"math"

	"streamdetails/internal/archive"
	"streamdetails/internal/variant"
)

// Kind identifies a stream descriptor variant.
type Kind int

const (
	KindVideo Kind = iota
	KindAudio
	KindSubtitle
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindSubtitle:
		return "subtitle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Stream is implemented by Video, Audio and Subtitle only.
type Stream interface {
	Kind() Kind
	project() variant.Value
	isStream()
}

// AspectEpsilon is the largest aspect difference at which two otherwise
// identical video streams still compare equal. The relation is not
// transitive.
const AspectEpsilon = 0.025

// UnknownChannels marks an audio stream whose channel count was not probed.
const UnknownChannels = -1

// Video describes a single video stream.
type Video struct {
	Width      int
	Height     int
	Aspect     float32
	Duration   int // seconds
	Codec      string
	StereoMode string
}

// NewVideo builds a video descriptor. An aspect of exactly zero is derived
// from width/height when height is non-zero; any other value is kept.
func NewVideo(width, height int, aspect float32, duration int, codec, stereoMode string) Video {
	if aspect == 0 && height != 0 {
		aspect = float32(width) / float32(height)
	}
	return Video{
		Width:      width,
		Height:     height,
		Aspect:     aspect,
		Duration:   duration,
		Codec:      codec,
		StereoMode: stereoMode,
	}
}

func (Video) Kind() Kind { return KindVideo }
func (Video) isStream()  {}

// Area returns width × height.
func (v Video) Area() int64 {
	return int64(v.Width) * int64(v.Height)
}

// Less orders video streams by pixel area.
func (v Video) Less(other Video) bool {
	return v.Area() < other.Area()
}

// Equal compares every field, allowing aspects to differ by AspectEpsilon.
func (v Video) Equal(other Video) bool {
	return v.Width == other.Width &&
		v.Height == other.Height &&
		v.Duration == other.Duration &&
		v.Codec == other.Codec &&
		v.StereoMode == other.StereoMode &&
		math.Abs(float64(v.Aspect)-float64(other.Aspect)) <= AspectEpsilon
}

// Archive writes codec, aspect, height, width, duration, stereo mode.
func (v *Video) Archive(ar *archive.Archive) error {
	if ar.IsStoring() {
		height, err := toInt32("height", v.Height)
		if err != nil {
			return err
		}
		width, err := toInt32("width", v.Width)
		if err != nil {
			return err
		}
		duration, err := toInt32("duration", v.Duration)
		if err != nil {
			return err
		}
		if err := checkAspect(v.Aspect); err != nil {
			return err
		}
		if err := ar.WriteString(v.Codec); err != nil {
			return err
		}
		if err := ar.WriteFloat32(v.Aspect); err != nil {
			return err
		}
		if err := ar.WriteInt32(height); err != nil {
			return err
		}
		if err := ar.WriteInt32(width); err != nil {
			return err
		}
		if err := ar.WriteInt32(duration); err != nil {
			return err
		}
		return ar.WriteString(v.StereoMode)
	}

	var err error
	if v.Codec, err = ar.ReadString(); err != nil {
		return err
	}
	if v.Aspect, err = ar.ReadFloat32(); err != nil {
		return err
	}
	if err := checkAspect(v.Aspect); err != nil {
		return err
	}
	height, err := ar.ReadInt32()
	if err != nil {
		return err
	}
	width, err := ar.ReadInt32()
	if err != nil {
		return err
	}
	duration, err := ar.ReadInt32()
	if err != nil {
		return err
	}
	v.Height, v.Width, v.Duration = int(height), int(width), int(duration)
	v.StereoMode, err = ar.ReadString()
	return err
}

func (v Video) project() variant.Value {
	obj := variant.NewObject()
	obj.Set("codec", variant.String(v.Codec))
	obj.Set("aspect", variant.Float32(v.Aspect))
	obj.Set("height", variant.Int(int64(v.Height)))
	obj.Set("width", variant.Int(int64(v.Width)))
	obj.Set("duration", variant.Int(int64(v.Duration)))
	obj.Set("stereomode", variant.String(v.StereoMode))
	return obj
}

// Audio describes a single audio stream.
type Audio struct {
	Channels int
	Language string
	Codec    string
}

func NewAudio(channels int, language, codec string) Audio {
	return Audio{Channels: channels, Language: language, Codec: codec}
}

func (Audio) Kind() Kind { return KindAudio }
func (Audio) isStream()  {}

// Less orders audio streams by channel count, then by codec priority.
func (a Audio) Less(other Audio) bool {
	if a.Channels == other.Channels {
		return CodecPriority(a.Codec) < CodecPriority(other.Codec)
	}
	return a.Channels < other.Channels
}

func (a Audio) Equal(other Audio) bool {
	return a == other
}

// Archive writes codec, language, channels.
func (a *Audio) Archive(ar *archive.Archive) error {
	if ar.IsStoring() {
		channels, err := toInt32("channels", a.Channels)
		if err != nil {
			return err
		}
		if err := ar.WriteString(a.Codec); err != nil {
			return err
		}
		if err := ar.WriteString(a.Language); err != nil {
			return err
		}
		return ar.WriteInt32(channels)
	}

	var err error
	if a.Codec, err = ar.ReadString(); err != nil {
		return err
	}
	if a.Language, err = ar.ReadString(); err != nil {
		return err
	}
	channels, err := ar.ReadInt32()
	if err != nil {
		return err
	}
	a.Channels = int(channels)
	return nil
}

func (a Audio) project() variant.Value {
	obj := variant.NewObject()
	obj.Set("codec", variant.String(a.Codec))
	obj.Set("language", variant.String(a.Language))
	obj.Set("channels", variant.Int(int64(a.Channels)))
	return obj
}

// Subtitle describes a single subtitle stream.
type Subtitle struct {
	Language string
}

func NewSubtitle(language string) Subtitle {
	return Subtitle{Language: language}
}

func (Subtitle) Kind() Kind { return KindSubtitle }
func (Subtitle) isStream()  {}

func (s Subtitle) Equal(other Subtitle) bool {
	return s == other
}

func (s *Subtitle) Archive(ar *archive.Archive) error {
	if ar.IsStoring() {
		return ar.WriteString(s.Language)
	}
	var err error
	s.Language, err = ar.ReadString()
	return err
}

func (s Subtitle) project() variant.Value {
	obj := variant.NewObject()
	obj.Set("language", variant.String(s.Language))
	return obj
}

// checkAspect rejects NaN and infinite ratios, which have no JSON form.
func checkAspect(aspect float32) error {
	f := float64(aspect)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("streams: video aspect %v: %w", aspect, ErrOutOfRange)
	}
	return nil
}

func toInt32(field string, v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("streams: %s %d: %w", field, v, ErrOutOfRange)
	}
	return int32(v), nil
}
