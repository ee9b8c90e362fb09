package streams

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"streamdetails/internal/archive"
)

func genVideo() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 7680),
		gen.IntRange(0, 4320),
		gen.Float32Range(0, 4),
		gen.IntRange(0, 86400),
		gen.AlphaString(),
		gen.OneConstOf("", "left_right", "top_bottom"),
	).Map(func(vals []interface{}) Video {
		return NewVideo(vals[0].(int), vals[1].(int), vals[2].(float32), vals[3].(int), vals[4].(string), vals[5].(string))
	})
}

func genAudio() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(UnknownChannels, 16),
		gen.OneConstOf("", "en", "fr", "de", "jpn"),
		gen.OneConstOf("aac", "ac3", "eac3", "dca", "truehd", "flac", "opus"),
	).Map(func(vals []interface{}) Audio {
		return NewAudio(vals[0].(int), vals[1].(string), vals[2].(string))
	})
}

func genSubtitle() gopter.Gen {
	return gen.OneConstOf("", "en", "eng", "fr", "pt-BR").Map(func(lang string) Subtitle {
		return NewSubtitle(lang)
	})
}

func buildDetails(videos []Video, audios []Audio, subs []Subtitle) *Details {
	d := New()
	for _, v := range videos {
		d.AddVideo(v)
	}
	for _, a := range audios {
		d.AddAudio(a)
	}
	for _, s := range subs {
		d.AddSubtitle(s)
	}
	return d
}

// Video equality is not transitive, so these properties only compare a
// decoded collection against its own source.
func TestArchiveProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("decode(encode(d)) equals d", prop.ForAll(
		func(videos []Video, audios []Audio, subs []Subtitle) bool {
			in := buildDetails(videos, audios, subs)
			data, err := archive.Marshal(in)
			if err != nil {
				return false
			}
			out := New()
			if err := archive.Unmarshal(data, out); err != nil {
				return false
			}
			return in.Equal(out)
		},
		gen.SliceOf(genVideo()),
		gen.SliceOf(genAudio()),
		gen.SliceOf(genSubtitle()),
	))

	properties.Property("encoding is deterministic", prop.ForAll(
		func(videos []Video, audios []Audio, subs []Subtitle) bool {
			d := buildDetails(videos, audios, subs)
			first, err1 := archive.Marshal(d)
			second, err2 := archive.Marshal(d.Clone())
			return err1 == nil && err2 == nil && bytes.Equal(first, second)
		},
		gen.SliceOf(genVideo()),
		gen.SliceOf(genAudio()),
		gen.SliceOf(genSubtitle()),
	))

	properties.Property("sealed frames open to the same payload", prop.ForAll(
		func(audios []Audio) bool {
			data, err := archive.Marshal(buildDetails(nil, audios, nil))
			if err != nil {
				return false
			}
			payload, err := archive.OpenSealed(archive.Seal(data))
			return err == nil && bytes.Equal(payload, data)
		},
		gen.SliceOf(genAudio()),
	))

	properties.TestingRun(t)
}

func TestRankingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("best video has maximal area", prop.ForAll(
		func(videos []Video) bool {
			d := buildDetails(videos, nil, nil)
			best, ok := d.BestVideo()
			if len(videos) == 0 {
				return !ok
			}
			for _, v := range videos {
				if v.Area() > best.Area() {
					return false
				}
			}
			return ok
		},
		gen.SliceOf(genVideo()),
	))

	properties.Property("no audio stream outranks the best", prop.ForAll(
		func(audios []Audio) bool {
			d := buildDetails(nil, audios, nil)
			best, ok := d.BestAudio()
			if len(audios) == 0 {
				return !ok
			}
			for _, a := range audios {
				if best.Less(a) {
					return false
				}
			}
			return ok
		},
		gen.SliceOf(genAudio()),
	))

	properties.TestingRun(t)
}
