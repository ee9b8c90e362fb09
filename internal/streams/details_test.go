package streams

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"streamdetails/internal/archive"
)

func sampleDetails() *Details {
	d := New()
	d.AddVideo(NewVideo(1920, 1080, 0, 5400, "h264", ""))
	d.AddVideo(NewVideo(720, 480, 1.3333334, 60, "mpeg2video", "left_right"))
	d.AddAudio(NewAudio(6, "en", "ac3"))
	d.AddAudio(NewAudio(UnknownChannels, "", "aac"))
	d.AddSubtitle(NewSubtitle("en"))
	d.AddSubtitle(NewSubtitle(""))
	return d
}

func TestNewVideoDerivesAspect(t *testing.T) {
	if v := NewVideo(1920, 1080, 0, 0, "", ""); v.Aspect != float32(1920)/float32(1080) {
		t.Fatalf("expected derived aspect, got %v", v.Aspect)
	}
	if v := NewVideo(1920, 0, 0, 0, "", ""); v.Aspect != 0 {
		t.Fatalf("expected zero aspect with zero height, got %v", v.Aspect)
	}
	if v := NewVideo(1920, 1080, 2.35, 0, "", ""); v.Aspect != 2.35 {
		t.Fatalf("expected supplied aspect kept, got %v", v.Aspect)
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	in := sampleDetails()
	data, err := archive.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out := New()
	out.AddAudio(NewAudio(2, "stale", "mp3"))
	if err := archive.Unmarshal(data, out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !in.Equal(out) {
		t.Fatalf("expected equal collections, got %+v", out)
	}
	if out.AudioCount() != 2 {
		t.Fatalf("expected load to replace existing streams, got %d audio", out.AudioCount())
	}
}

func TestArchiveWireLayout(t *testing.T) {
	d := New()
	d.AddVideo(Video{Width: 3, Height: 2, Aspect: 1.5, Duration: 4, Codec: "h264"})
	data, err := archive.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := []byte{
		1, 0, 0, 0, 0, 0, 0, 0, // video count
		4, 0, 0, 0, 0, 0, 0, 0, 'h', '2', '6', '4', // codec
		0x00, 0x00, 0xc0, 0x3f, // aspect
		2, 0, 0, 0, // height
		3, 0, 0, 0, // width
		4, 0, 0, 0, // duration
		0, 0, 0, 0, 0, 0, 0, 0, // stereo mode
		0, 0, 0, 0, 0, 0, 0, 0, // audio count
		0, 0, 0, 0, 0, 0, 0, 0, // subtitle count
	}
	if !bytes.Equal(data, want) {
		t.Fatalf("unexpected encoding:\n got %x\nwant %x", data, want)
	}
}

func TestArchiveRejectsOversizedFields(t *testing.T) {
	d := New()
	d.AddVideo(Video{Width: math.MaxInt32 + 1, Height: 1})
	if _, err := archive.Marshal(d); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestArchiveRejectsNonFiniteAspect(t *testing.T) {
	d := New()
	d.AddVideo(Video{Width: 1920, Height: 1080, Aspect: float32(math.NaN())})
	if _, err := archive.Marshal(d); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange on store, got %v", err)
	}

	var buf bytes.Buffer
	w := archive.NewWriter(&buf)
	_ = w.WriteString("h264")
	_ = w.WriteFloat32(float32(math.Inf(1)))
	_ = w.WriteInt32(1080)
	_ = w.WriteInt32(1920)
	_ = w.WriteInt32(60)
	_ = w.WriteString("")
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := archive.Unmarshal(buf.Bytes(), &Video{}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange on load, got %v", err)
	}
}

func TestArchiveIntoClosedArchiveFails(t *testing.T) {
	for _, obj := range []archive.Archivable{
		&Video{Width: 1920, Height: 1080, Codec: "h264"},
		&Audio{Channels: 2, Codec: "aac", Language: "en"},
		&Subtitle{Language: "en"},
	} {
		var buf bytes.Buffer
		w := archive.NewWriter(&buf)
		if err := w.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
		if err := w.WriteObject(obj); !errors.Is(err, archive.ErrClosed) {
			t.Fatalf("%T: expected ErrClosed, got %v", obj, err)
		}
		if err := obj.Archive(w); !errors.Is(err, archive.ErrClosed) {
			t.Fatalf("%T: expected ErrClosed from Archive, got %v", obj, err)
		}
		if buf.Len() != 0 {
			t.Fatalf("%T: expected nothing written, got %d bytes", obj, buf.Len())
		}
	}
}

func TestArchiveTruncatedInput(t *testing.T) {
	data, err := archive.Marshal(sampleDetails())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := archive.Unmarshal(data[:len(data)-3], New()); err == nil {
		t.Fatal("expected error for truncated input")
	}
}

func TestEqualUsesAspectTolerance(t *testing.T) {
	a := NewVideo(1920, 1080, 1.777, 100, "h264", "")
	b := NewVideo(1920, 1080, 1.780, 100, "h264", "")
	if !a.Equal(b) || !b.Equal(a) {
		t.Fatal("expected aspects within tolerance to be equal")
	}
	c := NewVideo(1920, 1080, 1.827, 100, "h264", "")
	if a.Equal(c) {
		t.Fatal("expected aspects 0.05 apart to differ")
	}
	d := NewVideo(1920, 1080, 1.780, 101, "h264", "")
	if b.Equal(d) {
		t.Fatal("expected duration difference to matter")
	}
}

func TestDetailsEqualIsIndexWise(t *testing.T) {
	a := New()
	a.AddAudio(NewAudio(2, "en", "aac"))
	a.AddAudio(NewAudio(6, "en", "ac3"))

	b := New()
	b.AddAudio(NewAudio(6, "en", "ac3"))
	b.AddAudio(NewAudio(2, "en", "aac"))

	if a.Equal(b) {
		t.Fatal("expected order to matter")
	}
	if !a.Equal(a.Clone()) {
		t.Fatal("expected clone to be equal")
	}
	var empty *Details
	if !empty.Equal(New()) {
		t.Fatal("expected nil and empty collections to be equal")
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := sampleDetails()
	dup := orig.Clone()
	dup.AddSubtitle(NewSubtitle("de"))
	if orig.SubtitleCount() != 2 {
		t.Fatalf("expected original untouched, got %d subtitles", orig.SubtitleCount())
	}
	videos := orig.Videos()
	videos[0].Codec = "changed"
	if orig.VideoCodec(1) != "h264" {
		t.Fatal("expected Videos to return a copy")
	}
}

func TestAddDispatchesByKind(t *testing.T) {
	d := New()
	d.Add(NewVideo(1, 1, 0, 0, "", ""))
	d.Add(&Audio{Channels: 2})
	d.Add(NewSubtitle("en"))
	if d.Count(KindVideo) != 1 || d.Count(KindAudio) != 1 || d.Count(KindSubtitle) != 1 {
		t.Fatalf("unexpected counts %d/%d/%d", d.VideoCount(), d.AudioCount(), d.SubtitleCount())
	}
	if !d.HasItems() {
		t.Fatal("expected items")
	}
	d.Reset()
	if d.HasItems() {
		t.Fatal("expected empty collection after Reset")
	}
}

func TestProjection(t *testing.T) {
	data, err := New().MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != `{"audio":[],"subtitle":[],"video":[]}` {
		t.Fatalf("unexpected empty projection %s", data)
	}

	d := New()
	d.AddVideo(NewVideo(1920, 1080, 0, 60, "h264", ""))
	d.AddAudio(NewAudio(6, "en", "ac3"))
	d.AddSubtitle(NewSubtitle("fr"))
	data, err = d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"audio":[{"channels":6,"codec":"ac3","language":"en"}],` +
		`"subtitle":[{"language":"fr"}],` +
		`"video":[{"aspect":1.7777778,"codec":"h264","duration":60,"height":1080,"stereomode":"","width":1920}]}`
	if string(data) != want {
		t.Fatalf("unexpected projection:\n got %s\nwant %s", data, want)
	}
}
