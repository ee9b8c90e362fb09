package variant

import (
	"errors"
	"math"
	"slices"
	"testing"

	"streamdetails/internal/archive"
)

func sampleTree() Value {
	video := NewObject()
	video.Set("width", Int(1920))
	video.Set("aspect", Float32(1.7777778))
	video.Set("codec", String("h264"))

	list := NewArray()
	list.Append(video)
	list.Append(Null())

	root := NewObject()
	root.Set("video", list)
	root.Set("count", Uint(2))
	root.Set("default", Bool(true))
	root.Set("ratio", Float(0.5))
	return root
}

func TestMarshalJSONSortsKeys(t *testing.T) {
	data, err := sampleTree().MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"count":2,"default":true,"ratio":0.5,"video":[{"aspect":1.7777778,"codec":"h264","width":1920},null]}`
	if string(data) != want {
		t.Fatalf("unexpected json:\n got %s\nwant %s", data, want)
	}
}

func TestMarshalJSONRejectsNaN(t *testing.T) {
	if _, err := Float(math.NaN()).MarshalJSON(); err == nil {
		t.Fatal("expected error for NaN")
	}
}

func TestFloatFormatting(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{Float(2), "2"},
		{Float(1e21), "1e+21"},
		{Float(0.000000123), "1.23e-7"},
		{Float32(2.35), "2.35"},
	}
	for _, tc := range cases {
		if got := tc.value.AsString(); got != tc.want {
			t.Fatalf("AsString() = %q, want %q", got, tc.want)
		}
	}
}

func TestCanonicalJSON(t *testing.T) {
	obj := NewObject()
	obj.Set("b", String("é"))
	obj.Set("a", Float(1e3))
	data, err := CanonicalJSON(obj)
	if err != nil {
		t.Fatalf("CanonicalJSON: %v", err)
	}
	if string(data) != `{"a":1000,"b":"é"}` {
		t.Fatalf("unexpected canonical json %s", data)
	}
}

func TestAccessors(t *testing.T) {
	root := sampleTree()
	if !slices.Equal(root.Keys(), []string{"count", "default", "ratio", "video"}) {
		t.Fatalf("unexpected keys %v", root.Keys())
	}
	videos, ok := root.Get("video")
	if !ok || videos.Type() != TypeArray || videos.Len() != 2 {
		t.Fatalf("unexpected video member %+v", videos)
	}
	first := videos.Index(0)
	width, _ := first.Get("width")
	if width.AsInt() != 1920 || width.AsString() != "1920" {
		t.Fatalf("unexpected width %+v", width)
	}
	if !videos.Index(1).IsNull() || !videos.Index(5).IsNull() {
		t.Fatal("expected null for explicit null and out-of-range index")
	}
	if _, ok := root.Get("missing"); ok {
		t.Fatal("expected missing key")
	}
	if String("42").AsInt() != 42 || Bool(true).AsFloat() != 1 || !Uint(3).AsBool() {
		t.Fatal("unexpected scalar conversion")
	}
}

func TestSetOnNonObjectPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	v := Int(1)
	v.Set("k", Null())
}

func TestCloneIsIndependent(t *testing.T) {
	orig := sampleTree()
	dup := orig.Clone()
	dup.Set("count", Uint(99))
	if c, _ := orig.Get("count"); c.AsUint() != 2 {
		t.Fatal("expected original unchanged")
	}
	if orig.Equal(dup) {
		t.Fatal("expected trees to differ after mutation")
	}
	if !orig.Equal(orig.Clone()) {
		t.Fatal("expected clone to equal original")
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	in := sampleTree()
	data, err := archive.Marshal(&in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Value
	if err := archive.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !in.Equal(out) {
		t.Fatal("expected equal trees after round trip")
	}
	a, _ := in.MarshalJSON()
	b, _ := out.MarshalJSON()
	if string(a) != string(b) {
		t.Fatalf("json differs after round trip:\n%s\n%s", a, b)
	}
}

func TestArchiveRejectsDeepNesting(t *testing.T) {
	v := NewArray()
	for range MaxDepth + 1 {
		outer := NewArray()
		outer.Append(v)
		v = outer
	}
	data, err := archive.Marshal(&v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Value
	if err := archive.Unmarshal(data, &out); !errors.Is(err, ErrTooDeep) {
		t.Fatalf("expected ErrTooDeep, got %v", err)
	}
}
