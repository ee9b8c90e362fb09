package streams

import "testing"

func TestBestVideoPicksLargestArea(t *testing.T) {
	d := New()
	d.AddVideo(NewVideo(640, 480, 0, 0, "a", ""))
	d.AddVideo(NewVideo(1920, 1080, 0, 0, "b", ""))
	d.AddVideo(NewVideo(1280, 720, 0, 0, "c", ""))
	d.AddVideo(NewVideo(1080, 1920, 0, 0, "d", ""))

	best, ok := d.BestVideo()
	if !ok {
		t.Fatal("expected best video")
	}
	if best.Codec != "b" {
		t.Fatalf("expected first maximal stream, got %q", best.Codec)
	}
	if d.ResolutionLabel() != "1080" {
		t.Fatalf("unexpected resolution label %q", d.ResolutionLabel())
	}
	if d.AspectLabel() != "1.78" {
		t.Fatalf("unexpected aspect label %q", d.AspectLabel())
	}
}

func TestBestAudioBreaksTiesByCodec(t *testing.T) {
	d := New()
	d.AddAudio(NewAudio(6, "en", "ac3"))
	d.AddAudio(NewAudio(6, "en", "truehd"))
	d.AddAudio(NewAudio(2, "en", "flac"))

	best, ok := d.BestAudio()
	if !ok || best.Codec != "truehd" {
		t.Fatalf("expected truehd, got %+v", best)
	}

	d.AddAudio(NewAudio(8, "en", "aac"))
	if got := d.AudioCodec(0); got != "aac" {
		t.Fatalf("expected channel count to dominate, got %q", got)
	}
}

func TestCodecPriority(t *testing.T) {
	order := []string{"mp3", "ac3", "dts", "eac3", "dtshd_hra", "dtshd_ma", "truehd", "FLAC"}
	for i := 1; i < len(order); i++ {
		if CodecPriority(order[i-1]) >= CodecPriority(order[i]) {
			t.Fatalf("expected %s below %s", order[i-1], order[i])
		}
	}
	if CodecPriority("dca") != CodecPriority("dts") {
		t.Fatal("expected dca and dts to share a priority")
	}
}

func TestBestSubtitlePolicies(t *testing.T) {
	d := New()
	d.AddSubtitle(NewSubtitle(""))
	d.AddSubtitle(NewSubtitle("fr"))
	d.AddSubtitle(NewSubtitle("en"))
	d.AddSubtitle(NewSubtitle("eng"))

	tests := []struct {
		name    string
		ranking SubtitleRanking
		want    string
	}{
		{"first", SubtitleRanking{Policy: SubtitleFirst, PreferredLanguage: "en"}, ""},
		{"preferred", SubtitleRanking{Policy: SubtitlePreferLanguage, PreferredLanguage: "en"}, "en"},
		{"preferred iso3", SubtitleRanking{Policy: SubtitlePreferLanguage, PreferredLanguage: "fre"}, "fr"},
		{"no preference", SubtitleRanking{Policy: SubtitlePreferLanguage}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.BestSubtitle(tt.ranking)
			if !ok {
				t.Fatal("expected a subtitle")
			}
			if got.Language != tt.want {
				t.Fatalf("best subtitle = %q, want %q", got.Language, tt.want)
			}
		})
	}
}

func TestPreferredLanguageKeepsFirstWhenNoneMatch(t *testing.T) {
	d := New()
	d.AddSubtitle(NewSubtitle("de"))
	d.AddSubtitle(NewSubtitle("fr"))
	ranking := SubtitleRanking{Policy: SubtitlePreferLanguage, PreferredLanguage: "en"}
	if got := d.SubtitleLanguage(0, ranking); got != "de" {
		t.Fatalf("expected first subtitle, got %q", got)
	}
}

func TestNthIndexing(t *testing.T) {
	d := New()
	d.AddVideo(NewVideo(720, 480, 0, 10, "small", ""))
	d.AddVideo(NewVideo(1920, 1080, 0, 20, "large", "top_bottom"))

	if got := d.VideoCodec(0); got != "large" {
		t.Fatalf("index 0 = %q, want best", got)
	}
	if got := d.VideoCodec(1); got != "small" {
		t.Fatalf("index 1 = %q, want first inserted", got)
	}
	if got := d.StereoMode(2); got != "top_bottom" {
		t.Fatalf("index 2 stereo = %q", got)
	}
	if _, ok := d.NthVideo(3); ok {
		t.Fatal("expected out-of-range index to be not found")
	}
	if _, ok := d.NthVideo(-1); ok {
		t.Fatal("expected negative index to be not found")
	}
	s, ok := d.Nth(KindVideo, 1, SubtitleRanking{})
	if !ok || s.Kind() != KindVideo || s.(Video).Duration != 10 {
		t.Fatalf("unexpected Nth result %+v", s)
	}
}

func TestEmptyQueriesReturnNotFound(t *testing.T) {
	d := New()
	if _, ok := d.BestVideo(); ok {
		t.Fatal("expected no video")
	}
	if _, ok := d.BestAudio(); ok {
		t.Fatal("expected no audio")
	}
	if _, ok := d.BestSubtitle(SubtitleRanking{Policy: SubtitlePreferLanguage, PreferredLanguage: "en"}); ok {
		t.Fatal("expected no subtitle")
	}
	if _, ok := d.Nth(KindAudio, 0, SubtitleRanking{}); ok {
		t.Fatal("expected no stream")
	}
	if d.AudioChannels(0) != UnknownChannels {
		t.Fatalf("expected unknown channels, got %d", d.AudioChannels(0))
	}
	if d.VideoCodec(0) != "" || d.VideoAspect(0) != 0 || d.VideoWidth(0) != 0 || d.VideoHeight(0) != 0 || d.VideoDuration(0) != 0 {
		t.Fatal("expected zero video accessors")
	}
	if d.AudioLanguage(1) != "" || d.SubtitleLanguage(0, SubtitleRanking{}) != "" {
		t.Fatal("expected empty strings")
	}
	if d.ResolutionLabel() != "" || d.AspectLabel() != "" {
		t.Fatal("expected empty labels")
	}
}

func TestParseSubtitlePolicy(t *testing.T) {
	tests := []struct {
		input string
		want  SubtitlePolicy
		ok    bool
	}{
		{"", SubtitleFirst, true},
		{"first", SubtitleFirst, true},
		{"Preferred_Language", SubtitlePreferLanguage, true},
		{"random", SubtitleFirst, false},
	}
	for _, tt := range tests {
		got, err := ParseSubtitlePolicy(tt.input)
		if (err == nil) != tt.ok {
			t.Fatalf("ParseSubtitlePolicy(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("ParseSubtitlePolicy(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
	if SubtitlePreferLanguage.String() != "preferred_language" {
		t.Fatalf("unexpected String() %q", SubtitlePreferLanguage.String())
	}
}
