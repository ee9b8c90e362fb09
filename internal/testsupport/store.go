package testsupport

import (
	"context"
	"testing"

	"streamdetails/internal/config"
	"streamdetails/internal/logging"
	"streamdetails/internal/store"
	"streamdetails/internal/streams"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	s, err := store.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

// MustPut stores details for mediaPath.
func MustPut(t testing.TB, s *store.Store, mediaPath string, details *streams.Details) *store.Record {
	t.Helper()

	rec, err := s.Put(context.Background(), mediaPath, details)
	if err != nil {
		t.Fatalf("store.Put: %v", err)
	}
	return rec
}

// SampleDetails returns the collection FFprobeReport maps to.
func SampleDetails() *streams.Details {
	d := streams.New()
	d.AddVideo(streams.NewVideo(1920, 1080, float32(16)/9, 5400, "h264", ""))
	d.AddAudio(streams.NewAudio(6, "eng", "ac3"))
	d.AddAudio(streams.NewAudio(8, "fre", "truehd"))
	d.AddSubtitle(streams.NewSubtitle("eng"))
	d.AddSubtitle(streams.NewSubtitle("fre"))
	return d
}
