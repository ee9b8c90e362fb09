package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// FFprobeReport is a trimmed ffprobe -show_streams -show_format report for a
// 1080p film with two audio tracks, two subtitles and embedded cover art.
const FFprobeReport = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080,
     "display_aspect_ratio": "16:9", "duration": "5400.2", "disposition": {"default": 1}},
    {"index": 1, "codec_name": "ac3", "codec_type": "audio", "channels": 6,
     "tags": {"language": "eng"}, "disposition": {"default": 1}},
    {"index": 2, "codec_name": "truehd", "codec_type": "audio", "channels": 8,
     "tags": {"language": "fre"}},
    {"index": 3, "codec_name": "subrip", "codec_type": "subtitle", "tags": {"language": "eng"}},
    {"index": 4, "codec_name": "subrip", "codec_type": "subtitle", "tags": {"language": "fre"}},
    {"index": 5, "codec_name": "mjpeg", "codec_type": "video", "width": 600, "height": 900,
     "disposition": {"attached_pic": 1}}
  ],
  "format": {"filename": "film.mkv", "nb_streams": 6, "duration": "5400.250000", "format_name": "matroska,webm"}
}`

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteFFprobeReport writes FFprobeReport into dir and returns its path.
func WriteFFprobeReport(t testing.TB, dir string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, "report.json"), []byte(FFprobeReport))
}
