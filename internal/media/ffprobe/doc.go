// Package ffprobe reads ffprobe JSON reports and converts them into stream
// details.
//
// Reports are expected in the shape written by
// `ffprobe -show_format -show_streams -of json`, either saved to disk or
// produced on demand by Inspect.
//
// Key types:
//   - Result: parsed report containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//   - Format: container-level metadata (duration, size)
//
// Primary entry points:
//   - Parse / Load: decode a report from memory or disk
//   - Inspect: run ffprobe on a media file
//   - Result.Details: build a streams.Details collection
package ffprobe
