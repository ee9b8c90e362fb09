// Package streams models the per-stream metadata attached to a media item and
// the rules used to pick a canonical stream of each kind.
//
// A Details collection owns three ordered sequences of descriptors (Video,
// Audio, Subtitle). Insertion order is preserved and duplicates are kept.
// Details implements archive.Archivable; the binary layout is the video
// sequence, then audio, then subtitles, with each descriptor writing its own
// fields in a fixed order.
//
// Ranking:
//   - video: largest pixel area, first maximal stream wins
//   - audio: most channels, ties broken by CodecPriority
//   - subtitle: chosen by SubtitleRanking (first inserted, or preferred
//     language)
//
// Index 0 of the Nth accessors always refers to the best stream; index n
// refers to the n-th stream in insertion order.
//
// ResolutionLabel and AspectLabel map raw dimensions to the short quality
// labels shown in listings.
package streams
