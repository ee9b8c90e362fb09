// Package archive implements the order-dependent binary codec used to persist
// stream details.
//
// An Archive is a cursor bound to one backing store and one mode for its whole
// lifetime: writers are created with NewWriter, readers with NewReader. The
// format carries no tags, lengths, or versions beyond what callers write
// themselves, so a consumer must replay the producer's calls in the same
// order, with the same types and counts. Reading with a different schema
// yields wrong values, not errors.
//
// All numbers are little-endian with fixed widths. Platform-width integers
// and every count or length prefix are encoded as 64-bit values so archives
// move between architectures unchanged.
//
// Key types:
//   - Archive: the store/load cursor
//   - Archivable: implemented by types that read and write themselves
//   - SystemTime: fixed calendar timestamp record
//
// Composition helpers (WriteSlice, ReadSlice, ArchiveSlice, WriteMap,
// ReadMap) encode sequences and key-ordered maps as a count followed by the
// elements. Seal and OpenSealed wrap a finished payload in a length and
// CRC-32C envelope for callers that want corruption detection.
package archive
