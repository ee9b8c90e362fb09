package archive

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

const (
	frameHeaderSize  = 8
	frameTrailerSize = 4
	frameOverhead    = frameHeaderSize + frameTrailerSize
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Seal wraps payload in a frame: a 64-bit payload length, the payload, and a
// CRC-32C of the payload.
func Seal(payload []byte) []byte {
	out := make([]byte, frameHeaderSize, frameOverhead+len(payload))
	binary.LittleEndian.PutUint64(out, uint64(len(payload)))
	out = append(out, payload...)
	return binary.LittleEndian.AppendUint32(out, crc32.Checksum(payload, castagnoli))
}

// OpenSealed validates a frame produced by Seal and returns its payload. The
// returned slice aliases frame.
func OpenSealed(frame []byte) ([]byte, error) {
	if len(frame) < frameOverhead {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(frame))
	}
	declared := binary.LittleEndian.Uint64(frame)
	available := uint64(len(frame) - frameOverhead)
	switch {
	case declared > available:
		return nil, fmt.Errorf("%w: header declares %d bytes, %d present", ErrTruncated, declared, available)
	case declared < available:
		return nil, fmt.Errorf("%w: %d bytes after frame", ErrTrailingData, available-declared)
	}
	payload := frame[frameHeaderSize : frameHeaderSize+int(declared)]
	want := binary.LittleEndian.Uint32(frame[frameHeaderSize+int(declared):])
	if got := crc32.Checksum(payload, castagnoli); got != want {
		return nil, fmt.Errorf("%w: got %08x want %08x", ErrChecksum, got, want)
	}
	return payload, nil
}
