package archive

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by operations on an archive after Close.
	ErrClosed = errors.New("archive: closed")
	// ErrLimitExceeded reports a decoded count or string length above the
	// configured guard.
	ErrLimitExceeded = errors.New("archive: limit exceeded")
	// ErrTrailingData reports bytes left over after a complete decode.
	ErrTrailingData = errors.New("archive: trailing data")
	// ErrTruncated reports a sealed frame shorter than its header claims.
	ErrTruncated = errors.New("archive: truncated frame")
	// ErrChecksum reports a sealed frame whose payload does not match its CRC.
	ErrChecksum = errors.New("archive: checksum mismatch")
)

// ModeError is the panic value raised when a write is issued on a loading
// archive or a read on a storing one.
type ModeError struct {
	Op   string
	Mode Mode
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("archive: %s called on %s archive", e.Op, e.Mode)
}
