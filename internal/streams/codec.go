package streams

import (
	"fmt"

	"streamdetails/internal/archive"
)

// Encode archives d. When sealed is set the payload is wrapped in a
// length and CRC-32C frame.
func Encode(d *Details, sealed bool, opts ...archive.Option) ([]byte, error) {
	payload, err := archive.Marshal(d.safe(), opts...)
	if err != nil {
		return nil, fmt.Errorf("encode stream details: %w", err)
	}
	if sealed {
		return archive.Seal(payload), nil
	}
	return payload, nil
}

// Decode reverses Encode. sealed must match the value used when encoding.
func Decode(data []byte, sealed bool, opts ...archive.Option) (*Details, error) {
	payload := data
	if sealed {
		var err error
		if payload, err = archive.OpenSealed(data); err != nil {
			return nil, fmt.Errorf("decode stream details: %w", err)
		}
	}
	d := New()
	if err := archive.Unmarshal(payload, d, opts...); err != nil {
		return nil, fmt.Errorf("decode stream details: %w", err)
	}
	return d, nil
}
