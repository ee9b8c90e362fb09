package variant

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/gowebpki/jcs"
)

// MarshalJSON encodes v with object keys in ascending order.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(make([]byte, 0, 128))
}

func (v Value) appendJSON(dst []byte) ([]byte, error) {
	switch v.typ {
	case TypeNull:
		return append(dst, "null"...), nil
	case TypeInt:
		return strconv.AppendInt(dst, v.i, 10), nil
	case TypeUint:
		return strconv.AppendUint(dst, v.u, 10), nil
	case TypeBool:
		return strconv.AppendBool(dst, v.b), nil
	case TypeFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, fmt.Errorf("variant: unsupported float value %v", v.f)
		}
		return appendFloat(dst, v.f, v.bits()), nil
	case TypeString:
		quoted, err := json.Marshal(v.s)
		if err != nil {
			return nil, err
		}
		return append(dst, quoted...), nil
	case TypeArray:
		dst = append(dst, '[')
		for i, el := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			if dst, err = el.appendJSON(dst); err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case TypeObject:
		dst = append(dst, '{')
		for i, key := range v.Keys() {
			if i > 0 {
				dst = append(dst, ',')
			}
			quoted, err := json.Marshal(key)
			if err != nil {
				return nil, err
			}
			dst = append(dst, quoted...)
			dst = append(dst, ':')
			if dst, err = v.obj[key].appendJSON(dst); err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	}
	return nil, fmt.Errorf("variant: cannot encode %s", v.typ)
}

// appendFloat follows encoding/json's float formatting, using the shortest
// representation at the given precision.
func appendFloat(dst []byte, f float64, bits int) []byte {
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) || bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	dst = strconv.AppendFloat(dst, f, format, -1, bits)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst
}

// CanonicalJSON returns the RFC 8785 canonical encoding of v.
func CanonicalJSON(v Value) ([]byte, error) {
	raw, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("variant: canonicalize: %w", err)
	}
	return out, nil
}
