package variant

import (
	"errors"
	"fmt"

	"streamdetails/internal/archive"
)

// MaxDepth bounds array and object nesting accepted when loading.
const MaxDepth = 64

// ErrTooDeep reports an archived tree nested deeper than MaxDepth.
var ErrTooDeep = errors.New("variant: nesting too deep")

// Archive encodes or decodes v as a one-byte type tag followed by its
// payload. Object members are written in ascending key order.
func (v *Value) Archive(ar *archive.Archive) error {
	if ar.IsStoring() {
		return v.store(ar)
	}
	loaded, err := load(ar, 0)
	if err != nil {
		return err
	}
	*v = loaded
	return nil
}

func (v *Value) store(ar *archive.Archive) error {
	if err := ar.WriteChar(byte(v.typ)); err != nil {
		return err
	}
	switch v.typ {
	case TypeNull:
		return nil
	case TypeInt:
		return ar.WriteInt64(v.i)
	case TypeUint:
		return ar.WriteUint64(v.u)
	case TypeBool:
		return ar.WriteBool(v.b)
	case TypeFloat:
		if err := ar.WriteBool(v.single); err != nil {
			return err
		}
		if v.single {
			return ar.WriteFloat32(float32(v.f))
		}
		return ar.WriteFloat64(v.f)
	case TypeString:
		return ar.WriteString(v.s)
	case TypeArray:
		return archive.WriteSlice(ar, v.arr, func(ar *archive.Archive, el Value) error {
			return el.store(ar)
		})
	case TypeObject:
		return archive.WriteMap(ar, v.obj, (*archive.Archive).WriteString, func(ar *archive.Archive, el Value) error {
			return el.store(ar)
		})
	}
	return fmt.Errorf("variant: cannot archive %s", v.typ)
}

func load(ar *archive.Archive, depth int) (Value, error) {
	tag, err := ar.ReadChar()
	if err != nil {
		return Value{}, err
	}
	switch Type(tag) {
	case TypeNull:
		return Value{}, nil
	case TypeInt:
		n, err := ar.ReadInt64()
		return Int(n), err
	case TypeUint:
		n, err := ar.ReadUint64()
		return Uint(n), err
	case TypeBool:
		b, err := ar.ReadBool()
		return Bool(b), err
	case TypeFloat:
		single, err := ar.ReadBool()
		if err != nil {
			return Value{}, err
		}
		if single {
			f, err := ar.ReadFloat32()
			return Float32(f), err
		}
		f, err := ar.ReadFloat64()
		return Float(f), err
	case TypeString:
		s, err := ar.ReadString()
		return String(s), err
	case TypeArray, TypeObject:
		if depth >= MaxDepth {
			return Value{}, ErrTooDeep
		}
	default:
		return Value{}, fmt.Errorf("variant: unknown type tag %d", tag)
	}

	readChild := func(ar *archive.Archive) (Value, error) { return load(ar, depth+1) }
	if Type(tag) == TypeArray {
		items, err := archive.ReadSlice(ar, readChild)
		if err != nil {
			return Value{}, err
		}
		return Value{typ: TypeArray, arr: items}, nil
	}
	obj := NewObject()
	if err := archive.ReadMap(ar, &obj.obj, (*archive.Archive).ReadString, archive.Into(readChild)); err != nil {
		return Value{}, err
	}
	return obj, nil
}
