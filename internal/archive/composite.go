package archive

import (
	"cmp"
	"maps"
	"slices"
)

// WriteSlice writes len(items) followed by each element in order.
func WriteSlice[T any](ar *Archive, items []T, write func(*Archive, T) error) error {
	if err := ar.WriteCount(len(items)); err != nil {
		return err
	}
	for _, item := range items {
		if err := write(ar, item); err != nil {
			return err
		}
	}
	return nil
}

// ReadSlice reads a count and then that many elements. An empty sequence
// decodes as a non-nil, zero-length slice.
func ReadSlice[T any](ar *Archive, read func(*Archive) (T, error)) ([]T, error) {
	n, err := ar.ReadCount()
	if err != nil {
		return nil, err
	}
	items := make([]T, n)
	for i := range items {
		if items[i], err = read(ar); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// ArchiveSlice encodes or decodes a sequence of archivable elements depending
// on the archive mode. On load the destination is replaced by a slice of the
// decoded length whose elements are decoded in place.
func ArchiveSlice[T any, P interface {
	*T
	Archivable
}](ar *Archive, items *[]T) error {
	if ar.IsStoring() {
		if err := ar.WriteCount(len(*items)); err != nil {
			return err
		}
		for i := range *items {
			if err := P(&(*items)[i]).Archive(ar); err != nil {
				return err
			}
		}
		return nil
	}

	n, err := ar.ReadCount()
	if err != nil {
		return err
	}
	decoded := make([]T, n)
	for i := range decoded {
		if err := P(&decoded[i]).Archive(ar); err != nil {
			return err
		}
	}
	*items = decoded
	return nil
}

// WriteMap writes len(m) followed by every key and value in ascending key
// order.
func WriteMap[K cmp.Ordered, V any](ar *Archive, m map[K]V, writeKey func(*Archive, K) error, writeValue func(*Archive, V) error) error {
	if err := ar.WriteCount(len(m)); err != nil {
		return err
	}
	for _, key := range slices.Sorted(maps.Keys(m)) {
		if err := writeKey(ar, key); err != nil {
			return err
		}
		if err := writeValue(ar, m[key]); err != nil {
			return err
		}
	}
	return nil
}

// ReadMap clears *dst, allocating it when nil, then reads a count and that
// many entries. Each value is decoded into the entry already held for its key
// (the zero value when absent), so a repeated key overwrites rather than
// duplicates.
func ReadMap[K comparable, V any](ar *Archive, dst *map[K]V, readKey func(*Archive) (K, error), readValue func(*Archive, *V) error) error {
	n, err := ar.ReadCount()
	if err != nil {
		return err
	}
	if *dst == nil {
		*dst = make(map[K]V, n)
	}
	m := *dst
	clear(m)
	for range n {
		key, err := readKey(ar)
		if err != nil {
			return err
		}
		value := m[key]
		if err := readValue(ar, &value); err != nil {
			return err
		}
		m[key] = value
	}
	return nil
}

// Into adapts a value-returning reader to the in-place form ReadMap expects.
func Into[T any](read func(*Archive) (T, error)) func(*Archive, *T) error {
	return func(ar *Archive, dst *T) error {
		v, err := read(ar)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
}
