// Package variant provides a small dynamically typed value tree.
//
// Values are scalars (null, signed and unsigned integers, bools, floats,
// strings), arrays, or objects keyed by string. Objects always iterate and
// serialize their keys in ascending order, so JSON output and archive
// encodings are deterministic for equal trees. Stream details use it as the
// structured projection handed to formatters.
package variant
