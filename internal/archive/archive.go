package archive

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

// Mode selects whether an archive produces or consumes bytes.
type Mode int

const (
	ModeLoad Mode = iota
	ModeStore
)

func (m Mode) String() string {
	switch m {
	case ModeLoad:
		return "load"
	case ModeStore:
		return "store"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

const (
	// DefaultBufferSize matches the write buffer of the legacy archive format.
	DefaultBufferSize = 4096
	// DefaultMaxElements bounds sequence and map counts accepted on load.
	DefaultMaxElements = 1 << 20
	// DefaultMaxStringLen bounds string lengths accepted on load.
	DefaultMaxStringLen = 1 << 24
)

// Archivable is implemented by types that encode and decode themselves
// through an archive. Implementations branch on IsStoring and must issue the
// same sequence of calls in both directions.
type Archivable interface {
	Archive(ar *Archive) error
}

// Option customizes archive construction.
type Option func(*options)

type options struct {
	bufferSize   int
	maxElements  uint64
	maxStringLen uint64
}

// WithBufferSize sets the size of the internal buffer. Values <= 0 keep the default.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

// WithMaxElements caps sequence and map counts accepted while loading.
func WithMaxElements(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxElements = uint64(n)
		}
	}
}

// WithMaxStringLen caps string lengths accepted while loading.
func WithMaxStringLen(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxStringLen = uint64(n)
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		bufferSize:   DefaultBufferSize,
		maxElements:  DefaultMaxElements,
		maxStringLen: DefaultMaxStringLen,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Archive is a mode-locked cursor over one backing store. It is not safe for
// concurrent use.
//
// Errors are sticky: after the first backing-store fault every operation
// returns that same error and the archive must be discarded.
type Archive struct {
	mode   Mode
	w      io.Writer
	r      *bufio.Reader
	closer io.Closer

	buf []byte
	pos int

	scratch [8]byte
	err     error
	closed  bool

	maxElements  uint64
	maxStringLen uint64
}

// NewWriter returns an archive in store mode that writes to w.
func NewWriter(w io.Writer, opts ...Option) *Archive {
	o := buildOptions(opts)
	ar := &Archive{
		mode:         ModeStore,
		w:            w,
		buf:          make([]byte, o.bufferSize),
		maxElements:  o.maxElements,
		maxStringLen: o.maxStringLen,
	}
	if c, ok := w.(io.Closer); ok {
		ar.closer = c
	}
	return ar
}

// NewReader returns an archive in load mode that reads from r.
func NewReader(r io.Reader, opts ...Option) *Archive {
	o := buildOptions(opts)
	ar := &Archive{
		mode:         ModeLoad,
		r:            bufio.NewReaderSize(r, o.bufferSize),
		maxElements:  o.maxElements,
		maxStringLen: o.maxStringLen,
	}
	if c, ok := r.(io.Closer); ok {
		ar.closer = c
	}
	return ar
}

// Mode reports the archive's mode.
func (a *Archive) Mode() Mode { return a.mode }

// IsStoring reports whether the archive writes.
func (a *Archive) IsStoring() bool { return a.mode == ModeStore }

// IsLoading reports whether the archive reads.
func (a *Archive) IsLoading() bool { return a.mode == ModeLoad }

// Err returns the first backing-store fault, if any.
func (a *Archive) Err() error { return a.err }

// Flush writes any buffered bytes to the backing store.
func (a *Archive) Flush() error {
	a.mustStore("Flush")
	if a.err != nil {
		return a.err
	}
	if a.closed {
		return ErrClosed
	}
	return a.flush()
}

// Close flushes residual buffered bytes and releases the backing store when
// it implements io.Closer. It returns the sticky fault when one occurred
// earlier. Calling Close more than once is a no-op.
func (a *Archive) Close() error {
	if a.closed {
		return nil
	}
	err := a.err
	if a.mode == ModeStore && err == nil {
		err = a.flush()
	}
	a.closed = true
	if a.closer != nil {
		if cerr := a.closer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("archive: close: %w", cerr)
		}
	}
	a.buf = nil
	return err
}

func (a *Archive) flush() error {
	if a.pos == 0 {
		return nil
	}
	n, err := a.w.Write(a.buf[:a.pos])
	if err == nil && n < a.pos {
		err = io.ErrShortWrite
	}
	if err != nil {
		return a.fail(fmt.Errorf("archive: write: %w", err))
	}
	a.pos = 0
	return nil
}

func (a *Archive) fail(err error) error {
	if a.err == nil {
		a.err = err
	}
	return a.err
}

func (a *Archive) mustStore(op string) {
	if a.mode != ModeStore {
		panic(&ModeError{Op: op, Mode: a.mode})
	}
}

func (a *Archive) mustLoad(op string) {
	if a.mode != ModeLoad {
		panic(&ModeError{Op: op, Mode: a.mode})
	}
}

func (a *Archive) streamout(data []byte) error {
	if a.err != nil {
		return a.err
	}
	if a.closed {
		return ErrClosed
	}
	if len(data) > len(a.buf)-a.pos {
		if err := a.flush(); err != nil {
			return err
		}
		if len(data) >= len(a.buf) {
			n, err := a.w.Write(data)
			if err == nil && n < len(data) {
				err = io.ErrShortWrite
			}
			if err != nil {
				return a.fail(fmt.Errorf("archive: write: %w", err))
			}
			return nil
		}
	}
	a.pos += copy(a.buf[a.pos:], data)
	return nil
}

func (a *Archive) streamin(data []byte) error {
	if a.err != nil {
		return a.err
	}
	if a.closed {
		return ErrClosed
	}
	if _, err := io.ReadFull(a.r, data); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return a.fail(fmt.Errorf("archive: read: %w", err))
	}
	return nil
}

// trailing reports whether unread bytes remain in the backing store.
func (a *Archive) trailing() bool {
	if a.r == nil || a.err != nil {
		return false
	}
	_, err := a.r.Peek(1)
	return err == nil
}

// WriteUint16 writes a 16-bit unsigned integer.
func (a *Archive) WriteUint16(v uint16) error {
	a.mustStore("WriteUint16")
	binary.LittleEndian.PutUint16(a.scratch[:2], v)
	return a.streamout(a.scratch[:2])
}

// WriteInt16 writes a 16-bit signed integer.
func (a *Archive) WriteInt16(v int16) error {
	a.mustStore("WriteInt16")
	binary.LittleEndian.PutUint16(a.scratch[:2], uint16(v))
	return a.streamout(a.scratch[:2])
}

// WriteUint32 writes a 32-bit unsigned integer.
func (a *Archive) WriteUint32(v uint32) error {
	a.mustStore("WriteUint32")
	binary.LittleEndian.PutUint32(a.scratch[:4], v)
	return a.streamout(a.scratch[:4])
}

// WriteInt32 writes a 32-bit signed integer.
func (a *Archive) WriteInt32(v int32) error {
	a.mustStore("WriteInt32")
	binary.LittleEndian.PutUint32(a.scratch[:4], uint32(v))
	return a.streamout(a.scratch[:4])
}

// WriteUint64 writes a 64-bit unsigned integer.
func (a *Archive) WriteUint64(v uint64) error {
	a.mustStore("WriteUint64")
	binary.LittleEndian.PutUint64(a.scratch[:8], v)
	return a.streamout(a.scratch[:8])
}

// WriteInt64 writes a 64-bit signed integer.
func (a *Archive) WriteInt64(v int64) error {
	a.mustStore("WriteInt64")
	binary.LittleEndian.PutUint64(a.scratch[:8], uint64(v))
	return a.streamout(a.scratch[:8])
}

// WriteInt writes a platform-width signed integer as 64 bits.
func (a *Archive) WriteInt(v int) error {
	a.mustStore("WriteInt")
	binary.LittleEndian.PutUint64(a.scratch[:8], uint64(int64(v)))
	return a.streamout(a.scratch[:8])
}

// WriteUint writes a platform-width unsigned integer as 64 bits.
func (a *Archive) WriteUint(v uint) error {
	a.mustStore("WriteUint")
	binary.LittleEndian.PutUint64(a.scratch[:8], uint64(v))
	return a.streamout(a.scratch[:8])
}

// WriteFloat32 writes an IEEE 754 single.
func (a *Archive) WriteFloat32(v float32) error {
	a.mustStore("WriteFloat32")
	binary.LittleEndian.PutUint32(a.scratch[:4], math.Float32bits(v))
	return a.streamout(a.scratch[:4])
}

// WriteFloat64 writes an IEEE 754 double.
func (a *Archive) WriteFloat64(v float64) error {
	a.mustStore("WriteFloat64")
	binary.LittleEndian.PutUint64(a.scratch[:8], math.Float64bits(v))
	return a.streamout(a.scratch[:8])
}

// WriteBool writes a single byte holding 0 or 1.
func (a *Archive) WriteBool(v bool) error {
	a.mustStore("WriteBool")
	a.scratch[0] = 0
	if v {
		a.scratch[0] = 1
	}
	return a.streamout(a.scratch[:1])
}

// WriteChar writes a single narrow character.
func (a *Archive) WriteChar(c byte) error {
	a.mustStore("WriteChar")
	a.scratch[0] = c
	return a.streamout(a.scratch[:1])
}

// WriteCount writes a sequence or map element count.
func (a *Archive) WriteCount(n int) error {
	a.mustStore("WriteCount")
	if n < 0 {
		panic(fmt.Sprintf("archive: negative count %d", n))
	}
	binary.LittleEndian.PutUint64(a.scratch[:8], uint64(n))
	return a.streamout(a.scratch[:8])
}

// WriteString writes a narrow string as a byte length followed by its bytes.
func (a *Archive) WriteString(s string) error {
	a.mustStore("WriteString")
	binary.LittleEndian.PutUint64(a.scratch[:8], uint64(len(s)))
	if err := a.streamout(a.scratch[:8]); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	return a.streamout([]byte(s))
}

// WriteWideString writes s as a count of 32-bit code units followed by the
// units. Invalid UTF-8 sequences are stored as U+FFFD.
func (a *Archive) WriteWideString(s string) error {
	a.mustStore("WriteWideString")
	units := make([]byte, 0, 4*utf8.RuneCountInString(s))
	for _, r := range s {
		units = binary.LittleEndian.AppendUint32(units, uint32(r))
	}
	binary.LittleEndian.PutUint64(a.scratch[:8], uint64(len(units)/4))
	if err := a.streamout(a.scratch[:8]); err != nil {
		return err
	}
	if len(units) == 0 {
		return nil
	}
	return a.streamout(units)
}

// WriteTime writes a SystemTime as eight 16-bit fields.
func (a *Archive) WriteTime(t SystemTime) error {
	a.mustStore("WriteTime")
	var raw [16]byte
	for i, field := range t.fields() {
		binary.LittleEndian.PutUint16(raw[i*2:], field)
	}
	return a.streamout(raw[:])
}

// WriteObject encodes an archivable value.
func (a *Archive) WriteObject(obj Archivable) error {
	a.mustStore("WriteObject")
	if a.err != nil {
		return a.err
	}
	if a.closed {
		return ErrClosed
	}
	return obj.Archive(a)
}

// ReadUint16 reads a 16-bit unsigned integer.
func (a *Archive) ReadUint16() (uint16, error) {
	a.mustLoad("ReadUint16")
	if err := a.streamin(a.scratch[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(a.scratch[:2]), nil
}

// ReadInt16 reads a 16-bit signed integer.
func (a *Archive) ReadInt16() (int16, error) {
	a.mustLoad("ReadInt16")
	if err := a.streamin(a.scratch[:2]); err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(a.scratch[:2])), nil
}

// ReadUint32 reads a 32-bit unsigned integer.
func (a *Archive) ReadUint32() (uint32, error) {
	a.mustLoad("ReadUint32")
	if err := a.streamin(a.scratch[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(a.scratch[:4]), nil
}

// ReadInt32 reads a 32-bit signed integer.
func (a *Archive) ReadInt32() (int32, error) {
	a.mustLoad("ReadInt32")
	if err := a.streamin(a.scratch[:4]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(a.scratch[:4])), nil
}

// ReadUint64 reads a 64-bit unsigned integer.
func (a *Archive) ReadUint64() (uint64, error) {
	a.mustLoad("ReadUint64")
	if err := a.streamin(a.scratch[:8]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(a.scratch[:8]), nil
}

// ReadInt64 reads a 64-bit signed integer.
func (a *Archive) ReadInt64() (int64, error) {
	a.mustLoad("ReadInt64")
	if err := a.streamin(a.scratch[:8]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(a.scratch[:8])), nil
}

// ReadInt reads a platform-width signed integer stored as 64 bits.
func (a *Archive) ReadInt() (int, error) {
	a.mustLoad("ReadInt")
	if err := a.streamin(a.scratch[:8]); err != nil {
		return 0, err
	}
	v := int64(binary.LittleEndian.Uint64(a.scratch[:8]))
	if int64(int(v)) != v {
		return 0, a.fail(fmt.Errorf("archive: read: int %d overflows platform int: %w", v, ErrLimitExceeded))
	}
	return int(v), nil
}

// ReadUint reads a platform-width unsigned integer stored as 64 bits.
func (a *Archive) ReadUint() (uint, error) {
	a.mustLoad("ReadUint")
	if err := a.streamin(a.scratch[:8]); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(a.scratch[:8])
	if uint64(uint(v)) != v {
		return 0, a.fail(fmt.Errorf("archive: read: uint %d overflows platform uint: %w", v, ErrLimitExceeded))
	}
	return uint(v), nil
}

// ReadFloat32 reads an IEEE 754 single.
func (a *Archive) ReadFloat32() (float32, error) {
	a.mustLoad("ReadFloat32")
	if err := a.streamin(a.scratch[:4]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(a.scratch[:4])), nil
}

// ReadFloat64 reads an IEEE 754 double.
func (a *Archive) ReadFloat64() (float64, error) {
	a.mustLoad("ReadFloat64")
	if err := a.streamin(a.scratch[:8]); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(a.scratch[:8])), nil
}

// ReadBool reads a single byte; any non-zero value is true.
func (a *Archive) ReadBool() (bool, error) {
	a.mustLoad("ReadBool")
	if err := a.streamin(a.scratch[:1]); err != nil {
		return false, err
	}
	return a.scratch[0] != 0, nil
}

// ReadChar reads a single narrow character.
func (a *Archive) ReadChar() (byte, error) {
	a.mustLoad("ReadChar")
	if err := a.streamin(a.scratch[:1]); err != nil {
		return 0, err
	}
	return a.scratch[0], nil
}

// ReadCount reads a sequence or map element count, enforcing the configured
// element limit.
func (a *Archive) ReadCount() (int, error) {
	a.mustLoad("ReadCount")
	if err := a.streamin(a.scratch[:8]); err != nil {
		return 0, err
	}
	n := binary.LittleEndian.Uint64(a.scratch[:8])
	if n > a.maxElements {
		return 0, a.fail(fmt.Errorf("archive: read: count %d above %d: %w", n, a.maxElements, ErrLimitExceeded))
	}
	return int(n), nil
}

// ReadString reads a narrow string.
func (a *Archive) ReadString() (string, error) {
	a.mustLoad("ReadString")
	if err := a.streamin(a.scratch[:8]); err != nil {
		return "", err
	}
	n := binary.LittleEndian.Uint64(a.scratch[:8])
	if n > a.maxStringLen {
		return "", a.fail(fmt.Errorf("archive: read: string length %d above %d: %w", n, a.maxStringLen, ErrLimitExceeded))
	}
	if n == 0 {
		return "", nil
	}
	data := make([]byte, n)
	if err := a.streamin(data); err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadWideString reads a string stored as 32-bit code units.
func (a *Archive) ReadWideString() (string, error) {
	a.mustLoad("ReadWideString")
	if err := a.streamin(a.scratch[:8]); err != nil {
		return "", err
	}
	n := binary.LittleEndian.Uint64(a.scratch[:8])
	if n > a.maxStringLen/4 {
		return "", a.fail(fmt.Errorf("archive: read: wide string length %d above %d: %w", n, a.maxStringLen/4, ErrLimitExceeded))
	}
	if n == 0 {
		return "", nil
	}
	units := make([]byte, 4*n)
	if err := a.streamin(units); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(int(n))
	for i := 0; i < len(units); i += 4 {
		sb.WriteRune(rune(binary.LittleEndian.Uint32(units[i:])))
	}
	return sb.String(), nil
}

// ReadTime reads a SystemTime.
func (a *Archive) ReadTime() (SystemTime, error) {
	a.mustLoad("ReadTime")
	var raw [16]byte
	if err := a.streamin(raw[:]); err != nil {
		return SystemTime{}, err
	}
	var fields [8]uint16
	for i := range fields {
		fields[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}
	return systemTimeFromFields(fields), nil
}

// ReadObject decodes into an archivable value.
func (a *Archive) ReadObject(obj Archivable) error {
	a.mustLoad("ReadObject")
	if a.err != nil {
		return a.err
	}
	if a.closed {
		return ErrClosed
	}
	return obj.Archive(a)
}

// Marshal encodes obj into a new byte slice.
func Marshal(obj Archivable, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	ar := NewWriter(&buf, opts...)
	if err := ar.WriteObject(obj); err != nil {
		return nil, err
	}
	if err := ar.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data into obj. The whole input must be consumed.
func Unmarshal(data []byte, obj Archivable, opts ...Option) error {
	ar := NewReader(bytes.NewReader(data), opts...)
	defer ar.Close()
	if err := ar.ReadObject(obj); err != nil {
		return err
	}
	if ar.trailing() {
		return ErrTrailingData
	}
	return nil
}
