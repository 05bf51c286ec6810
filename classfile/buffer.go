package classfile

import "math"

// Buffer is a cursor over an entire class file held in memory. Unlike the
// teacher's stream-backed reader, it loads the full byte slice up front so
// that Reset can rewind to an arbitrary position: the constant pool must be
// fully read before this/super/interfaces, but attribute decoding later
// needs to re-enter the pool by index, and generic signature parsing needs
// to reparse a Utf8 entry's bytes independently of the main cursor.
type Buffer struct {
	data []byte
	pos  int
}

// NewBuffer wraps data for decoding. The caller retains ownership of data;
// Buffer never mutates it.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Position returns the current cursor offset in bytes.
func (b *Buffer) Position() int { return b.pos }

// Len returns the total number of bytes in the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// Remaining returns the number of unread bytes.
func (b *Buffer) Remaining() int { return len(b.data) - b.pos }

// Reset moves the cursor to an absolute byte offset. It does not validate
// the offset against the buffer length; a subsequent read will fail with
// MalformedInput if it runs past the end.
func (b *Buffer) Reset(position int) {
	b.pos = position
}

func (b *Buffer) require(n int) error {
	if n < 0 || b.pos+n > len(b.data) || b.pos+n < b.pos {
		return errorfAt(MalformedInput, b.pos, "need %d bytes, only %d remaining", n, b.Remaining())
	}
	return nil
}

// ReadU1 reads a single unsigned byte.
func (b *Buffer) ReadU1() (uint8, error) {
	if err := b.require(1); err != nil {
		return 0, err
	}
	v := b.data[b.pos]
	b.pos++
	return v, nil
}

// ReadU2 reads a big-endian 16-bit unsigned value.
func (b *Buffer) ReadU2() (uint16, error) {
	if err := b.require(2); err != nil {
		return 0, err
	}
	v := uint16(b.data[b.pos])<<8 | uint16(b.data[b.pos+1])
	b.pos += 2
	return v, nil
}

// ReadU4 reads a big-endian 32-bit unsigned value.
func (b *Buffer) ReadU4() (uint32, error) {
	if err := b.require(4); err != nil {
		return 0, err
	}
	v := uint32(b.data[b.pos])<<24 | uint32(b.data[b.pos+1])<<16 |
		uint32(b.data[b.pos+2])<<8 | uint32(b.data[b.pos+3])
	b.pos += 4
	return v, nil
}

// ReadU8 reads a big-endian 64-bit unsigned value, used for Long/Double
// constant pool entries.
func (b *Buffer) ReadU8() (uint64, error) {
	hi, err := b.ReadU4()
	if err != nil {
		return 0, err
	}
	lo, err := b.ReadU4()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

// ReadI4 reads a big-endian 32-bit value interpreted as signed, for
// Integer constant pool entries.
func (b *Buffer) ReadI4() (int32, error) {
	v, err := b.ReadU4()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// ReadI8 reads a big-endian 64-bit value interpreted as signed, for Long
// constant pool entries.
func (b *Buffer) ReadI8() (int64, error) {
	v, err := b.ReadU8()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// ReadF4 reads an IEEE 754 single-precision float, for Float entries.
func (b *Buffer) ReadF4() (float32, error) {
	v, err := b.ReadU4()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF8 reads an IEEE 754 double-precision float, for Double entries.
func (b *Buffer) ReadF8() (float64, error) {
	v, err := b.ReadU8()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadBytes reads and returns n raw bytes as a fresh slice (the caller may
// retain it independent of the buffer's backing array).
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if err := b.require(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b.data[b.pos:b.pos+n])
	b.pos += n
	return out, nil
}

// Skip advances the cursor by n bytes without copying them out.
func (b *Buffer) Skip(n int) error {
	if err := b.require(n); err != nil {
		return err
	}
	b.pos += n
	return nil
}
