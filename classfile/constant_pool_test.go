package classfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildPoolBytes assembles a minimal constant pool (constant_pool_count
// followed by the entries) with: #1 Utf8 "Foo", #2 Class -> #1, #3 Long(5)
// (consuming #3 and #4), #5 Utf8 "x".
func buildPoolBytes() []byte {
	var b []byte
	appendU2 := func(v uint16) { b = append(b, byte(v>>8), byte(v)) }
	appendU1 := func(v uint8) { b = append(b, v) }

	appendU2(6) // constant_pool_count (indices 1..5)

	appendU1(1) // Utf8 #1
	appendU2(3)
	b = append(b, 'F', 'o', 'o')

	appendU1(7) // Class #2 -> #1
	appendU2(1)

	appendU1(5) // Long #3 (occupies #3 and #4)
	b = append(b, 0, 0, 0, 0, 0, 0, 0, 5)

	appendU1(1) // Utf8 #5
	appendU2(1)
	b = append(b, 'x')

	return b
}

func TestReadConstantPoolTwoSlotRule(t *testing.T) {
	buf := NewBuffer(buildPoolBytes())
	cp, err := readConstantPool(buf)
	require.NoError(t, err)
	require.Len(t, cp, 5)

	name, err := cp.Utf8(1)
	require.NoError(t, err)
	require.Equal(t, "Foo", name)

	className, err := cp.ClassName(2)
	require.NoError(t, err)
	require.Equal(t, "Foo", className)

	long, err := cp.Long(3)
	require.NoError(t, err)
	require.Equal(t, int64(5), long)

	_, err = cp.Get(4)
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, InvalidConstantPoolIndex, decodeErr.Kind)

	x, err := cp.Utf8(5)
	require.NoError(t, err)
	require.Equal(t, "x", x)
}

func TestConstantPoolIndexZeroIsInvalid(t *testing.T) {
	cp, err := readConstantPool(NewBuffer(buildPoolBytes()))
	require.NoError(t, err)
	_, err = cp.Get(0)
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, InvalidConstantPoolIndex, decodeErr.Kind)
}

func TestConstantPoolWrongTagIsUnexpected(t *testing.T) {
	cp, err := readConstantPool(NewBuffer(buildPoolBytes()))
	require.NoError(t, err)
	_, err = cp.ClassName(1) // index 1 is Utf8, not Class
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, UnexpectedConstantPoolTag, decodeErr.Kind)
}

func TestDecodeModifiedUTF8SurrogatePair(t *testing.T) {
	// U+10000 encoded as a CESU-8 surrogate pair: high surrogate D800 as
	// ED A0 80, low surrogate DC00 as ED B0 80.
	s, err := decodeModifiedUTF8([]byte{0xED, 0xA0, 0x80, 0xED, 0xB0, 0x80})
	require.NoError(t, err)
	require.Equal(t, "\U00010000", s)

	// U+10400 (DESERET CAPITAL LETTER LONG I) encoded as high surrogate
	// D801 (ED A0 81) and low surrogate DC00 (ED B0 80).
	s2, err := decodeModifiedUTF8([]byte{0xED, 0xA0, 0x81, 0xED, 0xB0, 0x80})
	require.NoError(t, err)
	require.Equal(t, "\U00010400", s2)
}
