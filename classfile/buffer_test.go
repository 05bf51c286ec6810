package classfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferReadPrimitives(t *testing.T) {
	data := []byte{0xFF, 0x01, 0x02, 0x00, 0x00, 0x00, 0x2A}
	buf := NewBuffer(data)

	u1, err := buf.ReadU1()
	require.NoError(t, err)
	require.Equal(t, uint8(0xFF), u1)

	u2, err := buf.ReadU2()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0102), u2)

	u4, err := buf.ReadU4()
	require.NoError(t, err)
	require.Equal(t, uint32(0x2A), u4)
}

func TestBufferReadPastEndReturnsMalformedInput(t *testing.T) {
	buf := NewBuffer([]byte{0x01})
	_, err := buf.ReadU4()
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, MalformedInput, decodeErr.Kind)
}

func TestBufferReset(t *testing.T) {
	buf := NewBuffer([]byte{0x10, 0x20, 0x30, 0x40})
	_, err := buf.ReadU2()
	require.NoError(t, err)
	require.Equal(t, 2, buf.Position())

	buf.Reset(0)
	require.Equal(t, 0, buf.Position())
	v, err := buf.ReadU1()
	require.NoError(t, err)
	require.Equal(t, uint8(0x10), v)
}

func TestBufferFloatsAndLongs(t *testing.T) {
	buf := NewBuffer([]byte{
		0xBF, 0x80, 0x00, 0x00, // -1.0f
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, // -1 as i64
	})
	f, err := buf.ReadF4()
	require.NoError(t, err)
	require.Equal(t, float32(-1.0), f)

	i, err := buf.ReadI8()
	require.NoError(t, err)
	require.Equal(t, int64(-1), i)
}
