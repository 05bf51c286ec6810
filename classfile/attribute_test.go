package classfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildAttrTestPool returns a pool with #1 Utf8 "SourceFile", #2 Utf8
// "Test.java", #3 Utf8 "ConstantValue", #4 Integer(42), #5 Utf8
// "LineNumberTable", #6 Utf8 "Signature", #7 Utf8 "Ljava/util/List;",
// #8 Utf8 "Mystery", #9 Utf8 "Code".
func buildAttrTestPool() ConstantPool {
	return ConstantPool{
		&ConstantUtf8Info{Value: "SourceFile"},
		&ConstantUtf8Info{Value: "Test.java"},
		&ConstantUtf8Info{Value: "ConstantValue"},
		&ConstantIntegerInfo{Value: 42},
		&ConstantUtf8Info{Value: "LineNumberTable"},
		&ConstantUtf8Info{Value: "Signature"},
		&ConstantUtf8Info{Value: "Ljava/util/List;"},
		&ConstantUtf8Info{Value: "Mystery"},
		&ConstantUtf8Info{Value: "Code"},
	}
}

func attrBytes(nameIndex uint16, body []byte) []byte {
	var b []byte
	b = append(b, byte(nameIndex>>8), byte(nameIndex))
	length := uint32(len(body))
	b = append(b, byte(length>>24), byte(length>>16), byte(length>>8), byte(length))
	b = append(b, body...)
	return b
}

func TestReadSourceFileAttribute(t *testing.T) {
	cp := buildAttrTestPool()
	body := []byte{0, 2} // index 2 -> "Test.java"
	buf := NewBuffer(append([]byte{0, 1}, attrBytes(1, body)...))
	attrs, err := readAttributes(buf, cp)
	require.NoError(t, err)
	require.Len(t, attrs, 1)
	sf, ok := attrs[0].(SourceFileAttribute)
	require.True(t, ok)
	require.Equal(t, "Test.java", sf.SourceFile)
	require.Equal(t, "SourceFile", sf.Name())
}

func TestReadConstantValueAttribute(t *testing.T) {
	cp := buildAttrTestPool()
	body := []byte{0, 4} // index 4 -> Integer(42)
	buf := NewBuffer(append([]byte{0, 1}, attrBytes(3, body)...))
	attrs, err := readAttributes(buf, cp)
	require.NoError(t, err)
	cv, ok := attrs[0].(ConstantValueAttribute)
	require.True(t, ok)
	require.Equal(t, int32(42), cv.Value)
}

func TestReadLineNumberTableAttribute(t *testing.T) {
	cp := buildAttrTestPool()
	body := []byte{0, 2, 0, 0, 0, 10, 0, 5, 0, 11}
	buf := NewBuffer(append([]byte{0, 1}, attrBytes(5, body)...))
	attrs, err := readAttributes(buf, cp)
	require.NoError(t, err)
	lnt, ok := attrs[0].(LineNumberTableAttribute)
	require.True(t, ok)
	require.Equal(t, []LineNumberEntry{{StartPC: 0, LineNumber: 10}, {StartPC: 5, LineNumber: 11}}, lnt.Entries)
}

func TestReadSignatureAttribute(t *testing.T) {
	cp := buildAttrTestPool()
	body := []byte{0, 7} // index 7 -> "Ljava/util/List;"
	buf := NewBuffer(append([]byte{0, 1}, attrBytes(6, body)...))
	attrs, err := readAttributes(buf, cp)
	require.NoError(t, err)
	sig, ok := attrs[0].(SignatureAttribute)
	require.True(t, ok)
	require.Equal(t, "Ljava/util/List;", sig.Signature)
}

func TestUnknownAttributeDecodesToBlob(t *testing.T) {
	cp := buildAttrTestPool()
	body := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	buf := NewBuffer(append([]byte{0, 1}, attrBytes(8, body)...)) // name index 8 -> "Mystery"
	attrs, err := readAttributes(buf, cp)
	require.NoError(t, err)
	blob, ok := attrs[0].(BlobAttribute)
	require.True(t, ok)
	require.Equal(t, "Mystery", blob.Name())
	require.Equal(t, body, blob.Data)
}

func TestCodeAttributeAlwaysDecodesToBlob(t *testing.T) {
	cp := buildAttrTestPool()
	// max_stack=1 max_locals=1 code_length=1 code=0xB1(return) exc_table=0 attrs=0
	codeBody := []byte{0, 1, 0, 1, 0, 0, 0, 1, 0xB1, 0, 0, 0, 0}
	buf := NewBuffer(append([]byte{0, 1}, attrBytes(9, codeBody)...)) // name index 9 -> "Code"
	attrs, err := readAttributes(buf, cp)
	require.NoError(t, err)
	blob, ok := attrs[0].(BlobAttribute)
	require.True(t, ok)
	require.Equal(t, "Code", blob.Name())

	decoded, err := decodeCodeAttribute(blob.Data, cp)
	require.NoError(t, err)
	require.Equal(t, uint16(1), decoded.MaxStack)
	require.Equal(t, uint16(1), decoded.MaxLocals)
	require.Equal(t, []byte{0xB1}, decoded.Code)
	require.Empty(t, decoded.ExceptionTable)
}

func TestMethodInfoRawCodeLazyDecode(t *testing.T) {
	cp := buildAttrTestPool()
	codeBody := []byte{0, 2, 0, 3, 0, 0, 0, 1, 0xB1, 0, 0, 0, 0}
	m := &MethodInfoRaw{
		Name:       "run",
		Descriptor: "()V",
		pool:       cp,
		Attributes: []SourceAttribute{BlobAttribute{NameStr: "Code", Data: codeBody}},
	}
	code, err := m.Code()
	require.NoError(t, err)
	require.Equal(t, uint16(2), code.MaxStack)
	require.Equal(t, uint16(3), code.MaxLocals)

	// second call returns the cached value without re-decoding.
	code2, err := m.Code()
	require.NoError(t, err)
	require.Same(t, code, code2)
}
