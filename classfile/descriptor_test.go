package classfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFieldDescriptorPrimitives(t *testing.T) {
	cases := map[string]PrimitiveKind{
		"B": PrimitiveByte,
		"C": PrimitiveChar,
		"D": PrimitiveDouble,
		"F": PrimitiveFloat,
		"I": PrimitiveInt,
		"J": PrimitiveLong,
		"S": PrimitiveShort,
		"Z": PrimitiveBoolean,
	}
	for desc, kind := range cases {
		tr, err := ParseFieldDescriptor(desc)
		require.NoError(t, err, desc)
		require.Equal(t, PrimitiveType{Kind: kind}, tr)
	}
}

func TestParseFieldDescriptorClassType(t *testing.T) {
	tr, err := ParseFieldDescriptor("Ljava/lang/String;")
	require.NoError(t, err)
	require.Equal(t, ClassType{InternalClassName: "java/lang/String"}, tr)
}

func TestParseFieldDescriptorNestedArray(t *testing.T) {
	tr, err := ParseFieldDescriptor("[[I")
	require.NoError(t, err)
	require.Equal(t, ArrayType{Element: ArrayType{Element: PrimitiveType{Kind: PrimitiveInt}}}, tr)
}

func TestParseFieldDescriptorArrayOfClass(t *testing.T) {
	tr, err := ParseFieldDescriptor("[Ljava/lang/Object;")
	require.NoError(t, err)
	require.Equal(t, ArrayType{Element: ClassType{InternalClassName: "java/lang/Object"}}, tr)
}

func TestParseFieldDescriptorTrailingGarbageIsError(t *testing.T) {
	_, err := ParseFieldDescriptor("IJ")
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, MalformedSignature, decodeErr.Kind)
}

func TestParseFieldDescriptorUnterminatedClass(t *testing.T) {
	_, err := ParseFieldDescriptor("Ljava/lang/String")
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, MalformedSignature, decodeErr.Kind)
}

func TestParseFieldDescriptorInvalidChar(t *testing.T) {
	_, err := ParseFieldDescriptor("Q")
	require.Error(t, err)
}

func TestParseFieldDescriptorVoidIsError(t *testing.T) {
	_, err := ParseFieldDescriptor("V")
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, MalformedSignature, decodeErr.Kind)
}

func TestParseMethodDescriptorVoidParameterIsError(t *testing.T) {
	_, err := ParseMethodDescriptor("(V)V")
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, MalformedSignature, decodeErr.Kind)
}

func TestParseMethodDescriptorBasic(t *testing.T) {
	md, err := ParseMethodDescriptor("(ILjava/lang/String;)V")
	require.NoError(t, err)
	require.Len(t, md.Parameters, 2)
	require.Equal(t, PrimitiveType{Kind: PrimitiveInt}, md.Parameters[0])
	require.Equal(t, ClassType{InternalClassName: "java/lang/String"}, md.Parameters[1])
	require.Equal(t, PrimitiveType{Kind: PrimitiveVoid}, md.ReturnType)
}

func TestParseMethodDescriptorNoParameters(t *testing.T) {
	md, err := ParseMethodDescriptor("()I")
	require.NoError(t, err)
	require.Empty(t, md.Parameters)
	require.Equal(t, PrimitiveType{Kind: PrimitiveInt}, md.ReturnType)
}

func TestParseMethodDescriptorArrayReturn(t *testing.T) {
	md, err := ParseMethodDescriptor("()[[Ljava/lang/String;")
	require.NoError(t, err)
	require.Equal(t, ArrayType{Element: ArrayType{Element: ClassType{InternalClassName: "java/lang/String"}}}, md.ReturnType)
}

func TestParseMethodDescriptorMissingOpenParen(t *testing.T) {
	_, err := ParseMethodDescriptor("I)V")
	require.Error(t, err)
}

func TestParseMethodDescriptorUnterminatedParameterList(t *testing.T) {
	_, err := ParseMethodDescriptor("(I")
	require.Error(t, err)
}

func TestMethodDescriptorString(t *testing.T) {
	md, err := ParseMethodDescriptor("(ILjava/lang/String;)[I")
	require.NoError(t, err)
	require.Equal(t, "(int, java.lang.String) int[]", md.String())
}

func TestInternalSourceNameRoundTrip(t *testing.T) {
	require.Equal(t, "java.lang.String", InternalToSourceName("java/lang/String"))
	require.Equal(t, "java/lang/String", SourceToInternalName("java.lang.String"))
}
