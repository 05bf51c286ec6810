package classfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClassSignatureSimple(t *testing.T) {
	sig, err := ParseClassSignature("com/example/Box", "Ljava/lang/Object;Ljava/io/Serializable;")
	require.NoError(t, err)
	require.Empty(t, sig.FormalTypeParameters)
	require.Equal(t, ClassType{InternalClassName: "java/lang/Object"}, sig.SuperclassType)
	require.Len(t, sig.SuperinterfaceTypes, 1)
	require.Equal(t, ClassType{InternalClassName: "java/io/Serializable"}, sig.SuperinterfaceTypes[0])
}

func TestParseClassSignatureWithFormalTypeParameter(t *testing.T) {
	sig, err := ParseClassSignature("com/example/Box", "<T:Ljava/lang/Object;>Ljava/lang/Object;")
	require.NoError(t, err)
	require.Len(t, sig.FormalTypeParameters, 1)
	gp := sig.FormalTypeParameters[0]
	require.Equal(t, "T", gp.Name)
	require.Equal(t, "com/example/Box", gp.DeclaringName)
	require.Len(t, gp.Bounds, 1)
	require.Equal(t, ClassType{InternalClassName: "java/lang/Object"}, gp.Bounds[0])
}

func TestParseClassSignatureFieldReferencesFormal(t *testing.T) {
	sig, err := ParseClassSignature("com/example/Box", "<T:Ljava/lang/Object;>Ljava/lang/Object;")
	require.NoError(t, err)
	lookup := func(name string) (*GenericParameter, bool) {
		for _, gp := range sig.FormalTypeParameters {
			if gp.Name == name {
				return gp, true
			}
		}
		return nil, false
	}
	ft, err := ParseFieldSignature(lookup, "TT;")
	require.NoError(t, err)
	gp, ok := ft.(*GenericParameter)
	require.True(t, ok)
	require.Equal(t, "T", gp.Name)
}

func TestParseFieldSignatureUnresolvedTypeVariable(t *testing.T) {
	_, err := ParseFieldSignature(nil, "TT;")
	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, UnresolvedTypeVariable, decodeErr.Kind)
}

func TestParseFieldSignatureParameterizedType(t *testing.T) {
	tr, err := ParseFieldSignature(nil, "Ljava/util/List<Ljava/lang/String;>;")
	require.NoError(t, err)
	pt, ok := tr.(ParameterizedType)
	require.True(t, ok)
	require.Equal(t, ClassType{InternalClassName: "java/util/List"}, pt.Raw)
	require.Len(t, pt.Arguments, 1)
	require.Equal(t, ClassType{InternalClassName: "java/lang/String"}, pt.Arguments[0])
}

func TestParseFieldSignatureWildcards(t *testing.T) {
	tr, err := ParseFieldSignature(nil, "Ljava/util/List<*>;")
	require.NoError(t, err)
	pt := tr.(ParameterizedType)
	require.Equal(t, WildcardType{}, pt.Arguments[0])

	tr2, err := ParseFieldSignature(nil, "Ljava/util/List<+Ljava/lang/Number;>;")
	require.NoError(t, err)
	pt2 := tr2.(ParameterizedType)
	require.Equal(t, WildcardType{ExtendsBound: ClassType{InternalClassName: "java/lang/Number"}}, pt2.Arguments[0])

	tr3, err := ParseFieldSignature(nil, "Ljava/util/List<-Ljava/lang/Integer;>;")
	require.NoError(t, err)
	pt3 := tr3.(ParameterizedType)
	require.Equal(t, WildcardType{SuperBound: ClassType{InternalClassName: "java/lang/Integer"}}, pt3.Arguments[0])
}

func TestParseFieldSignatureArray(t *testing.T) {
	tr, err := ParseFieldSignature(nil, "[Ljava/lang/String;")
	require.NoError(t, err)
	require.Equal(t, ArrayType{Element: ClassType{InternalClassName: "java/lang/String"}}, tr)
}

func TestParseFieldSignatureNestedClass(t *testing.T) {
	tr, err := ParseFieldSignature(nil, "Lcom/example/Outer<Ljava/lang/String;>.Inner;")
	require.NoError(t, err)
	require.Equal(t, ClassType{InternalClassName: "com/example/Outer$Inner"}, tr)
}

func TestParseFieldSignatureDoublyNestedClass(t *testing.T) {
	tr, err := ParseFieldSignature(nil, "Lcom/example/Outer.Middle.Inner;")
	require.NoError(t, err)
	require.Equal(t, ClassType{InternalClassName: "com/example/Outer$Middle$Inner"}, tr)
}

func TestParseMethodSignatureOwnFormal(t *testing.T) {
	ms, err := ParseMethodSignature("com/example/Box", "<T:Ljava/lang/Object;>(TT;)TT;", nil)
	require.NoError(t, err)
	require.Len(t, ms.FormalTypeParameters, 1)
	require.Len(t, ms.ParameterTypes, 1)
	gp, ok := ms.ParameterTypes[0].(*GenericParameter)
	require.True(t, ok)
	require.Equal(t, "T", gp.Name)
	retGp, ok := ms.ReturnType.(*GenericParameter)
	require.True(t, ok)
	require.Equal(t, "T", retGp.Name)
}

func TestParseMethodSignatureExternalLookup(t *testing.T) {
	classGp := &GenericParameter{Name: "T", DeclaringName: "com/example/Box"}
	externalLookup := func(name string) (*GenericParameter, bool) {
		if name == "T" {
			return classGp, true
		}
		return nil, false
	}
	ms, err := ParseMethodSignature("com/example/Box", "()TT;", externalLookup)
	require.NoError(t, err)
	retGp, ok := ms.ReturnType.(*GenericParameter)
	require.True(t, ok)
	require.Same(t, classGp, retGp)
}

func TestParseMethodSignatureThrows(t *testing.T) {
	ms, err := ParseMethodSignature("com/example/Box", "()V^Ljava/io/IOException;", nil)
	require.NoError(t, err)
	require.Equal(t, PrimitiveType{Kind: PrimitiveVoid}, ms.ReturnType)
	require.Len(t, ms.ThrownTypes, 1)
	require.Equal(t, ClassType{InternalClassName: "java/io/IOException"}, ms.ThrownTypes[0])
}

func TestParseMethodSignatureMissingOpenParen(t *testing.T) {
	_, err := ParseMethodSignature("com/example/Box", "TT;V", nil)
	require.Error(t, err)
}

func TestParseClassSignatureClassAndInterfaceBounds(t *testing.T) {
	sig, err := ParseClassSignature("com/example/Box", "<T:Ljava/lang/Object;:Ljava/lang/Comparable;>Ljava/lang/Object;")
	require.NoError(t, err)
	gp := sig.FormalTypeParameters[0]
	require.Len(t, gp.Bounds, 2)
	require.Equal(t, ClassType{InternalClassName: "java/lang/Object"}, gp.Bounds[0])
	require.Equal(t, ClassType{InternalClassName: "java/lang/Comparable"}, gp.Bounds[1])
}
