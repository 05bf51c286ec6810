package classfile

import "strings"

// MethodDescriptor is the parsed form of a JVM method descriptor: ordered
// parameter types and a return type (PrimitiveType{Kind: PrimitiveVoid}
// for a void return, matching the descriptor grammar's own treatment of
// 'V').
type MethodDescriptor struct {
	Parameters []TypeReference
	ReturnType TypeReference
}

func (md *MethodDescriptor) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range md.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(descriptorDisplayName(p))
	}
	sb.WriteByte(')')
	sb.WriteByte(' ')
	sb.WriteString(descriptorDisplayName(md.ReturnType))
	return sb.String()
}

func descriptorDisplayName(t TypeReference) string {
	switch v := t.(type) {
	case PrimitiveType:
		switch v.Kind {
		case PrimitiveByte:
			return "byte"
		case PrimitiveChar:
			return "char"
		case PrimitiveDouble:
			return "double"
		case PrimitiveFloat:
			return "float"
		case PrimitiveInt:
			return "int"
		case PrimitiveLong:
			return "long"
		case PrimitiveShort:
			return "short"
		case PrimitiveBoolean:
			return "boolean"
		default:
			return "void"
		}
	case ClassType:
		return InternalToSourceName(v.InternalClassName)
	case ArrayType:
		return descriptorDisplayName(v.Element) + "[]"
	default:
		return t.InternalName()
	}
}

// ParseFieldDescriptor parses a single field descriptor ("I", "[[D",
// "Ljava/lang/String;") into a TypeReference.
func ParseFieldDescriptor(desc string) (TypeReference, error) {
	t, consumed, err := parseFieldType(desc, 0)
	if err != nil {
		return nil, err
	}
	if consumed != len(desc) {
		return nil, errorfAt(MalformedSignature, consumed, "trailing characters after field descriptor %q", desc)
	}
	return t, nil
}

// ParseMethodDescriptor parses a method descriptor of the form
// "(ParameterDescriptor*)ReturnDescriptor".
func ParseMethodDescriptor(desc string) (*MethodDescriptor, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, errorfAt(MalformedSignature, 0, "method descriptor must start with '(': %q", desc)
	}

	md := &MethodDescriptor{}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		t, consumed, err := parseFieldType(desc, i)
		if err != nil {
			return nil, err
		}
		md.Parameters = append(md.Parameters, t)
		i = consumed
	}
	if i >= len(desc) || desc[i] != ')' {
		return nil, errorfAt(MalformedSignature, i, "unterminated parameter list in method descriptor %q", desc)
	}
	i++

	if i >= len(desc) {
		return nil, errorfAt(MalformedSignature, i, "missing return type in method descriptor %q", desc)
	}

	// 'V' is only legal here, as a method's return type — parseFieldType
	// rejects it everywhere else (field descriptors, parameter types).
	if desc[i] == 'V' {
		if i+1 != len(desc) {
			return nil, errorfAt(MalformedSignature, i+1, "trailing characters after return type in %q", desc)
		}
		md.ReturnType = PrimitiveType{Kind: PrimitiveVoid}
		return md, nil
	}

	ret, consumed, err := parseFieldType(desc, i)
	if err != nil {
		return nil, err
	}
	if consumed != len(desc) {
		return nil, errorfAt(MalformedSignature, consumed, "trailing characters after return type in %q", desc)
	}
	md.ReturnType = ret
	return md, nil
}

// parseFieldType parses one type starting at desc[start], returning the
// reference and the index just past the consumed characters. Array
// brackets recurse into ArrayType rather than being counted flat, so that
// "[[I" yields ArrayType{ArrayType{int}}.
func parseFieldType(desc string, start int) (TypeReference, int, error) {
	if start >= len(desc) {
		return nil, 0, errorfAt(MalformedSignature, start, "unexpected end of descriptor")
	}
	if desc[start] == '[' {
		elem, next, err := parseFieldType(desc, start+1)
		if err != nil {
			return nil, 0, err
		}
		return ArrayType{Element: elem}, next, nil
	}
	switch desc[start] {
	case 'B':
		return PrimitiveType{Kind: PrimitiveByte}, start + 1, nil
	case 'C':
		return PrimitiveType{Kind: PrimitiveChar}, start + 1, nil
	case 'D':
		return PrimitiveType{Kind: PrimitiveDouble}, start + 1, nil
	case 'F':
		return PrimitiveType{Kind: PrimitiveFloat}, start + 1, nil
	case 'I':
		return PrimitiveType{Kind: PrimitiveInt}, start + 1, nil
	case 'J':
		return PrimitiveType{Kind: PrimitiveLong}, start + 1, nil
	case 'S':
		return PrimitiveType{Kind: PrimitiveShort}, start + 1, nil
	case 'Z':
		return PrimitiveType{Kind: PrimitiveBoolean}, start + 1, nil
	case 'L':
		semicolon := strings.IndexByte(desc[start:], ';')
		if semicolon == -1 {
			return nil, 0, errorfAt(MalformedSignature, start, "unterminated class type in descriptor %q", desc)
		}
		name := desc[start+1 : start+semicolon]
		return ClassType{InternalClassName: name}, start + semicolon + 1, nil
	default:
		return nil, 0, errorfAt(MalformedSignature, start, "invalid descriptor character %q", desc[start])
	}
}

// InternalToSourceName converts a slash-separated internal class name to
// its dotted source form.
func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

// SourceToInternalName converts a dotted source class name to its
// slash-separated internal form.
func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
