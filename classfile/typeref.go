package classfile

import "strings"

// TypeReference is the polymorphic type descriptor produced by both the
// descriptor parser and the generic signature parser. Every variant below
// implements it; equality is structural (InternalName plus arguments), not
// pointer identity, except where the resolver framework's self-reference
// hand-back deliberately returns the same TypeDefinition-backed ClassType
// for every mention of the enclosing class within one class file.
type TypeReference interface {
	// InternalName returns the JVM internal form (e.g. "I", "Ljava/lang/String;",
	// "[I") used for structural comparison.
	InternalName() string
}

// PrimitiveKind enumerates the eight JVM primitive types plus void.
type PrimitiveKind uint8

const (
	PrimitiveByte PrimitiveKind = iota
	PrimitiveChar
	PrimitiveDouble
	PrimitiveFloat
	PrimitiveInt
	PrimitiveLong
	PrimitiveShort
	PrimitiveBoolean
	PrimitiveVoid
)

func (k PrimitiveKind) descriptorChar() string {
	switch k {
	case PrimitiveByte:
		return "B"
	case PrimitiveChar:
		return "C"
	case PrimitiveDouble:
		return "D"
	case PrimitiveFloat:
		return "F"
	case PrimitiveInt:
		return "I"
	case PrimitiveLong:
		return "J"
	case PrimitiveShort:
		return "S"
	case PrimitiveBoolean:
		return "Z"
	case PrimitiveVoid:
		return "V"
	default:
		return "?"
	}
}

// PrimitiveType is a TypeReference for one of the eight primitive types or
// void.
type PrimitiveType struct{ Kind PrimitiveKind }

func (p PrimitiveType) InternalName() string { return p.Kind.descriptorChar() }

// ClassType names a reference type by its internal (slash-separated) class
// name. Target, when non-nil, is the TypeDefinition this reference was
// bound to. Only self-references to the class being read by a ClassReader
// get a Target; other class names are left unbound.
type ClassType struct {
	InternalClassName string
	Target            *TypeDefinition
}

func (c ClassType) InternalName() string { return "L" + c.InternalClassName + ";" }

// ArrayType is a TypeReference whose Element is itself a TypeReference;
// nesting ArrayType recursively expresses multi-dimensional arrays rather
// than carrying a flat depth counter.
type ArrayType struct{ Element TypeReference }

func (a ArrayType) InternalName() string { return "[" + a.Element.InternalName() }

// ParameterizedType is a generic class type applied to concrete type
// arguments, e.g. List<String>.
type ParameterizedType struct {
	Raw       TypeReference
	Arguments []TypeReference
}

func (p ParameterizedType) InternalName() string {
	var b strings.Builder
	b.WriteString(p.Raw.InternalName())
	b.WriteByte('<')
	for i, a := range p.Arguments {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.InternalName())
	}
	b.WriteByte('>')
	return b.String()
}

// WildcardType is a generic type argument of the form "?", "? extends T",
// or "? super T". Unbounded wildcards have both bounds nil.
type WildcardType struct {
	ExtendsBound TypeReference
	SuperBound   TypeReference
}

func (w WildcardType) InternalName() string {
	switch {
	case w.ExtendsBound != nil:
		return "+" + w.ExtendsBound.InternalName()
	case w.SuperBound != nil:
		return "-" + w.SuperBound.InternalName()
	default:
		return "*"
	}
}

// GenericParameter is a formal type parameter declaration: a name plus its
// bounds, along with DeclaringName, the internal name of the class whose
// class or method signature declared it (a method's own type parameters
// carry the enclosing class's name). Type variable lookups match by Name
// alone; DeclaringName is not consulted.
type GenericParameter struct {
	Name          string
	Bounds        []TypeReference
	DeclaringName string
}

func (g *GenericParameter) InternalName() string { return "T" + g.Name + ";" }

// CapturedType models a wildcard that has been captured at a particular
// use site, bound to a synthesized fresh type variable per the generic
// signature grammar's capture-conversion rule.
type CapturedType struct {
	Wildcard WildcardType
	Bound    TypeReference
}

func (c CapturedType) InternalName() string { return "capture-of " + c.Wildcard.InternalName() }
