package classfile

// TypeDefinition is the fully decoded output of reading one class file.
// It is created once per class file, before fields/methods/attributes are
// read, and mutated in place during Accept — the same object a
// self-referencing descriptor or signature resolves to (see S5 in the
// reader's tests).
type TypeDefinition struct {
	Package              string
	SimpleName           string
	InternalName         string
	MajorVersion         uint16
	MinorVersion         uint16
	AccessFlags          AccessFlags
	SuperName            string
	InterfaceNames       []string
	Fields               []*FieldInfoRaw
	Methods              []*MethodInfoRaw
	Attributes           []SourceAttribute
	FormalTypeParameters []*GenericParameter
}

// GetAttribute returns the first class-level attribute with the given
// name, or nil.
func (t *TypeDefinition) GetAttribute(name string) SourceAttribute {
	return findAttribute(t.Attributes, name)
}

// GetField returns the first field with the given name, or nil.
func (t *TypeDefinition) GetField(name string) *FieldInfoRaw {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// GetMethod returns the first method with the given name and descriptor.
// An empty descriptor matches any overload.
func (t *TypeDefinition) GetMethod(name, descriptor string) *MethodInfoRaw {
	for _, m := range t.Methods {
		if m.Name == name && (descriptor == "" || m.Descriptor == descriptor) {
			return m
		}
	}
	return nil
}

// GetMethods returns every method with the given name.
func (t *TypeDefinition) GetMethods(name string) []*MethodInfoRaw {
	var out []*MethodInfoRaw
	for _, m := range t.Methods {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

func (t *TypeDefinition) IsClass() bool {
	return !t.AccessFlags.IsInterface() && !t.AccessFlags.IsModule()
}
func (t *TypeDefinition) IsInterface() bool {
	return t.AccessFlags.IsInterface() && !t.AccessFlags.IsAnnotation()
}
func (t *TypeDefinition) IsAnnotation() bool { return t.AccessFlags.IsAnnotation() }
func (t *TypeDefinition) IsEnum() bool       { return t.AccessFlags.IsEnum() }
func (t *TypeDefinition) IsModule() bool     { return t.AccessFlags.IsModule() }

// InternalNameRef returns the class's descriptor form, "L" + InternalName
// + ";". TypeDefinition does not implement TypeReference itself; a
// self-reference is a ClassType whose Target points at it.
func (t *TypeDefinition) InternalNameRef() string { return "L" + t.InternalName + ";" }

// ClassVisitor receives the Visit call that every ClassReader.Accept call
// makes once the class file's header, this/super/interface names, members,
// and (if present) class-level generic signature have been read.
type ClassVisitor interface {
	Visit(type_ *TypeDefinition, major, minor uint16, access AccessFlags,
		internalName string, signature *string, superName *string, interfaces []string)
}

// ClassVisitorFunc adapts a plain function to ClassVisitor.
type ClassVisitorFunc func(type_ *TypeDefinition, major, minor uint16, access AccessFlags,
	internalName string, signature *string, superName *string, interfaces []string)

func (f ClassVisitorFunc) Visit(type_ *TypeDefinition, major, minor uint16, access AccessFlags,
	internalName string, signature *string, superName *string, interfaces []string) {
	f(type_, major, minor, access, internalName, signature, superName, interfaces)
}
