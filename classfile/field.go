package classfile

// FieldInfoRaw is one field_info entry, with name/descriptor already
// resolved from the constant pool and its attributes already decoded into
// SourceAttribute variants.
type FieldInfoRaw struct {
	AccessFlags AccessFlags
	Name        string
	Descriptor  string
	Attributes  []SourceAttribute
}

// GetAttribute returns the first attribute with the given name, or nil.
func (f *FieldInfoRaw) GetAttribute(name string) SourceAttribute {
	return findAttribute(f.Attributes, name)
}

func (f *FieldInfoRaw) IsPublic() bool    { return f.AccessFlags.IsPublic() }
func (f *FieldInfoRaw) IsPrivate() bool   { return f.AccessFlags.IsPrivate() }
func (f *FieldInfoRaw) IsProtected() bool { return f.AccessFlags.IsProtected() }
func (f *FieldInfoRaw) IsStatic() bool    { return f.AccessFlags.IsStatic() }
func (f *FieldInfoRaw) IsFinal() bool     { return f.AccessFlags.IsFinal() }
func (f *FieldInfoRaw) IsVolatile() bool  { return f.AccessFlags.IsVolatile() }
func (f *FieldInfoRaw) IsTransient() bool { return f.AccessFlags.IsTransient() }
func (f *FieldInfoRaw) IsSynthetic() bool { return f.AccessFlags.IsSynthetic() }
func (f *FieldInfoRaw) IsEnum() bool      { return f.AccessFlags.IsEnum() }

// ParsedDescriptor parses the field's descriptor string into a
// TypeReference.
func (f *FieldInfoRaw) ParsedDescriptor() (TypeReference, error) {
	return ParseFieldDescriptor(f.Descriptor)
}

func readFieldInfo(buf *Buffer, cp ConstantPool) (*FieldInfoRaw, error) {
	accessFlags, e1 := buf.ReadU2()
	nameIdx, e2 := buf.ReadU2()
	descIdx, e3 := buf.ReadU2()
	if err := firstErr(e1, e2, e3); err != nil {
		return nil, wrapError(MalformedInput, err, "reading field_info header")
	}
	name, err := cp.Utf8(nameIdx)
	if err != nil {
		return nil, err
	}
	descriptor, err := cp.Utf8(descIdx)
	if err != nil {
		return nil, err
	}
	attrs, err := readAttributes(buf, cp)
	if err != nil {
		return nil, err
	}
	return &FieldInfoRaw{
		AccessFlags: AccessFlags(accessFlags),
		Name:        name,
		Descriptor:  descriptor,
		Attributes:  attrs,
	}, nil
}
