package classfile

// MethodInfoRaw is one method_info entry, with name/descriptor already
// resolved and its attributes decoded into SourceAttribute variants. If a
// Signature attribute is present, the ClassReader parses it under the
// enclosing type's generic context during Accept and attaches the result
// here rather than discarding it.
type MethodInfoRaw struct {
	AccessFlags AccessFlags
	Name        string
	Descriptor  string
	Attributes  []SourceAttribute
	Signature   *IMethodSignature

	codeAttr   *CodeAttribute
	codeParsed bool
	pool       ConstantPool
}

// GetAttribute returns the first attribute with the given name, or nil.
func (m *MethodInfoRaw) GetAttribute(name string) SourceAttribute {
	return findAttribute(m.Attributes, name)
}

// Code lazily decodes the method's Code attribute, if present, from its
// BlobAttribute body. A successful decode (or the absence of a Code
// attribute) is cached for subsequent calls; a decode error is returned
// again on every call.
func (m *MethodInfoRaw) Code() (*CodeAttribute, error) {
	if m.codeParsed {
		return m.codeAttr, nil
	}
	blob, ok := m.GetAttribute("Code").(BlobAttribute)
	if !ok {
		m.codeParsed = true
		return nil, nil
	}
	code, err := decodeCodeAttribute(blob.Data, m.pool)
	if err != nil {
		return nil, err
	}
	m.codeAttr = code
	m.codeParsed = true
	return code, nil
}

func (m *MethodInfoRaw) IsPublic() bool       { return m.AccessFlags.IsPublic() }
func (m *MethodInfoRaw) IsPrivate() bool      { return m.AccessFlags.IsPrivate() }
func (m *MethodInfoRaw) IsProtected() bool    { return m.AccessFlags.IsProtected() }
func (m *MethodInfoRaw) IsStatic() bool       { return m.AccessFlags.IsStatic() }
func (m *MethodInfoRaw) IsFinal() bool        { return m.AccessFlags.IsFinal() }
func (m *MethodInfoRaw) IsSynchronized() bool { return m.AccessFlags.IsSynchronized() }
func (m *MethodInfoRaw) IsBridge() bool       { return m.AccessFlags.IsBridge() }
func (m *MethodInfoRaw) IsVarargs() bool      { return m.AccessFlags.IsVarargs() }
func (m *MethodInfoRaw) IsNative() bool       { return m.AccessFlags.IsNative() }
func (m *MethodInfoRaw) IsAbstract() bool     { return m.AccessFlags.IsAbstract() }
func (m *MethodInfoRaw) IsStrict() bool       { return m.AccessFlags.IsStrict() }
func (m *MethodInfoRaw) IsSynthetic() bool    { return m.AccessFlags.IsSynthetic() }

func (m *MethodInfoRaw) IsConstructor() bool       { return m.Name == "<init>" }
func (m *MethodInfoRaw) IsStaticInitializer() bool { return m.Name == "<clinit>" }

// ParsedDescriptor parses the method's descriptor string into a
// MethodDescriptor.
func (m *MethodInfoRaw) ParsedDescriptor() (*MethodDescriptor, error) {
	return ParseMethodDescriptor(m.Descriptor)
}

func readMethodInfo(buf *Buffer, cp ConstantPool) (*MethodInfoRaw, error) {
	accessFlags, e1 := buf.ReadU2()
	nameIdx, e2 := buf.ReadU2()
	descIdx, e3 := buf.ReadU2()
	if err := firstErr(e1, e2, e3); err != nil {
		return nil, wrapError(MalformedInput, err, "reading method_info header")
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
	return &MethodInfoRaw{
		AccessFlags: AccessFlags(accessFlags),
		Name:        name,
		Descriptor:  descriptor,
		Attributes:  attrs,
		pool:        cp,
	}, nil
}
