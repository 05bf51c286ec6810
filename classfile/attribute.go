package classfile

// SourceAttribute is the decoded form of one class/field/method attribute.
// Every recognized attribute name has its own variant; anything else
// decodes losslessly to BlobAttribute, per the dispatch table: an unknown
// name is not an error, it just stays opaque.
type SourceAttribute interface {
	Name() string
}

// BlobAttribute is the fallback variant: the raw attribute_info body,
// keyed by name, with no interpretation attempted. Code always decodes to
// a BlobAttribute named "Code" — its bytecode is kept opaque by the
// decoder and is only parsed into a CodeAttribute on demand, via
// MethodInfoRaw.Code.
type BlobAttribute struct {
	NameStr string
	Data    []byte
}

func (b BlobAttribute) Name() string { return b.NameStr }

type SourceFileAttribute struct{ SourceFile string }

func (SourceFileAttribute) Name() string { return "SourceFile" }

// ConstantValueAttribute carries a loadable constant's Go-native value:
// int32, float32, int64, float64, or string, mirroring LookupConstant.
type ConstantValueAttribute struct{ Value interface{} }

func (ConstantValueAttribute) Name() string { return "ConstantValue" }

type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

type LineNumberTableAttribute struct{ Entries []LineNumberEntry }

func (LineNumberTableAttribute) Name() string { return "LineNumberTable" }

// SignatureAttribute carries the raw generic signature string; callers
// that need the parsed form call ParseClassSignature/ParseMethodSignature/
// ParseFieldSignature explicitly, since the grammar to parse into depends
// on whether the owner is a class, method, or field.
type SignatureAttribute struct{ Signature string }

func (SignatureAttribute) Name() string { return "Signature" }

type ExceptionsAttribute struct{ ExceptionClassNames []string }

func (ExceptionsAttribute) Name() string { return "Exceptions" }

type InnerClassEntry struct {
	InnerClassName  string
	OuterClassName  string
	InnerName       string
	InnerAccessFlag AccessFlags
}

type InnerClassesAttribute struct{ Classes []InnerClassEntry }

func (InnerClassesAttribute) Name() string { return "InnerClasses" }

type EnclosingMethodAttribute struct {
	ClassName            string
	MethodName           string
	MethodDescriptorText string
}

func (EnclosingMethodAttribute) Name() string { return "EnclosingMethod" }

type SyntheticAttribute struct{}

func (SyntheticAttribute) Name() string { return "Synthetic" }

type DeprecatedAttribute struct{}

func (DeprecatedAttribute) Name() string { return "Deprecated" }

type LocalVariableEntry struct {
	StartPC       uint16
	Length        uint16
	Name          string
	Descriptor    string
	LocalVarIndex uint16
}

type LocalVariableTableAttribute struct{ Entries []LocalVariableEntry }

func (LocalVariableTableAttribute) Name() string { return "LocalVariableTable" }

type LocalVariableTypeEntry struct {
	StartPC       uint16
	Length        uint16
	Name          string
	Signature     string
	LocalVarIndex uint16
}

type LocalVariableTypeTableAttribute struct{ Entries []LocalVariableTypeEntry }

func (LocalVariableTypeTableAttribute) Name() string { return "LocalVariableTypeTable" }

type MethodParameterEntry struct {
	Name        string
	AccessFlags AccessFlags
}

type MethodParametersAttribute struct{ Parameters []MethodParameterEntry }

func (MethodParametersAttribute) Name() string { return "MethodParameters" }

type NestHostAttribute struct{ HostClassName string }

func (NestHostAttribute) Name() string { return "NestHost" }

type NestMembersAttribute struct{ MemberClassNames []string }

func (NestMembersAttribute) Name() string { return "NestMembers" }

type PermittedSubclassesAttribute struct{ SubclassNames []string }

func (PermittedSubclassesAttribute) Name() string { return "PermittedSubclasses" }

type BootstrapMethodEntry struct {
	MethodRef *ConstantMethodHandleInfo
	Arguments []uint16
}

type BootstrapMethodsAttribute struct{ Methods []BootstrapMethodEntry }

func (BootstrapMethodsAttribute) Name() string { return "BootstrapMethods" }

type RecordComponentEntry struct {
	Name       string
	Descriptor string
	Attributes []SourceAttribute
}

type RecordAttribute struct{ Components []RecordComponentEntry }

func (RecordAttribute) Name() string { return "Record" }

// ElementValue is a simplified rendering of an annotation element value:
// exactly one of the fields is populated depending on the element's tag.
type ElementValue struct {
	Const        interface{}
	EnumTypeName string
	EnumConst    string
	ClassName    string
	Array        []ElementValue
}

type ElementValuePair struct {
	Name  string
	Value ElementValue
}

type Annotation struct {
	TypeDescriptor string
	Pairs          []ElementValuePair
}

type RuntimeVisibleAnnotationsAttribute struct{ Annotations []Annotation }

func (RuntimeVisibleAnnotationsAttribute) Name() string { return "RuntimeVisibleAnnotations" }

type RuntimeInvisibleAnnotationsAttribute struct{ Annotations []Annotation }

func (RuntimeInvisibleAnnotationsAttribute) Name() string { return "RuntimeInvisibleAnnotations" }

type AnnotationDefaultAttribute struct{ Value ElementValue }

func (AnnotationDefaultAttribute) Name() string { return "AnnotationDefault" }

type ModuleRequireEntry struct {
	ModuleName string
	Flags      uint16
	Version    string
}

type ModuleExportEntry struct {
	PackageName string
	Flags       uint16
	ToModules   []string
}

type ModuleOpenEntry struct {
	PackageName string
	Flags       uint16
	ToModules   []string
}

type ModuleProvideEntry struct {
	ServiceName       string
	WithImplClassName []string
}

type ModuleAttribute struct {
	ModuleName string
	Flags      uint16
	Version    string
	Requires   []ModuleRequireEntry
	Exports    []ModuleExportEntry
	Opens      []ModuleOpenEntry
	Uses       []string
	Provides   []ModuleProvideEntry
}

func (ModuleAttribute) Name() string { return "Module" }

type ModulePackagesAttribute struct{ PackageNames []string }

func (ModulePackagesAttribute) Name() string { return "ModulePackages" }

type ModuleMainClassAttribute struct{ MainClassName string }

func (ModuleMainClassAttribute) Name() string { return "ModuleMainClass" }

// readAttributes reads an attributes_count-prefixed table of attributes.
func readAttributes(buf *Buffer, cp ConstantPool) ([]SourceAttribute, error) {
	count, err := buf.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedInput, err, "reading attributes_count")
	}
	attrs := make([]SourceAttribute, count)
	for i := range attrs {
		attr, err := readOneAttribute(buf, cp)
		if err != nil {
			return nil, err
		}
		attrs[i] = attr
	}
	return attrs, nil
}

func readOneAttribute(buf *Buffer, cp ConstantPool) (SourceAttribute, error) {
	nameIndex, err := buf.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedInput, err, "reading attribute_name_index")
	}
	length, err := buf.ReadU4()
	if err != nil {
		return nil, wrapError(MalformedInput, err, "reading attribute_length")
	}
	body, err := buf.ReadBytes(int(length))
	if err != nil {
		return nil, wrapError(MalformedInput, err, "reading attribute body")
	}
	name, err := cp.Utf8(nameIndex)
	if err != nil {
		return nil, err
	}

	parser, ok := attributeParsers[name]
	if !ok || name == "Code" {
		return BlobAttribute{NameStr: name, Data: body}, nil
	}
	return parser(body, cp)
}

type attributeParser func(body []byte, cp ConstantPool) (SourceAttribute, error)

var attributeParsers map[string]attributeParser

func init() {
	attributeParsers = map[string]attributeParser{
		"SourceFile":                  parseSourceFileAttribute,
		"ConstantValue":               parseConstantValueAttribute,
		"LineNumberTable":             parseLineNumberTableAttribute,
		"Signature":                   parseSignatureAttributeBody,
		"Exceptions":                  parseExceptionsAttribute,
		"InnerClasses":                parseInnerClassesAttribute,
		"EnclosingMethod":             parseEnclosingMethodAttribute,
		"Synthetic":                   parseSyntheticAttribute,
		"Deprecated":                  parseDeprecatedAttribute,
		"LocalVariableTable":          parseLocalVariableTableAttribute,
		"LocalVariableTypeTable":      parseLocalVariableTypeTableAttribute,
		"MethodParameters":            parseMethodParametersAttribute,
		"NestHost":                    parseNestHostAttribute,
		"NestMembers":                 parseNestMembersAttribute,
		"PermittedSubclasses":         parsePermittedSubclassesAttribute,
		"BootstrapMethods":            parseBootstrapMethodsAttribute,
		"Record":                      parseRecordAttribute,
		"RuntimeVisibleAnnotations":   parseRuntimeVisibleAnnotationsAttribute,
		"RuntimeInvisibleAnnotations": parseRuntimeInvisibleAnnotationsAttribute,
		"AnnotationDefault":           parseAnnotationDefaultAttribute,
		"Module":                      parseModuleAttribute,
		"ModulePackages":              parseModulePackagesAttribute,
		"ModuleMainClass":             parseModuleMainClassAttribute,
	}
}

func bodyReader(body []byte) *Buffer { return NewBuffer(body) }

func parseSourceFileAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	idx, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "SourceFile")
	}
	name, err := cp.Utf8(idx)
	if err != nil {
		return nil, err
	}
	return SourceFileAttribute{SourceFile: name}, nil
}

func parseConstantValueAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	idx, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "ConstantValue")
	}
	v, err := cp.LookupConstant(idx)
	if err != nil {
		return nil, err
	}
	return ConstantValueAttribute{Value: v}, nil
}

func parseLineNumberTableAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	count, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "LineNumberTable")
	}
	entries := make([]LineNumberEntry, count)
	for i := range entries {
		startPC, err := b.ReadU2()
		if err != nil {
			return nil, wrapError(MalformedAttribute, err, "LineNumberTable entry")
		}
		line, err := b.ReadU2()
		if err != nil {
			return nil, wrapError(MalformedAttribute, err, "LineNumberTable entry")
		}
		entries[i] = LineNumberEntry{StartPC: startPC, LineNumber: line}
	}
	return LineNumberTableAttribute{Entries: entries}, nil
}

func parseSignatureAttributeBody(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	idx, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "Signature")
	}
	s, err := cp.Utf8(idx)
	if err != nil {
		return nil, err
	}
	return SignatureAttribute{Signature: s}, nil
}

func parseExceptionsAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	count, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "Exceptions")
	}
	names := make([]string, count)
	for i := range names {
		idx, err := b.ReadU2()
		if err != nil {
			return nil, wrapError(MalformedAttribute, err, "Exceptions entry")
		}
		if names[i], err = cp.ClassName(idx); err != nil {
			return nil, err
		}
	}
	return ExceptionsAttribute{ExceptionClassNames: names}, nil
}

func parseInnerClassesAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	count, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "InnerClasses")
	}
	classes := make([]InnerClassEntry, count)
	for i := range classes {
		innerIdx, err1 := b.ReadU2()
		outerIdx, err2 := b.ReadU2()
		nameIdx, err3 := b.ReadU2()
		flags, err4 := b.ReadU2()
		if err := firstErr(err1, err2, err3, err4); err != nil {
			return nil, wrapError(MalformedAttribute, err, "InnerClasses entry")
		}
		entry := InnerClassEntry{InnerAccessFlag: AccessFlags(flags)}
		var err error
		if entry.InnerClassName, err = cp.ClassName(innerIdx); err != nil {
			return nil, err
		}
		if outerIdx != 0 {
			if entry.OuterClassName, err = cp.ClassName(outerIdx); err != nil {
				return nil, err
			}
		}
		if nameIdx != 0 {
			if entry.InnerName, err = cp.Utf8(nameIdx); err != nil {
				return nil, err
			}
		}
		classes[i] = entry
	}
	return InnerClassesAttribute{Classes: classes}, nil
}

func parseEnclosingMethodAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	classIdx, err1 := b.ReadU2()
	methodIdx, err2 := b.ReadU2()
	if err := firstErr(err1, err2); err != nil {
		return nil, wrapError(MalformedAttribute, err, "EnclosingMethod")
	}
	className, err := cp.ClassName(classIdx)
	if err != nil {
		return nil, err
	}
	attr := EnclosingMethodAttribute{ClassName: className}
	if methodIdx != 0 {
		name, desc, err := cp.NameAndType(methodIdx)
		if err != nil {
			return nil, err
		}
		attr.MethodName, attr.MethodDescriptorText = name, desc
	}
	return attr, nil
}

func parseSyntheticAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	return SyntheticAttribute{}, nil
}

func parseDeprecatedAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	return DeprecatedAttribute{}, nil
}

func parseLocalVariableTableAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	count, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "LocalVariableTable")
	}
	entries := make([]LocalVariableEntry, count)
	for i := range entries {
		startPC, e1 := b.ReadU2()
		length, e2 := b.ReadU2()
		nameIdx, e3 := b.ReadU2()
		descIdx, e4 := b.ReadU2()
		index, e5 := b.ReadU2()
		if err := firstErr(e1, e2, e3, e4, e5); err != nil {
			return nil, wrapError(MalformedAttribute, err, "LocalVariableTable entry")
		}
		name, err := cp.Utf8(nameIdx)
		if err != nil {
			return nil, err
		}
		desc, err := cp.Utf8(descIdx)
		if err != nil {
			return nil, err
		}
		entries[i] = LocalVariableEntry{StartPC: startPC, Length: length, Name: name, Descriptor: desc, LocalVarIndex: index}
	}
	return LocalVariableTableAttribute{Entries: entries}, nil
}

func parseLocalVariableTypeTableAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	count, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "LocalVariableTypeTable")
	}
	entries := make([]LocalVariableTypeEntry, count)
	for i := range entries {
		startPC, e1 := b.ReadU2()
		length, e2 := b.ReadU2()
		nameIdx, e3 := b.ReadU2()
		sigIdx, e4 := b.ReadU2()
		index, e5 := b.ReadU2()
		if err := firstErr(e1, e2, e3, e4, e5); err != nil {
			return nil, wrapError(MalformedAttribute, err, "LocalVariableTypeTable entry")
		}
		name, err := cp.Utf8(nameIdx)
		if err != nil {
			return nil, err
		}
		sig, err := cp.Utf8(sigIdx)
		if err != nil {
			return nil, err
		}
		entries[i] = LocalVariableTypeEntry{StartPC: startPC, Length: length, Name: name, Signature: sig, LocalVarIndex: index}
	}
	return LocalVariableTypeTableAttribute{Entries: entries}, nil
}

func parseMethodParametersAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	count, err := b.ReadU1()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "MethodParameters")
	}
	params := make([]MethodParameterEntry, count)
	for i := range params {
		nameIdx, e1 := b.ReadU2()
		flags, e2 := b.ReadU2()
		if err := firstErr(e1, e2); err != nil {
			return nil, wrapError(MalformedAttribute, err, "MethodParameters entry")
		}
		var name string
		if nameIdx != 0 {
			if name, err = cp.Utf8(nameIdx); err != nil {
				return nil, err
			}
		}
		params[i] = MethodParameterEntry{Name: name, AccessFlags: AccessFlags(flags)}
	}
	return MethodParametersAttribute{Parameters: params}, nil
}

func parseNestHostAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	idx, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "NestHost")
	}
	name, err := cp.ClassName(idx)
	if err != nil {
		return nil, err
	}
	return NestHostAttribute{HostClassName: name}, nil
}

func parseNestMembersAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	count, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "NestMembers")
	}
	names := make([]string, count)
	for i := range names {
		idx, err := b.ReadU2()
		if err != nil {
			return nil, wrapError(MalformedAttribute, err, "NestMembers entry")
		}
		if names[i], err = cp.ClassName(idx); err != nil {
			return nil, err
		}
	}
	return NestMembersAttribute{MemberClassNames: names}, nil
}

func parsePermittedSubclassesAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	count, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "PermittedSubclasses")
	}
	names := make([]string, count)
	for i := range names {
		idx, err := b.ReadU2()
		if err != nil {
			return nil, wrapError(MalformedAttribute, err, "PermittedSubclasses entry")
		}
		if names[i], err = cp.ClassName(idx); err != nil {
			return nil, err
		}
	}
	return PermittedSubclassesAttribute{SubclassNames: names}, nil
}

func parseBootstrapMethodsAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	count, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "BootstrapMethods")
	}
	methods := make([]BootstrapMethodEntry, count)
	for i := range methods {
		refIdx, e1 := b.ReadU2()
		argCount, e2 := b.ReadU2()
		if err := firstErr(e1, e2); err != nil {
			return nil, wrapError(MalformedAttribute, err, "BootstrapMethods entry")
		}
		handle, err := cp.MethodHandle(refIdx)
		if err != nil {
			return nil, err
		}
		args := make([]uint16, argCount)
		for j := range args {
			if args[j], err = b.ReadU2(); err != nil {
				return nil, wrapError(MalformedAttribute, err, "BootstrapMethods argument")
			}
		}
		methods[i] = BootstrapMethodEntry{MethodRef: handle, Arguments: args}
	}
	return BootstrapMethodsAttribute{Methods: methods}, nil
}

func parseRecordAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	count, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "Record")
	}
	components := make([]RecordComponentEntry, count)
	for i := range components {
		nameIdx, e1 := b.ReadU2()
		descIdx, e2 := b.ReadU2()
		if err := firstErr(e1, e2); err != nil {
			return nil, wrapError(MalformedAttribute, err, "Record component")
		}
		name, err := cp.Utf8(nameIdx)
		if err != nil {
			return nil, err
		}
		desc, err := cp.Utf8(descIdx)
		if err != nil {
			return nil, err
		}
		attrs, err := readAttributes(b, cp)
		if err != nil {
			return nil, err
		}
		components[i] = RecordComponentEntry{Name: name, Descriptor: desc, Attributes: attrs}
	}
	return RecordAttribute{Components: components}, nil
}

func parseElementValue(b *Buffer, cp ConstantPool) (ElementValue, error) {
	tag, err := b.ReadU1()
	if err != nil {
		return ElementValue{}, wrapError(MalformedAttribute, err, "element_value tag")
	}
	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		idx, err := b.ReadU2()
		if err != nil {
			return ElementValue{}, wrapError(MalformedAttribute, err, "element_value const")
		}
		if tag == 's' {
			s, err := cp.Utf8(idx)
			return ElementValue{Const: s}, err
		}
		v, err := cp.LookupConstant(idx)
		return ElementValue{Const: v}, err
	case 'e':
		typeIdx, e1 := b.ReadU2()
		constIdx, e2 := b.ReadU2()
		if err := firstErr(e1, e2); err != nil {
			return ElementValue{}, wrapError(MalformedAttribute, err, "enum element_value")
		}
		typeName, err := cp.Utf8(typeIdx)
		if err != nil {
			return ElementValue{}, err
		}
		constName, err := cp.Utf8(constIdx)
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{EnumTypeName: typeName, EnumConst: constName}, nil
	case 'c':
		idx, err := b.ReadU2()
		if err != nil {
			return ElementValue{}, wrapError(MalformedAttribute, err, "class element_value")
		}
		name, err := cp.Utf8(idx)
		return ElementValue{ClassName: name}, err
	case '@':
		ann, err := parseAnnotation(b, cp)
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Array: []ElementValue{{ClassName: ann.TypeDescriptor}}}, nil
	case '[':
		count, err := b.ReadU2()
		if err != nil {
			return ElementValue{}, wrapError(MalformedAttribute, err, "array element_value")
		}
		values := make([]ElementValue, count)
		for i := range values {
			if values[i], err = parseElementValue(b, cp); err != nil {
				return ElementValue{}, err
			}
		}
		return ElementValue{Array: values}, nil
	default:
		return ElementValue{}, errorfAt(MalformedAttribute, b.Position()-1, "unknown element_value tag %q", tag)
	}
}

func parseAnnotation(b *Buffer, cp ConstantPool) (Annotation, error) {
	typeIdx, err := b.ReadU2()
	if err != nil {
		return Annotation{}, wrapError(MalformedAttribute, err, "annotation type_index")
	}
	typeDesc, err := cp.Utf8(typeIdx)
	if err != nil {
		return Annotation{}, err
	}
	count, err := b.ReadU2()
	if err != nil {
		return Annotation{}, wrapError(MalformedAttribute, err, "annotation num_element_value_pairs")
	}
	pairs := make([]ElementValuePair, count)
	for i := range pairs {
		nameIdx, err := b.ReadU2()
		if err != nil {
			return Annotation{}, wrapError(MalformedAttribute, err, "element_value_pair name")
		}
		name, err := cp.Utf8(nameIdx)
		if err != nil {
			return Annotation{}, err
		}
		value, err := parseElementValue(b, cp)
		if err != nil {
			return Annotation{}, err
		}
		pairs[i] = ElementValuePair{Name: name, Value: value}
	}
	return Annotation{TypeDescriptor: typeDesc, Pairs: pairs}, nil
}

func parseAnnotations(body []byte, cp ConstantPool) ([]Annotation, error) {
	b := bodyReader(body)
	count, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "num_annotations")
	}
	anns := make([]Annotation, count)
	for i := range anns {
		if anns[i], err = parseAnnotation(b, cp); err != nil {
			return nil, err
		}
	}
	return anns, nil
}

func parseRuntimeVisibleAnnotationsAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	anns, err := parseAnnotations(body, cp)
	if err != nil {
		return nil, err
	}
	return RuntimeVisibleAnnotationsAttribute{Annotations: anns}, nil
}

func parseRuntimeInvisibleAnnotationsAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	anns, err := parseAnnotations(body, cp)
	if err != nil {
		return nil, err
	}
	return RuntimeInvisibleAnnotationsAttribute{Annotations: anns}, nil
}

func parseAnnotationDefaultAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	v, err := parseElementValue(b, cp)
	if err != nil {
		return nil, err
	}
	return AnnotationDefaultAttribute{Value: v}, nil
}

func parseModuleAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	moduleIdx, e1 := b.ReadU2()
	flags, e2 := b.ReadU2()
	versionIdx, e3 := b.ReadU2()
	if err := firstErr(e1, e2, e3); err != nil {
		return nil, wrapError(MalformedAttribute, err, "Module header")
	}
	moduleName, err := cp.ModuleName(moduleIdx)
	if err != nil {
		return nil, err
	}
	attr := ModuleAttribute{ModuleName: moduleName, Flags: flags}
	if versionIdx != 0 {
		if attr.Version, err = cp.Utf8(versionIdx); err != nil {
			return nil, err
		}
	}

	requireCount, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "Module requires_count")
	}
	attr.Requires = make([]ModuleRequireEntry, requireCount)
	for i := range attr.Requires {
		idx, e1 := b.ReadU2()
		rflags, e2 := b.ReadU2()
		vIdx, e3 := b.ReadU2()
		if err := firstErr(e1, e2, e3); err != nil {
			return nil, wrapError(MalformedAttribute, err, "Module requires entry")
		}
		name, err := cp.ModuleName(idx)
		if err != nil {
			return nil, err
		}
		entry := ModuleRequireEntry{ModuleName: name, Flags: rflags}
		if vIdx != 0 {
			if entry.Version, err = cp.Utf8(vIdx); err != nil {
				return nil, err
			}
		}
		attr.Requires[i] = entry
	}

	exportCount, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "Module exports_count")
	}
	attr.Exports = make([]ModuleExportEntry, exportCount)
	for i := range attr.Exports {
		e, err := readModulePackageTarget(b, cp)
		if err != nil {
			return nil, err
		}
		attr.Exports[i] = ModuleExportEntry(e)
	}

	openCount, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "Module opens_count")
	}
	attr.Opens = make([]ModuleOpenEntry, openCount)
	for i := range attr.Opens {
		e, err := readModulePackageTarget(b, cp)
		if err != nil {
			return nil, err
		}
		attr.Opens[i] = ModuleOpenEntry(e)
	}

	usesCount, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "Module uses_count")
	}
	attr.Uses = make([]string, usesCount)
	for i := range attr.Uses {
		idx, err := b.ReadU2()
		if err != nil {
			return nil, wrapError(MalformedAttribute, err, "Module uses entry")
		}
		if attr.Uses[i], err = cp.ClassName(idx); err != nil {
			return nil, err
		}
	}

	providesCount, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "Module provides_count")
	}
	attr.Provides = make([]ModuleProvideEntry, providesCount)
	for i := range attr.Provides {
		svcIdx, e1 := b.ReadU2()
		withCount, e2 := b.ReadU2()
		if err := firstErr(e1, e2); err != nil {
			return nil, wrapError(MalformedAttribute, err, "Module provides entry")
		}
		svcName, err := cp.ClassName(svcIdx)
		if err != nil {
			return nil, err
		}
		impls := make([]string, withCount)
		for j := range impls {
			idx, err := b.ReadU2()
			if err != nil {
				return nil, wrapError(MalformedAttribute, err, "Module provides_with entry")
			}
			if impls[j], err = cp.ClassName(idx); err != nil {
				return nil, err
			}
		}
		attr.Provides[i] = ModuleProvideEntry{ServiceName: svcName, WithImplClassName: impls}
	}

	return attr, nil
}

type modulePackageTarget struct {
	PackageName string
	Flags       uint16
	ToModules   []string
}

func readModulePackageTarget(b *Buffer, cp ConstantPool) (modulePackageTarget, error) {
	pkgIdx, e1 := b.ReadU2()
	flags, e2 := b.ReadU2()
	toCount, e3 := b.ReadU2()
	if err := firstErr(e1, e2, e3); err != nil {
		return modulePackageTarget{}, wrapError(MalformedAttribute, err, "module package target")
	}
	pkgName, err := cp.PackageName(pkgIdx)
	if err != nil {
		return modulePackageTarget{}, err
	}
	to := make([]string, toCount)
	for i := range to {
		idx, err := b.ReadU2()
		if err != nil {
			return modulePackageTarget{}, wrapError(MalformedAttribute, err, "module package target entry")
		}
		if to[i], err = cp.ModuleName(idx); err != nil {
			return modulePackageTarget{}, err
		}
	}
	return modulePackageTarget{PackageName: pkgName, Flags: flags, ToModules: to}, nil
}

func parseModulePackagesAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	count, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "ModulePackages")
	}
	names := make([]string, count)
	for i := range names {
		idx, err := b.ReadU2()
		if err != nil {
			return nil, wrapError(MalformedAttribute, err, "ModulePackages entry")
		}
		if names[i], err = cp.PackageName(idx); err != nil {
			return nil, err
		}
	}
	return ModulePackagesAttribute{PackageNames: names}, nil
}

func parseModuleMainClassAttribute(body []byte, cp ConstantPool) (SourceAttribute, error) {
	b := bodyReader(body)
	idx, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "ModuleMainClass")
	}
	name, err := cp.ClassName(idx)
	if err != nil {
		return nil, err
	}
	return ModuleMainClassAttribute{MainClassName: name}, nil
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// findAttribute returns the first attribute with the given name, or nil.
func findAttribute(attrs []SourceAttribute, name string) SourceAttribute {
	for _, a := range attrs {
		if a.Name() == name {
			return a
		}
	}
	return nil
}
