package classfile

import "sync/atomic"

// ClassReader decodes a single class file. Construction eagerly reads the
// header, constant pool, access flags, and this/super/interface names;
// Accept defers reading fields, methods, and attributes until the caller
// has a TypeDefinition ready to receive the self-reference registration
// and a ClassVisitor ready to be notified.
type ClassReader struct {
	buf      *Buffer
	resolver MetadataResolver

	minorVersion uint16
	majorVersion uint16
	pool         ConstantPool
	accessFlags  AccessFlags
	thisClass    uint16
	superClass   uint16
	interfaces   []uint16

	thisClassName  string
	superClassName string

	completed atomic.Bool

	// Populated by the first Accept call and replayed, without touching buf
	// again, on every call after that.
	fields               []*FieldInfoRaw
	methods              []*MethodInfoRaw
	classAttrs           []SourceAttribute
	formalTypeParameters []*GenericParameter
	classSignature       *string
	interfaceNames       []string
}

// New reads a class file's header through its interfaces table (steps 1-7
// of the decode) and returns a ClassReader ready for Accept. resolver may
// be nil, in which case the reader still self-registers into its own
// private frame but nothing outside this file can be resolved.
func New(resolver MetadataResolver, buf *Buffer) (*ClassReader, error) {
	magic, err := buf.ReadU4()
	if err != nil {
		return nil, wrapError(MalformedInput, err, "reading magic")
	}
	if magic != Magic {
		return nil, errorfAt(InvalidMagic, 0, "invalid magic 0x%08X, expected 0x%08X", magic, uint32(Magic))
	}

	minor, err := buf.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedInput, err, "reading minor_version")
	}
	major, err := buf.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedInput, err, "reading major_version")
	}

	pool, err := readConstantPool(buf)
	if err != nil {
		return nil, err
	}

	accessFlags, err := buf.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedInput, err, "reading access_flags")
	}
	thisClass, err := buf.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedInput, err, "reading this_class")
	}
	superClass, err := buf.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedInput, err, "reading super_class")
	}

	var thisClassName string
	if thisClass != 0 {
		if thisClassName, err = pool.ClassName(thisClass); err != nil {
			return nil, err
		}
	}
	var superClassName string
	if superClass != 0 {
		if superClassName, err = pool.ClassName(superClass); err != nil {
			return nil, err
		}
	}

	interfaceCount, err := buf.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedInput, err, "reading interfaces_count")
	}
	interfaces := make([]uint16, interfaceCount)
	for i := range interfaces {
		if interfaces[i], err = buf.ReadU2(); err != nil {
			return nil, wrapError(MalformedInput, err, "reading interfaces entry")
		}
	}

	return &ClassReader{
		buf:            buf,
		resolver:       resolver,
		minorVersion:   minor,
		majorVersion:   major,
		pool:           pool,
		accessFlags:    AccessFlags(accessFlags),
		thisClass:      thisClass,
		superClass:     superClass,
		interfaces:     interfaces,
		thisClassName:  thisClassName,
		superClassName: superClassName,
	}, nil
}

// ConstantPool exposes the reader's already-decoded constant pool, useful
// for callers that want to look up additional metadata not surfaced on
// TypeDefinition.
func (r *ClassReader) ConstantPool() ConstantPool { return r.pool }

// Accept reads fields, methods, and the class's own attributes into type_
// and invokes visitor. The buffer is only ever read once: if Accept is
// called again (on the same or a different type_), the second and later
// calls skip straight to populating type_ from the members decoded on the
// first call and invoke visitor again — they never touch buf.
//
// The resolver frame is pushed before any field or method is read and
// popped only after visitor.Visit returns (on every exit path, including
// error returns). Once the members are decoded, type_ is self-registered
// into that frame until visitor.Visit returns: a caller inside
// visitor.Visit can resolve the class currently
// being accepted via resolver.FindType(internalName) and get back type_
// itself, not a stale or absent entry.
func (r *ClassReader) Accept(type_ *TypeDefinition, visitor ClassVisitor) error {
	frame := NewResolverFrame()
	if r.resolver != nil {
		r.resolver.PushFrame(frame)
		defer r.resolver.PopFrame()
	}

	if r.completed.CompareAndSwap(false, true) {
		if err := r.decode(type_, frame); err != nil {
			return err
		}
	} else {
		r.populate(type_)
	}

	frame.AddType(r.thisClassName, ClassType{InternalClassName: r.thisClassName, Target: type_})
	defer frame.RemoveType(r.thisClassName)

	var superNamePtr *string
	if r.superClassName != "" {
		superNamePtr = &r.superClassName
	}
	visitor.Visit(type_, r.majorVersion, r.minorVersion, r.accessFlags, r.thisClassName, r.classSignature, superNamePtr, r.interfaceNames)

	return nil
}

// decode performs the one-time buffer read: fields, methods, class
// attributes, and generic signatures, binding self-references against
// type_ along the way. Results are cached on r so later Accept calls can
// replay them without touching buf again. frame is the caller's
// already-pushed resolver frame, used here only to scope formal type
// parameters while parsing method signatures; self-registration of type_
// itself happens in Accept, after decode returns.
func (r *ClassReader) decode(type_ *TypeDefinition, frame *ResolverFrame) error {
	self := ClassType{InternalClassName: r.thisClassName, Target: type_}

	interfaceNames := make([]string, len(r.interfaces))
	for i, idx := range r.interfaces {
		name, err := r.pool.ClassName(idx)
		if err != nil {
			return err
		}
		interfaceNames[i] = name
	}
	r.interfaceNames = interfaceNames

	fieldCount, err := r.buf.ReadU2()
	if err != nil {
		return wrapError(MalformedInput, err, "reading fields_count")
	}
	fields := make([]*FieldInfoRaw, fieldCount)
	for i := range fields {
		f, err := readFieldInfo(r.buf, r.pool)
		if err != nil {
			return err
		}
		fields[i] = f
	}
	r.fields = fields

	methodCount, err := r.buf.ReadU2()
	if err != nil {
		return wrapError(MalformedInput, err, "reading methods_count")
	}
	methods := make([]*MethodInfoRaw, methodCount)
	for i := range methods {
		m, err := readMethodInfo(r.buf, r.pool)
		if err != nil {
			return err
		}
		methods[i] = m
	}
	r.methods = methods

	classAttrs, err := readAttributes(r.buf, r.pool)
	if err != nil {
		return err
	}
	r.classAttrs = classAttrs

	var classSignature *string
	if sigAttr, ok := findAttribute(classAttrs, "Signature").(SignatureAttribute); ok {
		classSignature = &sigAttr.Signature
		parsed, err := ParseClassSignature(r.thisClassName, sigAttr.Signature)
		if err != nil {
			return err
		}
		r.formalTypeParameters = parsed.FormalTypeParameters
	}
	r.classSignature = classSignature

	for _, m := range methods {
		sigAttr, ok := findAttribute(m.Attributes, "Signature").(SignatureAttribute)
		if !ok {
			continue
		}
		formals := r.formalTypeParameters
		scopedFrame := frame
		for _, gp := range formals {
			scopedFrame.AddTypeVariable(gp.Name, gp)
		}
		parsed, err := ParseMethodSignature(r.thisClassName, sigAttr.Signature, func(name string) (*GenericParameter, bool) {
			if r.resolver != nil {
				return r.resolver.FindTypeVariable(name)
			}
			return scopedFrame.findTypeVariable(name)
		})
		for _, gp := range formals {
			scopedFrame.RemoveTypeVariable(gp.Name)
		}
		if err != nil {
			return err
		}
		bindMethodSignatureSelfReferences(parsed, r.thisClassName, self)
		m.Signature = parsed
	}

	r.buf.Reset(0)

	r.populate(type_)
	return nil
}

// populate copies the cached, already-decoded members onto type_. Called
// once at the end of decode and again on every subsequent Accept call.
func (r *ClassReader) populate(type_ *TypeDefinition) {
	type_.InternalName = r.thisClassName
	type_.Package, type_.SimpleName = splitInternalName(r.thisClassName)
	type_.MajorVersion = r.majorVersion
	type_.MinorVersion = r.minorVersion
	type_.AccessFlags = r.accessFlags
	type_.SuperName = r.superClassName
	type_.InterfaceNames = r.interfaceNames
	type_.Fields = r.fields
	type_.Methods = r.methods
	type_.Attributes = r.classAttrs
	type_.FormalTypeParameters = r.formalTypeParameters
}

// bindMethodSignatureSelfReferences substitutes any ClassType in the
// parsed signature that names the enclosing class with self, so a forward
// reference to "LFoo;" inside Foo's own method signatures hands back the
// same TypeDefinition-backed reference rather than a bare name.
func bindMethodSignatureSelfReferences(sig *IMethodSignature, selfName string, self ClassType) {
	for i, t := range sig.ParameterTypes {
		sig.ParameterTypes[i] = bindSelfReference(t, selfName, self)
	}
	sig.ReturnType = bindSelfReference(sig.ReturnType, selfName, self)
	for i, t := range sig.ThrownTypes {
		sig.ThrownTypes[i] = bindSelfReference(t, selfName, self)
	}
}

func bindSelfReference(t TypeReference, selfName string, self ClassType) TypeReference {
	switch v := t.(type) {
	case ClassType:
		if v.InternalClassName == selfName {
			return self
		}
		return v
	case ArrayType:
		return ArrayType{Element: bindSelfReference(v.Element, selfName, self)}
	case ParameterizedType:
		args := make([]TypeReference, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = bindSelfReference(a, selfName, self)
		}
		return ParameterizedType{Raw: bindSelfReference(v.Raw, selfName, self), Arguments: args}
	case WildcardType:
		out := WildcardType{}
		if v.ExtendsBound != nil {
			out.ExtendsBound = bindSelfReference(v.ExtendsBound, selfName, self)
		}
		if v.SuperBound != nil {
			out.SuperBound = bindSelfReference(v.SuperBound, selfName, self)
		}
		return out
	default:
		return t
	}
}

func splitInternalName(internalName string) (pkg, simple string) {
	for i := len(internalName) - 1; i >= 0; i-- {
		if internalName[i] == '/' {
			return internalName[:i], internalName[i+1:]
		}
	}
	return "", internalName
}
