package classfile

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Value string
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

type ConstantIntegerInfo struct {
	Value int32
}

func (c *ConstantIntegerInfo) Tag() ConstantTag { return ConstantInteger }

type ConstantFloatInfo struct {
	Value float32
}

func (c *ConstantFloatInfo) Tag() ConstantTag { return ConstantFloat }

type ConstantLongInfo struct {
	Value int64
}

func (c *ConstantLongInfo) Tag() ConstantTag { return ConstantLong }

type ConstantDoubleInfo struct {
	Value float64
}

func (c *ConstantDoubleInfo) Tag() ConstantTag { return ConstantDouble }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

type ConstantStringInfo struct {
	StringIndex uint16
}

func (c *ConstantStringInfo) Tag() ConstantTag { return ConstantString }

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldrefInfo) Tag() ConstantTag { return ConstantFieldref }

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodrefInfo) Tag() ConstantTag { return ConstantMethodref }

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

func (c *ConstantMethodHandleInfo) Tag() ConstantTag { return ConstantMethodHandle }

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

func (c *ConstantMethodTypeInfo) Tag() ConstantTag { return ConstantMethodType }

type ConstantDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantDynamicInfo) Tag() ConstantTag { return ConstantDynamic }

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag { return ConstantInvokeDynamic }

type ConstantModuleInfo struct {
	NameIndex uint16
}

func (c *ConstantModuleInfo) Tag() ConstantTag { return ConstantModule }

type ConstantPackageInfo struct {
	NameIndex uint16
}

func (c *ConstantPackageInfo) Tag() ConstantTag { return ConstantPackage }

// ConstantPool holds every entry of a class file's constant pool, indexed
// the JVM way: entries are addressed 1..count-1 and cp[index-1] is the
// backing slot. A Long or Double consumes two indices; the second is left
// nil and Get reports it as invalid rather than silently returning the
// wrong entry.
type ConstantPool []ConstantPoolEntry

// Get returns the raw entry at index, or InvalidConstantPoolIndex if index
// is zero, out of range, or the unused second slot of a Long/Double.
func (cp ConstantPool) Get(index uint16) (ConstantPoolEntry, error) {
	if index == 0 || int(index) > len(cp) {
		return nil, errorfIndex(InvalidConstantPoolIndex, int(index), "index out of range [1, %d]", len(cp))
	}
	entry := cp[index-1]
	if entry == nil {
		return nil, errorfIndex(InvalidConstantPoolIndex, int(index), "unused index (second slot of a preceding Long or Double)")
	}
	return entry, nil
}

func getTyped[T ConstantPoolEntry](cp ConstantPool, index uint16) (T, error) {
	var zero T
	entry, err := cp.Get(index)
	if err != nil {
		return zero, err
	}
	typed, ok := entry.(T)
	if !ok {
		return zero, errorfIndex(UnexpectedConstantPoolTag, int(index), "expected %T, found %T", zero, entry)
	}
	return typed, nil
}

// Utf8 returns the string value of the Utf8 entry at index.
func (cp ConstantPool) Utf8(index uint16) (string, error) {
	entry, err := getTyped[*ConstantUtf8Info](cp, index)
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// ClassName resolves the Class entry at index to its internal name.
func (cp ConstantPool) ClassName(index uint16) (string, error) {
	entry, err := getTyped[*ConstantClassInfo](cp, index)
	if err != nil {
		return "", err
	}
	return cp.Utf8(entry.NameIndex)
}

// NameAndType resolves the NameAndType entry at index to its (name,
// descriptor) pair.
func (cp ConstantPool) NameAndType(index uint16) (name, descriptor string, err error) {
	entry, err := getTyped[*ConstantNameAndTypeInfo](cp, index)
	if err != nil {
		return "", "", err
	}
	if name, err = cp.Utf8(entry.NameIndex); err != nil {
		return "", "", err
	}
	if descriptor, err = cp.Utf8(entry.DescriptorIndex); err != nil {
		return "", "", err
	}
	return name, descriptor, nil
}

// String resolves the String entry at index to its referenced Utf8 value.
func (cp ConstantPool) String(index uint16) (string, error) {
	entry, err := getTyped[*ConstantStringInfo](cp, index)
	if err != nil {
		return "", err
	}
	return cp.Utf8(entry.StringIndex)
}

// ModuleName resolves the Module entry at index to its internal name.
func (cp ConstantPool) ModuleName(index uint16) (string, error) {
	entry, err := getTyped[*ConstantModuleInfo](cp, index)
	if err != nil {
		return "", err
	}
	return cp.Utf8(entry.NameIndex)
}

// PackageName resolves the Package entry at index to its internal name.
func (cp ConstantPool) PackageName(index uint16) (string, error) {
	entry, err := getTyped[*ConstantPackageInfo](cp, index)
	if err != nil {
		return "", err
	}
	return cp.Utf8(entry.NameIndex)
}

// Integer returns the value of the Integer entry at index.
func (cp ConstantPool) Integer(index uint16) (int32, error) {
	entry, err := getTyped[*ConstantIntegerInfo](cp, index)
	if err != nil {
		return 0, err
	}
	return entry.Value, nil
}

// Long returns the value of the Long entry at index.
func (cp ConstantPool) Long(index uint16) (int64, error) {
	entry, err := getTyped[*ConstantLongInfo](cp, index)
	if err != nil {
		return 0, err
	}
	return entry.Value, nil
}

// Float returns the value of the Float entry at index.
func (cp ConstantPool) Float(index uint16) (float32, error) {
	entry, err := getTyped[*ConstantFloatInfo](cp, index)
	if err != nil {
		return 0, err
	}
	return entry.Value, nil
}

// Double returns the value of the Double entry at index.
func (cp ConstantPool) Double(index uint16) (float64, error) {
	entry, err := getTyped[*ConstantDoubleInfo](cp, index)
	if err != nil {
		return 0, err
	}
	return entry.Value, nil
}

// Fieldref resolves a Fieldref entry at index to its declaring class's
// internal name, field name, and field descriptor.
func (cp ConstantPool) Fieldref(index uint16) (className, name, descriptor string, err error) {
	entry, err := getTyped[*ConstantFieldrefInfo](cp, index)
	if err != nil {
		return "", "", "", err
	}
	if className, err = cp.ClassName(entry.ClassIndex); err != nil {
		return "", "", "", err
	}
	name, descriptor, err = cp.NameAndType(entry.NameAndTypeIndex)
	return className, name, descriptor, err
}

// Methodref resolves a Methodref entry at index to its declaring class's
// internal name, method name, and method descriptor.
func (cp ConstantPool) Methodref(index uint16) (className, name, descriptor string, err error) {
	entry, err := getTyped[*ConstantMethodrefInfo](cp, index)
	if err != nil {
		return "", "", "", err
	}
	if className, err = cp.ClassName(entry.ClassIndex); err != nil {
		return "", "", "", err
	}
	name, descriptor, err = cp.NameAndType(entry.NameAndTypeIndex)
	return className, name, descriptor, err
}

// InterfaceMethodref resolves an InterfaceMethodref entry at index to its
// declaring interface's internal name, method name, and method descriptor.
func (cp ConstantPool) InterfaceMethodref(index uint16) (className, name, descriptor string, err error) {
	entry, err := getTyped[*ConstantInterfaceMethodrefInfo](cp, index)
	if err != nil {
		return "", "", "", err
	}
	if className, err = cp.ClassName(entry.ClassIndex); err != nil {
		return "", "", "", err
	}
	name, descriptor, err = cp.NameAndType(entry.NameAndTypeIndex)
	return className, name, descriptor, err
}

// MethodHandle returns the raw MethodHandle entry at index.
func (cp ConstantPool) MethodHandle(index uint16) (*ConstantMethodHandleInfo, error) {
	return getTyped[*ConstantMethodHandleInfo](cp, index)
}

// MethodType returns the descriptor string of the MethodType entry at
// index.
func (cp ConstantPool) MethodType(index uint16) (string, error) {
	entry, err := getTyped[*ConstantMethodTypeInfo](cp, index)
	if err != nil {
		return "", err
	}
	return cp.Utf8(entry.DescriptorIndex)
}

// Dynamic returns the raw Dynamic entry at index.
func (cp ConstantPool) Dynamic(index uint16) (*ConstantDynamicInfo, error) {
	return getTyped[*ConstantDynamicInfo](cp, index)
}

// InvokeDynamic returns the raw InvokeDynamic entry at index.
func (cp ConstantPool) InvokeDynamic(index uint16) (*ConstantInvokeDynamicInfo, error) {
	return getTyped[*ConstantInvokeDynamicInfo](cp, index)
}

// LookupConstant resolves any loadable constant (Integer, Float, Long,
// Double, String, Class, MethodHandle, MethodType, or Dynamic) at index to
// its Go-native representation, dereferencing String and Class
// indirections to the underlying value.
func (cp ConstantPool) LookupConstant(index uint16) (interface{}, error) {
	entry, err := cp.Get(index)
	if err != nil {
		return nil, err
	}
	switch v := entry.(type) {
	case *ConstantIntegerInfo:
		return v.Value, nil
	case *ConstantFloatInfo:
		return v.Value, nil
	case *ConstantLongInfo:
		return v.Value, nil
	case *ConstantDoubleInfo:
		return v.Value, nil
	case *ConstantStringInfo:
		return cp.Utf8(v.StringIndex)
	case *ConstantClassInfo:
		return cp.Utf8(v.NameIndex)
	case *ConstantMethodHandleInfo, *ConstantMethodTypeInfo, *ConstantDynamicInfo:
		return v, nil
	default:
		return nil, errorfIndex(UnexpectedConstantPoolTag, int(index), "entry of tag %s is not a loadable constant", entry.Tag())
	}
}

// readConstantPool reads constant_pool_count and the entries that follow,
// threading the two-slot rule for Long and Double through the loop index
// the same way the class file format's own layout does.
func readConstantPool(buf *Buffer) (ConstantPool, error) {
	count, err := buf.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedInput, err, "reading constant_pool_count")
	}
	if count == 0 {
		return nil, newError(MalformedInput, "constant_pool_count must be at least 1")
	}
	cp := make(ConstantPool, count-1)
	for i := 1; i < int(count); i++ {
		entry, wide, err := readConstantPoolEntry(buf)
		if err != nil {
			return nil, err
		}
		cp[i-1] = entry
		if wide {
			i++
		}
	}
	return cp, nil
}

// readConstantPoolEntry reads one tagged entry. wide is true for Long and
// Double, telling the caller to reserve the following index too.
func readConstantPoolEntry(buf *Buffer) (entry ConstantPoolEntry, wide bool, err error) {
	tagByte, err := buf.ReadU1()
	if err != nil {
		return nil, false, wrapError(MalformedInput, err, "reading constant pool tag")
	}
	switch ConstantTag(tagByte) {
	case ConstantUtf8:
		length, err := buf.ReadU2()
		if err != nil {
			return nil, false, err
		}
		raw, err := buf.ReadBytes(int(length))
		if err != nil {
			return nil, false, err
		}
		s, err := decodeModifiedUTF8(raw)
		if err != nil {
			return nil, false, err
		}
		return &ConstantUtf8Info{Value: s}, false, nil
	case ConstantInteger:
		v, err := buf.ReadI4()
		return &ConstantIntegerInfo{Value: v}, false, err
	case ConstantFloat:
		v, err := buf.ReadF4()
		return &ConstantFloatInfo{Value: v}, false, err
	case ConstantLong:
		v, err := buf.ReadI8()
		return &ConstantLongInfo{Value: v}, true, err
	case ConstantDouble:
		v, err := buf.ReadF8()
		return &ConstantDoubleInfo{Value: v}, true, err
	case ConstantClass:
		idx, err := buf.ReadU2()
		return &ConstantClassInfo{NameIndex: idx}, false, err
	case ConstantString:
		idx, err := buf.ReadU2()
		return &ConstantStringInfo{StringIndex: idx}, false, err
	case ConstantFieldref:
		c, n, err := readRefPair(buf)
		return &ConstantFieldrefInfo{ClassIndex: c, NameAndTypeIndex: n}, false, err
	case ConstantMethodref:
		c, n, err := readRefPair(buf)
		return &ConstantMethodrefInfo{ClassIndex: c, NameAndTypeIndex: n}, false, err
	case ConstantInterfaceMethodref:
		c, n, err := readRefPair(buf)
		return &ConstantInterfaceMethodrefInfo{ClassIndex: c, NameAndTypeIndex: n}, false, err
	case ConstantNameAndType:
		n, d, err := readRefPair(buf)
		return &ConstantNameAndTypeInfo{NameIndex: n, DescriptorIndex: d}, false, err
	case ConstantMethodHandle:
		kind, err := buf.ReadU1()
		if err != nil {
			return nil, false, err
		}
		idx, err := buf.ReadU2()
		return &ConstantMethodHandleInfo{ReferenceKind: MethodHandleKind(kind), ReferenceIndex: idx}, false, err
	case ConstantMethodType:
		idx, err := buf.ReadU2()
		return &ConstantMethodTypeInfo{DescriptorIndex: idx}, false, err
	case ConstantDynamic:
		b, n, err := readRefPair(buf)
		return &ConstantDynamicInfo{BootstrapMethodAttrIndex: b, NameAndTypeIndex: n}, false, err
	case ConstantInvokeDynamic:
		b, n, err := readRefPair(buf)
		return &ConstantInvokeDynamicInfo{BootstrapMethodAttrIndex: b, NameAndTypeIndex: n}, false, err
	case ConstantModule:
		idx, err := buf.ReadU2()
		return &ConstantModuleInfo{NameIndex: idx}, false, err
	case ConstantPackage:
		idx, err := buf.ReadU2()
		return &ConstantPackageInfo{NameIndex: idx}, false, err
	default:
		return nil, false, errorfAt(MalformedInput, buf.Position()-1, "unknown constant pool tag %d", tagByte)
	}
}

func readRefPair(buf *Buffer) (a, b uint16, err error) {
	if a, err = buf.ReadU2(); err != nil {
		return 0, 0, err
	}
	if b, err = buf.ReadU2(); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
