package classfile

// ExceptionTableEntry is one row of a Code attribute's exception table.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16 // constant pool index into ClassInfo, or 0 for catch-all
}

// CodeAttribute is the decoded form of a method's Code attribute, parsed
// lazily from its BlobAttribute body on first access. The bytecode itself
// is kept opaque; only the surrounding structure (stack/locals sizing,
// exception table, nested attributes) is interpreted.
type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []SourceAttribute
}

// decodeCodeAttribute parses a Code attribute's body per its fixed layout:
// max_stack, max_locals, a length-prefixed opaque code array, an
// exception table, and a trailing attributes table (commonly
// LineNumberTable, LocalVariableTable, StackMapTable).
func decodeCodeAttribute(body []byte, cp ConstantPool) (*CodeAttribute, error) {
	b := bodyReader(body)
	maxStack, e1 := b.ReadU2()
	maxLocals, e2 := b.ReadU2()
	codeLength, e3 := b.ReadU4()
	if err := firstErr(e1, e2, e3); err != nil {
		return nil, wrapError(MalformedAttribute, err, "Code header")
	}
	code, err := b.ReadBytes(int(codeLength))
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "Code array")
	}

	exceptionCount, err := b.ReadU2()
	if err != nil {
		return nil, wrapError(MalformedAttribute, err, "Code exception_table_length")
	}
	exceptions := make([]ExceptionTableEntry, exceptionCount)
	for i := range exceptions {
		startPC, e1 := b.ReadU2()
		endPC, e2 := b.ReadU2()
		handlerPC, e3 := b.ReadU2()
		catchType, e4 := b.ReadU2()
		if err := firstErr(e1, e2, e3, e4); err != nil {
			return nil, wrapError(MalformedAttribute, err, "Code exception_table entry")
		}
		exceptions[i] = ExceptionTableEntry{StartPC: startPC, EndPC: endPC, HandlerPC: handlerPC, CatchType: catchType}
	}

	attrs, err := readAttributes(b, cp)
	if err != nil {
		return nil, err
	}

	return &CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		ExceptionTable: exceptions,
		Attributes:     attrs,
	}, nil
}
