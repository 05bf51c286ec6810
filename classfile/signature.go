package classfile

import "strings"

// IMethodSignature is the parsed form of a method's generic Signature
// attribute. Its formal type parameters scope over ParameterTypes,
// ReturnType, and ThrownTypes — a type variable mentioned in any of those
// three resolves against FormalTypeParameters before falling back to an
// enclosing scope.
type IMethodSignature struct {
	FormalTypeParameters []*GenericParameter
	ParameterTypes       []TypeReference
	ReturnType            TypeReference
	ThrownTypes           []TypeReference
}

// IClassSignature is the parsed form of a class's generic Signature
// attribute: its own formal type parameters, its generic superclass, and
// its generic superinterfaces.
type IClassSignature struct {
	FormalTypeParameters []*GenericParameter
	SuperclassType        TypeReference
	SuperinterfaceTypes   []TypeReference
}

// genericContext is one entry of the signature parser's scope stack, kept
// as a plain slice on the parser rather than on the shared Resolver: a
// signature is parsed to completion in one call, so its own stack never
// needs to be visible to anything else.
type genericContext struct {
	owner  string
	params map[string]*GenericParameter
}

type signatureParser struct {
	s              string
	pos            int
	scopes         []*genericContext
	externalLookup func(name string) (*GenericParameter, bool)
}

func newSignatureParser(s string) *signatureParser {
	return &signatureParser{s: s}
}

func (p *signatureParser) pushGenericContext(owner string, params []*GenericParameter) {
	ctx := &genericContext{owner: owner, params: make(map[string]*GenericParameter, len(params))}
	for _, gp := range params {
		ctx.params[gp.Name] = gp
	}
	p.scopes = append(p.scopes, ctx)
}

func (p *signatureParser) popGenericContext() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *signatureParser) lookupTypeVariable(name string) (*GenericParameter, bool) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if gp, ok := p.scopes[i].params[name]; ok {
			return gp, true
		}
	}
	return nil, false
}

func (p *signatureParser) peek() (byte, bool) {
	if p.pos >= len(p.s) {
		return 0, false
	}
	return p.s[p.pos], true
}

func (p *signatureParser) errAt(format string, args ...interface{}) *DecodeError {
	return errorfAt(MalformedSignature, p.pos, format, args...)
}

// ParseClassSignature parses a ClassSignature: FormalTypeParameters?
// SuperclassSignature SuperinterfaceSignature*.
func ParseClassSignature(ownerInternalName, sig string) (*IClassSignature, error) {
	p := newSignatureParser(sig)
	formals, err := p.parseOptionalFormalTypeParameters()
	if err != nil {
		return nil, err
	}
	setDeclaringScope(formals, ownerInternalName)
	p.pushGenericContext(ownerInternalName, formals)
	defer p.popGenericContext()

	super, err := p.parseClassTypeSignature()
	if err != nil {
		return nil, err
	}
	var interfaces []TypeReference
	for {
		c, ok := p.peek()
		if !ok || c != 'L' {
			break
		}
		iface, err := p.parseClassTypeSignature()
		if err != nil {
			return nil, err
		}
		interfaces = append(interfaces, iface)
	}
	if p.pos != len(p.s) {
		return nil, p.errAt("trailing characters in class signature %q", sig)
	}
	return &IClassSignature{FormalTypeParameters: formals, SuperclassType: super, SuperinterfaceTypes: interfaces}, nil
}

// ParseMethodSignature parses a MethodSignature: FormalTypeParameters?
// "(" TypeSignature* ")" ReturnType ThrowsSignature*. externalLookup, when
// non-nil, resolves type variables declared by the enclosing class (the
// method's own formal type parameters are always tried first).
func ParseMethodSignature(ownerInternalName, sig string, externalLookup func(name string) (*GenericParameter, bool)) (*IMethodSignature, error) {
	p := newSignatureParser(sig)
	p.externalLookup = externalLookup
	formals, err := p.parseOptionalFormalTypeParameters()
	if err != nil {
		return nil, err
	}
	setDeclaringScope(formals, ownerInternalName)
	p.pushGenericContext(ownerInternalName, formals)
	defer p.popGenericContext()

	if c, ok := p.peek(); !ok || c != '(' {
		return nil, p.errAt("method signature must start with '(': %q", sig)
	}
	p.pos++
	var params []TypeReference
	for {
		c, ok := p.peek()
		if !ok {
			return nil, p.errAt("unterminated parameter list in method signature %q", sig)
		}
		if c == ')' {
			p.pos++
			break
		}
		t, err := p.parseTypeSignature()
		if err != nil {
			return nil, err
		}
		params = append(params, t)
	}

	ret, err := p.parseReturnType()
	if err != nil {
		return nil, err
	}

	var thrown []TypeReference
	for {
		c, ok := p.peek()
		if !ok || c != '^' {
			break
		}
		p.pos++
		t, err := p.parseThrowsType()
		if err != nil {
			return nil, err
		}
		thrown = append(thrown, t)
	}
	if p.pos != len(p.s) {
		return nil, p.errAt("trailing characters in method signature %q", sig)
	}
	return &IMethodSignature{FormalTypeParameters: formals, ParameterTypes: params, ReturnType: ret, ThrownTypes: thrown}, nil
}

// ParseFieldSignature parses a FieldSignature, which is simply a
// ReferenceTypeSignature evaluated in whatever generic context the
// enclosing class or method already pushed.
func ParseFieldSignature(lookup func(name string) (*GenericParameter, bool), sig string) (TypeReference, error) {
	p := newSignatureParser(sig)
	if lookup != nil {
		p.pushGenericContext("", nil)
		p.externalLookup = lookup
	}
	t, err := p.parseReferenceTypeSignature()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, p.errAt("trailing characters in field signature %q", sig)
	}
	return t, nil
}

func setDeclaringScope(formals []*GenericParameter, ownerInternalName string) {
	for _, gp := range formals {
		gp.DeclaringName = ownerInternalName
	}
}

func (p *signatureParser) parseOptionalFormalTypeParameters() ([]*GenericParameter, error) {
	c, ok := p.peek()
	if !ok || c != '<' {
		return nil, nil
	}
	p.pos++
	var params []*GenericParameter
	for {
		c, ok := p.peek()
		if !ok {
			return nil, p.errAt("unterminated formal type parameters")
		}
		if c == '>' {
			p.pos++
			break
		}
		gp, err := p.parseFormalTypeParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, gp)
	}
	return params, nil
}

func (p *signatureParser) parseFormalTypeParameter() (*GenericParameter, error) {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] != ':' {
		p.pos++
	}
	if p.pos >= len(p.s) {
		return nil, p.errAt("formal type parameter missing ':'")
	}
	name := p.s[start:p.pos]
	gp := &GenericParameter{Name: name}

	for {
		if p.pos >= len(p.s) || p.s[p.pos] != ':' {
			break
		}
		p.pos++
		c, ok := p.peek()
		if ok && (c == 'L' || c == 'T' || c == '[') {
			bound, err := p.parseReferenceTypeSignature()
			if err != nil {
				return nil, err
			}
			gp.Bounds = append(gp.Bounds, bound)
		}
		// an empty class bound (interface-only upper bound) is legal and
		// simply contributes no class bound.
		if c, ok := p.peek(); !ok || c != ':' {
			break
		}
	}
	return gp, nil
}

func (p *signatureParser) parseReturnType() (TypeReference, error) {
	c, ok := p.peek()
	if !ok {
		return nil, p.errAt("missing return type")
	}
	if c == 'V' {
		p.pos++
		return PrimitiveType{Kind: PrimitiveVoid}, nil
	}
	return p.parseTypeSignature()
}

func (p *signatureParser) parseThrowsType() (TypeReference, error) {
	c, ok := p.peek()
	if !ok {
		return nil, p.errAt("missing thrown type")
	}
	if c == 'T' {
		return p.parseTypeVariableSignature()
	}
	return p.parseClassTypeSignature()
}

// parseTypeSignature parses either a primitive descriptor character or a
// ReferenceTypeSignature.
func (p *signatureParser) parseTypeSignature() (TypeReference, error) {
	c, ok := p.peek()
	if !ok {
		return nil, p.errAt("unexpected end of signature")
	}
	switch c {
	case 'B':
		p.pos++
		return PrimitiveType{Kind: PrimitiveByte}, nil
	case 'C':
		p.pos++
		return PrimitiveType{Kind: PrimitiveChar}, nil
	case 'D':
		p.pos++
		return PrimitiveType{Kind: PrimitiveDouble}, nil
	case 'F':
		p.pos++
		return PrimitiveType{Kind: PrimitiveFloat}, nil
	case 'I':
		p.pos++
		return PrimitiveType{Kind: PrimitiveInt}, nil
	case 'J':
		p.pos++
		return PrimitiveType{Kind: PrimitiveLong}, nil
	case 'S':
		p.pos++
		return PrimitiveType{Kind: PrimitiveShort}, nil
	case 'Z':
		p.pos++
		return PrimitiveType{Kind: PrimitiveBoolean}, nil
	default:
		return p.parseReferenceTypeSignature()
	}
}

func (p *signatureParser) parseReferenceTypeSignature() (TypeReference, error) {
	c, ok := p.peek()
	if !ok {
		return nil, p.errAt("unexpected end of signature")
	}
	switch c {
	case 'L':
		return p.parseClassTypeSignature()
	case 'T':
		return p.parseTypeVariableSignature()
	case '[':
		p.pos++
		elem, err := p.parseTypeSignature()
		if err != nil {
			return nil, err
		}
		return ArrayType{Element: elem}, nil
	default:
		return nil, p.errAt("invalid reference type signature start %q", c)
	}
}

func (p *signatureParser) parseTypeVariableSignature() (TypeReference, error) {
	if c, ok := p.peek(); !ok || c != 'T' {
		return nil, p.errAt("expected type variable")
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] != ';' {
		p.pos++
	}
	if p.pos >= len(p.s) {
		return nil, p.errAt("unterminated type variable")
	}
	name := p.s[start:p.pos]
	p.pos++

	if gp, ok := p.lookupTypeVariable(name); ok {
		return gp, nil
	}
	if p.externalLookup != nil {
		if gp, ok := p.externalLookup(name); ok {
			return gp, nil
		}
	}
	return nil, errorfAt(UnresolvedTypeVariable, start, "type variable %q has no enclosing declaring scope", name)
}

func (p *signatureParser) parseClassTypeSignature() (TypeReference, error) {
	if c, ok := p.peek(); !ok || c != 'L' {
		return nil, p.errAt("expected class type signature")
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] != ';' && p.s[p.pos] != '<' && p.s[p.pos] != '.' {
		p.pos++
	}
	if p.pos >= len(p.s) {
		return nil, p.errAt("unterminated class type signature")
	}
	name := strings.ReplaceAll(p.s[start:p.pos], ".", "$")
	var raw TypeReference = ClassType{InternalClassName: name}

	if c, ok := p.peek(); ok && c == '<' {
		args, err := p.parseTypeArguments()
		if err != nil {
			return nil, err
		}
		raw = ParameterizedType{Raw: raw, Arguments: args}
	}

	for {
		c, ok := p.peek()
		if !ok || c != '.' {
			break
		}
		p.pos++
		suffixStart := p.pos
		for p.pos < len(p.s) && p.s[p.pos] != ';' && p.s[p.pos] != '<' && p.s[p.pos] != '.' {
			p.pos++
		}
		suffix := p.s[suffixStart:p.pos]
		name = name + "$" + suffix
		raw = ClassType{InternalClassName: name}
		if c, ok := p.peek(); ok && c == '<' {
			args, err := p.parseTypeArguments()
			if err != nil {
				return nil, err
			}
			raw = ParameterizedType{Raw: raw, Arguments: args}
		}
	}

	if c, ok := p.peek(); !ok || c != ';' {
		return nil, p.errAt("class type signature missing terminating ';'")
	}
	p.pos++
	return raw, nil
}

func (p *signatureParser) parseTypeArguments() ([]TypeReference, error) {
	if c, ok := p.peek(); !ok || c != '<' {
		return nil, p.errAt("expected type arguments")
	}
	p.pos++
	var args []TypeReference
	for {
		c, ok := p.peek()
		if !ok {
			return nil, p.errAt("unterminated type arguments")
		}
		if c == '>' {
			p.pos++
			break
		}
		arg, err := p.parseTypeArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (p *signatureParser) parseTypeArgument() (TypeReference, error) {
	c, ok := p.peek()
	if !ok {
		return nil, p.errAt("unexpected end in type argument")
	}
	switch c {
	case '*':
		p.pos++
		return WildcardType{}, nil
	case '+':
		p.pos++
		bound, err := p.parseReferenceTypeSignature()
		if err != nil {
			return nil, err
		}
		return WildcardType{ExtendsBound: bound}, nil
	case '-':
		p.pos++
		bound, err := p.parseReferenceTypeSignature()
		if err != nil {
			return nil, err
		}
		return WildcardType{SuperBound: bound}, nil
	default:
		return p.parseReferenceTypeSignature()
	}
}
