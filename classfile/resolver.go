package classfile

import "sync"

// ResolverFrame maps internal class names to resolved type references and
// type-variable names to their generic parameter declarations, for one
// scope of name resolution. It is not itself synchronized: a frame is
// owned by exactly one ClassReader.Accept call for its entire lifetime,
// pushed on entry and popped on every exit path including error returns.
type ResolverFrame struct {
	types         map[string]TypeReference
	typeVariables map[string]*GenericParameter
}

// NewResolverFrame returns an empty frame ready to be pushed.
func NewResolverFrame() *ResolverFrame {
	return &ResolverFrame{
		types:         make(map[string]TypeReference),
		typeVariables: make(map[string]*GenericParameter),
	}
}

// AddType registers a name→TypeReference binding. It is used to install
// the in-progress TypeDefinition under construction so that any forward
// self-reference encountered later in the same class file resolves to the
// same object instead of recursing into a fresh load.
func (f *ResolverFrame) AddType(internalName string, ref TypeReference) {
	f.types[internalName] = ref
}

// RemoveType undoes AddType. Paired calls bracket the scope in which the
// self-reference is visible.
func (f *ResolverFrame) RemoveType(internalName string) {
	delete(f.types, internalName)
}

// AddTypeVariable registers a name→GenericParameter binding, used while a
// Signature attribute's formal type parameters are in scope.
func (f *ResolverFrame) AddTypeVariable(name string, gp *GenericParameter) {
	f.typeVariables[name] = gp
}

// RemoveTypeVariable undoes AddTypeVariable.
func (f *ResolverFrame) RemoveTypeVariable(name string) {
	delete(f.typeVariables, name)
}

func (f *ResolverFrame) findType(internalName string) (TypeReference, bool) {
	ref, ok := f.types[internalName]
	return ref, ok
}

func (f *ResolverFrame) findTypeVariable(name string) (*GenericParameter, bool) {
	gp, ok := f.typeVariables[name]
	return gp, ok
}

// MetadataResolver is the interface a ClassReader depends on to resolve
// type names and type variables against state outside its own file: the
// stack of frames contributed by classes currently being built.
type MetadataResolver interface {
	PushFrame(frame *ResolverFrame)
	PopFrame() *ResolverFrame
	FindType(internalName string) (TypeReference, bool)
	FindTypeVariable(name string) (*GenericParameter, bool)
}

// Resolver is the shared, concurrency-safe implementation of
// MetadataResolver. A single Resolver is typically shared across many
// ClassReaders decoding different class files concurrently: each reader
// pushes and pops its own frame, but lookups may walk frames pushed by
// other readers running on other goroutines, so the frame stack is
// guarded by a RWMutex — push/pop take the write lock, FindType/
// FindTypeVariable take the read lock.
type Resolver struct {
	mu     sync.RWMutex
	frames []*ResolverFrame
}

// NewResolver returns an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// PushFrame pushes frame onto the stack. The caller retains ownership and
// must pop it (via PopFrame) on every exit path.
func (r *Resolver) PushFrame(frame *ResolverFrame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
}

// PopFrame removes and returns the top frame, or nil if the stack is
// empty.
func (r *Resolver) PopFrame() *ResolverFrame {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return nil
	}
	last := r.frames[len(r.frames)-1]
	r.frames = r.frames[:len(r.frames)-1]
	return last
}

// FindType walks the frame stack top-down looking for internalName,
// returning the first match. Top-down search means the innermost,
// most-recently-pushed frame — typically the class currently being built
// — wins over anything an outer caller registered.
func (r *Resolver) FindType(internalName string) (TypeReference, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.frames) - 1; i >= 0; i-- {
		if ref, ok := r.frames[i].findType(internalName); ok {
			return ref, true
		}
	}
	return nil, false
}

// FindTypeVariable walks the frame stack top-down looking for name.
func (r *Resolver) FindTypeVariable(name string) (*GenericParameter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.frames) - 1; i >= 0; i-- {
		if gp, ok := r.frames[i].findTypeVariable(name); ok {
			return gp, true
		}
	}
	return nil, false
}
