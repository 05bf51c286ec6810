package classfile

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolverFrameAddRemoveType(t *testing.T) {
	f := NewResolverFrame()
	ref := ClassType{InternalClassName: "com/example/Foo"}
	f.AddType("com/example/Foo", ref)
	got, ok := f.findType("com/example/Foo")
	require.True(t, ok)
	require.Equal(t, ref, got)

	f.RemoveType("com/example/Foo")
	_, ok = f.findType("com/example/Foo")
	require.False(t, ok)
}

func TestResolverFrameAddRemoveTypeVariable(t *testing.T) {
	f := NewResolverFrame()
	gp := &GenericParameter{Name: "T"}
	f.AddTypeVariable("T", gp)
	got, ok := f.findTypeVariable("T")
	require.True(t, ok)
	require.Same(t, gp, got)

	f.RemoveTypeVariable("T")
	_, ok = f.findTypeVariable("T")
	require.False(t, ok)
}

func TestResolverPushPopOrder(t *testing.T) {
	r := NewResolver()
	f1 := NewResolverFrame()
	f2 := NewResolverFrame()
	r.PushFrame(f1)
	r.PushFrame(f2)

	popped := r.PopFrame()
	require.Same(t, f2, popped)
	popped = r.PopFrame()
	require.Same(t, f1, popped)
	require.Nil(t, r.PopFrame())
}

func TestResolverFindTypePrefersInnermostFrame(t *testing.T) {
	r := NewResolver()
	outer := NewResolverFrame()
	outer.AddType("com/example/Foo", ClassType{InternalClassName: "com/example/Foo"})
	r.PushFrame(outer)
	defer r.PopFrame()

	inner := NewResolverFrame()
	selfRef := ClassType{InternalClassName: "com/example/Foo", Target: &TypeDefinition{InternalName: "com/example/Foo"}}
	inner.AddType("com/example/Foo", selfRef)
	r.PushFrame(inner)
	defer r.PopFrame()

	ref, ok := r.FindType("com/example/Foo")
	require.True(t, ok)
	require.Equal(t, selfRef, ref)
}

func TestResolverFindTypeFallsThroughToOuterFrame(t *testing.T) {
	r := NewResolver()
	outer := NewResolverFrame()
	outer.AddType("com/example/Bar", ClassType{InternalClassName: "com/example/Bar"})
	r.PushFrame(outer)
	defer r.PopFrame()

	inner := NewResolverFrame()
	r.PushFrame(inner)
	defer r.PopFrame()

	ref, ok := r.FindType("com/example/Bar")
	require.True(t, ok)
	require.Equal(t, ClassType{InternalClassName: "com/example/Bar"}, ref)

	_, ok = r.FindType("com/example/Nonexistent")
	require.False(t, ok)
}

func TestResolverFindTypeVariableOrder(t *testing.T) {
	r := NewResolver()
	classGp := &GenericParameter{Name: "T", DeclaringName: "com/example/Box"}
	classFrame := NewResolverFrame()
	classFrame.AddTypeVariable("T", classGp)
	r.PushFrame(classFrame)
	defer r.PopFrame()

	gp, ok := r.FindTypeVariable("T")
	require.True(t, ok)
	require.Same(t, classGp, gp)

	_, ok = r.FindTypeVariable("U")
	require.False(t, ok)
}

// TestResolverConcurrentFindAndPushPop exercises the shared Resolver the
// way several ClassReaders decoding different class files on different
// goroutines would: readers hammering FindType/FindTypeVariable while
// writers push and pop their own frames, all under -race.
func TestResolverConcurrentFindAndPushPop(t *testing.T) {
	r := NewResolver()
	base := NewResolverFrame()
	base.AddType("com/example/Base", ClassType{InternalClassName: "com/example/Base"})
	base.AddTypeVariable("T", &GenericParameter{Name: "T"})
	r.PushFrame(base)
	defer r.PopFrame()

	const readers = 8
	const writers = 4
	const iterations = 200

	var wg sync.WaitGroup
	wg.Add(readers + writers)

	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				r.FindType("com/example/Base")
				r.FindTypeVariable("T")
			}
		}()
	}

	for i := 0; i < writers; i++ {
		name := fmt.Sprintf("com/example/Writer%d", i)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				frame := NewResolverFrame()
				frame.AddType(name, ClassType{InternalClassName: name})
				r.PushFrame(frame)
				r.PopFrame()
			}
		}()
	}

	wg.Wait()

	ref, ok := r.FindType("com/example/Base")
	require.True(t, ok)
	require.Equal(t, ClassType{InternalClassName: "com/example/Base"}, ref)
}
