package classfile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// cmpOpts ignores GenericParameter's pointer identity when diffing, since
// two independently parsed signatures are expected to differ only in
// pointer address, not in name/bounds/declaring scope.
var cmpOpts cmp.Option

func init() {
	cmpOpts = cmp.Comparer(func(a, b *GenericParameter) bool {
		if a == nil || b == nil {
			return a == b
		}
		if a.Name != b.Name || a.DeclaringName != b.DeclaringName || len(a.Bounds) != len(b.Bounds) {
			return false
		}
		for i := range a.Bounds {
			if cmp.Diff(a.Bounds[i], b.Bounds[i], cmpOpts) != "" {
				return false
			}
		}
		return true
	})
}

func TestTypeReferenceDeepEqualityViaCmp(t *testing.T) {
	a, err := ParseFieldSignature(nil, "Ljava/util/Map<Ljava/lang/String;Ljava/util/List<Ljava/lang/Integer;>;>;")
	require.NoError(t, err)
	b, err := ParseFieldSignature(nil, "Ljava/util/Map<Ljava/lang/String;Ljava/util/List<Ljava/lang/Integer;>;>;")
	require.NoError(t, err)

	if diff := cmp.Diff(a, b, cmpOpts); diff != "" {
		t.Errorf("two parses of the same signature produced different type graphs (-want +got):\n%s", diff)
	}
}

func TestTypeReferenceDeepEqualityDetectsDifference(t *testing.T) {
	a, err := ParseFieldSignature(nil, "Ljava/util/List<Ljava/lang/String;>;")
	require.NoError(t, err)
	b, err := ParseFieldSignature(nil, "Ljava/util/List<Ljava/lang/Integer;>;")
	require.NoError(t, err)

	require.NotEqual(t, "", cmp.Diff(a, b, cmpOpts))
}
