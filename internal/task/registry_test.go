package task

import (
	"context"
	"testing"

	spinerrors "github.com/maxkimambo/spin/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Missing(t *testing.T) {
	var nilDirect DirectFunc
	var nilCallback CallbackFunc

	registry := Registry{
		"nil-interface": nil,
		"nil-direct":    nilDirect,
		"nil-callback":  nilCallback,
	}

	for _, name := range []string{"missing", "", "nil-interface", "nil-direct", "nil-callback"} {
		t.Run(name, func(t *testing.T) {
			runnable, err := Resolve(name, registry)
			assert.Nil(t, runnable)
			require.Error(t, err)
			assert.True(t, spinerrors.IsTaskNotFound(err))
			assert.Equal(t, "Task '"+name+"' not found", err.Error())
		})
	}
}

func TestResolve_MissingInEmptyRegistry(t *testing.T) {
	_, err := Resolve("missing", Registry{})
	assert.True(t, spinerrors.IsTaskNotFound(err))

	_, err = Resolve("missing", nil)
	assert.True(t, spinerrors.IsTaskNotFound(err))
}

func TestResolve_BuildsIndependentRunnables(t *testing.T) {
	registry := Registry{
		"double": Func(func(ctx context.Context, opts Options) (any, error) {
			return opts.String("n") + opts.String("n"), nil
		}),
	}
	opts := NewOptions(map[string]string{"n": "21"})

	first, err := Resolve("double", registry)
	require.NoError(t, err)
	second, err := Resolve("double", registry)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, "double", first.Name())

	a, err := first.Run(context.Background(), opts)
	require.NoError(t, err)
	b, err := second.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRegistry_NamesAndLookup(t *testing.T) {
	registry := Registry{
		"test":    Func(func(ctx context.Context, opts Options) (any, error) { return nil, nil }),
		"build":   CallbackFunc(func(ctx context.Context, opts Options, done Done) { done(nil, nil) }),
		"default": nil,
	}

	assert.Equal(t, []string{"build", "default", "test"}, registry.Names())

	def, ok := registry.Lookup("build")
	require.True(t, ok)
	assert.Equal(t, KindCallback, def.Kind())

	_, ok = registry.Lookup("default")
	assert.False(t, ok)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "direct", KindDirect.String())
	assert.Equal(t, "callback", KindCallback.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestFunc_NilStaysNil(t *testing.T) {
	assert.Nil(t, Func(nil))
}
