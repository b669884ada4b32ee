package acorn

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := NewComponent[componentOne](func(Container) (componentOne, error) {
			return nil, nil
		})

		assert.Equal(t, []string{TypeOf[componentOne]().String()}, tokenNames(c.Provides()))
		assert.Empty(t, c.Sets())
		assert.Empty(t, c.Dependencies())
		assert.False(t, c.IsEager())
		assert.Equal(t, TypeOf[componentOne]().String(), c.Name())
	})

	t.Run("options accumulate", func(t *testing.T) {
		c := NewComponent[*child](func(Container) (*child, error) {
			return &child{}, nil
		},
			AlsoProvides[parent](),
			IntoSet[healthCheck](),
			Requires[componentOne](),
			OptionalProvider[componentTwo](),
			Eager(),
			WithName("kid"),
		)

		assert.Len(t, c.Provides(), 2)
		assert.Len(t, c.Sets(), 1)
		assert.True(t, c.IsEager())
		assert.Equal(t, "kid", c.Name())
		assert.Equal(t, "kid", c.String())

		deps := c.Dependencies()
		require.Len(t, deps, 2)
		assert.Equal(t, TypeOf[componentOne](), deps[0].Token())
		assert.True(t, deps[0].Required())
		assert.Equal(t, Direct, deps[0].Kind())
		assert.Equal(t, TypeOf[componentTwo](), deps[1].Token())
		assert.False(t, deps[1].Required())
		assert.Equal(t, Deferred, deps[1].Kind())
	})

	t.Run("accessors return copies", func(t *testing.T) {
		c := NewComponent[componentOne](func(Container) (componentOne, error) {
			return nil, nil
		}, Requires[*initTracker]())

		c.Provides()[0] = TypeOf[componentTwo]()
		assert.Equal(t, TypeOf[componentOne](), c.provides[0])

		c.Dependencies()[0] = Dependency{}
		assert.Equal(t, TypeOf[*initTracker](), c.deps[0].token)
	})

	t.Run("set-only component names its set", func(t *testing.T) {
		c := NewSetComponent[healthCheck](func(Container) (healthCheck, error) {
			return nil, nil
		})
		assert.Contains(t, c.Name(), "set<")
	})

	t.Run("value component returns the bound instance", func(t *testing.T) {
		tracker := &initTracker{}
		rt := mustRuntime(t, WithComponents(Value(tracker)))

		got, err := Get[*initTracker](rt)
		require.NoError(t, err)
		assert.Same(t, tracker, got)
	})
}

func TestDependencyKindString(t *testing.T) {
	assert.Equal(t, "direct", Direct.String())
	assert.Equal(t, "deferred", Deferred.String())
	assert.Equal(t, "direct-set", DirectSet.String())
	assert.Equal(t, "deferred-set", DeferredSet.String())
	assert.Equal(t, "unknown", DependencyKind(42).String())
}

func TestDependencyString(t *testing.T) {
	c := NewComponent[componentOne](func(Container) (componentOne, error) {
		return nil, nil
	}, Requires[*initTracker](), OptionalProvider[componentTwo]())

	deps := c.Dependencies()
	assert.Contains(t, deps[0].String(), "required")
	assert.Contains(t, deps[0].String(), "direct")
	assert.Contains(t, deps[1].String(), "optional")
	assert.Contains(t, deps[1].String(), "deferred")
}

func tokenNames(tokens []reflect.Type) []string {
	names := make([]string, len(tokens))
	for i, tok := range tokens {
		names[i] = tok.String()
	}
	return names
}
