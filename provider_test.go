package acorn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProvider(t *testing.T) {
	t.Run("does not force construction", func(t *testing.T) {
		calls := 0
		rt := mustRuntime(t, WithComponents(
			countingComponent[*initTracker](&calls, func() *initTracker { return &initTracker{} }),
		))

		p, err := GetProvider[*initTracker](rt)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Zero(t, calls)

		_, err = p.Get()
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("repeated Get returns the identical cached instance", func(t *testing.T) {
		rt := mustRuntime(t, WithComponents(
			NewComponent[*initTracker](func(Container) (*initTracker, error) {
				return &initTracker{}, nil
			}),
		))

		p, err := GetProvider[*initTracker](rt)
		require.NoError(t, err)

		first, err := p.Get()
		require.NoError(t, err)
		second, err := p.Get()
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("resolves to the same instance as a direct lookup", func(t *testing.T) {
		rt := mustRuntime(t, WithComponents(
			NewComponent[*initTracker](func(Container) (*initTracker, error) {
				return &initTracker{}, nil
			}),
		))

		direct, err := Get[*initTracker](rt)
		require.NoError(t, err)

		p, err := GetProvider[*initTracker](rt)
		require.NoError(t, err)
		deferred, err := p.Get()
		require.NoError(t, err)
		assert.Same(t, direct, deferred)
	})

	t.Run("nil for an interface nothing provides", func(t *testing.T) {
		rt := mustRuntime(t)
		p, err := GetProvider[*initTracker](rt)
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("nil token returns ErrNilToken", func(t *testing.T) {
		rt := mustRuntime(t)
		_, err := rt.GetProvider(nil)
		require.ErrorIs(t, err, ErrNilToken)
	})

	t.Run("every provided token yields the identical handle", func(t *testing.T) {
		rt := mustRuntime(t, WithComponents(
			NewComponent[*child](func(Container) (*child, error) {
				return &child{}, nil
			}, AlsoProvides[parent]()),
		))

		asChild, err := GetProvider[*child](rt)
		require.NoError(t, err)
		asParent, err := GetProvider[parent](rt)
		require.NoError(t, err)

		assert.Same(t, asChild, asParent)

		childInst, err := asChild.Get()
		require.NoError(t, err)
		parentInst, err := asParent.Get()
		require.NoError(t, err)
		assert.Same(t, childInst, parentInst)
	})
}
