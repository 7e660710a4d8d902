package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {

	pool, err := NewPool(2, testParams())
	require.NoError(t, err)
	assert.Equal(t, 2, pool.Size())

	a, err := pool.Get()
	require.NoError(t, err)
	b, err := pool.Get()
	require.NoError(t, err)
	assert.NotSame(t, a, b)

	pool.Return(a)
	pool.Return(b)

	// returning more than the pool holds is ignored
	pool.Return(a)

	pool.Close()
	pool.Close()

	// returning after close must not panic
	pool.Return(a)

	got := 0

	for {
		_, err := pool.Get()

		if err != nil {
			assert.ErrorIs(t, err, ErrPoolClosed)
			break
		}

		got++
	}

	assert.Equal(t, 2, got)
}

func TestNewPoolErrors(t *testing.T) {

	_, err := NewPool(0, testParams())
	assert.Error(t, err)

	p := testParams()
	p.Labels = nil

	_, err = NewPool(2, p)
	assert.ErrorIs(t, err, ErrNoLabels)
}
