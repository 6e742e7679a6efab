package pool_test

import (
	"testing"

	"github.com/db47h/sprig/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	n     int
	reset int
}

func newPool(prewarm int) (*pool.Pool[item], *int) {
	created := 0
	p := pool.New(func() *item {
		created++
		return &item{}
	}, func(it *item) {
		it.n = 0
		it.reset++
	}, prewarm)
	return p, &created
}

func TestPrewarm(t *testing.T) {
	p, created := newPool(4)
	assert.Equal(t, 4, *created)
	assert.Equal(t, 4, p.Cap())
	assert.Equal(t, 0, p.InUse())

	for i := 0; i < 4; i++ {
		p.Get()
	}
	assert.Equal(t, 4, *created, "prewarmed objects must be used before allocating")
	p.Get()
	assert.Equal(t, 5, *created)
	assert.Equal(t, 5, p.InUse())
}

func TestGetResetsRecycled(t *testing.T) {
	p, _ := newPool(1)
	h, it := p.Get()
	it.n = 42
	require.True(t, p.Free(h))

	h2, it2 := p.Get()
	assert.Same(t, it, it2)
	assert.Equal(t, 0, it2.n)
	assert.Equal(t, 2, it2.reset) // once on prewarm recycle, once after free
	assert.NotEqual(t, h, h2)
}

func TestStaleHandle(t *testing.T) {
	p, _ := newPool(0)
	h, it := p.Get()
	assert.Same(t, it, p.Value(h))

	require.True(t, p.Free(h))
	assert.Nil(t, p.Value(h), "freed handle must not resolve")
	assert.False(t, p.Free(h), "double free must be rejected")
	assert.Equal(t, 0, p.InUse())

	h2, _ := p.Get()
	assert.Nil(t, p.Value(h), "old handle must stay stale after slot reuse")
	assert.NotNil(t, p.Value(h2))
	assert.False(t, p.Free(h))
	assert.Equal(t, 1, p.InUse())
}

func TestZeroHandle(t *testing.T) {
	p, _ := newPool(2)
	var h pool.Handle
	assert.True(t, h.IsZero())
	assert.Nil(t, p.Value(h))
	assert.False(t, p.Free(h))
}

func TestInUseBaseline(t *testing.T) {
	p, _ := newPool(8)
	var hs []pool.Handle
	for i := 0; i < 20; i++ {
		h, _ := p.Get()
		hs = append(hs, h)
	}
	assert.Equal(t, 20, p.InUse())
	for _, h := range hs {
		require.True(t, p.Free(h))
	}
	assert.Equal(t, 0, p.InUse())
	assert.Equal(t, 20, p.Cap())
}
