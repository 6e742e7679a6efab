package sprig

import (
	"testing"

	"github.com/db47h/sprig/pool"
	"github.com/db47h/sprig/texture"
	"github.com/stretchr/testify/assert"
)

func TestBatchAdmission(t *testing.T) {
	p := pool.New(func() *int { return new(int) }, nil, 0)
	h := func() pool.Handle { h, _ := p.Get(); return h }
	t1, t2, t3 := texture.Texture{ID: 10}, texture.Texture{ID: 20}, texture.Texture{ID: 30}

	b := newBatch(4, 2)
	assert.True(t, b.maybeAdd(h(), t1))
	assert.True(t, b.maybeAdd(h(), t2))
	assert.False(t, b.maybeAdd(h(), t3), "texture budget exceeded")
	assert.Len(t, b.cmds, 2)
	assert.True(t, b.maybeAdd(h(), t1))
	assert.True(t, b.maybeAdd(h(), t2))
	assert.False(t, b.maybeAdd(h(), t1), "batch full")
	assert.Len(t, b.cmds, 4)

	s, ok := b.slot(20)
	assert.True(t, ok)
	assert.Equal(t, 1, s)
	_, ok = b.slot(30)
	assert.False(t, ok)

	dev := newFakeDevice(8)
	b.bindTextures(dev)
	assert.Equal(t, []uint32{10, 20}, dev.binds)

	b.reset()
	assert.Empty(t, b.cmds)
	assert.Empty(t, b.textures)
	_, ok = b.slot(10)
	assert.False(t, ok)
	b.add(h(), t3)
	s, _ = b.slot(30)
	assert.Equal(t, 0, s)
}
