package sprig

import (
	"github.com/db47h/sprig/pool"
	"github.com/db47h/sprig/texture"
)

// A batch is a group of commands drawn with a single draw call. It holds at
// most maxDrawings commands that reference at most maxTextures distinct
// textures.
//
// Textures are assigned slots in the order they are first referenced. The
// same order is used to bind textures to texture units.
//
type batch struct {
	maxDrawings int
	maxTextures int
	cmds        []pool.Handle
	textures    []texture.Texture // indexed by slot
	slots       map[uint32]int    // texture ID to slot
}

func newBatch(maxDrawings, maxTextures int) *batch {
	return &batch{
		maxDrawings: maxDrawings,
		maxTextures: maxTextures,
		cmds:        make([]pool.Handle, 0, maxDrawings),
		textures:    make([]texture.Texture, 0, maxTextures),
		slots:       make(map[uint32]int, maxTextures),
	}
}

func (b *batch) reset() {
	b.cmds = b.cmds[:0]
	b.textures = b.textures[:0]
	clear(b.slots)
}

// maybeAdd appends the command h if it fits in the batch. It returns false,
// leaving the batch untouched, if the batch is full or if tex would exceed
// the texture budget.
//
func (b *batch) maybeAdd(h pool.Handle, tex texture.Texture) bool {
	if len(b.cmds) >= b.maxDrawings {
		return false
	}
	if _, ok := b.slots[tex.ID]; !ok && len(b.textures) >= b.maxTextures {
		return false
	}
	b.add(h, tex)
	return true
}

// add appends the command h without checking limits.
//
func (b *batch) add(h pool.Handle, tex texture.Texture) {
	if _, ok := b.slots[tex.ID]; !ok {
		b.slots[tex.ID] = len(b.textures)
		b.textures = append(b.textures, tex)
	}
	b.cmds = append(b.cmds, h)
}

// slot returns the slot assigned to the texture with the given ID.
//
func (b *batch) slot(id uint32) (int, bool) {
	s, ok := b.slots[id]
	return s, ok
}

// bindTextures binds each texture to the texture unit matching its slot.
//
func (b *batch) bindTextures(dev Device) {
	for i := range b.textures {
		dev.BindTexture(i, b.textures[i].ID)
	}
}
