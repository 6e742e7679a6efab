package main

import (
	"testing"

	"github.com/db47h/sprig"
	"github.com/stretchr/testify/assert"
)

func TestSpriteZ(t *testing.T) {
	assert.Equal(t, float32(0), spriteZ(0, 0))
	for _, n := range []int{1, 10, 70000, 1000000} {
		prev := float32(-1)
		for _, i := range []int{0, n / 2, n - 1} {
			z := spriteZ(i, n)
			assert.GreaterOrEqual(t, z, float32(0))
			assert.Less(t, z, float32(sprig.MaxZ), "n=%d i=%d", n, i)
			assert.GreaterOrEqual(t, z, prev)
			prev = z
		}
	}
}
