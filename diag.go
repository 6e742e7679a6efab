package sprig

import "fmt"

// Diagnostics holds statistics about the last call to Context.Flush.
//
type Diagnostics struct {
	Quads              int // sprites drawn
	Batches            int // draw calls
	UniqueTextures     int // distinct textures across all batches
	MaxTexturesPerDraw int
}

func (d Diagnostics) String() string {
	return fmt.Sprintf("quads: %d, batches: %d, textures: %d (max %d per draw)",
		d.Quads, d.Batches, d.UniqueTextures, d.MaxTexturesPerDraw)
}
