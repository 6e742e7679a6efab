package sprig

import (
	"github.com/db47h/sprig/texture"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	floatsPerVertex = 7 // x, y, z, u, v, slot, opacity
	verticesPerQuad = 6
	floatsPerQuad   = floatsPerVertex * verticesPerQuad
)

// drawImageCommand is a single DrawImage call with its geometry resolved.
//
type drawImageCommand struct {
	img            *Image
	sx, sy, sw, sh float32     // source rectangle, in image pixels
	quad           [12]float32 // two triangles: TL, TR, BL, BL, TR, BR
	z, opacity     float32
	tex            texture.Texture
}

func (c *drawImageCommand) reset() {
	*c = drawImageCommand{}
}

// init sets up c to draw the source rectangle (sx, sy, sw, sh) of img into the
// destination rectangle (dx, dy, dw, dh), transformed by m.
//
func (c *drawImageCommand) init(img *Image, tex texture.Texture, sx, sy, sw, sh, dx, dy, dw, dh float32, m *mgl32.Mat3, st State) {
	c.img = img
	c.tex = tex
	c.sx, c.sy, c.sw, c.sh = sx, sy, sw, sh
	c.z = st.Z
	c.opacity = mgl32.Clamp(st.Opacity, 0, 1)

	// mgl32 matrices are column major
	m0, m1, m3, m4, m6, m7 := m[0], m[1], m[3], m[4], m[6], m[7]
	x0, y0, x1, y1 := dx, dy, dx+dw, dy+dh
	tlx, tly := m0*x0+m3*y0+m6, m1*x0+m4*y0+m7
	trx, try := m0*x1+m3*y0+m6, m1*x1+m4*y0+m7
	blx, bly := m0*x0+m3*y1+m6, m1*x0+m4*y1+m7
	brx, bry := m0*x1+m3*y1+m6, m1*x1+m4*y1+m7
	c.quad = [12]float32{
		tlx, tly, trx, try, blx, bly,
		blx, bly, trx, try, brx, bry,
	}
}

// pack writes the vertices of c to dst, which must hold at least
// floatsPerQuad values.
//
func (c *drawImageCommand) pack(dst []float32, slot int, snap bool) {
	u0, v0 := c.tex.UV(c.sx, c.sy)
	u1, v1 := c.tex.UV(c.sx+c.sw, c.sy+c.sh)
	uv := [12]float32{
		u0, v0, u1, v0, u0, v1,
		u0, v1, u1, v0, u1, v1,
	}
	s := float32(slot)
	_ = dst[floatsPerQuad-1]
	for i := 0; i < verticesPerQuad; i++ {
		x, y := c.quad[2*i], c.quad[2*i+1]
		if snap {
			x, y = float32(int32(x)), float32(int32(y))
		}
		d := dst[i*floatsPerVertex : (i+1)*floatsPerVertex]
		d[0], d[1], d[2] = x, y, c.z
		d[3], d[4] = uv[2*i], uv[2*i+1]
		d[5], d[6] = s, c.opacity
	}
}
