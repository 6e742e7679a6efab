package sprig

import (
	"image"
	"image/color"

	"github.com/db47h/sprig/texture"
	"github.com/pkg/errors"
)

type drawCall struct {
	vertices []float32
	textures []uint32 // bound textures, by unit
	count    int
}

// fakeDevice records the calls made by a Context.
//
type fakeDevice struct {
	units      int
	compileErr error

	lastID     uint32
	program    uint32
	attribs    []string
	uniforms   map[string]int32
	matrices   map[int32][16]float32
	ints       map[int32][]int32
	attribPtrs map[uint32][3]int

	bufSize int
	buffer  []float32
	bound   uint32
	deleted map[uint32]bool

	textures  map[uint32]*image.RGBA
	params    map[uint32]texture.Params
	binds     []uint32
	draws     []drawCall
	staleDraw bool

	clears   []color.Color
	viewport [4]int
}

func newFakeDevice(units int) *fakeDevice {
	return &fakeDevice{
		units:      units,
		uniforms:   make(map[string]int32),
		matrices:   make(map[int32][16]float32),
		ints:       make(map[int32][]int32),
		attribPtrs: make(map[uint32][3]int),
		deleted:    make(map[uint32]bool),
		textures:   make(map[uint32]*image.RGBA),
		params:     make(map[uint32]texture.Params),
	}
}

func (d *fakeDevice) id() uint32 {
	d.lastID++
	return d.lastID
}

func (d *fakeDevice) MaxTextureUnits() int { return d.units }

func (d *fakeDevice) NewProgram(vs, fs string) (uint32, error) {
	if d.compileErr != nil {
		return 0, d.compileErr
	}
	d.program = d.id()
	return d.program, nil
}

func (d *fakeDevice) DeleteProgram(p uint32) { d.deleted[p] = true }
func (d *fakeDevice) UseProgram(p uint32)    {}

func (d *fakeDevice) AttribLocation(p uint32, name string) (uint32, error) {
	switch name {
	case "aVertex", "aRegion", "aTextureId", "aOpacity":
	default:
		return 0, errors.Errorf("unknown attribute %s", name)
	}
	for i, n := range d.attribs {
		if n == name {
			return uint32(i), nil
		}
	}
	d.attribs = append(d.attribs, name)
	return uint32(len(d.attribs) - 1), nil
}

func (d *fakeDevice) UniformLocation(p uint32, name string) int32 {
	loc, ok := d.uniforms[name]
	if !ok {
		loc = int32(len(d.uniforms))
		d.uniforms[name] = loc
	}
	return loc
}

func (d *fakeDevice) UniformMatrix4(loc int32, m *[16]float32) { d.matrices[loc] = *m }

func (d *fakeDevice) UniformInts(loc int32, v []int32) {
	d.ints[loc] = append([]int32(nil), v...)
}

func (d *fakeDevice) VertexAttrib(loc uint32, size, stride, offset int) {
	d.attribPtrs[loc] = [3]int{size, stride, offset}
}

func (d *fakeDevice) NewBuffer(size int) uint32 {
	d.bufSize = size
	d.buffer = make([]float32, size)
	return d.id()
}

func (d *fakeDevice) BindBuffer(b uint32)   { d.bound = b }
func (d *fakeDevice) DeleteBuffer(b uint32) { d.deleted[b] = true }

func (d *fakeDevice) BufferSubData(offset int, data []float32) {
	if offset+len(data) > len(d.buffer) {
		panic("buffer overflow")
	}
	copy(d.buffer[offset:], data)
}

func (d *fakeDevice) NewTexture(img *image.RGBA, p texture.Params) uint32 {
	id := d.id()
	d.textures[id] = img
	d.params[id] = p
	return id
}

func (d *fakeDevice) DeleteTexture(id uint32) {
	delete(d.textures, id)
	d.deleted[id] = true
}

func (d *fakeDevice) BindTexture(unit int, tex uint32) {
	if unit != len(d.binds) {
		panic("texture units must be bound in order")
	}
	d.binds = append(d.binds, tex)
}

func (d *fakeDevice) Viewport(x, y, w, h int) { d.viewport = [4]int{x, y, w, h} }
func (d *fakeDevice) Clear(c color.Color)     { d.clears = append(d.clears, c) }

func (d *fakeDevice) DrawTriangles(first, count int) {
	for _, t := range d.binds {
		if d.textures[t] == nil {
			d.staleDraw = true
		}
	}
	d.draws = append(d.draws, drawCall{
		vertices: append([]float32(nil), d.buffer[first*floatsPerVertex:(first+count)*floatsPerVertex]...),
		textures: d.binds,
		count:    count,
	})
	d.binds = nil
}

func newTestImage(w, h int) *Image {
	return NewImage(image.NewRGBA(image.Rect(0, 0, w, h)))
}

// vertex returns vertex v of quad q in a draw call.
//
func (c drawCall) vertex(q, v int) []float32 {
	i := (q*verticesPerQuad + v) * floatsPerVertex
	return c.vertices[i : i+floatsPerVertex]
}
