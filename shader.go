package sprig

import (
	"github.com/pkg/errors"
)

type attribute struct {
	name   string
	loc    uint32
	size   int
	offset int
}

// shader wraps a linked program with its vertex layout. Attributes are
// interleaved in the order they are added.
//
type shader struct {
	dev      Device
	program  uint32
	attrs    []attribute
	stride   int
	uniforms map[string]int32
}

func newShader(dev Device, vertexSrc, fragmentSrc string) (*shader, error) {
	p, err := dev.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &shader{dev: dev, program: p, uniforms: make(map[string]int32)}, nil
}

// addAttribute appends a float attribute of the given size to the vertex
// layout.
//
func (s *shader) addAttribute(name string, size int) error {
	loc, err := s.dev.AttribLocation(s.program, name)
	if err != nil {
		return errors.Wrapf(err, "attribute %s", name)
	}
	s.attrs = append(s.attrs, attribute{name: name, loc: loc, size: size, offset: s.stride})
	s.stride += size
	return nil
}

func (s *shader) use() {
	s.dev.UseProgram(s.program)
}

func (s *shader) uniform(name string) int32 {
	loc, ok := s.uniforms[name]
	if !ok {
		loc = s.dev.UniformLocation(s.program, name)
		s.uniforms[name] = loc
	}
	return loc
}

func (s *shader) setMatrix(name string, m *[16]float32) {
	s.dev.UniformMatrix4(s.uniform(name), m)
}

func (s *shader) setInts(name string, v []int32) {
	s.dev.UniformInts(s.uniform(name), v)
}

// bindAttributes binds buf and points every attribute to it.
//
func (s *shader) bindAttributes(buf uint32) {
	s.dev.BindBuffer(buf)
	for _, a := range s.attrs {
		s.dev.VertexAttrib(a.loc, a.size, s.stride, a.offset)
	}
}

func (s *shader) delete() {
	if s.program != 0 {
		s.dev.DeleteProgram(s.program)
		s.program = 0
	}
}
