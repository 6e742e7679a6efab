// Package gl implements sprig.Device with OpenGL 2.1.
//
package gl

import (
	"image"
	"image/color"
	"strings"
	"unsafe"

	"github.com/db47h/sprig"
	"github.com/db47h/sprig/texture"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/pkg/errors"
)

var _ sprig.Device = (*Device)(nil)

// Device is an OpenGL 2.1 graphics device. All methods must be called from the
// thread owning the GL context.
//
type Device struct {
	units int
}

// NewDevice loads the OpenGL function pointers for the current context and
// sets up premultiplied alpha blending.
//
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "initialize OpenGL")
	}
	var units int32
	gl.GetIntegerv(gl.MAX_TEXTURE_IMAGE_UNITS, &units)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	sprig.Logger().Debug("OpenGL initialized",
		"version", Version(),
		"renderer", GetGoString(gl.RENDERER),
		"textureUnits", units)
	return &Device{units: int(units)}, nil
}

// GetGoString is a wrapper around GetString that returns a Go string.
//
func GetGoString(name uint32) string {
	return gl.GoStr(gl.GetString(name))
}

// Version returns the OpenGL version string of the current context.
//
func Version() string {
	return GetGoString(gl.VERSION)
}

func (d *Device) MaxTextureUnits() int { return d.units }

func compileShader(typ uint32, src string) (uint32, error) {
	s := gl.CreateShader(typ)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(s, 1, csrc, nil)
	free()
	gl.CompileShader(s)

	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &n)
		msg := strings.Repeat("\x00", int(n)+1)
		gl.GetShaderInfoLog(s, n, nil, gl.Str(msg))
		gl.DeleteShader(s)
		return 0, errors.New(strings.TrimRight(msg, "\x00"))
	}
	return s, nil
}

// NewProgram compiles and links a program. Compilation and link errors carry
// the driver's info log.
//
func (d *Device) NewProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return 0, errors.Wrap(err, "compile vertex shader")
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return 0, errors.Wrap(err, "compile fragment shader")
	}
	defer gl.DeleteShader(fs)

	p := gl.CreateProgram()
	gl.AttachShader(p, vs)
	gl.AttachShader(p, fs)
	gl.LinkProgram(p)

	var status int32
	gl.GetProgramiv(p, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(p, gl.INFO_LOG_LENGTH, &n)
		msg := strings.Repeat("\x00", int(n)+1)
		gl.GetProgramInfoLog(p, n, nil, gl.Str(msg))
		gl.DeleteProgram(p)
		return 0, errors.Errorf("link program: %s", strings.TrimRight(msg, "\x00"))
	}
	return p, nil
}

func (d *Device) DeleteProgram(p uint32) { gl.DeleteProgram(p) }
func (d *Device) UseProgram(p uint32)    { gl.UseProgram(p) }

func (d *Device) AttribLocation(p uint32, name string) (uint32, error) {
	r := gl.GetAttribLocation(p, gl.Str(name+"\x00"))
	if r < 0 {
		return ^uint32(0), errors.Errorf("unknown attribute %s", name)
	}
	return uint32(r), nil
}

func (d *Device) UniformLocation(p uint32, name string) int32 {
	return gl.GetUniformLocation(p, gl.Str(name+"\x00"))
}

func (d *Device) UniformMatrix4(loc int32, m *[16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (d *Device) UniformInts(loc int32, v []int32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1iv(loc, int32(len(v)), &v[0])
}

func (d *Device) VertexAttrib(loc uint32, size, stride, offset int) {
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointerWithOffset(loc, int32(size), gl.FLOAT, false, int32(stride*4), uintptr(offset*4))
}

// NewBuffer returns a new dynamic vertex buffer holding size floats. The
// buffer is left bound.
//
func (d *Device) NewBuffer(size int) uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	gl.BindBuffer(gl.ARRAY_BUFFER, b)
	gl.BufferData(gl.ARRAY_BUFFER, size*4, nil, gl.DYNAMIC_DRAW)
	return b
}

func (d *Device) BindBuffer(b uint32) { gl.BindBuffer(gl.ARRAY_BUFFER, b) }

func (d *Device) BufferSubData(offset int, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, offset*4, len(data)*4, gl.Ptr(data))
}

func (d *Device) DeleteBuffer(b uint32) { gl.DeleteBuffers(1, &b) }

// NewTexture uploads img to a new texture.
//
func (d *Device) NewTexture(img *image.RGBA, p texture.Params) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(p.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(p.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(p.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(p.WrapT))

	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Stride != w*4 {
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
		defer gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	}
	var pix unsafe.Pointer
	if len(img.Pix) > 0 {
		pix = gl.Ptr(img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y):])
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, pix)
	return id
}

func (d *Device) DeleteTexture(id uint32) { gl.DeleteTextures(1, &id) }

func (d *Device) BindTexture(unit int, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// Clear clears the color buffer to c. A nil color clears to the previous clear
// color.
//
func (d *Device) Clear(c color.Color) {
	if c != nil {
		c := ColorModel.Convert(c).(Color)
		gl.ClearColor(c.R, c.G, c.B, c.A)
	}
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) DrawTriangles(first, count int) {
	gl.DrawArrays(gl.TRIANGLES, int32(first), int32(count))
}

func filter(f texture.FilterMode) int32 {
	if f == texture.Nearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func wrap(w texture.WrapMode) int32 {
	switch w {
	case texture.Repeat:
		return gl.REPEAT
	case texture.MirroredRepeat:
		return gl.MIRRORED_REPEAT
	default:
		return gl.CLAMP_TO_EDGE
	}
}
