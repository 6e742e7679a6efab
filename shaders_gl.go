package sprig

import (
	"fmt"
	"strings"
)

const vertexShader = `#version 120
attribute vec3 aVertex;
attribute vec2 aRegion;
attribute float aTextureId;
attribute float aOpacity;

uniform mat4 uProjection;

varying vec2 vRegion;
varying float vTextureId;
varying float vOpacity;

void main()
{
	gl_Position = uProjection * vec4(aVertex, 1.0);
	vRegion = aRegion;
	vTextureId = aTextureId;
	vOpacity = aOpacity;
}
`

// fragmentShader returns the fragment shader source for the given number of
// texture units. GLSL 1.20 cannot index sampler arrays with a varying, so the
// sampler is selected with a chain of branches.
//
func fragmentShader(units int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `#version 120
uniform sampler2D uSampler[%d];

varying vec2 vRegion;
varying float vTextureId;
varying float vOpacity;

void main()
{
	int id = int(vTextureId + 0.5);
	vec4 c;
`, units)
	for i := 0; i < units; i++ {
		switch {
		case units == 1:
			b.WriteString("\tc = texture2D(uSampler[0], vRegion);\n")
		case i == 0:
			b.WriteString("\tif (id == 0) {\n")
		case i == units-1:
			b.WriteString("\t} else {\n")
		default:
			fmt.Fprintf(&b, "\t} else if (id == %d) {\n", i)
		}
		if units > 1 {
			fmt.Fprintf(&b, "\t\tc = texture2D(uSampler[%d], vRegion);\n", i)
		}
	}
	if units > 1 {
		b.WriteString("\t}\n")
	}
	b.WriteString("\tgl_FragColor = c * vOpacity;\n}\n")
	return b.String()
}
