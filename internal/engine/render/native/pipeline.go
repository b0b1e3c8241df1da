package native

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meshview/internal/engine/shader"
)

// Vertices arrive already projected to normalized device coordinates, so
// both vertex shaders are pass-throughs.

const wireVertexSrc = `
#version 410 core
layout(location = 0) in vec3 position;
void main() {
    gl_Position = vec4(position, 1.0);
}
`

const wireFragmentSrc = `
#version 410 core
uniform vec4 wireColor;
out vec4 outColor;
void main() {
    outColor = wireColor;
}
`

const texturedVertexSrc = `
#version 410 core
layout(location = 0) in vec3 position;
layout(location = 1) in vec2 texcoord;
layout(location = 2) in float alphaParam;
layout(location = 3) in float cutoffParam;
out vec2 fragUV;
out float fragAlpha;
out float fragCutoff;
void main() {
    fragUV = texcoord;
    fragAlpha = alphaParam;
    fragCutoff = cutoffParam;
    gl_Position = vec4(position, 1.0);
}
`

// The material parameters are sign-encoded: a negative alpha enables alpha
// cutout, a negative cutoff inverts the opacity map sample.
const texturedFragmentSrc = `
#version 410 core
in vec2 fragUV;
in float fragAlpha;
in float fragCutoff;
uniform sampler2D colorTex;
uniform sampler2D opacityTex;
out vec4 outColor;
void main() {
    vec4 base = texture(colorTex, fragUV);
    bool cutout = fragAlpha < 0.0;
    float alpha = abs(fragAlpha);
    bool inverted = fragCutoff < 0.0;
    float cutoff = abs(fragCutoff);

    float mask = texture(opacityTex, fragUV).r;
    if (inverted) {
        mask = 1.0 - mask;
    }

    float a = base.a * alpha * mask;
    if (cutout && a < cutoff) {
        discard;
    }
    outColor = vec4(base.rgb, a);
}
`

// wirePipeline draws NDC line segments in a fixed overlay color.
type wirePipeline struct {
	program  uint32
	colorLoc int32
}

func newWirePipeline() (*wirePipeline, error) {
	program, err := shader.CompileProgram(wireVertexSrc, wireFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("wire pipeline: %w", err)
	}
	return &wirePipeline{
		program:  program,
		colorLoc: shader.GetUniform(program, "wireColor"),
	}, nil
}

func (p *wirePipeline) Use() {
	gl.UseProgram(p.program)
	gl.Uniform4f(p.colorLoc, wireColorR, wireColorG, wireColorB, 1.0)
}

func (p *wirePipeline) Destroy() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}

// texturedPipeline draws depth-sorted textured triangles with the
// sign-encoded material parameters.
type texturedPipeline struct {
	program       uint32
	colorTexLoc   int32
	opacityTexLoc int32
}

func newTexturedPipeline() (*texturedPipeline, error) {
	program, err := shader.CompileProgram(texturedVertexSrc, texturedFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("textured pipeline: %w", err)
	}
	return &texturedPipeline{
		program:       program,
		colorTexLoc:   shader.GetUniform(program, "colorTex"),
		opacityTexLoc: shader.GetUniform(program, "opacityTex"),
	}, nil
}

func (p *texturedPipeline) Use() {
	gl.UseProgram(p.program)
	gl.Uniform1i(p.colorTexLoc, 0)
	gl.Uniform1i(p.opacityTexLoc, 1)
}

func (p *texturedPipeline) Destroy() {
	if p.program != 0 {
		gl.DeleteProgram(p.program)
		p.program = 0
	}
}
