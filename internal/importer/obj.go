// Package importer loads model files into the viewer's in-memory format.
package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/model"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
)

// OBJ import errors.
var (
	ErrNoGeometry = errors.New("no triangles in OBJ file")
)

// LoadOBJ reads a Wavefront OBJ file and its material libraries.
func LoadOBJ(path string) (*model.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()
	return ParseOBJ(f, path)
}

// objVertexKey identifies one position/texcoord pair for deduplication.
type objVertexKey struct {
	position int
	texcoord int
}

type objParser struct {
	sourcePath string

	positions []math.Vec3
	texcoords []math.Vec2

	out      *model.Data
	vertices map[objVertexKey]uint32

	materials map[string]*Material
	current   *Material
	// submesh run currently being appended to, or -1
	openSubmesh int
}

// ParseOBJ parses OBJ data. sourcePath locates material libraries next to
// the model and is recorded on the result for texture resolution.
func ParseOBJ(r io.Reader, sourcePath string) (*model.Data, error) {
	p := &objParser{
		sourcePath:  sourcePath,
		out:         &model.Data{SourcePath: sourcePath},
		vertices:    make(map[objVertexKey]uint32),
		materials:   make(map[string]*Material),
		openSubmesh: -1,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := p.line(scanner.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(p.out.Indices) == 0 {
		return nil, ErrNoGeometry
	}
	if len(p.out.TexturePaths) > 0 {
		p.out.PrimaryTexturePath = p.out.TexturePaths[0]
	}
	return p.out, nil
}

func (p *objParser) line(text string) error {
	fields := strings.Fields(text)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	switch fields[0] {
	case "v":
		if len(fields) < 4 {
			return fmt.Errorf("vertex needs 3 coordinates")
		}
		v, err := parseVec3(fields[1:4])
		if err != nil {
			return err
		}
		p.positions = append(p.positions, v)

	case "vt":
		if len(fields) < 3 {
			return fmt.Errorf("texcoord needs 2 coordinates")
		}
		u, err1 := strconv.ParseFloat(fields[1], 32)
		v, err2 := strconv.ParseFloat(fields[2], 32)
		if err1 != nil || err2 != nil {
			return fmt.Errorf("bad texcoord %q", text)
		}
		// OBJ texcoords have V up; image space has V down.
		p.texcoords = append(p.texcoords, math.Vec2{X: float32(u), Y: 1 - float32(v)})

	case "f":
		return p.face(fields[1:])

	case "usemtl":
		p.openSubmesh = -1
		p.current = nil
		if len(fields) >= 2 {
			p.current = p.materials[fields[1]]
			if p.current == nil {
				logger.Debug("unknown material", zap.String("name", fields[1]))
			}
		}

	case "mtllib":
		for _, lib := range fields[1:] {
			p.loadMaterialLib(lib)
		}

	case "o", "g":
		// Object and group boundaries also end the current submesh run.
		p.openSubmesh = -1
	}
	return nil
}

func (p *objParser) loadMaterialLib(name string) {
	path := name
	if !filepath.IsAbs(path) && p.sourcePath != "" {
		path = filepath.Join(filepath.Dir(p.sourcePath), name)
	}
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("material library not found", zap.String("path", path))
		return
	}
	defer f.Close()

	parsed, err := ParseMTL(f)
	if err != nil {
		logger.Warn("material library unreadable",
			zap.String("path", path),
			zap.Error(err),
		)
		return
	}
	for name, mat := range parsed {
		p.materials[name] = mat
	}
}

// face triangulates a polygon as a fan and appends its indices to the
// submesh run for the current material.
func (p *objParser) face(refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("face needs at least 3 vertices")
	}

	corners := make([]uint32, len(refs))
	for i, ref := range refs {
		idx, err := p.vertex(ref)
		if err != nil {
			return err
		}
		corners[i] = idx
	}

	for i := 1; i+1 < len(corners); i++ {
		p.appendTriangle(corners[0], corners[i], corners[i+1])
	}
	return nil
}

func (p *objParser) appendTriangle(a, b, c uint32) {
	if p.openSubmesh < 0 {
		p.out.Submeshes = append(p.out.Submeshes, p.newSubmesh())
		p.openSubmesh = len(p.out.Submeshes) - 1
	}
	p.out.Indices = append(p.out.Indices, a, b, c)
	p.out.Submeshes[p.openSubmesh].IndexCount += 3
}

func (p *objParser) newSubmesh() model.Submesh {
	sub := model.Submesh{
		IndexStart:           uint32(len(p.out.Indices)),
		TextureIndex:         -1,
		OpacityTextureIndex:  -1,
		NormalTextureIndex:   -1,
		EmissiveTextureIndex: -1,
		SpecularTextureIndex: -1,
		Opacity:              1,
	}
	mat := p.current
	if mat == nil {
		return sub
	}

	sub.Opacity = mat.Opacity
	sub.IsTransparent = mat.Opacity < 1
	if mat.DiffuseMap != "" {
		sub.TextureIndex = p.texturePathIndex(mat.DiffuseMap)
	}
	if mat.OpacityMap != "" {
		sub.OpacityTextureIndex = p.texturePathIndex(mat.OpacityMap)
	}
	return sub
}

func (p *objParser) texturePathIndex(path string) int32 {
	for i, existing := range p.out.TexturePaths {
		if existing == path {
			return int32(i)
		}
	}
	p.out.TexturePaths = append(p.out.TexturePaths, path)
	return int32(len(p.out.TexturePaths) - 1)
}

// vertex resolves one "pos/tex/normal" reference to a deduplicated output
// vertex index.
func (p *objParser) vertex(ref string) (uint32, error) {
	parts := strings.Split(ref, "/")

	pos, err := resolveIndex(parts[0], len(p.positions))
	if err != nil {
		return 0, fmt.Errorf("vertex reference %q: %w", ref, err)
	}

	tex := -1
	if len(parts) > 1 && parts[1] != "" {
		tex, err = resolveIndex(parts[1], len(p.texcoords))
		if err != nil {
			return 0, fmt.Errorf("texcoord reference %q: %w", ref, err)
		}
	}

	key := objVertexKey{position: pos, texcoord: tex}
	if idx, ok := p.vertices[key]; ok {
		return idx, nil
	}

	idx := uint32(len(p.out.Positions))
	p.out.Positions = append(p.out.Positions, p.positions[pos])
	if tex >= 0 {
		p.out.TexCoords = append(p.out.TexCoords, p.texcoords[tex])
	} else {
		p.out.TexCoords = append(p.out.TexCoords, math.Vec2{})
	}
	p.vertices[key] = idx
	return idx, nil
}

// resolveIndex converts a one-based OBJ index, possibly negative (relative
// to the end), to a zero-based slice index.
func resolveIndex(field string, count int) (int, error) {
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && -n <= count:
		return count + n, nil
	}
	return 0, fmt.Errorf("index %d out of range (%d defined)", n, count)
}

func parseVec3(fields []string) (math.Vec3, error) {
	x, err1 := strconv.ParseFloat(fields[0], 32)
	y, err2 := strconv.ParseFloat(fields[1], 32)
	z, err3 := strconv.ParseFloat(fields[2], 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return math.Vec3{}, fmt.Errorf("bad coordinates %v", fields)
	}
	return math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}, nil
}
