package importer

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Material holds the subset of MTL properties the viewer renders.
type Material struct {
	Name       string
	DiffuseMap string // map_Kd
	OpacityMap string // map_d
	Opacity    float32
}

// ParseMTL reads a Wavefront material library. Unknown statements are
// skipped; materials without a newmtl line before their properties are
// ignored.
func ParseMTL(r io.Reader) (map[string]*Material, error) {
	materials := make(map[string]*Material)
	var current *Material

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				continue
			}
			current = &Material{Name: fields[1], Opacity: 1}
			materials[current.Name] = current

		case "map_Kd":
			if current != nil && len(fields) >= 2 {
				// Options may precede the filename; the last field is the path.
				current.DiffuseMap = fields[len(fields)-1]
			}

		case "map_d":
			if current != nil && len(fields) >= 2 {
				current.OpacityMap = fields[len(fields)-1]
			}

		case "d":
			if current != nil && len(fields) >= 2 {
				if v, err := strconv.ParseFloat(fields[1], 32); err == nil {
					current.Opacity = float32(v)
				}
			}

		case "Tr":
			// Transparency is the complement of dissolve.
			if current != nil && len(fields) >= 2 {
				if v, err := strconv.ParseFloat(fields[1], 32); err == nil {
					current.Opacity = 1 - float32(v)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return materials, nil
}
