package importer

import (
	"strings"
	"testing"
)

func TestParseMTL(t *testing.T) {
	src := `
# comment
newmtl wood
Kd 0.8 0.6 0.4
map_Kd wood.png
d 0.75

newmtl glass
Tr 0.9

newmtl leaf
map_Kd leaf.png
map_d -imfchan r leaf_mask.png
`
	materials, err := ParseMTL(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseMTL failed: %v", err)
	}
	if len(materials) != 3 {
		t.Fatalf("expected 3 materials, got %d", len(materials))
	}

	wood := materials["wood"]
	if wood.DiffuseMap != "wood.png" {
		t.Errorf("wood diffuse map: %q", wood.DiffuseMap)
	}
	if wood.Opacity != 0.75 {
		t.Errorf("wood opacity: %f", wood.Opacity)
	}

	glass := materials["glass"]
	if got := glass.Opacity; got < 0.099 || got > 0.101 {
		t.Errorf("Tr must convert to dissolve: %f", got)
	}

	leaf := materials["leaf"]
	if leaf.OpacityMap != "leaf_mask.png" {
		t.Errorf("options before the filename must be skipped: %q", leaf.OpacityMap)
	}
	if leaf.Opacity != 1 {
		t.Errorf("unset dissolve defaults to opaque: %f", leaf.Opacity)
	}
}

func TestParseMTLPropertiesBeforeNewmtl(t *testing.T) {
	materials, err := ParseMTL(strings.NewReader("map_Kd stray.png\nd 0.5\n"))
	if err != nil {
		t.Fatalf("ParseMTL failed: %v", err)
	}
	if len(materials) != 0 {
		t.Errorf("properties without a material must be dropped, got %v", materials)
	}
}
