package render

import (
	"testing"

	"geopicker/internal/geo"

	"github.com/gdamore/tcell/v2"
)

func TestGlobeShade(t *testing.T) {
	_, center, _ := GlobeShade(1).Decompose()
	_, limb, _ := GlobeShade(0).Decompose()
	_, clamped, _ := GlobeShade(-3).Decompose()

	if center == limb {
		t.Error("center and limb share a shade")
	}
	if clamped != limb {
		t.Errorf("GlobeShade(-3) = %v; want the limb shade %v", clamped, limb)
	}

	cr, cg, cb := center.RGB()
	lr, lg, lb := limb.RGB()
	if cr+cg+cb <= lr+lg+lb {
		t.Error("limb should be darker than the center")
	}
}

func TestMarkerStyle(t *testing.T) {
	fg0, _, attrs := MarkerStyle(0).Decompose()
	fg1, _, _ := MarkerStyle(0.25).Decompose()

	if attrs&tcell.AttrBold == 0 {
		t.Error("marker not bold")
	}
	if fg0 == fg1 {
		t.Error("marker does not pulse")
	}
}

func TestFeatureStyles(t *testing.T) {
	types := []geo.FeatureType{geo.FeatureCoastline, geo.FeatureBorder, geo.FeatureRiver, geo.FeatureGraticule}
	seen := map[rune]bool{}
	for _, ft := range types {
		ch := GetCharForFeature(ft)
		if seen[ch] {
			t.Errorf("%v shares glyph %q", ft, ch)
		}
		seen[ch] = true
		if GetStyleForFeature(ft) == tcell.StyleDefault {
			t.Errorf("%v has no style", ft)
		}
	}
}
