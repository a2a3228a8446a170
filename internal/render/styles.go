package render

import (
	"math"

	"geopicker/internal/geo"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Style definitions for map layers and panels
var (
	StyleCoastline    = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	StyleBorder       = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	StyleRiver        = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	StyleGraticule    = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	StylePlace        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleLabel        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleCrosshair    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	StyleStatus       = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	StyleListItem     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleListSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// Globe and marker palette, blended in Lab space
var (
	oceanCenter = colorful.Color{R: 0.04, G: 0.16, B: 0.32}
	oceanLimb   = colorful.Color{R: 0.01, G: 0.04, B: 0.10}
	markerHot   = colorful.Color{R: 1.00, G: 0.25, B: 0.20}
	markerCool  = colorful.Color{R: 1.00, G: 0.85, B: 0.30}
)

// GlobeShade returns the background for a globe cell at depth z, where z is
// 1 at the disk center and 0 on the limb
func GlobeShade(z float64) tcell.Style {
	t := 1 - math.Max(0, math.Min(1, z))
	return tcell.StyleDefault.Background(toTcell(oceanCenter.BlendLab(oceanLimb, t*t)))
}

// MarkerStyle returns the selection marker style at pulse phase in [0, 1)
func MarkerStyle(phase float64) tcell.Style {
	t := 0.5 + 0.5*math.Sin(2*math.Pi*phase)
	return tcell.StyleDefault.Foreground(toTcell(markerHot.BlendLab(markerCool, t))).Bold(true)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// GetStyleForFeature returns the appropriate style for a feature type
func GetStyleForFeature(ftype geo.FeatureType) tcell.Style {
	switch ftype {
	case geo.FeatureCoastline:
		return StyleCoastline
	case geo.FeatureBorder:
		return StyleBorder
	case geo.FeatureRiver:
		return StyleRiver
	case geo.FeatureGraticule:
		return StyleGraticule
	case geo.FeaturePlace:
		return StylePlace
	default:
		return tcell.StyleDefault
	}
}

// GetCharForFeature returns the character used to draw a feature
func GetCharForFeature(ftype geo.FeatureType) rune {
	switch ftype {
	case geo.FeatureCoastline:
		return '*'
	case geo.FeatureBorder:
		return '-'
	case geo.FeatureRiver:
		return '~'
	case geo.FeatureGraticule:
		return '·'
	default:
		return '.'
	}
}
