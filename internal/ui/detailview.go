package ui

import (
	"fmt"

	"geopicker/internal/geo"
	"geopicker/internal/render"

	"github.com/gdamore/tcell/v2"
)

// DetailView describes the live selection
type DetailView struct {
	location      *geo.SelectedLocation
	previous      *geo.SelectedLocation
	x, y          int
	width, height int
}

// NewDetailView creates a new detail view
func NewDetailView(x, y, width, height int) *DetailView {
	return &DetailView{
		x:      x,
		y:      y,
		width:  width,
		height: height,
	}
}

// SetLocation shows loc, remembering the location it replaces for the
// distance line
func (d *DetailView) SetLocation(loc geo.SelectedLocation) {
	if d.location != nil {
		prev := *d.location
		d.previous = &prev
	}
	d.location = &loc
}

// Clear empties the panel. The last location stays as the distance reference.
func (d *DetailView) Clear() {
	if d.location != nil {
		prev := *d.location
		d.previous = &prev
	}
	d.location = nil
}

// Visible reports whether there is a location to show
func (d *DetailView) Visible() bool {
	return d.location != nil
}

// Lines returns the panel body
func (d *DetailView) Lines() []string {
	if d.location == nil {
		return nil
	}

	loc := *d.location
	p := loc.Coordinate
	lines := []string{
		fmt.Sprintf("Location:  %s", loc.Label()),
		fmt.Sprintf("Decimal:   %s", geo.FormatDecimal(p)),
		fmt.Sprintf("DMS:       %s", geo.FormatDMS(p)),
		fmt.Sprintf("Region:    %s", geo.RegionName(p)),
	}
	if d.previous != nil {
		lines = append(lines, fmt.Sprintf("From last: %.0f km (%s)",
			geo.Haversine(d.previous.Coordinate, p), d.previous.Label()))
	}
	return lines
}

// Draw renders the detail view to the screen
func (d *DetailView) Draw(screen tcell.Screen) {
	if d.location == nil {
		return
	}

	clearPanel(screen, d.x, d.y, d.width, d.height)
	drawBorder(screen, d.x, d.y, d.width, d.height, "Selected Location")

	for i, line := range d.Lines() {
		if d.y+1+i >= d.y+d.height-1 {
			break
		}
		drawClipped(screen, d.x+2, d.y+1+i, d.width-4, line, render.StyleLabel)
	}

	instructions := "ESC to clear"
	drawClipped(screen, d.x+(d.width-len(instructions))/2, d.y+d.height-1, d.width-2,
		instructions, render.StyleLabel.Dim(true))
}

// UpdateDimensions updates the view dimensions
func (d *DetailView) UpdateDimensions(x, y, width, height int) {
	d.x = x
	d.y = y
	d.width = width
	d.height = height
}
