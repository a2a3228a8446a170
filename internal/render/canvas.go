package render

import (
	"github.com/gdamore/tcell/v2"
)

// Canvas is a grid of styled cells drawn off-screen and blitted in one pass
type Canvas struct {
	width  int
	height int
	cells  []Cell
}

// Cell represents a single character cell with style
type Cell struct {
	Char  rune
	Style tcell.Style
}

var blank = Cell{Char: ' ', Style: tcell.StyleDefault}

// NewCanvas creates a new blank canvas
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize reallocates the canvas, clearing it
func (c *Canvas) Resize(width, height int) {
	c.width = max(width, 0)
	c.height = max(height, 0)
	c.cells = make([]Cell, c.width*c.height)
	c.Clear()
}

func (c *Canvas) index(x, y int) (int, bool) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0, false
	}
	return y*c.width + x, true
}

// Set sets the character and style at the given position.
// Out-of-bounds writes are ignored.
func (c *Canvas) Set(x, y int, char rune, style tcell.Style) {
	if i, ok := c.index(x, y); ok {
		c.cells[i] = Cell{Char: char, Style: style}
	}
}

// Overlay draws char with the foreground and attributes of style while
// keeping the background already in the cell
func (c *Canvas) Overlay(x, y int, char rune, style tcell.Style) {
	i, ok := c.index(x, y)
	if !ok {
		return
	}
	_, bg, _ := c.cells[i].Style.Decompose()
	if bg != tcell.ColorDefault {
		style = style.Background(bg)
	}
	c.cells[i] = Cell{Char: char, Style: style}
}

// Get retrieves the cell at the given position
func (c *Canvas) Get(x, y int) Cell {
	if i, ok := c.index(x, y); ok {
		return c.cells[i]
	}
	return blank
}

// Clear resets the entire canvas to spaces with default style
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blank
	}
}

// DrawText draws a string at the given position, keeping backgrounds
func (c *Canvas) DrawText(x, y int, text string, style tcell.Style) {
	i := 0
	for _, char := range text {
		c.Overlay(x+i, y, char, style)
		i++
	}
}

// DrawLine draws a line with Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, char rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy

	for {
		c.Overlay(x0, y0, char, style)

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Width returns the canvas width
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height
func (c *Canvas) Height() int {
	return c.height
}

// Blit renders the canvas to a tcell screen
func (c *Canvas) Blit(screen tcell.Screen, offsetX, offsetY int) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			screen.SetContent(offsetX+x, offsetY+y, cell.Char, nil, cell.Style)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
