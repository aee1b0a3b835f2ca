// Package draw renders game frames into terminal cells.
package draw

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/tomz197/spiritwatch/internal/vector"
)

// Ink is the palette index of a lit sub-pixel. InkNone means unlit.
type Ink uint8

// Palette. Higher inks win when two shapes cover the same sub-pixel.
const (
	InkNone Ink = iota
	InkDebug
	InkPreview
	InkAsteroid
	InkLight
	InkDefault
	InkShip
	InkAstronaut
	InkInstallation
	InkFlare
	InkSpirit
	InkDanger
	InkSelected
)

// ansiColors maps inks to 256-color foreground codes.
var ansiColors = [...]int{
	InkNone:         0,
	InkDebug:        240,
	InkPreview:      244,
	InkAsteroid:     137,
	InkLight:        229,
	InkDefault:      255,
	InkShip:         75,
	InkAstronaut:    231,
	InkInstallation: 114,
	InkFlare:        220,
	InkSpirit:       171,
	InkDanger:       196,
	InkSelected:     51,
}

// Color256 returns the 256-color palette index used for ink.
func (i Ink) Color256() int {
	if int(i) < len(ansiColors) {
		return ansiColors[i]
	}
	return ansiColors[InkDefault]
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Shade characters from lightest to darkest.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	idx := int(intensity * float64(len(Shades)-1))
	return Shades[idx]
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int   // Actual terminal columns
	termHeight     int   // Actual terminal rows
	subPixelHeight int   // termHeight * 2
	pixels         []Ink // Flat slice: [y * termWidth + x]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64 // in sub-pixels
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets used when the terminal is larger than the render area.
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	scaledBuf       []vector.Vector
	intersectionBuf []float64
}

// NewCanvas creates a canvas for the given terminal dimensions with a 1:1 mapping.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Ink, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, ink Ink) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		if ink > c.pixels[i] {
			c.pixels[i] = ink
		}
	}
}

// At returns the ink of the sub-pixel at terminal coordinates.
func (c *Canvas) At(x, y int) Ink {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return InkNone
}

// Set sets a pixel at logical coordinates.
func (c *Canvas) Set(p vector.Vector, ink Ink) {
	c.setPixel(int(math.Round(p.X*c.scaleX)), int(math.Round(p.Y*c.scaleY)), ink)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 vector.Vector, ink Ink) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	// Lines far outside the canvas are skipped instead of walked pixel by pixel.
	limit := 4 * (c.termWidth + c.subPixelHeight)
	if abs(x1) > limit || abs(x2) > limit || abs(y1) > limit || abs(y2) > limit {
		return
	}

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, ink)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []vector.Vector, ink Ink, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, ink)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], ink)
	}
}

// fillPolygon fills a polygon using scanline algorithm in pixel space.
func (c *Canvas) fillPolygon(points []vector.Vector, ink Ink) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]vector.Vector, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = vector.New(p.X*c.scaleX, p.Y*c.scaleY)
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	// Clip the scan range to the canvas
	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}

		c.intersectionBuf = intersections
		slices.Sort(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := max(int(math.Ceil(intersections[i])), 0)
			xEnd := min(int(math.Floor(intersections[i+1])), c.termWidth-1)
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, ink)
			}
		}
	}
}

// Cell is one terminal cell produced from two stacked sub-pixels.
type Cell struct {
	Col, Row int // 0-based, offset applied
	Rune     rune
	Fg, Bg   Ink
}

// Cells calls fn for every non-empty terminal cell.
func (c *Canvas) Cells(fn func(cell Cell)) {
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			cell := Cell{Col: col + c.offsetCol, Row: row + c.offsetRow}
			switch {
			case top != InkNone && top == bottom:
				cell.Rune, cell.Fg = BlockFull, top
			case top != InkNone:
				cell.Rune, cell.Fg, cell.Bg = BlockUpperHalf, top, bottom
			case bottom != InkNone:
				cell.Rune, cell.Fg = BlockLowerHalf, bottom
			default:
				continue // Skip empty cells
			}
			fn(cell)
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using colored half-block characters.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 20)

	c.Cells(func(cell Cell) {
		fmt.Fprintf(&c.renderBuf, "\033[%d;%dH\033[38;5;%dm", cell.Row+1, cell.Col+1, cell.Fg.Color256())
		if cell.Bg != InkNone {
			fmt.Fprintf(&c.renderBuf, "\033[48;5;%dm%c\033[49m", cell.Bg.Color256(), cell.Rune)
			return
		}
		c.renderBuf.WriteRune(cell.Rune)
	})
	c.renderBuf.WriteString("\033[39m")

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 { return c.logicalWidth }

// LogicalHeight returns the logical height (target resolution, in sub-pixels).
func (c *Canvas) LogicalHeight() float64 { return c.logicalHeight }

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// LogicalToTerminal converts logical coordinates to a 1-based terminal position.
// Useful for placing text overlays next to canvas-drawn shapes.
func (c *Canvas) LogicalToTerminal(p vector.Vector) (col, row int) {
	px := int(math.Round(p.X * c.scaleX))
	py := int(math.Round(p.Y * c.scaleY))
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}

// TerminalToLogical converts a 1-based terminal position to logical coordinates
// at the centre of the cell. Used to map mouse reports back into the canvas.
func (c *Canvas) TerminalToLogical(col, row int) vector.Vector {
	x := (float64(col-1-c.offsetCol) + 0.5) / c.scaleX
	y := (float64(row-1-c.offsetRow)*2 + 1) / c.scaleY
	return vector.New(x, y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
