package render

import (
	"math"
	"strings"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var dotMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille raster. Its pixel surface is (Width*2) x (Height*4);
// Width and Height count terminal cells. Cells touched while Accent is set
// are marked so hosts can color them.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Marked        [][]bool
	Accent        bool
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 0), max(h, 0)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Marked: make([][]bool, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Marked[i] = make([]bool, w)
	}
	c.Clear()
	return c
}

// PixelSize is the size of the dot surface.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	cell := c.Grid[row][col]
	if cell < brailleBlank || cell > brailleBlank+0xff {
		return // text overlay
	}
	c.Grid[row][col] = cell | dotMap[y%4][x%2]
	if c.Accent {
		c.Marked[row][col] = true
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Marked[i][j] = false
		}
	}
}

// DrawLine draws a one-dot line with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
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
		c.Set(x0, y0)
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

// DrawThickLine draws width dots of parallel lines centered on a -> b.
func (c *Canvas) DrawThickLine(a, b Pixel, width float64) {
	n := max(1, int(math.Round(width)))
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		c.Set(round(a.X), round(a.Y))
		return
	}
	nx, ny := -dy/l, dx/l
	for k := 0; k < n; k++ {
		off := float64(k) - float64(n-1)/2
		c.DrawLine(round(a.X+nx*off), round(a.Y+ny*off), round(b.X+nx*off), round(b.Y+ny*off))
	}
}

// DrawCircle outlines a circle.
func (c *Canvas) DrawCircle(center Pixel, r float64) {
	steps := max(12, int(2*math.Pi*r))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Set(round(center.X+r*math.Cos(a)), round(center.Y+r*math.Sin(a)))
	}
}

// FillCircle fills a disk.
func (c *Canvas) FillCircle(center Pixel, r float64) {
	ri := int(math.Ceil(r))
	cx, cy := round(center.X), round(center.Y)
	for y := -ri; y <= ri; y++ {
		for x := -ri; x <= ri; x++ {
			if float64(x*x+y*y) <= r*r {
				c.Set(cx+x, cy+y)
			}
		}
	}
}

// FillTriangle fills the triangle abc.
func (c *Canvas) FillTriangle(t [3]Pixel) {
	minX := math.Floor(math.Min(t[0].X, math.Min(t[1].X, t[2].X)))
	maxX := math.Ceil(math.Max(t[0].X, math.Max(t[1].X, t[2].X)))
	minY := math.Floor(math.Min(t[0].Y, math.Min(t[1].Y, t[2].Y)))
	maxY := math.Ceil(math.Max(t[0].Y, math.Max(t[1].Y, t[2].Y)))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if inTriangle(Pixel{x, y}, t) {
				c.Set(int(x), int(y))
			}
		}
	}
}

// Text writes s into cells starting at (col, row), replacing braille.
func (c *Canvas) Text(col, row int, s string) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range s {
		if col >= c.Width {
			return
		}
		if col >= 0 {
			c.Grid[row][col] = r
			c.Marked[row][col] = c.Accent
		}
		col++
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Rasterize draws s onto c. The scene's pixel space must be the canvas dot
// surface. Highlighted shapes are drawn with Accent set.
func Rasterize(c *Canvas, s Scene) {
	c.Clear()
	for _, e := range s.Edges {
		c.Accent = e.Highlight
		if e.Loop {
			c.DrawCircle(e.Center, e.Radius)
			continue
		}
		c.DrawThickLine(e.From, e.To, e.Width)
		if e.HasHead {
			c.FillTriangle(e.Head)
		}
	}
	for _, n := range s.Nodes {
		c.Accent = n.Highlight
		c.FillCircle(n.Center, n.Radius)
		if n.Highlight {
			c.DrawCircle(n.Center, n.Radius+2)
		}
	}
	if s.Labels {
		w, h := c.PixelSize()
		for _, n := range s.Nodes {
			if n.Center.X < 0 || n.Center.Y < 0 || n.Center.X >= float64(w) || n.Center.Y >= float64(h) {
				continue
			}
			c.Accent = n.Highlight
			col := int(math.Floor((n.Center.X + n.Radius) / 2))
			row := int(math.Floor(n.Center.Y / 4))
			c.Text(col+1, row, n.ID)
		}
	}
	c.Accent = false
}

func inTriangle(p Pixel, t [3]Pixel) bool {
	d1 := cross(p, t[0], t[1])
	d2 := cross(p, t[1], t[2])
	d3 := cross(p, t[2], t[0])
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

func cross(p, a, b Pixel) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}

func round(f float64) int { return int(math.Round(f)) }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
