package viz

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"
)

type cell struct {
	r     rune
	style *lipgloss.Style
}

// canvas is a fixed-size grid of styled runes. Writes outside the grid are
// dropped.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 1), max(h, 1)
	cells := make([][]cell, h)
	for y := range cells {
		row := make([]cell, w)
		for x := range row {
			row[x].r = ' '
		}
		cells[y] = row
	}
	return &canvas{w: w, h: h, cells: cells}
}

func (c *canvas) set(x, y int, r rune, st *lipgloss.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{r: r, style: st}
}

func (c *canvas) text(x, y int, s string, st *lipgloss.Style) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, st)
	}
}

// centerText writes s centered on row y.
func (c *canvas) centerText(y int, s string, st *lipgloss.Style) {
	c.text((c.w-len([]rune(s)))/2, y, s, st)
}

func (c *canvas) hline(x0, x1, y int, r rune, st *lipgloss.Style) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		c.set(x, y, r, st)
	}
}

func (c *canvas) vline(x, y0, y1 int, r rune, st *lipgloss.Style) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		c.set(x, y, r, st)
	}
}

// box draws a rounded rectangle with label centered inside.
func (c *canvas) box(x, y, w, h int, label string, st *lipgloss.Style) {
	if w < 2 || h < 2 {
		return
	}
	c.set(x, y, '╭', st)
	c.set(x+w-1, y, '╮', st)
	c.set(x, y+h-1, '╰', st)
	c.set(x+w-1, y+h-1, '╯', st)
	c.hline(x+1, x+w-2, y, '─', st)
	c.hline(x+1, x+w-2, y+h-1, '─', st)
	c.vline(x, y+1, y+h-2, '│', st)
	c.vline(x+w-1, y+1, y+h-2, '│', st)

	lines := strings.Split(label, "\n")
	top := y + (h-len(lines))/2
	for i, l := range lines {
		c.text(x+(w-len([]rune(l)))/2, top+i, l, st)
	}
}

// plot maps a point in world coordinates onto the grid, with y growing up.
func (c *canvas) plot(wx, wy, maxX, maxY float64, r rune, st *lipgloss.Style) {
	if maxX <= 0 || maxY <= 0 {
		return
	}
	x := int(math.Round(wx / maxX * float64(c.w-1)))
	y := c.h - 1 - int(math.Round(wy/maxY*float64(c.h-1)))
	c.set(x, y, r, st)
}

func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var cur *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur != nil {
				b.WriteString(cur.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.style != cur {
				flush()
				cur = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}
