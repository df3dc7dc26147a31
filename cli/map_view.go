package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"landsquire.in/estatemap/geo"
	"landsquire.in/estatemap/listing"
	"landsquire.in/estatemap/session"
)

var (
	markerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DD4BF"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true)
	chipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDE047"))
	polygonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))
)

// screenXY maps lon/lat into cell coordinates within the viewport box.
// Latitude grows upward, rows grow downward, hence the flip.
func screenXY(region geo.Region, p orb.Point, w, h int) (int, int, bool) {
	bound := region.Bound()
	spanX := bound.Max.Lon() - bound.Min.Lon()
	spanY := bound.Max.Lat() - bound.Min.Lat()
	if spanX <= 0 || spanY <= 0 || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	nx := (p.Lon() - bound.Min.Lon()) / spanX
	ny := (p.Lat() - bound.Min.Lat()) / spanY
	sx := int(nx * float64(w-1))
	sy := int((1.0 - ny) * float64(h-1))
	if sx < 0 || sx >= w || sy < 0 || sy >= h {
		return 0, 0, false
	}
	return sx, sy, true
}

type cellGrid struct {
	cells [][]rune
	style [][]lipgloss.Style
	w, h  int
}

func newCellGrid(w, h int, background rune, sparse bool) *cellGrid {
	g := &cellGrid{w: w, h: h}
	g.cells = make([][]rune, h)
	g.style = make([][]lipgloss.Style, h)
	for y := 0; y < h; y++ {
		g.cells[y] = make([]rune, w)
		g.style[y] = make([]lipgloss.Style, w)
		for x := 0; x < w; x++ {
			g.cells[y][x] = ' '
			if sparse && x%6 == 0 && y%3 == 0 {
				g.cells[y][x] = background
			}
		}
	}
	return g
}

func (g *cellGrid) set(x, y int, r rune, s lipgloss.Style) {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return
	}
	g.cells[y][x] = r
	g.style[y][x] = s
}

func (g *cellGrid) text(x, y int, s string, style lipgloss.Style) {
	for i, r := range []rune(s) {
		g.set(x+i, y, r, style)
	}
}

// line draws a rune along the Bresenham path between two cells.
func (g *cellGrid) line(x0, y0, x1, y1 int, r rune, s lipgloss.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		g.set(x0, y0, r, s)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (g *cellGrid) String() string {
	lines := make([]string, g.h)
	for y := 0; y < g.h; y++ {
		var b strings.Builder
		for x := 0; x < g.w; x++ {
			b.WriteString(g.style[y][x].Render(string(g.cells[y][x])))
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// renderMap draws the viewport: project polygons first, then property
// and project markers with price chips, the cursor marker highlighted.
func renderMap(snap session.Snapshot, cursor, w, h int) string {
	sparse := snap.MapType == session.MapStandard
	grid := newCellGrid(w, h, '·', sparse)

	for _, item := range snap.VisibleItems {
		project, ok := item.(listing.Project)
		if !ok || !project.Renderable() {
			continue
		}
		var prev [2]int
		havePrev := false
		n := len(project.Polygon)
		for i := 0; i <= n; i++ {
			v := project.Polygon[i%n]
			sx, sy, ok := screenXY(snap.Region, v, w, h)
			if !ok {
				havePrev = false
				continue
			}
			if havePrev {
				grid.line(prev[0], prev[1], sx, sy, '·', polygonStyle)
			}
			prev = [2]int{sx, sy}
			havePrev = true
		}
	}

	for i, item := range snap.VisibleItems {
		sx, sy, ok := screenXY(snap.Region, item.Anchor(), w, h)
		if !ok {
			continue
		}
		glyph := '●'
		if item.Kind() == listing.KindProject {
			glyph = '▲'
		}
		style := markerStyle
		if i == cursor {
			style = selectedStyle
		}
		grid.set(sx, sy, glyph, style)
		if property, ok := item.(listing.Property); ok {
			grid.text(sx+2, sy, geo.FormatINR(property.Price), chipStyle)
		}
	}

	return grid.String()
}
