package tui

// Braille patterns give a 2x4 sub-cell grid per character, so the trail can
// show motion finer than the terminal cell size.
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const trailCap = 160

type trailPoint struct {
	x, y float64
}

// Trail keeps the mascot's recent path and rasterizes it onto a braille
// character grid sized in terminal cells.
type Trail struct {
	points []trailPoint
	grid   [][]rune
	w, h   int
}

func NewTrail() *Trail {
	return &Trail{points: make([]trailPoint, 0, trailCap)}
}

// Add appends a position in field-local cell coordinates.
func (t *Trail) Add(x, y float64) {
	if len(t.points) == trailCap {
		copy(t.points, t.points[1:])
		t.points = t.points[:trailCap-1]
	}
	t.points = append(t.points, trailPoint{x, y})
}

func (t *Trail) Clear() {
	t.points = t.points[:0]
}

// Render rasterizes the trail into a w x h rune grid. Cells without any
// trail dot hold zero so the caller can layer it under other content.
func (t *Trail) Render(w, h int) [][]rune {
	if w != t.w || h != t.h || t.grid == nil {
		t.w, t.h = w, h
		t.grid = make([][]rune, h)
		for i := range t.grid {
			t.grid[i] = make([]rune, w)
		}
	} else {
		for i := range t.grid {
			for j := range t.grid[i] {
				t.grid[i][j] = 0
			}
		}
	}

	for _, p := range t.points {
		t.set(int(p.x*2), int(p.y*4))
	}
	return t.grid
}

func (t *Trail) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= t.w || row >= t.h {
		return
	}
	if t.grid[row][col] == 0 {
		t.grid[row][col] = 0x2800
	}
	t.grid[row][col] |= pixelMap[y%4][x%2]
}
