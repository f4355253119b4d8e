package layout

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/elektrokombinacija/robovac-sim/internal/core"
)

var glyphs = map[core.CellType]rune{
	core.Free:     '.',
	core.Obstacle: '#',
	core.Cliff:    'C',
	core.Dock:     'D',
}

// Glyph returns the ASCII rune for a cell type.
func Glyph(c core.CellType) rune {
	if r, ok := glyphs[c]; ok {
		return r
	}
	return '.'
}

// DecodeGlyph maps a rune to a cell type. Unknown runes are Free.
func DecodeGlyph(r rune) core.CellType {
	switch r {
	case '#':
		return core.Obstacle
	case 'C':
		return core.Cliff
	case 'D':
		return core.Dock
	default:
		return core.Free
	}
}

// ParseASCII reads one row per line. Blank lines are skipped; rows must
// all have the same width.
func ParseASCII(r io.Reader) (Grid, error) {
	var g Grid
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r \t")
		if line == "" {
			continue
		}
		row := make([]core.CellType, 0, len(line))
		for _, ch := range line {
			row = append(row, DecodeGlyph(ch))
		}
		if len(g) > 0 && len(row) != len(g[0]) {
			return nil, fmt.Errorf("%w: line %d has %d cells, want %d",
				core.ErrInvalidDimensions, len(g)+1, len(row), len(g[0]))
		}
		g = append(g, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	if len(g) == 0 {
		return nil, fmt.Errorf("%w: empty layout", core.ErrInvalidDimensions)
	}
	return g, nil
}

// FormatASCII renders g with one line per row.
func FormatASCII(g Grid) string {
	var b strings.Builder
	for _, row := range g {
		for _, c := range row {
			b.WriteRune(Glyph(c))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Overlay renders g with path cells drawn as '*' and the first and last
// path cells as 'S' and 'G'.
func Overlay(g Grid, path []core.Cell) string {
	marks := make(map[core.Cell]rune, len(path))
	for _, c := range path {
		marks[c] = '*'
	}
	if len(path) > 0 {
		marks[path[0]] = 'S'
		marks[path[len(path)-1]] = 'G'
	}

	var b strings.Builder
	for y, row := range g {
		for x, c := range row {
			if m, ok := marks[core.Cell{X: x, Y: y}]; ok {
				b.WriteRune(m)
				continue
			}
			b.WriteRune(Glyph(c))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
