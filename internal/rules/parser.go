// Package rules reads tile adjacency rules written in the [TILE_n] format:
//
//	# comment
//	[TILE_0]
//	up=0 1
//	right=1
//
// Each section describes one tile; its ID is the section's position in the
// file. Keys are up, down, left and right, and values are whitespace
// separated tile IDs. A blank line or another header ends a section.
// Malformed lines are skipped and reported as diagnostics rather than
// failing the whole file.
package rules

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/samdwyer/wavecollapse/internal/logger"
	"github.com/samdwyer/wavecollapse/internal/wfc"
)

// Diagnostic describes a line the parser skipped or a header it corrected.
type Diagnostic struct {
	Line   int
	Text   string
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %q", d.Line, d.Reason, d.Text)
}

// Result is a parsed rule file.
type Result struct {
	Tiles       []wfc.Tile
	Diagnostics []Diagnostic
}

// Ruleset builds an immutable ruleset from the parsed tiles.
func (r *Result) Ruleset() (*wfc.Ruleset, error) {
	return wfc.NewRuleset(r.Tiles)
}

// Parse reads a rule file. Only read failures are returned as errors.
func Parse(r io.Reader) (*Result, error) {
	p := &parser{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		p.feed(line, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read rules at line %d: %w", line+1, err)
	}
	return p.finish(), nil
}

// entry is a direction line held back until the tile count is known, since
// IDs may refer to sections further down the file.
type entry struct {
	line int
	text string
	tile int
	dir  wfc.Direction
	ids  []int
}

type parser struct {
	tiles   []wfc.Tile
	open    bool
	entries []entry
	diags   []Diagnostic
}

func (p *parser) feed(line int, raw string) {
	text := strings.TrimSpace(raw)
	switch {
	case text == "":
		p.open = false
	case strings.HasPrefix(text, "#"):
	case strings.HasPrefix(text, "["):
		p.open = false
		p.header(line, text)
	case !p.open:
		p.skip(line, text, "outside a tile section")
	default:
		p.direction(line, text)
	}
}

func (p *parser) header(line int, text string) {
	num, ok := strings.CutPrefix(text, "[TILE_")
	if !ok {
		p.skip(line, text, "unknown section header")
		return
	}
	num, ok = strings.CutSuffix(num, "]")
	if !ok {
		p.skip(line, text, "unterminated section header")
		return
	}

	pos := len(p.tiles)
	p.tiles = append(p.tiles, wfc.Tile{})
	p.open = true

	if n, err := strconv.Atoi(num); err != nil || n != pos {
		p.report(line, text, fmt.Sprintf("header number does not match position %d, using %d", pos, pos))
	}
}

func (p *parser) direction(line int, text string) {
	key, value, ok := strings.Cut(text, "=")
	if !ok {
		p.skip(line, text, "missing '='")
		return
	}
	key = strings.ToLower(strings.TrimSpace(key))
	dir, ok := wfc.ParseDirection(key)
	if !ok {
		p.skip(line, text, fmt.Sprintf("unknown direction %q", key))
		return
	}

	fields := strings.Fields(value)
	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(f)
		if err != nil || id < 0 {
			p.skip(line, text, fmt.Sprintf("invalid tile id %q", f))
			return
		}
		ids = append(ids, id)
	}

	p.entries = append(p.entries, entry{
		line: line,
		text: text,
		tile: len(p.tiles) - 1,
		dir:  dir,
		ids:  ids,
	})
}

func (p *parser) finish() *Result {
	count := min(len(p.tiles), wfc.MaxTiles)

	for _, e := range p.entries {
		var allowed wfc.TileSet
		bad := -1
		for _, id := range e.ids {
			if id >= count {
				bad = id
				break
			}
			allowed = allowed.With(wfc.TileID(id))
		}
		if bad >= 0 {
			p.skip(e.line, e.text, fmt.Sprintf("tile id %d out of range, %d tiles defined", bad, count))
			continue
		}
		// Repeated keys accumulate.
		p.tiles[e.tile].Compat[e.dir] |= allowed
	}

	for i := range count {
		p.tiles[i].ID = wfc.TileID(i)
	}

	slices.SortStableFunc(p.diags, func(a, b Diagnostic) int {
		return cmp.Compare(a.Line, b.Line)
	})
	return &Result{Tiles: p.tiles, Diagnostics: p.diags}
}

func (p *parser) skip(line int, text, reason string) {
	logger.Warning("Skipping rule line", "line", line, "reason", reason, "text", text)
	p.diags = append(p.diags, Diagnostic{Line: line, Text: text, Reason: reason})
}

func (p *parser) report(line int, text, reason string) {
	logger.Warning("Rule header corrected", "line", line, "reason", reason, "text", text)
	p.diags = append(p.diags, Diagnostic{Line: line, Text: text, Reason: reason})
}
