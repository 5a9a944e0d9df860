package wfc

import "fmt"

// Direction is one of the four cardinal neighbor directions.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in neighbor order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// String returns the direction's rule-file key.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps a rule-file key to a Direction.
func ParseDirection(key string) (Direction, bool) {
	switch key {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	default:
		return 0, false
	}
}

// Tile describes which tiles may sit next to it in each direction.
// Compat[Right] holds the tiles allowed immediately to the right of this one.
type Tile struct {
	ID     TileID
	Compat [4]TileSet
}

// Allows reports whether other may sit next to t in direction d.
func (t Tile) Allows(d Direction, other TileID) bool {
	return t.Compat[d].Has(other)
}

// TileLoader supplies the tiles of a ruleset. Rule file parsers implement it.
type TileLoader interface {
	LoadTiles() ([]Tile, error)
}

// Ruleset is an immutable set of tiles and their adjacency rules.
// It is safe for concurrent use by any number of solvers.
type Ruleset struct {
	tiles []Tile
	full  TileSet
}

// NewRuleset builds a ruleset. Tile IDs are the positions in tiles; any
// compatibility bit naming a tile past the end is dropped.
func NewRuleset(tiles []Tile) (*Ruleset, error) {
	if len(tiles) == 0 {
		return nil, ErrEmptyRuleset
	}
	if len(tiles) > MaxTiles {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrTooManyTiles, len(tiles), MaxTiles)
	}

	full := FullSet(len(tiles))
	owned := make([]Tile, len(tiles))
	for i, t := range tiles {
		owned[i].ID = TileID(i)
		for _, d := range Directions {
			owned[i].Compat[d] = t.Compat[d] & full
		}
	}

	return &Ruleset{tiles: owned, full: full}, nil
}

// Len returns the number of tiles.
func (r *Ruleset) Len() int {
	return len(r.tiles)
}

// Full returns the set of every tile in the ruleset.
func (r *Ruleset) Full() TileSet {
	return r.full
}

// Tile returns the tile with the given ID.
func (r *Ruleset) Tile(id TileID) (Tile, bool) {
	if int(id) >= len(r.tiles) {
		return Tile{}, false
	}
	return r.tiles[id], true
}

// Tiles returns a copy of every tile in ID order.
func (r *Ruleset) Tiles() []Tile {
	out := make([]Tile, len(r.tiles))
	copy(out, r.tiles)
	return out
}

// Allowed returns the tiles that may sit in direction d of tile id.
func (r *Ruleset) Allowed(id TileID, d Direction) TileSet {
	if int(id) >= len(r.tiles) {
		return 0
	}
	return r.tiles[id].Compat[d]
}

// Support returns the union of Allowed(t, d) over every t in options: the
// tiles a neighbor in direction d may still hold.
func (r *Ruleset) Support(options TileSet, d Direction) TileSet {
	var allowed TileSet
	m := options & r.full
	for m != 0 {
		t := m.First()
		m = m.Without(t)
		allowed |= r.tiles[t].Compat[d]
	}
	return allowed
}

// Asymmetry records a rule that is not mirrored by the neighbor's rule.
// From allows To in direction Dir, but To does not allow From in the
// opposite direction.
type Asymmetry struct {
	From TileID
	To   TileID
	Dir  Direction
}

func (a Asymmetry) String() string {
	return fmt.Sprintf("tile %d allows %d %s, but tile %d does not allow %d %s",
		a.From, a.To, a.Dir, a.To, a.From, a.Dir.Opposite())
}

// Asymmetries lists every rule that is not mutually consistent. Solvers do
// not require consistency, but inconsistent rules make propagation order
// dependent on which side collapses first.
func (r *Ruleset) Asymmetries() []Asymmetry {
	var out []Asymmetry
	for _, t := range r.tiles {
		for _, d := range Directions {
			for _, other := range t.Compat[d].IDs() {
				if !r.tiles[other].Compat[d.Opposite()].Has(t.ID) {
					out = append(out, Asymmetry{From: t.ID, To: other, Dir: d})
				}
			}
		}
	}
	return out
}
