package rules

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/samdwyer/wavecollapse/internal/gamedata"
	"github.com/samdwyer/wavecollapse/internal/logger"
	"github.com/samdwyer/wavecollapse/internal/wfc"
)

// Source is a rule loader that also exposes parse diagnostics.
type Source interface {
	wfc.TileLoader
	Load() (*Result, error)
	Name() string
}

// FileSource reads rules from a file on disk.
type FileSource struct {
	Path string
}

// Name returns the file path.
func (s FileSource) Name() string { return s.Path }

// Load parses the file.
func (s FileSource) Load() (*Result, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	res, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	logLoaded(s, res)
	return res, nil
}

// LoadTiles implements wfc.TileLoader.
func (s FileSource) LoadTiles() ([]wfc.Tile, error) {
	return tilesOf(s)
}

// ReaderSource reads rules from any reader, such as stdin. The reader is
// consumed by the first Load.
type ReaderSource struct {
	Reader io.Reader
	Label  string
}

// Name returns the label, or "reader" when none was given.
func (s ReaderSource) Name() string {
	if s.Label == "" {
		return "reader"
	}
	return s.Label
}

// Load parses the reader.
func (s ReaderSource) Load() (*Result, error) {
	res, err := Parse(s.Reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	logLoaded(s, res)
	return res, nil
}

// LoadTiles implements wfc.TileLoader.
func (s ReaderSource) LoadTiles() ([]wfc.Tile, error) {
	return tilesOf(s)
}

// PresetSource reads the rules bundled with an embedded preset.
type PresetSource struct {
	Preset *gamedata.PresetDef
}

// Name returns the preset ID.
func (s PresetSource) Name() string { return "preset:" + s.Preset.ID }

// Load parses the preset's rule file.
func (s PresetSource) Load() (*Result, error) {
	content, err := s.Preset.Rules()
	if err != nil {
		return nil, err
	}
	res, err := Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	logLoaded(s, res)
	return res, nil
}

// LoadTiles implements wfc.TileLoader.
func (s PresetSource) LoadTiles() ([]wfc.Tile, error) {
	return tilesOf(s)
}

func tilesOf(s Source) ([]wfc.Tile, error) {
	res, err := s.Load()
	if err != nil {
		return nil, err
	}
	return res.Tiles, nil
}

func logLoaded(s Source, res *Result) {
	logger.Debug("Loaded rules",
		"source", s.Name(),
		"tiles", len(res.Tiles),
		"diagnostics", len(res.Diagnostics),
	)
}
