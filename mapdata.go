package mapquiz

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidMap is returned when a map definition fails validation.
var ErrInvalidMap = errors.New("mapquiz: invalid map")

// MapDef is a map definition as stored in YAML.
//
//	name: Demo
//	width: 1000
//	height: 600
//	regions:
//	  - id: north
//	    name: Northland
//	    outline: [[0, 0], [500, 0], [500, 300], [0, 300]]
//	    label: [250, 150]
type MapDef struct {
	Name    string      `yaml:"name"`
	Width   float64     `yaml:"width"`
	Height  float64     `yaml:"height"`
	View    *ViewDef    `yaml:"view,omitempty"`
	Regions []RegionDef `yaml:"regions"`
}

// ViewDef is the natural view region of a map.
type ViewDef struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RegionDef describes one region.
type RegionDef struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	Outline [][2]float64 `yaml:"outline"`
	Label   *[2]float64  `yaml:"label,omitempty"`
	Bounds  *CircleDef   `yaml:"bounds,omitempty"`
}

// CircleDef is a circular extra hit area.
type CircleDef struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// DecodeMap reads and validates a YAML map definition. Unknown keys are
// rejected.
func DecodeMap(r io.Reader) (*MapDef, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var m MapDef
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode map: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadMap reads a YAML map file.
func LoadMap(path string) (*MapDef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()
	m, err := DecodeMap(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Validate checks sizes, ids and outlines.
func (m *MapDef) Validate() error {
	if !positive(m.Width) || !positive(m.Height) {
		return fmt.Errorf("%w: content size %vx%v", ErrInvalidMap, m.Width, m.Height)
	}
	if m.View != nil && (!positive(m.View.Width) || !positive(m.View.Height)) {
		return fmt.Errorf("%w: view size %vx%v", ErrInvalidMap, m.View.Width, m.View.Height)
	}
	if len(m.Regions) == 0 {
		return fmt.Errorf("%w: no regions", ErrInvalidMap)
	}
	seen := make(map[string]bool, len(m.Regions))
	for i, rd := range m.Regions {
		if rd.ID == "" {
			return fmt.Errorf("%w: region %d has no id", ErrInvalidMap, i)
		}
		if seen[rd.ID] {
			return fmt.Errorf("%w: duplicate region id %q", ErrInvalidMap, rd.ID)
		}
		seen[rd.ID] = true
		if len(rd.Outline) < 3 {
			return fmt.Errorf("%w: region %q outline has %d points, need at least 3",
				ErrInvalidMap, rd.ID, len(rd.Outline))
		}
		if rd.Bounds != nil && !positive(rd.Bounds.Radius) {
			return fmt.Errorf("%w: region %q bounds radius %v", ErrInvalidMap, rd.ID, rd.Bounds.Radius)
		}
	}
	return nil
}

// ContentSize returns the natural content size.
func (m *MapDef) ContentSize() Vec2 {
	return Vec2{m.Width, m.Height}
}

// Home returns the natural view region, or the zero Viewport when the map
// does not declare one.
func (m *MapDef) Home() Viewport {
	if m.View == nil {
		return Viewport{}
	}
	return Viewport{X: m.View.X, Y: m.View.Y, Width: m.View.Width, Height: m.View.Height}
}

// Build creates the regions described by m.
func (m *MapDef) Build() ([]*Region, error) {
	regions := make([]*Region, 0, len(m.Regions))
	for _, rd := range m.Regions {
		outline := make([]Vec2, len(rd.Outline))
		for i, p := range rd.Outline {
			outline[i] = Vec2{p[0], p[1]}
		}
		r, err := NewRegion(rd.ID, rd.Name, outline)
		if err != nil {
			return nil, err
		}
		if rd.Label != nil {
			r.SetLabel(Vec2{rd.Label[0], rd.Label[1]})
		}
		if rd.Bounds != nil {
			r.Bounds = HitCircle{CenterX: rd.Bounds.X, CenterY: rd.Bounds.Y, Radius: rd.Bounds.Radius}
		}
		regions = append(regions, r)
	}
	return regions, nil
}
