// Package scene holds the declarative level layouts and asteroid outlines.
// The data is read once when a level loads and never written back.
package scene

import (
	"embed"
	"errors"
	"io"
	"slices"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tomz197/spiritwatch/internal/vector"
)

var (
	// ErrUnknownKind is returned for records naming an unknown type or asteroid kind.
	ErrUnknownKind = errors.New("scene: unknown kind")
	// ErrUnknownLevel is returned for a level name with no embedded scene.
	ErrUnknownLevel = errors.New("scene: unknown level")
)

//go:embed data/*.yaml
var files embed.FS

// Record types.
const (
	TypeAsteroid = "asteroid"
	TypeShip     = "ship"
	TypeRitual   = "ritual"
)

// Record places one object.
type Record struct {
	Type     string  `yaml:"type"`
	Kind     string  `yaml:"kind,omitempty"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation,omitempty"`
	Resource float64 `yaml:"resource,omitempty"`
}

// Pos returns the record position.
func (r Record) Pos() vector.Vector {
	return vector.New(r.X, r.Y)
}

// Scene is the ordered list of records of one level.
type Scene []Record

// DefaultKind is used for asteroid records without a kind.
const DefaultKind = "stone_1"

var hitboxes map[string][]vector.Vector

func init() {
	raw, err := files.ReadFile("data/hitboxes.yaml")
	if err != nil {
		panic(err)
	}
	hb, err := parseHitboxes(raw)
	if err != nil {
		panic(err)
	}
	hitboxes = hb
}

func parseHitboxes(raw []byte) (map[string][]vector.Vector, error) {
	var pts map[string][][2]float64
	if err := yaml.Unmarshal(raw, &pts); err != nil {
		return nil, pkgerrors.Wrap(err, "decode hitboxes")
	}
	out := make(map[string][]vector.Vector, len(pts))
	for kind, list := range pts {
		poly := make([]vector.Vector, len(list))
		for i, p := range list {
			poly[i] = vector.New(p[0], p[1])
		}
		out[kind] = poly
	}
	return out, nil
}

// Hitbox returns a copy of the outline of an asteroid kind.
func Hitbox(kind string) ([]vector.Vector, error) {
	poly, ok := hitboxes[kind]
	if !ok {
		return nil, pkgerrors.Wrapf(ErrUnknownKind, "hitbox %q", kind)
	}
	return slices.Clone(poly), nil
}

// Kinds lists the known asteroid kinds in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(hitboxes))
	for k := range hitboxes {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Levels lists the embedded level names in sorted order.
func Levels() []string {
	entries, err := files.ReadDir("data")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".yaml")
		if name == "hitboxes" {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Level loads an embedded scene by name.
func Level(name string) (Scene, error) {
	if name == "hitboxes" {
		return nil, pkgerrors.Wrapf(ErrUnknownLevel, "level %q", name)
	}
	f, err := files.Open("data/" + name + ".yaml")
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrUnknownLevel, "level %q", name)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "level %q", name)
	}
	return s, nil
}

// Parse decodes and validates a scene.
func Parse(r io.Reader) (Scene, error) {
	var s Scene
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, pkgerrors.Wrap(err, "decode scene")
	}
	for i := range s {
		rec := &s[i]
		switch rec.Type {
		case TypeAsteroid:
			if rec.Kind == "" {
				rec.Kind = DefaultKind
			}
			if _, ok := hitboxes[rec.Kind]; !ok {
				return nil, pkgerrors.Wrapf(ErrUnknownKind, "record %d: asteroid kind %q", i, rec.Kind)
			}
		case TypeShip, TypeRitual:
		default:
			return nil, pkgerrors.Wrapf(ErrUnknownKind, "record %d: type %q", i, rec.Type)
		}
	}
	return s, nil
}
