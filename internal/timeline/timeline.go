// Package timeline loads boss timelines: the fight length and the
// scripted attacks the plan has to cover.
package timeline

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed embedded/*.toml
var embeddedTimelines embed.FS

// DefaultID is the timeline a new plan uses when none is configured.
const DefaultID = "sample-boss"

// Timeline errors.
var (
	ErrUnknownTimeline = errors.New("unknown timeline")
	ErrInvalidTimeline = errors.New("invalid timeline")
	ErrUnsupportedFile = errors.New("unsupported timeline file")
)

// AttackType is the damage type of a boss attack.
type AttackType string

const (
	Physical AttackType = "physical"
	Magical  AttackType = "magical"
)

// Attack is one scripted boss action.
type Attack struct {
	Time int        `toml:"time" yaml:"time" json:"time"`
	Name string     `toml:"name" yaml:"name" json:"name"`
	Type AttackType `toml:"type" yaml:"type" json:"type"`
}

// Timeline is a boss fight script. Duration is in seconds.
type Timeline struct {
	ID       string   `toml:"id" yaml:"id" json:"id"`
	Name     string   `toml:"name" yaml:"name" json:"name"`
	Duration int      `toml:"duration" yaml:"duration" json:"duration"`
	Attacks  []Attack `toml:"attacks" yaml:"attacks" json:"attacks"`
}

// Load returns a built-in timeline by id.
func Load(id string) (*Timeline, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		id = DefaultID
	}
	data, err := embeddedTimelines.ReadFile("embedded/" + id + ".toml")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTimeline, id)
	}

	var t Timeline
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing timeline %q: %w", id, err)
	}
	t.ID = id
	if err := t.normalize(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Available returns the ids of the built-in timelines, sorted.
func Available() []string {
	entries, err := embeddedTimelines.ReadDir("embedded")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(ids)
	return ids
}

// LoadFile reads a user timeline from a .yaml, .yml or .toml file.
// The id defaults to the file name without extension.
func LoadFile(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading timeline: %w", err)
	}

	var t Timeline
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &t)
	case ".toml":
		err = toml.Unmarshal(data, &t)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing timeline %s: %w", path, err)
	}

	if t.ID == "" {
		t.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := t.normalize(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Resolve loads a built-in timeline by id, or a file when ref looks like a path.
func Resolve(ref string) (*Timeline, error) {
	if strings.ContainsAny(ref, `/\`) || filepath.Ext(ref) != "" {
		return LoadFile(ref)
	}
	return Load(ref)
}

// Validate checks the duration and that every attack falls inside the fight.
func (t *Timeline) Validate() error {
	if t.Duration <= 0 {
		return fmt.Errorf("%w: %s: duration must be positive", ErrInvalidTimeline, t.ID)
	}
	for _, a := range t.Attacks {
		if a.Time < 0 || a.Time > t.Duration {
			return fmt.Errorf("%w: %s: attack %q at %ds is outside 0-%ds",
				ErrInvalidTimeline, t.ID, a.Name, a.Time, t.Duration)
		}
		switch a.Type {
		case Physical, Magical, "":
		default:
			return fmt.Errorf("%w: %s: attack %q has unknown type %q", ErrInvalidTimeline, t.ID, a.Name, a.Type)
		}
	}
	return nil
}

// AttacksBetween returns the attacks with start <= time < end.
func (t *Timeline) AttacksBetween(start, end int) []Attack {
	var out []Attack
	for _, a := range t.Attacks {
		if a.Time >= start && a.Time < end {
			out = append(out, a)
		}
	}
	return out
}

func (t *Timeline) normalize() error {
	if err := t.Validate(); err != nil {
		return err
	}
	sort.SliceStable(t.Attacks, func(i, j int) bool {
		return t.Attacks[i].Time < t.Attacks[j].Time
	})
	return nil
}
