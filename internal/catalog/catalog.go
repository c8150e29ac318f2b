// Package catalog holds the static job and ability tables.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/mitplan/internal/cooldown"
)

//go:embed embedded/jobs.toml
var embedded embed.FS

// Lookup errors.
var (
	ErrUnknownJob     = errors.New("unknown job")
	ErrUnknownSlot    = errors.New("unknown party slot")
	ErrUnknownAbility = errors.New("unknown ability")
)

// Ability is one catalog entry.
type Ability struct {
	ID        string `toml:"id"`
	Name      string `toml:"name"`
	Duration  int    `toml:"duration"`
	Cooldown  int    `toml:"cooldown"`
	Charges   int    `toml:"charges"`
	SweetSpot int    `toml:"sweet_spot"`
	Personal  bool   `toml:"personal"`
	Targeted  bool   `toml:"targeted"`
}

// Reach describes who an ability protects: "self", "target" or "party".
func (a Ability) Reach() string {
	return reach(a.Personal, a.Targeted)
}

// Role groups jobs that share role abilities.
type Role struct {
	Name      string    `toml:"name"`
	Abilities []Ability `toml:"abilities"`
}

// Job is a playable job and its own abilities.
type Job struct {
	ID        string    `toml:"-"`
	Name      string    `toml:"name"`
	Role      string    `toml:"role"`
	Color     string    `toml:"color"`
	Abilities []Ability `toml:"abilities"`
}

// Catalog is the decoded, read-only job table.
type Catalog struct {
	Slots      []string          `toml:"slots"`
	SlotLabels map[string]string `toml:"slot_labels"`
	Roles      map[string]Role   `toml:"roles"`
	Jobs       map[string]*Job   `toml:"jobs"`
}

// SlotAbility is an ability bound to the job sitting in a party slot.
type SlotAbility struct {
	cooldown.Ability
	JobID    string
	JobName  string
	Color    string
	Personal bool
	Targeted bool
}

// Reach describes who the ability protects.
func (a SlotAbility) Reach() string {
	return reach(a.Personal, a.Targeted)
}

func reach(personal, targeted bool) string {
	switch {
	case personal:
		return "self"
	case targeted:
		return "target"
	}
	return "party"
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load returns the embedded catalog, decoding it on first use.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		data, err := embedded.ReadFile("embedded/jobs.toml")
		if err != nil {
			loadErr = fmt.Errorf("reading catalog: %w", err)
			return
		}
		loaded, loadErr = Parse(data)
	})
	return loaded, loadErr
}

// MustLoad is Load for callers that cannot proceed without the catalog.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	for id, job := range c.Jobs {
		job.ID = id
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

// Validate checks every ability's timing.
func (c *Catalog) Validate() error {
	if len(c.Slots) == 0 {
		return errors.New("no party slots defined")
	}
	check := func(owner string, abilities []Ability) error {
		seen := make(map[string]bool, len(abilities))
		for _, a := range abilities {
			switch {
			case a.ID == "":
				return fmt.Errorf("%s: ability without id", owner)
			case seen[a.ID]:
				return fmt.Errorf("%s: duplicate ability %q", owner, a.ID)
			case a.Duration <= 0:
				return fmt.Errorf("%s/%s: duration must be positive", owner, a.ID)
			case a.Cooldown < 0:
				return fmt.Errorf("%s/%s: cooldown cannot be negative", owner, a.ID)
			case a.Charges < 0:
				return fmt.Errorf("%s/%s: charges cannot be negative", owner, a.ID)
			case a.SweetSpot > a.Duration:
				return fmt.Errorf("%s/%s: sweet spot longer than duration", owner, a.ID)
			}
			seen[a.ID] = true
		}
		return nil
	}
	for id, r := range c.Roles {
		if err := check("role "+id, r.Abilities); err != nil {
			return err
		}
	}
	for id, j := range c.Jobs {
		if _, ok := c.Roles[j.Role]; !ok {
			return fmt.Errorf("job %s: unknown role %q", id, j.Role)
		}
		if err := check("job "+id, c.JobAbilities(id)); err != nil {
			return err
		}
	}
	return nil
}

// Job returns a job by id, case-insensitively.
func (c *Catalog) Job(id string) (*Job, error) {
	if j, ok := c.Jobs[strings.ToUpper(strings.TrimSpace(id))]; ok {
		return j, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownJob, id)
}

// JobIDs returns every job id in a stable order: by role as listed in
// the party slots, then alphabetically.
func (c *Catalog) JobIDs() []string {
	ids := make([]string, 0, len(c.Jobs))
	for id := range c.Jobs {
		ids = append(ids, id)
	}
	rank := map[string]int{"tank": 0, "healer": 1, "melee": 2, "physical_ranged": 3, "magical_ranged": 4}
	sort.Slice(ids, func(i, j int) bool {
		ri, rj := rank[c.Jobs[ids[i]].Role], rank[c.Jobs[ids[j]].Role]
		if ri != rj {
			return ri < rj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// JobAbilities returns the role abilities followed by the job's own.
func (c *Catalog) JobAbilities(id string) []Ability {
	j, err := c.Job(id)
	if err != nil {
		return nil
	}
	role := c.Roles[j.Role]
	out := make([]Ability, 0, len(role.Abilities)+len(j.Abilities))
	out = append(out, role.Abilities...)
	return append(out, j.Abilities...)
}

// HasSlot reports whether slot is one of the party slots.
func (c *Catalog) HasSlot(slot string) bool {
	for _, s := range c.Slots {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotLabel returns the display label for a slot.
func (c *Catalog) SlotLabel(slot string) string {
	if l, ok := c.SlotLabels[slot]; ok {
		return l
	}
	return slot
}

// AbilitiesForSlot returns the abilities available to whoever sits in slot.
// An empty or unassigned slot has no abilities.
func (c *Catalog) AbilitiesForSlot(party Party, slot string) []SlotAbility {
	jobID := party[slot]
	if jobID == "" {
		return nil
	}
	j, err := c.Job(jobID)
	if err != nil {
		return nil
	}

	abilities := c.JobAbilities(j.ID)
	out := make([]SlotAbility, 0, len(abilities))
	for _, a := range abilities {
		out = append(out, bind(a, j, slot))
	}
	return out
}

// Ability finds one ability for the job in slot.
func (c *Catalog) Ability(party Party, slot, abilityID string) (SlotAbility, error) {
	if !c.HasSlot(slot) {
		return SlotAbility{}, fmt.Errorf("%w: %s", ErrUnknownSlot, slot)
	}
	for _, a := range c.AbilitiesForSlot(party, slot) {
		if a.ID == abilityID {
			return a, nil
		}
	}
	return SlotAbility{}, fmt.Errorf("%w: %s has no %q", ErrUnknownAbility, c.SlotLabel(slot), abilityID)
}

// Descriptor converts a catalog entry into the engine's view of it.
func (a Ability) Descriptor(slot string) cooldown.Ability {
	return cooldown.Ability{
		ID:        a.ID,
		Name:      a.Name,
		Slot:      slot,
		Duration:  a.Duration,
		Cooldown:  a.Cooldown,
		Charges:   a.Charges,
		SweetSpot: a.SweetSpot,
	}
}

func bind(a Ability, j *Job, slot string) SlotAbility {
	return SlotAbility{
		Ability:  a.Descriptor(slot),
		JobID:    j.ID,
		JobName:  j.Name,
		Color:    j.Color,
		Personal: a.Personal,
		Targeted: a.Targeted,
	}
}
