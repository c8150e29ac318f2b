// Package plan defines saved mitigation plans and their storage interface.
package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"
)

// Validation errors.
var (
	ErrEmptyName     = errors.New("plan name cannot be empty")
	ErrEmptyBoss     = errors.New("plan needs a boss timeline")
	ErrInvalidFormat = errors.New("invalid plan file")
)

// Domain errors.
var (
	ErrPlanNotFound = errors.New("plan not found")
)

// Placement is one saved ability use.
type Placement struct {
	ID        string `json:"placementId"`
	Slot      string `json:"slot"`
	AbilityID string `json:"abilityId"`
	JobID     string `json:"jobId,omitempty"`
	Start     int    `json:"startTime"`
}

// Plan is a named set of placements against one boss timeline.
type Plan struct {
	ID           string            `json:"planId,omitempty"`
	Name         string            `json:"planName"`
	BossID       string            `json:"bossId"`
	Party        map[string]string `json:"partyComp"`
	Placements   []Placement       `json:"placements"`
	LastModified time.Time         `json:"lastModified"`
}

// New creates a plan with a generated id.
func New(name, bossID string, party map[string]string, now time.Time) (*Plan, error) {
	p := &Plan{
		Name:   strings.TrimSpace(name),
		BossID: strings.TrimSpace(bossID),
		Party:  party,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.ID = GeneratePlanID(p.BossID, p.Name, now)
	p.LastModified = now
	return p, nil
}

// Validate checks the fields every stored plan must have.
func (p *Plan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(p.BossID) == "" {
		return ErrEmptyBoss
	}
	return nil
}

var unsafeID = regexp.MustCompile(`[^a-z0-9]`)

// GeneratePlanID builds "<boss>-<name>-<unix ms>", with every character of
// the name outside [a-z0-9] replaced by a dash.
func GeneratePlanID(bossID, name string, now time.Time) string {
	sanitized := unsafeID.ReplaceAllString(strings.ToLower(name), "-")
	return fmt.Sprintf("%s-%s-%d", bossID, sanitized, now.UnixMilli())
}

// Export writes the plan as indented JSON.
func (p *Plan) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	return nil
}

// Import reads a plan previously written by Export.
// The id is kept when present so re-importing overwrites the same plan.
func Import(r io.Reader) (*Plan, error) {
	var p Plan
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	if p.Party == nil {
		p.Party = map[string]string{}
	}
	for i, pl := range p.Placements {
		if pl.Slot == "" || pl.AbilityID == "" {
			return nil, fmt.Errorf("%w: placement %d has no slot or ability", ErrInvalidFormat, i)
		}
		if pl.Start < 0 {
			return nil, fmt.Errorf("%w: placement %d starts before the pull", ErrInvalidFormat, i)
		}
	}
	return &p, nil
}

// FileName returns a file name for exporting the plan.
func (p *Plan) FileName() string {
	name := strings.Trim(unsafeID.ReplaceAllString(strings.ToLower(p.Name), "-"), "-")
	if name == "" {
		name = "mitigation-plan"
	}
	return name + ".json"
}
