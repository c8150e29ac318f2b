package catalog

import (
	"fmt"
	"strings"
)

// Party maps party slots to job ids. Missing or empty entries are open slots.
type Party map[string]string

// DefaultParty is the composition a new plan starts with.
func DefaultParty() Party {
	return Party{
		"tank1":   "PLD",
		"tank2":   "DRK",
		"healer1": "SCH",
		"healer2": "AST",
		"dps1":    "DRG",
		"dps2":    "RDM",
		"dps3":    "BRD",
		"dps4":    "PCT",
	}
}

// Clone returns an independent copy.
func (p Party) Clone() Party {
	out := make(Party, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Validate checks slots and jobs against the catalog and normalises job ids.
func (p Party) Validate(c *Catalog) error {
	for slot, jobID := range p {
		if !c.HasSlot(slot) {
			return fmt.Errorf("%w: %s", ErrUnknownSlot, slot)
		}
		if jobID == "" {
			continue
		}
		j, err := c.Job(jobID)
		if err != nil {
			return fmt.Errorf("slot %s: %w", slot, err)
		}
		p[slot] = j.ID
	}
	return nil
}

// String renders the party in slot order, e.g. "tank1=PLD tank2=DRK".
func (p Party) String(c *Catalog) string {
	parts := make([]string, 0, len(c.Slots))
	for _, slot := range c.Slots {
		job := p[slot]
		if job == "" {
			job = "-"
		}
		parts = append(parts, slot+"="+job)
	}
	return strings.Join(parts, " ")
}

// ParseParty reads "slot=JOB" pairs separated by commas or spaces.
func ParseParty(s string) (Party, error) {
	p := Party{}
	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		slot, job, ok := strings.Cut(field, "=")
		if !ok || slot == "" {
			return nil, fmt.Errorf("invalid party entry %q (want slot=JOB)", field)
		}
		p[strings.ToLower(slot)] = strings.ToUpper(job)
	}
	return p, nil
}
