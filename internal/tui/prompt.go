package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/mitplan/internal/advisor"
	"github.com/javiermolinar/mitplan/internal/llm"
	"github.com/javiermolinar/mitplan/internal/summary"
	"github.com/javiermolinar/mitplan/internal/timefmt"
	"github.com/javiermolinar/mitplan/internal/timeline"
	"github.com/javiermolinar/mitplan/internal/tui/commands"
	"github.com/javiermolinar/mitplan/internal/tui/input"
)

// runPrompt executes one prompt line.
func (m Model) runPrompt(line string) (tea.Model, tea.Cmd) {
	inv := input.Parse(line)
	m.logger.Debug().Str("command", inv.Name).Str("args", inv.Rest).Msg("prompt")

	switch inv.Name {
	case "":
		return m, nil
	case "/suggest":
		return m.suggest(inv.Rest, false)
	case "/more":
		if inv.Rest == "" {
			return m, m.setStatus("Usage: /more <instructions>")
		}
		return m.suggest(inv.Rest, true)
	case "/review":
		m.coverage = summary.Summarize(m.board)
		return m.review()
	case "/open":
		return m.openPlans(inv.Rest)
	case "/goto":
		t, err := timefmt.Parse(inv.Rest)
		if err != nil {
			return m, m.setStatus("Error: %v", err)
		}
		m.cursor = 0
		m.moveCursor(t)
		return m, nil
	case "/name":
		if inv.Rest == "" {
			return m, m.setStatus("Usage: /name <name>")
		}
		m.plan.Name = inv.Rest
		m.dirty = true
		return m, m.setStatus("Renamed plan to %s", inv.Rest)
	}

	if m.busy {
		return m, m.setStatus("Waiting for the LLM")
	}
	switch inv.Name {
	case "/boss":
		return m.switchBoss(inv.Rest)
	case "/job":
		return m.setJob(inv.Args)
	case "/clear":
		return m.clearSlot(inv.Rest)
	}
	return m, m.setStatus("Unknown command %s", inv.Name)
}

func (m Model) switchBoss(ref string) (tea.Model, tea.Cmd) {
	if ref == "" {
		return m, m.setStatus("Usage: /boss <%s>", strings.Join(timeline.Available(), "|"))
	}
	tl, err := timeline.Resolve(ref)
	if err != nil {
		return m, m.setStatus("Error: %v", err)
	}
	if tl.ID == m.board.Timeline.ID {
		return m, m.setStatus("Already on %s", tl.Name)
	}

	cleared := m.board.Len()
	m.board.SwitchTimeline(tl)
	m.advisor = nil
	m.dirty = true
	m.offset = 0
	m.moveCursor(0)
	return m, m.setStatus("Switched to %s, cleared %d placement(s)", tl.Name, cleared)
}

func (m Model) setJob(args []string) (tea.Model, tea.Cmd) {
	if len(args) != 2 {
		return m, m.setStatus("Usage: /job <slot> <job|none>")
	}
	slot, job := args[0], strings.ToUpper(args[1])
	if job == "NONE" {
		job = ""
	}

	dropped, err := m.board.SetJob(slot, job)
	if err != nil {
		return m, m.setStatus("Error: %v", err)
	}
	m.advisor = nil
	m.dirty = true
	if job == "" {
		job = "empty"
	}
	return m, m.setStatus("%s: %s, removed %d placement(s)", m.catalog.SlotLabel(slot), job, len(dropped))
}

func (m Model) clearSlot(slot string) (tea.Model, tea.Cmd) {
	if slot == "" {
		n := m.board.Len()
		m.board.Clear()
		m.dirty = m.dirty || n > 0
		return m, m.setStatus("Cleared %d placement(s)", n)
	}
	if !m.catalog.HasSlot(slot) {
		return m, m.setStatus("Unknown slot %s", slot)
	}

	entries := m.board.SlotEntries(slot)
	for _, e := range entries {
		if err := m.board.Remove(e.ID); err != nil {
			return m, m.setStatus("Error: %v", err)
		}
	}
	m.dirty = m.dirty || len(entries) > 0
	return m, m.setStatus("Cleared %d placement(s) from %s", len(entries), m.catalog.SlotLabel(slot))
}

func (m Model) llmClient() (llm.Client, error) {
	c := m.config.LLM
	return llm.NewClient(c.Provider, c.Model, c.BaseURL)
}

// suggest starts an advisor round, or refines the last one.
func (m Model) suggest(text string, followUp bool) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, m.setStatus("Waiting for the LLM")
	}
	if followUp && m.advisor == nil {
		return m, m.setStatus("Nothing to refine, use /suggest first")
	}
	if !followUp {
		client, err := m.llmClient()
		if err != nil {
			return m, m.setStatus("Error: %v", err)
		}
		m.advisor = advisor.New(client, m.config.LLM.Provider, m.board, m.logger)
	}

	m.busy = true
	m.suggestInput = text
	status := m.setStatus("Asking %s for suggestions...", m.config.LLM.Model)
	return m, tea.Batch(status, commands.Suggest(m.advisor, text, followUp, m.config.LLM.MaxRetries))
}

// review asks the LLM to critique the coverage report.
func (m Model) review() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, m.setStatus("Waiting for the LLM")
	}
	client, err := m.llmClient()
	if err != nil {
		return m, m.setStatus("Error: %v", err)
	}
	m.busy = true
	status := m.setStatus("Reviewing coverage with %s...", m.config.LLM.Model)
	return m, tea.Batch(status, commands.Review(client, m.coverage))
}
