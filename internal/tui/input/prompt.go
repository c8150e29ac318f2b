// Package input holds the prompt command table and its matching helpers.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Args        string
	Description string
}

// Commands is the prompt command table, in display order.
var Commands = []PromptCommand{
	{Name: "/suggest", Args: "[instructions]", Description: "Ask the LLM for placements"},
	{Name: "/more", Args: "<instructions>", Description: "Refine the last suggestion"},
	{Name: "/boss", Args: "<timeline>", Description: "Switch the fight timeline"},
	{Name: "/job", Args: "<slot> <job>", Description: "Change the job in a slot"},
	{Name: "/name", Args: "<name>", Description: "Rename the plan"},
	{Name: "/goto", Args: "<m:ss>", Description: "Move the cursor to a time"},
	{Name: "/open", Args: "[plan id]", Description: "Open a saved plan"},
	{Name: "/clear", Args: "[slot]", Description: "Remove placements"},
	{Name: "/review", Description: "LLM review of the coverage"},
}

// Invocation is a parsed prompt line.
type Invocation struct {
	Name string
	Args []string
	// Rest is everything after the command name, trimmed.
	Rest string
}

// Parse splits a prompt line into command and arguments. A line without a
// leading slash is treated as a /suggest instruction.
func Parse(line string) Invocation {
	line = strings.TrimSpace(line)
	if line == "" {
		return Invocation{}
	}
	if !strings.HasPrefix(line, "/") {
		return Invocation{Name: "/suggest", Args: strings.Fields(line), Rest: line}
	}
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	return Invocation{Name: strings.ToLower(name), Args: strings.Fields(rest), Rest: rest}
}

// PromptMatchingCommands returns commands that match the current input prefix.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	if !strings.HasPrefix(strings.TrimSpace(input), "/") {
		return nil
	}
	if strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(strings.TrimSpace(input))
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}
